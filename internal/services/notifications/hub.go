package notifications

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"mentor-match/internal/logger"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Subscriber is one live connection waiting for events.
type Subscriber struct {
	UserID bson.ObjectID
	Ch     chan Event
	Done   chan struct{}
}

// ConnInfo holds connection metadata
type ConnInfo struct {
	ID          ulid.ULID
	ConnectedAt time.Time
	Subscriber  *Subscriber
}

type userConns struct {
	mu sync.RWMutex
	m  map[ulid.ULID]ConnInfo
}

// Hub fans events out to every live connection of a profile. Each connection
// has a bounded outbox; when it is full the event is dropped and counted.
type Hub struct {
	mu         sync.RWMutex
	users      map[bson.ObjectID]*userConns
	connIndex  map[ulid.ULID]bson.ObjectID
	bufferSize int
	dropped    uint64
	delivered  uint64
}

// NewHub creates a hub whose connections buffer up to bufferSize events.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Hub{
		users:      make(map[bson.ObjectID]*userConns),
		connIndex:  make(map[ulid.ULID]bson.ObjectID),
		bufferSize: bufferSize,
	}
}

// Subscribe registers a connection for userID. The returned func unsubscribes it.
func (h *Hub) Subscribe(connID ulid.ULID, userID bson.ObjectID) (*Subscriber, func()) {
	debug(context.Background(), "subscribing connection", "conn_id", connID.String(), "user_id", userID.Hex())

	sub := &Subscriber{
		UserID: userID,
		Ch:     make(chan Event, h.bufferSize),
		Done:   make(chan struct{}),
	}

	h.mu.Lock()
	bucket, ok := h.users[userID]
	if !ok {
		bucket = &userConns{m: make(map[ulid.ULID]ConnInfo)}
		h.users[userID] = bucket
	}
	h.connIndex[connID] = userID
	bucket.mu.Lock()
	bucket.m[connID] = ConnInfo{ID: connID, ConnectedAt: time.Now(), Subscriber: sub}
	bucket.mu.Unlock()
	h.mu.Unlock()

	return sub, func() { h.Unsubscribe(connID) }
}

// Unsubscribe removes a connection and closes its channels. Safe to call twice.
func (h *Hub) Unsubscribe(connID ulid.ULID) {
	debug(context.Background(), "unsubscribing connection", "conn_id", connID.String())

	h.mu.Lock()
	defer h.mu.Unlock()

	uid, ok := h.connIndex[connID]
	if !ok {
		return
	}
	delete(h.connIndex, connID)

	bucket := h.users[uid]
	if bucket == nil {
		return
	}

	bucket.mu.Lock()
	info, exists := bucket.m[connID]
	delete(bucket.m, connID)
	empty := len(bucket.m) == 0
	if exists {
		close(info.Subscriber.Ch)
		close(info.Subscriber.Done)
	}
	bucket.mu.Unlock()

	if empty {
		delete(h.users, uid)
	}
}

// Publish delivers ev to every connection of ev.Recipient without blocking.
func (h *Hub) Publish(ctx context.Context, ev Event) {
	if ev.Recipient.IsZero() {
		return
	}
	debug(ctx, "publishing event", "user_id", ev.Recipient.Hex(), "event_type", ev.Type)

	h.mu.RLock()
	bucket := h.users[ev.Recipient]
	h.mu.RUnlock()
	if bucket == nil {
		return
	}

	bucket.mu.RLock()
	defer bucket.mu.RUnlock()
	for _, info := range bucket.m {
		select {
		case info.Subscriber.Ch <- ev:
			atomic.AddUint64(&h.delivered, 1)
		default:
			atomic.AddUint64(&h.dropped, 1)
			logger.L().Warn("outbox full, dropping event", "conn_id", info.ID.String(), "user_id", ev.Recipient.Hex(), "event_type", ev.Type)
		}
	}
}

// Connections returns the number of live connections.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connIndex)
}

// Stats returns the live connection count and the delivered and dropped totals.
func (h *Hub) Stats() (connections int, delivered, dropped uint64) {
	return h.Connections(), atomic.LoadUint64(&h.delivered), atomic.LoadUint64(&h.dropped)
}

func debug(ctx context.Context, msg string, args ...any) {
	if log := logger.L(); log.Enabled(ctx, slog.LevelDebug) {
		log.Debug(msg, args...)
	}
}
