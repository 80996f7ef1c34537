package notifications

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"mentor-match/cmd/server/ctxkeys"
	"mentor-match/cmd/server/testutil"
	"mentor-match/internal/logger"
	"mentor-match/internal/services/accounts"
	"mentor-match/internal/services/auth"
	"mentor-match/internal/services/notifications"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	gorillaws "github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MockHub records subscriptions and hands out buffered subscribers
type MockHub struct {
	mu   sync.Mutex
	subs map[ulid.ULID]*notifications.Subscriber
}

func NewMockHub() *MockHub {
	return &MockHub{subs: make(map[ulid.ULID]*notifications.Subscriber)}
}

func (m *MockHub) Subscribe(connID ulid.ULID, userID bson.ObjectID) (*notifications.Subscriber, func()) {
	sub := &notifications.Subscriber{
		UserID: userID,
		Ch:     make(chan notifications.Event, 10),
		Done:   make(chan struct{}),
	}
	m.mu.Lock()
	m.subs[connID] = sub
	m.mu.Unlock()

	var once sync.Once
	return sub, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, connID)
			m.mu.Unlock()
			close(sub.Done)
		})
	}
}

func (m *MockHub) first() *notifications.Subscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		return s
	}
	return nil
}

func (m *MockHub) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

func tokenParser(t *testing.T) *auth.Service {
	t.Helper()
	return auth.NewService(nil, nil, testutil.TestConfig(false), logger.L())
}

func TestWSUpgrade(t *testing.T) {
	app := testutil.CreateTestApp(t)
	ws := NewWebSocketHandlers(NewMockHub(), tokenParser(t), 900)
	app.Get("/ws", ws.WSUpgrade, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":   c.Locals(ctxkeys.UserIDKey),
			"role": c.Locals(ctxkeys.UserRoleKey),
		})
	})

	userID := bson.NewObjectID().Hex()
	valid, err := testutil.CreateTestJWT(userID, accounts.RoleMentor, time.Hour)
	require.NoError(t, err)
	expired, err := testutil.CreateTestJWT(userID, accounts.RoleMentor, -time.Hour)
	require.NoError(t, err)
	badRole, err := testutil.CreateTestJWT(userID, accounts.Role("admin"), time.Hour)
	require.NoError(t, err)
	garbage := "invalid-token"

	tests := []struct {
		name       string
		token      *string
		wantStatus int
	}{
		{"valid", &valid, 200},
		{"missing", nil, 401},
		{"garbage", &garbage, 401},
		{"expired", &expired, 401},
		{"unknown role", &badRole, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(testutil.CreateWebSocketRequest("/ws", tt.token))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == 200 {
				body := testutil.DecodeJSON(t, resp)
				assert.Equal(t, userID, body["id"])
				assert.Equal(t, "mentor", body["role"])
			}
		})
	}
}

func TestWSUpgrade_PlainRequest(t *testing.T) {
	app := testutil.CreateTestApp(t)
	ws := NewWebSocketHandlers(NewMockHub(), tokenParser(t), 900)
	app.Get("/ws", ws.WSUpgrade)

	resp, err := app.Test(testutil.CreateJSONRequest("GET", "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

// startStreamServer serves the stream for a fixed user and returns its ws URL.
func startStreamServer(t *testing.T, hub Hub, maxSessionSec int, userID bson.ObjectID) string {
	t.Helper()
	testutil.CreateTestApp(t)

	ws := NewWebSocketHandlers(hub, tokenParser(t), maxSessionSec)
	app := fiber.New()
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(400)
		}
		c.Locals(ctxkeys.UserIDKey, userID.Hex())
		c.Locals(ctxkeys.ParentCtxKey, c.UserContext())
		return c.Next()
	})
	app.Get("/ws", websocket.New(ws.WSNotificationsStream))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return fmt.Sprintf("ws://%s/ws", ln.Addr().String())
}

func TestWSStream_DeliversEvents(t *testing.T) {
	hub := NewMockHub()
	userID := bson.NewObjectID()
	url := startStreamServer(t, hub, 900, userID)

	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool { return hub.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	sub := hub.first()
	assert.Equal(t, userID, sub.UserID)

	sub.Ch <- notifications.Event{
		Type:      notifications.EventNotification,
		Recipient: userID,
		Notification: &accounts.Notification{
			ID:      "01J9Z3N6Q8W7XJ5M2C4B1A0D9E",
			Kind:    accounts.KindMentorshipRequest,
			Message: "Bea has requested you as a mentor",
		},
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var got map[string]any
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "notification", got["type"])
	assert.NotContains(t, got, "recipient")
	n := got["notification"].(map[string]any)
	assert.Equal(t, "mentorship_request", n["kind"])

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWSStream_SessionTimeout(t *testing.T) {
	url := startStreamServer(t, NewMockHub(), 1, bson.NewObjectID())

	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(4*time.Second)))
	start := time.Now()
	_, _, err = conn.ReadMessage()
	require.Error(t, err)

	var closeErr *gorillaws.CloseError
	if errors.As(err, &closeErr) {
		assert.Equal(t, WSClosePolicyViolation, closeErr.Code)
	}
	assert.GreaterOrEqual(t, time.Since(start), 900*time.Millisecond)
	assert.Less(t, time.Since(start), 3*time.Second)
}
