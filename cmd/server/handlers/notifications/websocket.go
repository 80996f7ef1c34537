package notifications

import (
	"context"
	"errors"
	"time"

	"mentor-match/cmd/server/ctxkeys"
	"mentor-match/cmd/server/handlers/httperr"
	"mentor-match/internal/logger"
	"mentor-match/internal/services/auth"
	"mentor-match/internal/services/notifications"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	// WSClosePolicyViolation represents WebSocket close code for policy violation
	WSClosePolicyViolation = 1008

	wsWriteTimeout     = 10 * time.Second
	wsPingInterval     = 25 * time.Second
	wsPingWriteTimeout = 5 * time.Second
	wsMaxIncomingBytes = 4 << 10

	msgFailedToCloseWebSocketConnection = "failed to close WebSocket connection"
)

// Hub interface for WebSocket management
type Hub interface {
	Subscribe(connID ulid.ULID, userID bson.ObjectID) (*notifications.Subscriber, func())
}

// TokenParser validates access tokens presented on the upgrade request.
type TokenParser interface {
	ParseToken(raw string) (*auth.Claims, error)
}

// WebSocketHandlers streams live notifications to connected profiles
type WebSocketHandlers struct {
	hub           Hub
	tokens        TokenParser
	maxSessionSec int
}

// NewWebSocketHandlers creates new WebSocket handlers
func NewWebSocketHandlers(hub Hub, tokens TokenParser, maxSessionSec int) *WebSocketHandlers {
	return &WebSocketHandlers{
		hub:           hub,
		tokens:        tokens,
		maxSessionSec: maxSessionSec,
	}
}

// WSUpgrade authenticates the ?token= query parameter and lets the upgrade through
// @Summary Live notification stream
// @Description WebSocket upgrade. Events are {"type":"notification","notification":{...}}.
// @Tags mentorship
// @Param token query string true "Access token"
// @Success 101
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /ws/notifications [get]
func (h *WebSocketHandlers) WSUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		logger.L().Warn("websocket upgrade required", "handler", "WSUpgrade", "path", c.Path())
		return httperr.Fail(httperr.BadRequest("WebSocket upgrade required"))
	}

	token := c.Query("token")
	if token == "" {
		logger.L().Warn("missing token in websocket upgrade", "handler", "WSUpgrade", "path", c.Path())
		return httperr.Fail(httperr.E{Status: 401, Message: "Missing token"})
	}

	claims, err := h.tokens.ParseToken(token)
	if err != nil {
		logger.L().Warn("invalid token in websocket upgrade", "handler", "WSUpgrade", "path", c.Path(), "error", err)
		return httperr.Fail(httperr.E{Status: 401, Message: "Invalid token"})
	}

	c.Locals(ctxkeys.UserIDKey, claims.ID)
	c.Locals(ctxkeys.UserRoleKey, claims.Role)
	// The stream handler runs after the request completes, so it needs its own parent context.
	c.Locals(ctxkeys.ParentCtxKey, c.UserContext())

	return c.Next()
}

type wsConnection struct {
	userID bson.ObjectID
	connID ulid.ULID
}

// WSNotificationsStream forwards hub events to the client until the session ends
func (h *WebSocketHandlers) WSNotificationsStream(c *websocket.Conn) {
	conn, parentCtx, err := h.initializeConnection(c)
	if err != nil {
		h.closeConnection(c)
		return
	}

	ctx, cancelCtx := context.WithCancel(parentCtx)
	defer cancelCtx()

	sub, unsubscribe := h.hub.Subscribe(conn.connID, conn.userID)
	defer unsubscribe()

	log := logger.L().With("user_id", conn.userID.Hex(), "conn_id", conn.connID.String())
	log.Info("WebSocket connection established")

	sessionTimer := time.AfterFunc(time.Duration(h.maxSessionSec)*time.Second, func() {
		log.Info("WebSocket session timeout")
		if err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(WSClosePolicyViolation, "session timeout")); err != nil {
			log.Warn("failed to send close message", "error", err)
		}
		h.closeConnection(c)
		cancelCtx()
	})
	defer sessionTimer.Stop()

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	go h.writeLoop(ctx, c, sub, ping.C)

	c.SetReadLimit(wsMaxIncomingBytes)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Warn("WebSocket read error", "error", err)
			}
			break
		}
	}

	log.Info("WebSocket connection closed")
}

func (h *WebSocketHandlers) initializeConnection(c *websocket.Conn) (*wsConnection, context.Context, error) {
	raw, ok := c.Locals(ctxkeys.UserIDKey).(string)
	if !ok {
		logger.L().Error(ctxkeys.UserIDKey + " not found in WebSocket context")
		return nil, nil, errors.New(ctxkeys.UserIDKey + " not found")
	}

	userID, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		logger.L().Error("invalid "+ctxkeys.UserIDKey+" in WebSocket context", ctxkeys.UserIDKey, raw, "error", err)
		return nil, nil, err
	}

	parentCtx, ok := c.Locals(ctxkeys.ParentCtxKey).(context.Context)
	if !ok {
		logger.L().Error(ctxkeys.ParentCtxKey + " not found in WebSocket context")
		return nil, nil, errors.New(ctxkeys.ParentCtxKey + " not found")
	}

	return &wsConnection{userID: userID, connID: ulid.Make()}, parentCtx, nil
}

// writeLoop owns every write except the session-timeout close frame.
func (h *WebSocketHandlers) writeLoop(ctx context.Context, c *websocket.Conn, sub *notifications.Subscriber, ping <-chan time.Time) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("panic in WebSocket sender", "error", r, "user_id", sub.UserID.Hex())
		}
	}()

	for {
		select {
		case ev, ok := <-sub.Ch:
			if !ok {
				return
			}
			if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}
			if err := c.WriteJSON(ev); err != nil {
				logger.L().Warn("failed to write WebSocket message", "error", err, "user_id", sub.UserID.Hex())
				return
			}
		case <-ping:
			if err := c.SetWriteDeadline(time.Now().Add(wsPingWriteTimeout)); err != nil {
				return
			}
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.L().Warn("failed to write ping message", "error", err, "user_id", sub.UserID.Hex())
				return
			}
		case <-sub.Done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandlers) closeConnection(c *websocket.Conn) {
	if err := c.Close(); err != nil {
		logger.L().Debug(msgFailedToCloseWebSocketConnection, "error", err)
	}
}

// LogWSConnections logs every WebSocket upgrade attempt. The user id is only
// logged when the token verifies, so it cannot be spoofed.
func LogWSConnections(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			var user string
			if claims, err := tokens.ParseToken(c.Query("token")); err == nil {
				user = claims.ID
			}
			logger.L().Info("WebSocket upgrade attempt", "ip", c.IP(), "user", user)
		}
		return c.Next()
	}
}
