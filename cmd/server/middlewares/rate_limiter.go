package middlewares

import (
	"strings"
	"time"

	"mentor-match/cmd/server/handlers/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// LoginLimiter throttles sign-in attempts per client IP and identifier, so
// guessing one account's password does not lock out everyone behind the
// same address. perWindow <= 0 disables it.
func LoginLimiter(perWindow int, window time.Duration) fiber.Handler {
	if perWindow <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return limiter.New(limiter.Config{
		Max:          perWindow,
		Expiration:   window,
		KeyGenerator: loginKey,
		LimitReached: func(*fiber.Ctx) error {
			return httperr.Fail(httperr.ErrTooManyRequests)
		},
	})
}

// loginKey falls back to the bare IP when the body carries no identifier.
func loginKey(c *fiber.Ctx) string {
	var body struct {
		Identifier string `json:"identifier"`
	}
	if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
		return c.IP()
	}
	id := strings.ToLower(strings.TrimSpace(body.Identifier))
	if id == "" {
		return c.IP()
	}
	return c.IP() + "|" + id
}
