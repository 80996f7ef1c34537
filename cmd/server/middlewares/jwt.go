package middlewares

import (
	"mentor-match/cmd/server/ctxkeys"
	"mentor-match/cmd/server/handlers/httperr"
	"mentor-match/internal/config"
	"mentor-match/internal/services/accounts"
	"mentor-match/internal/services/auth"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// JWT returns a configured Fiber middleware that:
//
//   - validates the Bearer token signature using cfg.JWTSecret
//   - makes sure the token carries a valid "id" and "role"
//   - stores them in ctx.Locals(ctxkeys.UserIDKey) / ctx.Locals(ctxkeys.UserRoleKey)
//
// On any problem it bubbles up a 401 via the global httperr handler.
func JWT(cfg config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		Claims:     &auth.Claims{},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return httperr.Fail(httperr.ErrUnauthorized)
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.ExpiresAt == nil {
				return httperr.Fail(httperr.ErrUnauthorized)
			}
			if _, err := bson.ObjectIDFromHex(claims.ID); err != nil {
				return httperr.Fail(httperr.ErrUnauthorized)
			}
			role, err := accounts.ParseRole(string(claims.Role))
			if err != nil {
				return httperr.Fail(httperr.ErrUnauthorized)
			}

			c.Locals(ctxkeys.UserIDKey, claims.ID)
			c.Locals(ctxkeys.UserRoleKey, role)
			return c.Next()
		},

		// Override the default "unauthorized" JSON to match the project style
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httperr.Fail(httperr.ErrUnauthorized)
		},
	})
}

// Guard enforces JWT only when AUTH_REQUIRED is on, so protected routes keep
// their public behaviour by default.
func Guard(cfg config.Config) fiber.Handler {
	if !cfg.AuthRequired {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return JWT(cfg)
}
