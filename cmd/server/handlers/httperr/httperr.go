package httperr

import (
	"errors"

	"mentor-match/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// E is the {"error": "..."} body every failing endpoint returns.
type E struct {
	Status  int    `json:"-" example:"400"`
	Message string `json:"error" example:"Invalid email address"`
}

func (e E) Error() string { return e.Message }

// JSON writes e with its status.
func (e E) JSON(c *fiber.Ctx) error {
	return c.Status(e.Status).JSON(e)
}

// Fail hands err to the app-wide error handler.
func Fail(err E) error { return err }

// InvalidInput reports a body that decoded but failed validation.
func InvalidInput(err error) error {
	return Fail(BadRequest("Invalid input: " + err.Error()))
}

func BadRequest(message string) E    { return E{Status: fiber.StatusBadRequest, Message: message} }
func NotFound(message string) E      { return E{Status: fiber.StatusNotFound, Message: message} }
func InternalError(message string) E { return E{Status: fiber.StatusInternalServerError, Message: message} }

var (
	ErrBadRequest         = BadRequest("Bad Request")
	ErrUnauthorized       = E{Status: fiber.StatusUnauthorized, Message: "Unauthorized"}
	ErrInvalidCredentials = E{Status: fiber.StatusUnauthorized, Message: "Invalid credentials"}
	ErrForbidden          = E{Status: fiber.StatusForbidden, Message: "Forbidden"}
	ErrUserNotFound       = NotFound("User not found")
	ErrPayloadTooLarge    = E{Status: fiber.StatusRequestEntityTooLarge, Message: "Uploaded photo is too large"}
	ErrTooManyRequests    = E{Status: fiber.StatusTooManyRequests, Message: "Too Many Requests"}
	ErrInternal           = InternalError("Something went wrong")
)

// Handler is the app's fiber.ErrorHandler. Unknown errors never leak their
// cause to the client.
func Handler(c *fiber.Ctx, err error) error {
	var e E
	if errors.As(err, &e) {
		return e.JSON(c)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return ErrPayloadTooLarge.JSON(c)
		}
		return E{Status: fe.Code, Message: fe.Message}.JSON(c)
	}

	logger.L().Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	return ErrInternal.JSON(c)
}
