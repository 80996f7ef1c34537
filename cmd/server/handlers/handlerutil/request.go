package handlerutil

import (
	"errors"

	"mentor-match/cmd/server/ctxkeys"
	"mentor-match/cmd/server/handlers/httperr"
	"mentor-match/internal/logger"
	"mentor-match/internal/services/accounts"
	"mentor-match/internal/services/auth"
	"mentor-match/internal/services/notifications"
	"mentor-match/internal/utils/crypto"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errorMap translates domain errors into client-facing responses.
// Anything not listed is a 500 with a generic message.
var errorMap = []struct {
	err  error
	resp httperr.E
}{
	{accounts.ErrInvalidIdentifierFormat, httperr.BadRequest("Invalid identifier format")},
	{auth.ErrInvalidCredentials, httperr.ErrInvalidCredentials},
	{auth.ErrInvalidToken, httperr.ErrUnauthorized},
	{accounts.ErrNotFound, httperr.ErrUserNotFound},
	{accounts.ErrNotificationNotFound, httperr.NotFound("Notification not found")},
	{auth.ErrAlreadyRegistered, httperr.BadRequest("Email or Mobile is already registered")},
	{accounts.ErrDuplicate, httperr.BadRequest("Email or Mobile is already registered")},
	{auth.ErrNoPhoto, httperr.BadRequest("No photo uploaded")},
	{auth.ErrInvalidImage, httperr.BadRequest("Uploaded file is not a valid image")},
	{auth.ErrPhotoTooLarge, httperr.BadRequest("Uploaded photo is too large")},
	{auth.ErrMissingFields, httperr.BadRequest("All fields are required, including photo")},
	{auth.ErrInvalidEmail, httperr.BadRequest("Invalid email address")},
	{auth.ErrInvalidMobile, httperr.BadRequest("Mobile must be exactly 10 digits")},
	{auth.ErrInvalidUserType, httperr.BadRequest("Invalid user type")},
	{crypto.ErrPasswordTooLong, httperr.BadRequest("Password must be at most 72 bytes")},
	{accounts.ErrInvalidRole, httperr.BadRequest("Invalid user type")},
	{notifications.ErrWrongRole, httperr.BadRequest("Notification does not match this user type")},
	{notifications.ErrSelfRequest, httperr.BadRequest("Cannot request mentorship from yourself")},
}

// ServiceError maps a service error to an HTTP error, logging unexpected ones.
func ServiceError(err error, handlerName string, fields ...any) error {
	for _, m := range errorMap {
		if errors.Is(err, m.err) {
			logger.L().Info("request rejected", append([]any{"handler", handlerName, "reason", m.err.Error()}, fields...)...)
			return httperr.Fail(m.resp)
		}
	}

	logger.L().Error("service operation failed", append([]any{"handler", handlerName, "error", err}, fields...)...)
	return httperr.Fail(httperr.ErrInternal)
}

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, v *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := v.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// ParseQuery parses query parameters into req
func ParseQuery(c *fiber.Ctx, req any, handlerName string) error {
	if err := c.QueryParser(req); err != nil {
		logger.L().Warn("failed to parse query params", "handler", handlerName, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}
	return nil
}

// Caller returns the authenticated user id and role set by the JWT middleware.
func Caller(c *fiber.Ctx) (string, accounts.Role, error) {
	id, ok := c.Locals(ctxkeys.UserIDKey).(string)
	if !ok || id == "" {
		logger.L().Error("user ID not found in context", "path", c.Path())
		return "", "", httperr.Fail(httperr.ErrUnauthorized)
	}
	role, _ := c.Locals(ctxkeys.UserRoleKey).(accounts.Role)
	return id, role, nil
}

// RequireSelf rejects the request with 403 when an authenticated caller acts
// on a profile other than their own. Unauthenticated requests pass through;
// the route guard decides whether those are allowed.
func RequireSelf(c *fiber.Ctx, targetID, handlerName string) error {
	id, ok := c.Locals(ctxkeys.UserIDKey).(string)
	if !ok || id == "" {
		return nil
	}
	if id != targetID {
		logger.L().Warn("caller acting on another profile", "handler", handlerName, "caller_id", id, "target_id", targetID)
		return httperr.Fail(httperr.ErrForbidden)
	}
	return nil
}
