package auth

import (
	"context"
	"errors"
	"mime/multipart"

	"mentor-match/cmd/server/handlers/handlerutil"
	"mentor-match/cmd/server/handlers/httperr"
	"mentor-match/internal/logger"
	"mentor-match/internal/services/accounts"
	"mentor-match/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PhotoField is the multipart field carrying the profile photo.
const PhotoField = "photo"

// AuthService defines the interface for auth service
type AuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest, photo *auth.Photo) (*auth.AuthResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error)
}

// Handlers contains the auth HTTP handlers
type Handlers struct {
	authService AuthService
	validator   *validator.Validate
}

// NewHandlers creates new auth handlers. v must carry the identifier tags.
func NewHandlers(authService AuthService, v *validator.Validate) *Handlers {
	return &Handlers{authService: authService, validator: v}
}

// Register handles mentor and mentee registration
// @Summary Register a mentor or mentee
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param type formData string true "mentor or mentee"
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param mobile formData string true "10 digit mobile number"
// @Param password formData string true "Password"
// @Param skills formData string true "Skills"
// @Param experience formData string false "Experience (mentors)"
// @Param availability formData string false "Availability (mentors)"
// @Param photo formData file true "JPEG, PNG or GIF photo"
// @Success 201 {object} auth.AuthResponse
// @Failure 400 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /register [post]
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.L().Warn("failed to parse register form", "handler", "Register", "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	var photo *auth.Photo
	if fh, err := c.FormFile(PhotoField); err == nil {
		f, err := fh.Open()
		if err != nil {
			logger.L().Error("failed to open uploaded photo", "handler", "Register", "error", err)
			return httperr.Fail(httperr.ErrInternal)
		}
		defer func(f multipart.File) { _ = f.Close() }(f)

		photo = &auth.Photo{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Reader:      f,
		}
	}

	resp, err := h.authService.Register(c.UserContext(), req, photo)
	if err != nil {
		return handlerutil.ServiceError(err, "Register", "email", req.Email)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles authentication by email or mobile number
// @Summary Log in with email or mobile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Login request"
// @Success 200 {object} auth.AuthResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 429 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /login [post]
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.L().Warn("failed to parse login request body", "handler", "Login", "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Field() == "Identifier" {
			return handlerutil.ServiceError(accounts.ErrInvalidIdentifierFormat, "Login")
		}
		return httperr.InvalidInput(err)
	}

	resp, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return handlerutil.ServiceError(err, "Login")
	}

	return c.JSON(resp)
}
