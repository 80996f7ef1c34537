package notifications

import (
	"context"

	"mentor-match/cmd/server/handlers/handlerutil"
	"mentor-match/internal/services/notifications"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MentorshipService defines the interface for the mentorship workflow
type MentorshipService interface {
	RequestMentorship(ctx context.Context, req notifications.RequestMentorshipRequest) (*notifications.NotificationResponse, error)
	Accept(ctx context.Context, req notifications.ActionRequest) (*notifications.MessageResponse, error)
	Decline(ctx context.Context, req notifications.ActionRequest) (*notifications.MessageResponse, error)
}

// Handlers contains the mentorship HTTP handlers
type Handlers struct {
	service   MentorshipService
	validator *validator.Validate
}

// NewHandlers creates new mentorship handlers
func NewHandlers(service MentorshipService, v *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: v,
	}
}

// RequestMentorship sends a request from a mentee to a mentor
// @Summary Request a mentor
// @Tags mentorship
// @Accept json
// @Produce json
// @Param request body notifications.RequestMentorshipRequest true "Request"
// @Success 201 {object} notifications.NotificationResponse
// @Failure 400 {object} httperr.E
// @Failure 403 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /requestMentorship [post]
func (h *Handlers) RequestMentorship(c *fiber.Ctx) error {
	var req notifications.RequestMentorshipRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "RequestMentorship"); err != nil {
		return err
	}
	if err := handlerutil.RequireSelf(c, req.MenteeID, "RequestMentorship"); err != nil {
		return err
	}

	resp, err := h.service.RequestMentorship(c.UserContext(), req)
	if err != nil {
		return handlerutil.ServiceError(err, "RequestMentorship", "mentee_id", req.MenteeID, "mentor_id", req.MentorID)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Accept accepts a mentorship request
// @Summary Accept a mentorship request
// @Tags mentorship
// @Accept json
// @Produce json
// @Param request body notifications.ActionRequest true "Action"
// @Success 200 {object} notifications.MessageResponse
// @Failure 400 {object} httperr.E
// @Failure 403 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /acceptMentorshipRequest [post]
func (h *Handlers) Accept(c *fiber.Ctx) error {
	return h.act(c, "Accept", h.service.Accept)
}

// Decline declines a mentorship request
// @Summary Decline a mentorship request
// @Tags mentorship
// @Accept json
// @Produce json
// @Param request body notifications.ActionRequest true "Action"
// @Success 200 {object} notifications.MessageResponse
// @Failure 400 {object} httperr.E
// @Failure 403 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /declineMentorshipRequest [post]
func (h *Handlers) Decline(c *fiber.Ctx) error {
	return h.act(c, "Decline", h.service.Decline)
}

func (h *Handlers) act(
	c *fiber.Ctx,
	handlerName string,
	do func(context.Context, notifications.ActionRequest) (*notifications.MessageResponse, error),
) error {
	var req notifications.ActionRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, handlerName); err != nil {
		return err
	}
	if err := handlerutil.RequireSelf(c, req.UserID, handlerName); err != nil {
		return err
	}

	resp, err := do(c.UserContext(), req)
	if err != nil {
		return handlerutil.ServiceError(err, handlerName, "user_id", req.UserID, "notification_id", req.NotificationID)
	}
	return c.JSON(resp)
}
