package users

import (
	"context"

	"mentor-match/cmd/server/handlers/handlerutil"
	"mentor-match/cmd/server/handlers/httperr"
	"mentor-match/internal/logger"
	"mentor-match/internal/services/accounts"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DirectoryService defines the interface for the profile directory
type DirectoryService interface {
	List(ctx context.Context, role accounts.Role) ([]*accounts.Account, error)
	Search(ctx context.Context, role accounts.Role, q accounts.SearchQuery) ([]*accounts.Account, error)
	SyncByEmail(ctx context.Context, email string) (*accounts.UserResponse, error)
	Update(ctx context.Context, id string, patch accounts.Patch) (*accounts.Account, error)
	Delete(ctx context.Context, id string) (*accounts.MessageResponse, error)
}

// Handlers contains the directory HTTP handlers
type Handlers struct {
	directory DirectoryService
	validator *validator.Validate
}

// NewHandlers creates new directory handlers
func NewHandlers(directory DirectoryService, v *validator.Validate) *Handlers {
	return &Handlers{
		directory: directory,
		validator: v,
	}
}

// AllMentors lists every mentor
// @Summary List all mentors
// @Tags directory
// @Produce json
// @Success 200 {array} accounts.Mentor
// @Failure 500 {object} httperr.E
// @Router /allmentors [get]
func (h *Handlers) AllMentors(c *fiber.Ctx) error {
	return h.list(c, accounts.RoleMentor, "AllMentors")
}

// AllMentees lists every mentee
// @Summary List all mentees
// @Tags directory
// @Produce json
// @Success 200 {array} accounts.Mentee
// @Failure 500 {object} httperr.E
// @Router /allmentees [get]
func (h *Handlers) AllMentees(c *fiber.Ctx) error {
	return h.list(c, accounts.RoleMentee, "AllMentees")
}

// SearchMentors filters mentors
// @Summary Search mentors
// @Tags directory
// @Produce json
// @Param id query string false "Exact id"
// @Param skill query string false "Skill substring"
// @Param name query string false "Name substring"
// @Param email query string false "Exact email"
// @Success 200 {array} accounts.Mentor
// @Failure 500 {object} httperr.E
// @Router /mentor [get]
func (h *Handlers) SearchMentors(c *fiber.Ctx) error {
	return h.search(c, accounts.RoleMentor, "SearchMentors")
}

// SearchMentees filters mentees
// @Summary Search mentees
// @Tags directory
// @Produce json
// @Param id query string false "Exact id"
// @Param skill query string false "Skill substring"
// @Param name query string false "Name substring"
// @Param email query string false "Exact email"
// @Success 200 {array} accounts.Mentee
// @Failure 500 {object} httperr.E
// @Router /mentee [get]
func (h *Handlers) SearchMentees(c *fiber.Ctx) error {
	return h.search(c, accounts.RoleMentee, "SearchMentees")
}

func (h *Handlers) list(c *fiber.Ctx, role accounts.Role, handlerName string) error {
	res, err := h.directory.List(c.UserContext(), role)
	if err != nil {
		return handlerutil.ServiceError(err, handlerName)
	}
	return c.JSON(res)
}

func (h *Handlers) search(c *fiber.Ctx, role accounts.Role, handlerName string) error {
	var q accounts.SearchQuery
	if err := handlerutil.ParseQuery(c, &q, handlerName); err != nil {
		return err
	}

	res, err := h.directory.Search(c.UserContext(), role, q)
	if err != nil {
		return handlerutil.ServiceError(err, handlerName)
	}
	return c.JSON(res)
}

// Update applies a partial update to a mentor or mentee
// @Summary Update a profile
// @Description Identity and relationship fields are ignored. A password is re-hashed.
// @Tags directory
// @Accept json
// @Produce json
// @Param id path string true "Profile id"
// @Param request body map[string]any true "Partial update"
// @Success 200 {object} accounts.Mentor
// @Failure 400 {object} httperr.E
// @Failure 403 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /user/{id} [put]
func (h *Handlers) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := handlerutil.RequireSelf(c, id, "Update"); err != nil {
		return err
	}

	var patch accounts.Patch
	if err := c.BodyParser(&patch); err != nil {
		logger.L().Warn("failed to parse update body", "handler", "Update", "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	acc, err := h.directory.Update(c.UserContext(), id, patch)
	if err != nil {
		return handlerutil.ServiceError(err, "Update", "id", id)
	}
	return c.JSON(acc)
}

// Delete removes a mentor or mentee
// @Summary Delete a profile
// @Tags directory
// @Produce json
// @Param id path string true "Profile id"
// @Success 200 {object} accounts.MessageResponse
// @Failure 403 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /user/{id} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := handlerutil.RequireSelf(c, id, "Delete"); err != nil {
		return err
	}

	resp, err := h.directory.Delete(c.UserContext(), id)
	if err != nil {
		return handlerutil.ServiceError(err, "Delete", "id", id)
	}
	return c.JSON(resp)
}

// Sync returns the current state of the profile holding an email
// @Summary Sync profile by email
// @Tags directory
// @Accept json
// @Produce json
// @Param request body accounts.SyncRequest true "Email to sync"
// @Success 200 {object} accounts.UserResponse
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /syncdata [post]
func (h *Handlers) Sync(c *fiber.Ctx) error {
	var req accounts.SyncRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Sync"); err != nil {
		return err
	}

	resp, err := h.directory.SyncByEmail(c.UserContext(), req.Email)
	if err != nil {
		return handlerutil.ServiceError(err, "Sync")
	}
	return c.JSON(resp)
}
