package handlers

import (
	"mentor-match/cmd/server/handlers/handlerutil"

	"github.com/gofiber/fiber/v2"
)

// Me returns the identity carried by the access token.
// @Summary Get current user
// @Description Returns the id and role from the access token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 401 {object} httperr.E
// @Router /me [get]
func Me(c *fiber.Ctx) error {
	id, role, err := handlerutil.Caller(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":   id,
		"role": role,
	})
}
