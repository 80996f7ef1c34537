// Package ctxkeys names the fiber.Ctx locals shared by middlewares and handlers.
package ctxkeys

const (
	UserIDKey    = "userID"
	UserRoleKey  = "userRole"
	ParentCtxKey = "parentCtx"
)
