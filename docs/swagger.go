// Package docs MentorMatch API
//
// @title  MentorMatch API
// @version 1.0.0
// @description Mentor and mentee registration, directory search and mentorship requests with live notifications.
// @host      localhost:5001
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package docs

import (
	_ "mentor-match/cmd/server/handlers/httperr"
	_ "mentor-match/internal/services/accounts"
	_ "mentor-match/internal/services/auth"
	_ "mentor-match/internal/services/notifications"
)
