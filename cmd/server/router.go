package main

import (
	"context"
	"fmt"
	"time"

	"mentor-match/cmd/server/handlers"
	authHandlers "mentor-match/cmd/server/handlers/auth"
	"mentor-match/cmd/server/handlers/httperr"
	notifHandlers "mentor-match/cmd/server/handlers/notifications"
	usersHandlers "mentor-match/cmd/server/handlers/users"
	"mentor-match/cmd/server/middlewares"
	"mentor-match/internal/clients/media"
	"mentor-match/internal/clients/mongo"
	"mentor-match/internal/config"
	"mentor-match/internal/logger"
	"mentor-match/internal/services/accounts"
	authServices "mentor-match/internal/services/auth"
	notifServices "mentor-match/internal/services/notifications"
	"mentor-match/internal/utils/identifier"

	_ "mentor-match/docs" // Load swagger docs

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

const (
	RateLimitExpiration = 1 * time.Minute

	// multipart framing on top of the photo itself
	registerFormOverhead = 1 << 20
)

// authService is what the router needs from the auth service.
type authService interface {
	authHandlers.AuthService
	notifHandlers.TokenParser
}

// notificationHub is what the router needs from the notification hub.
type notificationHub interface {
	notifHandlers.Hub
	middlewares.HubStats
}

// appServices are the dependencies buildApp wires into routes.
type appServices struct {
	auth       authService
	directory  usersHandlers.DirectoryService
	mentorship notifHandlers.MentorshipService
	hub        notificationHub
}

// setupRouter builds repositories and services on top of the initialised
// Mongo client and returns a Fiber app with all routes.
func setupRouter(ctx context.Context, cfg config.Config) (*fiber.App, error) {
	log := logger.L()

	mentorsRepo, err := mongo.NewAccountsRepo(ctx, mongo.DB(), accounts.RoleMentor)
	if err != nil {
		return nil, fmt.Errorf("mentors repository: %w", err)
	}
	menteesRepo, err := mongo.NewAccountsRepo(ctx, mongo.DB(), accounts.RoleMentee)
	if err != nil {
		return nil, fmt.Errorf("mentees repository: %w", err)
	}
	resolver := accounts.NewResolver(mentorsRepo, menteesRepo)

	photos, err := media.New(cfg, log)
	if err != nil {
		return nil, err
	}

	hub := notifServices.NewHub(cfg.WSOutboxBuffer)

	svc := appServices{
		auth:       authServices.NewService(resolver, photos, cfg, log),
		directory:  accounts.NewService(resolver, cfg.BcryptCost, log),
		mentorship: notifServices.NewService(resolver, hub, log),
		hub:        hub,
	}
	return buildApp(cfg, svc)
}

// buildApp registers middlewares and routes for the given services.
func buildApp(cfg config.Config, svc appServices) (*fiber.App, error) {
	v := validator.New()
	if err := identifier.RegisterValidators(v); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
		BodyLimit:    cfg.MaxUploadMB<<20 + registerFormOverhead,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app, svc.hub)
	}

	// Health and docs stay out of the request log
	app.Get("/healthz", handlers.Healthz)
	app.Get("/docs/*", swagger.HandlerDefault)

	if cfg.MediaProvider == config.MediaProviderLocal {
		app.Static(media.PublicPrefix, cfg.UploadDir, fiber.Static{Browse: false})
	}

	// WebSocket route is registered before the request logger, which would
	// otherwise log the hijacked connection as a 101 with no body.
	wsH := notifHandlers.NewWebSocketHandlers(svc.hub, svc.auth, cfg.WSMaxSessionSec)
	app.Use("/ws", notifHandlers.LogWSConnections(svc.auth))
	app.Get("/ws/notifications", wsH.WSUpgrade, websocket.New(wsH.WSNotificationsStream))

	if cfg.RequestLoggingEnabled {
		app.Use(fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		logger.L().Info("request logging disabled")
	}

	jwtMiddleware := middlewares.JWT(cfg)
	guard := middlewares.Guard(cfg)
	loginLimiter := middlewares.LoginLimiter(cfg.LoginRatePerMin, RateLimitExpiration)

	// Auth
	authH := authHandlers.NewHandlers(svc.auth, v)
	app.Post("/register", authH.Register)
	app.Post("/login", loginLimiter, authH.Login)
	app.Get("/me", jwtMiddleware, handlers.Me)

	// Directory
	usersH := usersHandlers.NewHandlers(svc.directory, v)
	app.Get("/allmentors", usersH.AllMentors)
	app.Get("/allmentees", usersH.AllMentees)
	app.Get("/mentor", usersH.SearchMentors)
	app.Get("/mentee", usersH.SearchMentees)
	app.Post("/syncdata", usersH.Sync)
	app.Put("/user/:id", guard, usersH.Update)
	app.Delete("/user/:id", guard, usersH.Delete)

	// Mentorship
	notifH := notifHandlers.NewHandlers(svc.mentorship, v)
	app.Post("/requestMentorship", guard, notifH.RequestMentorship)
	app.Post("/acceptMentorshipRequest", guard, notifH.Accept)
	app.Post("/declineMentorshipRequest", guard, notifH.Decline)

	return app, nil
}
