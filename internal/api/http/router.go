package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-tracker/internal/api/http/handlers"
	"github.com/spec-kit/request-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Requests       *handlers.RequestsHandler
	Status         *handlers.StatusHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	requests := api.Group("/requests", cfg.AuthMiddleware.Handle)
	requests.Post("/", cfg.Requests.CreateRequest)
	requests.Get("/", cfg.Requests.ListRequests)
	requests.Get("/:id", cfg.Requests.GetRequest)
	requests.Put("/:id", cfg.Requests.UpdateRequest)
	requests.Delete("/:id", cfg.Requests.DeleteRequest)

	status := api.Group("/status", cfg.AuthMiddleware.Handle)
	status.Post("/track", cfg.Status.TrackStatus)
	status.Get("/history/:requestId", cfg.Status.StatusHistory)
	status.Get("/current/:requestId", cfg.Status.CurrentStatus)
}
