package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/slot-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/slot-booking-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Slots          *handlers.SlotsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Both slot routes sit behind the auth
// gate; booking additionally requires a student principal.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/signup", cfg.Auth.Signup)
	app.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/slots", cfg.Slots.List)
	protected.Post("/slots/book", auth.RequireStudent(), cfg.Slots.Book)
}
