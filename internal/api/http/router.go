package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Requests       *handlers.RequestsHandler
	Engineer       *handlers.EngineerHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role gates sit here, at the boundary;
// the services below only check ownership.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/session", cfg.Session.CreateSession)

	requests := app.Group("/requests", cfg.AuthMiddleware.Handle)
	requests.Post("", auth.RequireRole(domain.RoleClient, domain.RoleAdmin), cfg.Requests.Create)
	requests.Get("/mine", auth.RequireRole(domain.RoleClient, domain.RoleAdmin), cfg.Requests.ListMine)
	requests.Post("/:id/cancel", auth.RequireRole(domain.RoleClient, domain.RoleAdmin), cfg.Requests.Cancel)

	requests.Get("/waiting", auth.RequireRole(domain.RoleEngineer, domain.RoleAdmin), cfg.Engineer.ListWaiting)
	requests.Get("/assigned", auth.RequireRole(domain.RoleEngineer, domain.RoleAdmin), cfg.Engineer.ListAssigned)
	requests.Get("/archive", auth.RequireRole(domain.RoleEngineer, domain.RoleAdmin), cfg.Engineer.ListArchive)
	requests.Post("/:id/claim", auth.RequireRole(domain.RoleEngineer, domain.RoleAdmin), cfg.Engineer.Claim)
	requests.Post("/:id/complete", auth.RequireRole(domain.RoleEngineer, domain.RoleAdmin), cfg.Engineer.Complete)

	// registered last so the named routes above keep precedence
	requests.Get("/:id", cfg.Requests.Get)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/requests/active", cfg.Admin.ListActive)
	admin.Get("/requests/archive", cfg.Admin.ListArchive)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Put("/users/:id/role", cfg.Admin.SetRole)
	admin.Get("/settings/assistant", cfg.Admin.GetAssistantSetting)
	admin.Put("/settings/assistant", cfg.Admin.SetAssistantSetting)
}
