package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/peoplehub/hr-service/internal/api/http/handlers"
	"github.com/peoplehub/hr-service/internal/auth"
	"github.com/peoplehub/hr-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Mutating employee routes are admin-only;
// reads require any authenticated caller.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/recover-password", cfg.Auth.RecoverPassword)
	authGroup.Post("/change-password", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.ChangePassword)

	employees := api.Group("/employees", cfg.AuthMiddleware.Handle)
	employees.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Employees.Create)
	employees.Get("/", auth.RequireAuthenticated(), cfg.Employees.List)
	employees.Get("/:id", auth.RequireAuthenticated(), cfg.Employees.Get)
	employees.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Employees.Update)
	employees.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Employees.Delete)

	dashboard := api.Group("/dashboard", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	dashboard.Get("/metrics", cfg.Dashboard.Metrics)
}
