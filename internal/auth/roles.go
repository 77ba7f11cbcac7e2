package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/peoplehub/hr-service/internal/domain"
	apperrors "github.com/peoplehub/hr-service/pkg/util"
)

// RequireRole gates a route to callers whose role matches the requirement.
// A missing identity means the auth middleware did not run (or was bypassed)
// and is treated as unauthenticated, not forbidden.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if identity.Role != required {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a caller identity is bound to the request.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		return c.Next()
	}
}
