package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// RequireSupervisor ensures a supervisor is authenticated.
func RequireSupervisor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleSupervisor || principal.Supervisor == nil {
			return fiber.NewError(http.StatusForbidden, "supervisor required")
		}
		return c.Next()
	}
}

// RequireEmployee ensures an employee is authenticated.
func RequireEmployee() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleEmployee || principal.Employee == nil {
			return fiber.NewError(http.StatusForbidden, "employee required")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated (supervisor or employee).
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
