package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kusina/canteen-api/internal/core/domain"
)

// RBAC enforces role-based access control. The role is recomputed on every
// request from the authenticated email and the configured admin email, never
// read from the token, so an admin change takes effect without reissuing
// tokens.
func RBAC(adminEmail string, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)
			role := domain.ResolveRole(email, adminEmail)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
