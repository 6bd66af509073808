package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joshbarros/auth-gateway/internal/api/handler"
)

// RequireRoles enforces role-based access on routes behind Auth. The check is
// pure set membership over the identity resolved by the gate; admin-only
// routes pass "admin" alone, user routes pass both roles.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := handler.Identity(c)
			if err != nil {
				return err
			}
			if _, ok := allowed[id.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "not enough permissions")
			}
			return next(c)
		}
	}
}
