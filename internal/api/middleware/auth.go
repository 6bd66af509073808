package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/joshbarros/auth-gateway/internal/api/handler"
	"github.com/joshbarros/auth-gateway/internal/api/metrics"
	"github.com/joshbarros/auth-gateway/internal/core/domain"
	"github.com/joshbarros/auth-gateway/internal/core/ports"
)

// Auth validates the bearer session token and injects the resolved identity
// into the request context. Validation goes through the auth service, which
// re-checks role and active status against the credential store on every
// request; the token's claims are never trusted alone.
//
// All failure modes render the same generic 401 so the response does not
// reveal which validation step failed.
func Auth(gate ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			id, err := gate.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				metrics.TokenValidationFailures.WithLabelValues(failureReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			handler.SetIdentity(c, id)
			return next(c)
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenInvalid):
		return "invalid_token"
	case errors.Is(err, domain.ErrUserNotFound):
		return "unknown_user"
	case errors.Is(err, domain.ErrRoleMismatch):
		return "role_mismatch"
	case errors.Is(err, domain.ErrUserInactive):
		return "inactive"
	default:
		return "error"
	}
}
