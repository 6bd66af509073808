package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joshbarros/auth-gateway/internal/core/ports"
)

// identityKey is the Echo context key under which the Auth middleware stores
// the resolved identity.
const identityKey = "identity"

// SetIdentity stores the authenticated identity on the request context.
func SetIdentity(c echo.Context, id *ports.Identity) {
	c.Set(identityKey, id)
}

// Identity extracts the identity injected by the Auth middleware. Its
// presence proves the middleware ran; a protected handler reached without it
// is a wiring bug and is rejected rather than served unauthenticated.
func Identity(c echo.Context) (*ports.Identity, error) {
	id, _ := c.Get(identityKey).(*ports.Identity)
	if id == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
