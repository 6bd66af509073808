package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/joshbarros/auth-gateway/internal/api/metrics"
	"github.com/joshbarros/auth-gateway/internal/core/domain"
	"github.com/joshbarros/auth-gateway/internal/core/ports"
)

// LoginLimiter throttles login attempts. A nil limiter disables throttling.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
}

// AuthHandler handles session token issuance.
type AuthHandler struct {
	authService ports.AuthService
	limiter     LoginLimiter
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, limiter LoginLimiter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter, log: log}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// Token handles POST /token — verifies local credentials, exchanges them for
// an upstream credential, and returns a composite signed session token.
//
// @Summary      Issue a session token
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	if h.limiter != nil {
		ok, err := h.limiter.Allow(ctx, req.Username)
		if err != nil {
			// Fail open: login availability must not depend on Redis.
			h.log.Warn().Err(err).Msg("login rate limiter unavailable")
		} else if !ok {
			metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
			return domain.ErrRateLimited
		}
	}

	signed, user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		Role:        user.Role,
	})
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return "inactive"
	case errors.Is(err, domain.ErrUpstreamRejected), errors.Is(err, domain.ErrUpstreamUnreachable):
		return "upstream_error"
	default:
		return "error"
	}
}
