package handler

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joshbarros/auth-gateway/internal/api/metrics"
	"github.com/joshbarros/auth-gateway/internal/core/domain"
	"github.com/joshbarros/auth-gateway/internal/core/ports"
)

// ProxyHandler forwards authorized requests to the upstream API, replaying
// the opaque credential embedded in the caller's session token.
type ProxyHandler struct {
	upstream ports.UpstreamClient
}

func NewProxyHandler(upstream ports.UpstreamClient) *ProxyHandler {
	return &ProxyHandler{upstream: upstream}
}

// User handles GET /user — proxies to the upstream /user endpoint.
//
// @Summary      User data, proxied from the upstream API
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /user [get]
func (h *ProxyHandler) User(c echo.Context) error {
	return h.forward(c, "/user")
}

// Admin handles GET /admin — proxies to the upstream /admin endpoint.
//
// @Summary      Admin data, proxied from the upstream API
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin [get]
func (h *ProxyHandler) Admin(c echo.Context) error {
	return h.forward(c, "/admin")
}

// Health handles GET /health — proxies to the upstream /health endpoint
// without authentication.
//
// @Summary      Upstream health, proxied
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]string
// @Router       /health [get]
func (h *ProxyHandler) Health(c echo.Context) error {
	return h.relay(c, "/health", "")
}

// forward proxies an authenticated route using the caller's embedded
// upstream credential.
func (h *ProxyHandler) forward(c echo.Context, path string) error {
	id, err := Identity(c)
	if err != nil {
		return err
	}
	return h.relay(c, path, id.UpstreamToken)
}

// relay performs the upstream GET and passes status and body through
// untouched. Upstream bodies are opaque payloads, not interpreted here.
func (h *ProxyHandler) relay(c echo.Context, path, credential string) error {
	start := time.Now()
	resp, err := h.upstream.Get(c.Request().Context(), path, credential)
	metrics.UpstreamRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(path, upstreamOutcome(err)).Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(path, "ok").Inc()

	contentType := resp.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(resp.StatusCode, contentType, resp.Body)
}

func upstreamOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUpstreamRejected):
		return "rejected"
	case errors.Is(err, domain.ErrUpstreamUnreachable):
		return "unreachable"
	default:
		return "error"
	}
}
