package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/joshbarros/auth-gateway/internal/core/domain"
	"github.com/joshbarros/auth-gateway/internal/core/ports"
)

type stubAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

func (s *stubAuthService) Authenticate(context.Context, string) (*ports.Identity, error) {
	panic("not used in handler tests")
}

type stubLimiter struct {
	allow bool
	err   error
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	return l.allow, l.err
}

func newTokenContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Token_Success(t *testing.T) {
	svc := &stubAuthService{
		token: "signed-session-token",
		user:  &domain.User{Username: "user", Role: domain.RoleUser},
	}
	h := NewAuthHandler(svc, &stubLimiter{allow: true}, zerolog.Nop())

	c, rec := newTokenContext(t, `{"username":"user","password":"L0XuwPOdS5U"}`)
	if err := h.Token(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["access_token"] != "signed-session-token" {
		t.Fatalf("access_token = %q", resp["access_token"])
	}
	if resp["token_type"] != "bearer" {
		t.Fatalf("token_type = %q", resp["token_type"])
	}
	if resp["role"] != domain.RoleUser {
		t.Fatalf("role = %q", resp["role"])
	}
}

func TestAuthHandler_Token_BadCredentials(t *testing.T) {
	svc := &stubAuthService{err: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, &stubLimiter{allow: true}, zerolog.Nop())

	c, _ := newTokenContext(t, `{"username":"user","password":"wrong"}`)
	if err := h.Token(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Token_UpstreamFailurePropagates(t *testing.T) {
	// Valid local credentials with an unreachable upstream must surface the
	// upstream error, never a credential error.
	svc := &stubAuthService{err: domain.ErrUpstreamUnreachable}
	h := NewAuthHandler(svc, &stubLimiter{allow: true}, zerolog.Nop())

	c, _ := newTokenContext(t, `{"username":"user","password":"L0XuwPOdS5U"}`)
	err := h.Token(c)
	if !errors.Is(err, domain.ErrUpstreamUnreachable) {
		t.Fatalf("expected ErrUpstreamUnreachable, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("upstream failure must not look like a credential failure")
	}
}

func TestAuthHandler_Token_RateLimited(t *testing.T) {
	svc := &stubAuthService{token: "tok", user: &domain.User{Role: domain.RoleUser}}
	h := NewAuthHandler(svc, &stubLimiter{allow: false}, zerolog.Nop())

	c, _ := newTokenContext(t, `{"username":"user","password":"pass"}`)
	if err := h.Token(c); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestAuthHandler_Token_LimiterFailsOpen(t *testing.T) {
	svc := &stubAuthService{token: "tok", user: &domain.User{Username: "user", Role: domain.RoleUser}}
	h := NewAuthHandler(svc, &stubLimiter{err: errors.New("redis down")}, zerolog.Nop())

	c, rec := newTokenContext(t, `{"username":"user","password":"pass"}`)
	if err := h.Token(c); err != nil {
		t.Fatalf("limiter outage must not block logins: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Token_MissingFields(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, &stubLimiter{allow: true}, zerolog.Nop())

	for _, body := range []string{`{}`, `{"username":"user"}`, `{"password":"pass"}`} {
		c, _ := newTokenContext(t, body)
		err := h.Token(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}
