package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joshbarros/auth-gateway/internal/core/domain"
)

func TestClient_ExchangeCredentials_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/token" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("username") != "user" || r.URL.Query().Get("password") != "pass" {
			t.Fatalf("credentials not sent as query params: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"ext-123","token_type":"bearer"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	got, err := client.ExchangeCredentials(context.Background(), "user", "pass")
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if got != "ext-123" {
		t.Fatalf("token = %q, want ext-123", got)
	}
}

func TestClient_ExchangeCredentials_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	if _, err := client.ExchangeCredentials(context.Background(), "user", "pass"); !errors.Is(err, domain.ErrUpstreamRejected) {
		t.Fatalf("expected ErrUpstreamRejected, got %v", err)
	}
}

func TestClient_ExchangeCredentials_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	if _, err := client.ExchangeCredentials(context.Background(), "user", "pass"); !errors.Is(err, domain.ErrUpstreamRejected) {
		t.Fatalf("expected ErrUpstreamRejected, got %v", err)
	}
}

func TestClient_ExchangeCredentials_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
	if _, err := client.ExchangeCredentials(context.Background(), "user", "pass"); !errors.Is(err, domain.ErrUpstreamUnreachable) {
		t.Fatalf("expected ErrUpstreamUnreachable, got %v", err)
	}
}

func TestClient_Get_PassesThroughOpaqueBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer ext-123" {
			t.Fatalf("bearer header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"detail":"whatever the backend says"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	resp, err := client.Get(context.Background(), "/user", "ext-123")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if resp.StatusCode != http.StatusTeapot {
		t.Fatalf("status = %d, want passthrough of %d", resp.StatusCode, http.StatusTeapot)
	}
	if string(resp.Body) != `{"detail":"whatever the backend says"}` {
		t.Fatalf("body not passed through verbatim: %s", resp.Body)
	}
}

func TestClient_Get_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	if _, err := client.Get(context.Background(), "/health", ""); !errors.Is(err, domain.ErrUpstreamUnreachable) {
		t.Fatalf("expected ErrUpstreamUnreachable on timeout, got %v", err)
	}
}
