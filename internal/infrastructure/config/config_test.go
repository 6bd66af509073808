package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.TokenTTL() != 30*time.Minute {
		t.Fatalf("token ttl = %v", cfg.TokenTTL())
	}
	if cfg.UpstreamTimeout <= 0 {
		t.Fatalf("upstream timeout must have a default, got %v", cfg.UpstreamTimeout)
	}
	if cfg.JWTSecret == "" {
		t.Fatalf("jwt secret must have a development default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOKEN_TTL_MINUTES", "5")
	t.Setenv("UPSTREAM_BASE_URL", "http://localhost:9999")
	t.Setenv("JWT_SECRET", "prod-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TokenTTL() != 5*time.Minute {
		t.Fatalf("token ttl = %v", cfg.TokenTTL())
	}
	if cfg.UpstreamBaseURL != "http://localhost:9999" {
		t.Fatalf("upstream base url = %q", cfg.UpstreamBaseURL)
	}
	if cfg.JWTSecret != "prod-secret" {
		t.Fatalf("jwt secret = %q", cfg.JWTSecret)
	}
}
