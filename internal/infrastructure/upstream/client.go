// Package upstream implements the HTTP client for the remote backend API.
// The backend's tokens and response bodies are opaque to the gateway: it
// stores and replays them, it never interprets them.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joshbarros/auth-gateway/internal/core/domain"
	"github.com/joshbarros/auth-gateway/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching the backend API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the backend over HTTP. Every call is bounded by the
// configured timeout; an unbounded wait is not possible.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ExchangeCredentials trades local credentials for an opaque backend token.
// The backend's token endpoint takes the credentials as query parameters.
func (c *Client) ExchangeCredentials(ctx context.Context, username, password string) (string, error) {
	q := url.Values{}
	q.Set("username", username)
	q.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return "", fmt.Errorf("%w: token endpoint returned no access_token", domain.ErrUpstreamRejected)
	}
	return tr.AccessToken, nil
}

// Get forwards a GET to the backend with the opaque credential as a bearer
// header. Non-network responses pass through untouched, whatever their
// status; only transport failures surface as errors.
func (c *Client) Get(ctx context.Context, path, credential string) (*ports.UpstreamResponse, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}

	return &ports.UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
