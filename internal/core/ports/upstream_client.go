package ports

import "context"

// UpstreamResponse is an opaque payload relayed from the backend. The gateway
// never interprets upstream bodies; it forwards status and bytes as-is.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// UpstreamClient talks to the remote backend API.
type UpstreamClient interface {
	// ExchangeCredentials trades local credentials for an opaque upstream
	// token via the backend's token endpoint.
	ExchangeCredentials(ctx context.Context, username, password string) (string, error)

	// Get forwards a GET to the backend using the given opaque credential
	// as a bearer token.
	Get(ctx context.Context, path, credential string) (*UpstreamResponse, error)
}
