package domain

import "errors"

// Credential and account errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserInactive       = errors.New("user is inactive")
)

// Authorization Gate errors.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrRoleMismatch = errors.New("token role does not match stored role")
	ErrForbidden    = errors.New("access forbidden")
	ErrRateLimited  = errors.New("too many login attempts")
)

// Upstream errors. Rejected means the upstream answered with a non-success
// status; Unreachable covers transport failures and timeouts.
var (
	ErrUpstreamRejected    = errors.New("upstream rejected request")
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
)
