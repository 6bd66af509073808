// Package token implements the session token codec: a signed, self-contained
// JWT carrying the local identity claims plus the opaque upstream credential.
// Embedding the upstream credential in the signed payload keeps the gateway
// stateless; any instance can validate a token without shared session storage.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode failure kinds. Every Decode error is exactly one of these.
var (
	ErrMalformed = errors.New("token malformed")
	ErrSignature = errors.New("token signature invalid")
	ErrExpired   = errors.New("token expired")
)

// Claims is the payload of a session token. Subject carries the username;
// UpstreamToken carries the opaque credential obtained from the backend at
// login, replayed verbatim on proxied calls and never inspected locally.
type Claims struct {
	Role          string `json:"role"`
	UpstreamToken string `json:"ext_token"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a symmetric HS256 secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode stamps issued-at and expiry onto claims and signs them. Pure apart
// from the clock: no state is recorded anywhere.
func (c *Codec) Encode(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the signature, checks expiry and deserializes the claims.
// Failures map onto ErrMalformed, ErrSignature or ErrExpired.
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrSignature
	}
	return claims, nil
}
