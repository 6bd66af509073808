package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestClaims() Claims {
	return Claims{
		Role:          "user",
		UpstreamToken: "opaque-upstream-token",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "alice",
		},
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret")

	raw, err := codec.Encode(newTestClaims(), time.Hour)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Subject != "alice" {
		t.Fatalf("subject = %q, want alice", got.Subject)
	}
	if got.Role != "user" {
		t.Fatalf("role = %q, want user", got.Role)
	}
	if got.UpstreamToken != "opaque-upstream-token" {
		t.Fatalf("upstream token = %q", got.UpstreamToken)
	}
	if got.ExpiresAt == nil || got.IssuedAt == nil {
		t.Fatalf("timestamps not stamped: %+v", got)
	}
}

func TestCodec_ZeroTTLExpiresImmediately(t *testing.T) {
	codec := NewCodec("secret")

	raw, err := codec.Encode(newTestClaims(), 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := codec.Decode(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := NewCodec("secret")

	raw, err := codec.Encode(newTestClaims(), time.Hour)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Flip one byte inside the signature segment.
	i := strings.LastIndex(raw, ".") + 1
	b := []byte(raw)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	if _, err := codec.Decode(string(b)); !errors.Is(err, ErrSignature) {
		t.Fatalf("expected ErrSignature, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	raw, err := NewCodec("secret-a").Encode(newTestClaims(), time.Hour)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := NewCodec("secret-b").Decode(raw); !errors.Is(err, ErrSignature) {
		t.Fatalf("expected ErrSignature, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec("secret")

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := codec.Decode(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Decode(%q): expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestCodec_RejectsUnsignedAlg(t *testing.T) {
	codec := NewCodec("secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, newTestClaims())
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := codec.Decode(raw); !errors.Is(err, ErrSignature) {
		t.Fatalf("expected ErrSignature, got %v", err)
	}
}
