package client

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated is returned by a CredentialProvider when no usable credential exists.
var ErrUnauthenticated = errors.New("no credential available")

// CredentialProvider supplies the bearer credential attached to each request.
type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
}

// CredentialFunc adapts a function to CredentialProvider.
type CredentialFunc func(ctx context.Context) (string, error)

func (f CredentialFunc) Credential(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken serves a fixed JWT. It reports ErrUnauthenticated for an empty token or one
// whose exp claim has passed; the signature is left for the server to verify.
type StaticToken struct {
	Token string
	Now   func() time.Time
}

func (s StaticToken) Credential(_ context.Context) (string, error) {
	token := strings.TrimSpace(s.Token)
	if token == "" {
		return "", ErrUnauthenticated
	}
	exp, err := TokenExpiry(token)
	if err != nil {
		// Opaque tokens are passed through untouched.
		return token, nil
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if !exp.IsZero() && !now().Before(exp) {
		return "", ErrUnauthenticated
	}
	return token, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying it. A token without exp yields
// the zero time.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
