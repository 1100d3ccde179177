package security

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrMissingToken     = errors.New("authorization token is not provided")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrIdentityMismatch = errors.New("declared identity does not match token")
)

// Identity is the verified subject behind a bearer token.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// IdentityVerifier validates a bearer credential and yields the verified subject.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>" header value.
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}

// RequireIdentity checks that the identity a caller declared is exactly the verified one.
func RequireIdentity(id *Identity, declaredEmail string) error {
	if id == nil || id.Email == "" || id.Email != declaredEmail {
		return ErrIdentityMismatch
	}
	return nil
}
