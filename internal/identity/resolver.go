// Package identity derives the caller's user ID from the current bearer
// credential. It reads the token's claims without verifying its signature:
// the result picks which per-user endpoint to address, nothing more. The
// server alone decides whether the token is actually good for anything.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"task-manager/client/internal/session"
)

type ErrorKind string

const (
	KindNoCredential ErrorKind = "no_credential"
	KindMalformed    ErrorKind = "malformed_credential"
	KindMissingClaim ErrorKind = "missing_claim"
)

type Error struct {
	Kind  ErrorKind
	cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("identity resolution failed: %s", e.Kind)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

type Resolver struct {
	store session.Store
}

func NewResolver(store session.Store) *Resolver {
	return &Resolver{store: store}
}

// UserID reads the current credential and returns its user_id claim. Decoding
// happens entirely locally; no network call is ever made.
func (r *Resolver) UserID(ctx context.Context) (int64, error) {
	token, err := r.store.Token(ctx)
	if errors.Is(err, session.ErrNoCredential) {
		return 0, &Error{Kind: KindNoCredential, cause: err}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read session credential: %w", err)
	}
	return UserIDFromToken(token)
}

// UserIDFromToken extracts the user_id claim from a raw bearer token.
// ParseUnverified enforces the three-segment shape and handles the URL-safe
// base64 padding repair for the payload segment.
func UserIDFromToken(token string) (int64, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, &Error{Kind: KindMalformed, cause: err}
	}

	raw, ok := claims["user_id"]
	if !ok {
		return 0, &Error{Kind: KindMissingClaim}
	}

	// JSON numbers decode as float64; reject anything else.
	id, ok := raw.(float64)
	if !ok {
		return 0, &Error{Kind: KindMalformed, cause: fmt.Errorf("user_id claim is %T, want number", raw)}
	}
	return int64(id), nil
}
