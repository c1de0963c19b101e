// Package auth signs users in through an external identity provider.
package auth

import (
	"context"
	"errors"
)

// Identity is the signed-in user as reported by the provider.
type Identity struct {
	ID          string
	Login       string
	DisplayName string
	AvatarURL   string
}

// Authenticator performs one sign-in. Implementations do not retry.
type Authenticator interface {
	Authenticate(ctx context.Context) (Identity, error)
}

// Error is a sign-in failure. Message is safe to show to the user as is.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func failf(err error, msg string) *Error {
	return &Error{Message: msg, Err: err}
}

// Signer runs a browser sign-in: the user opens SigninURL and pastes back
// the code it redirects with.
type Signer interface {
	SigninURL(state string) string
	WithCode(code, state string) Authenticator
}

// Message returns the text to show the user for a sign-in error.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Sign-in failed: " + err.Error()
}
