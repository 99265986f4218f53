package auth

import (
	"context"
	"fmt"
)

// Principal is an authenticated user
type Principal struct {
	ID string
}

// Credentials are Basic authentication credentials
type Credentials struct {
	Username string
	Password string
}

// ErrorType represents the type of authentication error
type ErrorType string

const (
	ErrInvalidCredentials ErrorType = "invalid_credentials"
	ErrMalformedHeader    ErrorType = "malformed_header"
)

// Error represents an authentication-related error
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Authenticator validates credentials
type Authenticator interface {
	// Authenticate returns the Principal for valid credentials and an error otherwise
	Authenticate(ctx context.Context, creds Credentials) (*Principal, error)
}
