package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cyp0633/libvcard/contact"
)

// Storage connects the card server with a backend (e.g. a database).
// Implementations must be safe for concurrent use and should return *Error
// with the types below.
type Storage interface {
	// GetContact retrieves a contact by ID.
	GetContact(ctx context.Context, id string) (*Record, error)
	// ListContacts returns every stored contact ordered by ID.
	ListContacts(ctx context.Context) ([]Record, error)
	// PutContact creates or replaces the contact with c.ID and returns its new ETag.
	PutContact(ctx context.Context, c *contact.Contact) (etag string, err error)
	// DeleteContact removes a contact.
	DeleteContact(ctx context.Context, id string) error
}

// Record is a stored contact with its metadata.
type Record struct {
	Contact *contact.Contact
	// ETag changes whenever the contact data changes.
	ETag     string
	Created  time.Time
	Modified time.Time
}

// ErrorType classifies storage errors.
type ErrorType string

const (
	ErrNotFound     ErrorType = "not_found"
	ErrInvalidInput ErrorType = "invalid_input"
	ErrUnavailable  ErrorType = "unavailable"
)

// Error represents a storage-related error
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

// IsType reports whether err is a storage *Error of type t.
func IsType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}
