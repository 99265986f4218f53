package vcard

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateElement is returned when a single-valued element is set twice.
	ErrDuplicateElement = errors.New("element already exists")
	// ErrInvalidImage is returned when a media resource is not an image, or its type is unknown.
	ErrInvalidImage = errors.New("invalid image")
	// ErrEmptyResource is returned when fetching a media resource yields no bytes.
	ErrEmptyResource = errors.New("empty resource")
	// ErrOutputDirectoryNotFound is returned when the save path is not an existing directory.
	ErrOutputDirectoryNotFound = errors.New("output directory not found")
)

// Error describes a failed builder operation. Kind is one of the sentinel
// errors above, so callers can match with errors.Is.
type Error struct {
	Kind    error
	Element Element // set for field errors
	Path    string  // set for media and save errors
	Err     error   // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Element != ElementUnknown {
		msg = fmt.Sprintf("%s: %s", msg, e.Element)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func duplicateElement(el Element) error {
	return &Error{Kind: ErrDuplicateElement, Element: el}
}

func invalidImage(el Element, ref string, cause error) error {
	return &Error{Kind: ErrInvalidImage, Element: el, Path: ref, Err: cause}
}

func emptyResource(el Element, ref string, cause error) error {
	return &Error{Kind: ErrEmptyResource, Element: el, Path: ref, Err: cause}
}
