package vcard

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cyp0633/libvcard/internal/media"
	"github.com/samber/mo"
)

// DefaultCharset is annotated on text properties unless changed with SetCharset.
const DefaultCharset = "utf-8"

// Property is one output line before escaping and folding.
type Property struct {
	// Key is the directive name plus parameters, e.g. "TEL;WORK" or "ADR;HOME;CHARSET=utf-8".
	Key string
	// Value is the raw field content.
	Value string
}

// Builder accumulates contact fields and renders them as a vCard or as the
// calendar wrapper understood by old iOS versions. A Builder is not safe for
// concurrent use.
type Builder struct {
	properties []Property
	defined    map[Element]bool

	filename mo.Option[string]
	savePath mo.Option[string]
	charset  string

	resolver   MediaResolver
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithMediaResolver replaces the collaborator used by the logo and photo operations.
func WithMediaResolver(r MediaResolver) Option {
	return func(b *Builder) {
		if r != nil {
			b.resolver = r
		}
	}
}

// WithHTTPClient makes the default media resolver use client for remote resources.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Builder) {
		b.httpClient = client
	}
}

// WithClock sets the time source used for REV and the wrapper's event times.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithCharset sets the charset annotated on text properties.
func WithCharset(charset string) Option {
	return func(b *Builder) {
		b.charset = charset
	}
}

// WithLogger sets the logger. Logging is disabled by default.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		defined: make(map[Element]bool),
		charset: DefaultCharset,
		now:     time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.resolver == nil {
		b.resolver = media.NewResolver(media.WithHTTPClient(b.httpClient), media.WithLogger(b.logger))
	}
	return b
}

// Properties returns a copy of the accumulated properties in insertion order.
func (b *Builder) Properties() []Property {
	props := make([]Property, len(b.properties))
	copy(props, b.properties)
	return props
}

// HasProperty reports whether a property with exactly this key and a non-empty value exists.
func (b *Builder) HasProperty(key string) bool {
	for _, p := range b.properties {
		if p.Key == key && p.Value != "" {
			return true
		}
	}
	return false
}

// Defined reports whether at least one property was added for el.
func (b *Builder) Defined(el Element) bool {
	return b.defined[el]
}

// Charset returns the charset annotated on text properties.
func (b *Builder) Charset() string {
	return b.charset
}

// SetCharset changes the charset for properties added afterwards and for the
// Content-Type header.
func (b *Builder) SetCharset(charset string) {
	b.charset = charset
}

func (b *Builder) charsetSuffix() string {
	return ";CHARSET=" + b.charset
}

// checkElement enforces the uniqueness invariant without mutating anything.
func (b *Builder) checkElement(el Element) error {
	if !el.Multiple() && b.defined[el] {
		return duplicateElement(el)
	}
	return nil
}

// setProperty marks el as defined and appends the property.
func (b *Builder) setProperty(el Element, key, value string) error {
	if err := b.checkElement(el); err != nil {
		b.logger.Debug("rejected duplicate element", "element", el.String(), "key", key)
		return err
	}
	b.defined[el] = true
	b.properties = append(b.properties, Property{Key: key, Value: value})
	b.logger.Debug("property added", "element", el.String(), "key", key)
	return nil
}
