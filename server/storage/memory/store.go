// memory based implementation for testing and small deployments
package memory

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cyp0633/libvcard/contact"
	"github.com/cyp0633/libvcard/server/storage"
)

// Store implements storage.Storage using an in-memory map
type Store struct {
	mu       sync.RWMutex
	contacts map[string]*storage.Record
	now      func() time.Time
	logger   *slog.Logger
}

// Option represents a configuration option for the Store
type Option func(*Store)

// WithLogger sets the logger for the store
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a new in-memory storage
func New(opts ...Option) *Store {
	s := &Store{
		contacts: make(map[string]*storage.Record),
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func generateETag(data []byte) string {
	hash := sha1.Sum(data)
	return `"` + hex.EncodeToString(hash[:]) + `"`
}

// clone copies c through JSON so callers can't mutate stored data.
func clone(c *contact.Contact) (*contact.Contact, []byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, nil, err
	}
	var out contact.Contact
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, nil, err
	}
	return &out, data, nil
}

// GetContact implements storage.Storage
func (s *Store) GetContact(_ context.Context, id string) (*storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.contacts[id]
	if !ok {
		return nil, &storage.Error{
			Type:    storage.ErrNotFound,
			Message: "contact not found: " + id,
		}
	}
	out := *rec
	return &out, nil
}

// ListContacts implements storage.Storage
func (s *Store) ListContacts(_ context.Context) ([]storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]storage.Record, 0, len(s.contacts))
	for _, rec := range s.contacts {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Contact.ID < records[j].Contact.ID
	})
	return records, nil
}

// PutContact implements storage.Storage
func (s *Store) PutContact(_ context.Context, c *contact.Contact) (string, error) {
	if c == nil || c.ID == "" {
		return "", &storage.Error{
			Type:    storage.ErrInvalidInput,
			Message: "contact ID is required",
		}
	}
	stored, data, err := clone(c)
	if err != nil {
		return "", &storage.Error{
			Type:    storage.ErrInvalidInput,
			Message: "contact cannot be serialized",
			Err:     err,
		}
	}
	etag := generateETag(data)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.contacts[c.ID]
	if !exists {
		rec = &storage.Record{Created: now}
		s.contacts[c.ID] = rec
	}
	rec.Contact = stored
	rec.ETag = etag
	rec.Modified = now

	s.logger.Debug("contact stored",
		"id", c.ID,
		"etag", etag,
		"created", !exists)
	return etag, nil
}

// DeleteContact implements storage.Storage
func (s *Store) DeleteContact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return &storage.Error{
			Type:    storage.ErrNotFound,
			Message: "contact not found: " + id,
		}
	}
	delete(s.contacts, id)
	s.logger.Debug("contact deleted", "id", id)
	return nil
}
