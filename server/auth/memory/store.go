// Package memory keeps card server accounts in memory.
package memory

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/cyp0633/libvcard/server/auth"
)

// Store is an auth.Authenticator over a fixed set of accounts. Only SHA-256
// digests of the passwords are kept.
type Store struct {
	mu      sync.RWMutex
	digests map[string][sha256.Size]byte
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Logging is disabled by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		digests: make(map[string][sha256.Size]byte),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddUser registers an account. Usernames must be unique and non-empty.
func (s *Store) AddUser(username, password string) error {
	if username == "" {
		return errors.New("username is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.digests[username]; exists {
		s.logger.Warn("duplicate user rejected", "username", username)
		return fmt.Errorf("user already exists: %s", username)
	}
	s.digests[username] = sha256.Sum256([]byte(password))
	s.logger.Debug("user registered", "username", username)
	return nil
}

// Users returns the registered usernames in order.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.digests))
	for name := range s.digests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Authenticate implements auth.Authenticator.
func (s *Store) Authenticate(ctx context.Context, creds auth.Credentials) (*auth.Principal, error) {
	s.mu.RLock()
	want, exists := s.digests[creds.Username]
	s.mu.RUnlock()

	got := sha256.Sum256([]byte(creds.Password))
	match := subtle.ConstantTimeCompare(want[:], got[:]) == 1
	if !exists || !match {
		s.logger.Info("authentication failed", "username", creds.Username)
		return nil, &auth.Error{
			Type:    auth.ErrInvalidCredentials,
			Message: "invalid username or password",
		}
	}

	s.logger.Debug("authentication successful", "username", creds.Username)
	return &auth.Principal{ID: creds.Username}, nil
}
