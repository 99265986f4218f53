// Package media resolves content types and bytes of logo and photo
// references: remote URLs over HTTP, local files and in-memory buffers.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultTimeout bounds every remote request made with the default client.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxSize is the largest remote resource that will be downloaded.
	DefaultMaxSize int64 = 10 << 20
)

// ErrTooLarge is returned when a remote resource exceeds the size limit.
var ErrTooLarge = errors.New("resource exceeds size limit")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// Resolver looks up content types and downloads media. It is safe for
// concurrent use.
type Resolver struct {
	client  *http.Client
	cache   *Cache
	maxSize int64
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets the client for remote requests. Nil keeps the default.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithLogger sets the logger for the resolver.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCache shares a content type cache. Nil disables caching.
func WithCache(cache *Cache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithMaxSize limits the size of downloaded resources.
func WithMaxSize(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxSize = n
		}
	}
}

// NewResolver creates a Resolver. By default it uses a client with
// DefaultTimeout and a private cache.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		cache:   NewCache(DefaultCacheConfig),
		maxSize: DefaultMaxSize,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: NewLoggingTransport(nil, r.logger),
		}
	}
	return r
}

// RemoteContentType issues a HEAD request and returns the last Content-Type
// header value.
func (r *Resolver) RemoteContentType(ctx context.Context, url string) (string, error) {
	if r.cache != nil {
		if ct, ok := r.cache.Get(url); ok {
			r.logger.Debug("content type cache hit", "url", url, "content_type", ct)
			return ct, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %q: %w", url, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HEAD %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	var contentType string
	if values := resp.Header.Values("Content-Type"); len(values) > 0 {
		contentType = values[len(values)-1]
	}
	if contentType != "" && r.cache != nil {
		r.cache.Set(url, contentType)
	}
	return contentType, nil
}

// FetchRemote downloads url, refusing bodies larger than the size limit.
func (r *Resolver) FetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", url, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	if int64(len(data)) > r.maxSize {
		return nil, fmt.Errorf("%s: %w", url, ErrTooLarge)
	}
	r.logger.Debug("media downloaded", "url", url, "size", len(data))
	return data, nil
}

// LocalContentType sniffs the content type of a local file.
func (r *Resolver) LocalContentType(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type of %s: %w", path, err)
	}
	return mtype.String(), nil
}

// ReadLocal reads a local file.
func (r *Resolver) ReadLocal(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DetectContent sniffs the content type of a buffer.
func (r *Resolver) DetectContent(content []byte) (string, error) {
	return mimetype.Detect(content).String(), nil
}
