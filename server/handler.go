package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cyp0633/libvcard/internal/media"
	"github.com/cyp0633/libvcard/server/auth"
	"github.com/cyp0633/libvcard/server/storage"
	"github.com/cyp0633/libvcard/vcard"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-Id"

	// DefaultMaxBodySize limits contact bodies of PUT and POST requests.
	DefaultMaxBodySize int64 = 1 << 20
)

// RequestContext holds parsed information about the incoming request.
type RequestContext struct {
	Resource  Resource
	RequestID string
	Logger    *slog.Logger
}

// Handler serves stored contact cards under a prefix.
type Handler struct {
	Prefix       string // e.g. "/cards/"
	Storage      storage.Storage
	URLConverter URLConverter
	Logger       *slog.Logger
	// QRSize is the default QR code size in pixels.
	QRSize int

	resolver       vcard.MediaResolver
	builderOptions []vcard.Option
	authenticator  auth.Authenticator
	realm          string
	maxBodySize    int64
	readOnly       bool

	serve http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger. Logging is disabled by default.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.Logger = logger
		}
	}
}

// WithAuthenticator requires Basic authentication for PUT, DELETE and POST.
func WithAuthenticator(a auth.Authenticator, realm string) Option {
	return func(h *Handler) {
		h.authenticator = a
		h.realm = realm
	}
}

// WithReadOnly rejects PUT, DELETE and POST with 403 Forbidden, even for
// authenticated users.
func WithReadOnly() Option {
	return func(h *Handler) {
		h.readOnly = true
	}
}

// WithURLConverter replaces DefaultURLConverter.
func WithURLConverter(c URLConverter) Option {
	return func(h *Handler) {
		if c != nil {
			h.URLConverter = c
		}
	}
}

// WithMediaResolver sets the resolver shared by all cards. By default a
// resolver with a content type cache is created.
func WithMediaResolver(r vcard.MediaResolver) Option {
	return func(h *Handler) {
		if r != nil {
			h.resolver = r
		}
	}
}

// WithBuilderOptions adds options applied to every card builder.
func WithBuilderOptions(opts ...vcard.Option) Option {
	return func(h *Handler) {
		h.builderOptions = append(h.builderOptions, opts...)
	}
}

// WithQRSize sets the default QR code size.
func WithQRSize(size int) Option {
	return func(h *Handler) {
		h.QRSize = size
	}
}

// WithMaxBodySize limits request bodies.
func WithMaxBodySize(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodySize = n
		}
	}
}

// NewHandler creates a Handler serving cards from store under prefix.
func NewHandler(prefix string, store storage.Storage, opts ...Option) *Handler {
	// Ensure prefix starts and ends with a slash for consistent parsing
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}

	h := &Handler{
		Prefix:      prefix,
		Storage:     store,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.URLConverter == nil {
		h.URLConverter = DefaultURLConverter{Prefix: prefix}
	}
	if h.resolver == nil {
		h.resolver = media.NewResolver(media.WithLogger(h.Logger))
	}

	h.serve = http.HandlerFunc(h.route)
	if h.authenticator != nil {
		h.serve = auth.Middleware(h.authenticator, h.realm)(h.serve)
	}
	return h
}

type requestIDKey struct{}

// RequestIDFromContext returns the request ID assigned by the handler.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestID reuses a well-formed incoming ID or creates a new one.
func requestID(r *http.Request) string {
	if id, err := uuid.Parse(r.Header.Get(headerRequestID)); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// ServeHTTP assigns a request ID, then authenticates and routes the request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := requestID(r)
	w.Header().Set(headerRequestID, id)
	h.Logger.Debug("request received",
		"request_id", id,
		"method", r.Method,
		"path", r.URL.Path)

	h.serve.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
}

func (h *Handler) route(w http.ResponseWriter, r *http.Request) {
	id := RequestIDFromContext(r.Context())
	logger := h.Logger.With("request_id", id)

	resource, err := h.URLConverter.ParsePath(r.URL.Path)
	if err != nil {
		logger.Info("invalid path", "path", r.URL.Path, "error", err)
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	rc := &RequestContext{
		Resource:  resource,
		RequestID: id,
		Logger:    logger,
	}
	if p := auth.GetPrincipalFromContext(r.Context()); p != nil {
		rc.Logger = logger.With("user", p.ID)
	}

	if h.readOnly && !auth.IsSafeMethod(r.Method) {
		rc.Logger.Info("write rejected by read-only server", "method", r.Method)
		w.Header().Set("Allow", h.allow(resource))
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if resource.ResourceType == ResourceCollection {
			h.handleList(w, r, rc)
		} else {
			h.handleGet(w, r, rc)
		}
	case http.MethodPut:
		h.handlePut(w, r, rc)
	case http.MethodDelete:
		h.handleDelete(w, r, rc)
	case http.MethodPost:
		h.handlePost(w, r, rc)
	case http.MethodOptions:
		h.handleOptions(w, r, rc)
	default:
		rc.Logger.Info("method not allowed", "method", r.Method)
		w.Header().Set("Allow", h.allow(resource))
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// cardOptions returns the builder options for one request. Cards share the
// handler's media resolver.
func (h *Handler) cardOptions(rc *RequestContext) []vcard.Option {
	opts := []vcard.Option{
		vcard.WithMediaResolver(h.resolver),
		vcard.WithLogger(rc.Logger),
	}
	return append(opts, h.builderOptions...)
}
