package media

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultUserAgent is sent with media requests that carry no User-Agent.
const DefaultUserAgent = "libvcard/1.0 (+https://github.com/cyp0633/libvcard)"

// LoggingTransport implements http.RoundTripper. It sets a User-Agent on
// outgoing requests and logs every round trip.
type LoggingTransport struct {
	UserAgent string
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// NewLoggingTransport creates a LoggingTransport. If transport is nil,
// http.DefaultTransport will be used.
func NewLoggingTransport(transport http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LoggingTransport{
		UserAgent: DefaultUserAgent,
		Transport: transport,
		Logger:    logger,
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && t.UserAgent != "" {
		// RoundTrippers must not modify the caller's request
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.UserAgent)
	}

	start := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		t.Logger.Debug("media request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err)
		return nil, err
	}

	t.Logger.Debug("media request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"duration", time.Since(start))
	return resp, nil
}
