/*
Package server serves contact cards over HTTP.

# Basic Usage

The simplest way to use this package is with the provided in-memory storage:

	store := memory.New()
	h := server.NewHandler("/cards/", store)
	http.Handle("/cards/", h)
	http.ListenAndServe(":8080", nil)

# URL Scheme

DefaultURLConverter uses a fixed URL scheme below the prefix:
  - / - JSON list of stored cards (GET), build without storing (POST)
  - /<id> - the card (GET, PUT, DELETE)
  - /<id>/qr - PNG QR code of the card, ?size=<pixels>
  - /<id>/xcard - the card as xCard XML

GET on a card renders a vCard 3.0 document, or the same card wrapped in a
VCALENDAR for iOS clients older than version 8, which cannot import plain
vCards. The format is chosen from the User-Agent header.

PUT and POST accept a contact as JSON or YAML:

	{"name": {"first": "Jane", "last": "Doe"}, "company": "Acme"}

PUT honours If-Match and If-None-Match: *, and GET answers If-None-Match
with 304 Not Modified. A card is built before it is stored, so a contact
that cannot be rendered is rejected with 422 Unprocessable Entity.

# Authentication

With WithAuthenticator, PUT, DELETE and POST require HTTP Basic
authentication. GET, HEAD and OPTIONS stay public. auth/memory provides a
simple in-memory user store.

# Custom Storage Backend

To keep cards elsewhere, implement storage.Storage:

	type Storage interface {
		GetContact(ctx context.Context, id string) (*Record, error)
		ListContacts(ctx context.Context) ([]Record, error)
		PutContact(ctx context.Context, c *contact.Contact) (etag string, err error)
		DeleteContact(ctx context.Context, id string) error
	}

Return a *storage.Error with Type ErrNotFound for missing cards so the
handler can answer 404.

# Logging

The handler logs through log/slog. Every request gets an X-Request-Id, which
is reused from the request when it is a valid UUID and attached to every log
line of the request:

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	h := server.NewHandler("/cards/", store, server.WithLogger(logger))
*/
package server
