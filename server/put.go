package server

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/cyp0633/libvcard/contact"
	"github.com/cyp0633/libvcard/server/storage"
)

// readContact decodes a JSON or YAML contact from the request body. Logo and
// photo sources must be http or https URLs.
func (h *Handler) readContact(w http.ResponseWriter, r *http.Request) (*contact.Contact, error) {
	format := contact.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, &HTTPError{Status: http.StatusUnsupportedMediaType, Message: "Unsupported Media Type", Err: err}
		}
		switch mediaType {
		case "application/json":
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = contact.FormatYAML
		default:
			return nil, &HTTPError{Status: http.StatusUnsupportedMediaType, Message: "Unsupported Media Type"}
		}
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "Request Entity Too Large", Err: err}
		}
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Failed to read body", Err: err}
	}

	c, err := contact.Parse(data, format)
	if err != nil {
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	}
	// the server's filesystem is off limits to clients
	if err := c.RemoteMediaOnly(); err != nil {
		return nil, &HTTPError{Status: http.StatusUnprocessableEntity, Message: err.Error(), Err: err}
	}
	return c, nil
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request, rc *RequestContext) {
	rc.Logger.Info("put request received", "id", rc.Resource.ID)

	if rc.Resource.ResourceType != ResourceCard || rc.Resource.View != ViewDownload {
		w.Header().Set("Allow", h.allow(rc.Resource))
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// 1) Load existing contact (or note that it doesn't exist)
	existing, err := h.Storage.GetContact(r.Context(), rc.Resource.ID)
	if storage.IsType(err, storage.ErrNotFound) {
		existing = nil
	} else if err != nil {
		h.writeError(w, rc, err)
		return
	}

	// 2) Validate preconditions
	ifMatch := r.Header.Get("If-Match")
	ifNone := r.Header.Get("If-None-Match")
	if existing != nil {
		if ifMatch != "" && ifMatch != "*" && ifMatch != existing.ETag {
			rc.Logger.Warn("etag mismatch",
				"client_etag", ifMatch,
				"server_etag", existing.ETag)
			http.Error(w, "Precondition Failed", http.StatusPreconditionFailed)
			return
		}
		if ifNone == "*" {
			rc.Logger.Warn("if-none-match=* used but contact exists")
			http.Error(w, "Precondition Failed", http.StatusPreconditionFailed)
			return
		}
	} else if ifMatch != "" {
		rc.Logger.Warn("if-match used on non-existent contact", "etag", ifMatch)
		http.Error(w, "Precondition Failed", http.StatusPreconditionFailed)
		return
	}

	// 3) Read, then validate by building the card
	c, err := h.readContact(w, r)
	if err != nil {
		h.writeError(w, rc, err)
		return
	}
	if c.ID != "" && c.ID != rc.Resource.ID {
		h.writeError(w, rc, &HTTPError{Status: http.StatusBadRequest, Message: "contact id does not match path"})
		return
	}
	c.ID = rc.Resource.ID
	if _, err := c.Build(r.Context(), h.cardOptions(rc)...); err != nil {
		h.writeError(w, rc, err)
		return
	}

	// 4) Persist
	etag, err := h.Storage.PutContact(r.Context(), c)
	if err != nil {
		h.writeError(w, rc, err)
		return
	}

	// 5) Respond
	w.Header().Set("ETag", etag)
	if existing == nil {
		location, err := h.URLConverter.EncodePath(Resource{ID: c.ID, ResourceType: ResourceCard})
		if err == nil {
			w.Header().Set("Location", location)
		}
		rc.Logger.Info("contact created", "id", c.ID, "etag", etag)
		w.WriteHeader(http.StatusCreated)
		return
	}
	rc.Logger.Info("contact updated", "id", c.ID, "etag", etag)
	w.WriteHeader(http.StatusNoContent)
}
