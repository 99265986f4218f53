package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cyp0633/libvcard/contact"
	"github.com/cyp0633/libvcard/server/storage"
	"github.com/cyp0633/libvcard/vcard"
)

// HTTPError is an error with the status code it should be reported as.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// statusFor maps an error to a status code and a message safe to show clients.
func statusFor(err error) (int, string) {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status, httpErr.Message
	case storage.IsType(err, storage.ErrNotFound):
		return http.StatusNotFound, "Not Found"
	case storage.IsType(err, storage.ErrInvalidInput):
		return http.StatusBadRequest, "Bad Request"
	case errors.Is(err, contact.ErrNoName),
		errors.Is(err, vcard.ErrDuplicateElement),
		errors.Is(err, vcard.ErrInvalidImage),
		errors.Is(err, vcard.ErrEmptyResource):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func (h *Handler) writeError(w http.ResponseWriter, rc *RequestContext, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		rc.Logger.Error("request failed",
			"status", status,
			"error", err)
	} else {
		rc.Logger.Info("request rejected",
			"status", status,
			"error", err)
	}
	http.Error(w, message, status)
}
