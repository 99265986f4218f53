package server

import (
	"net/http"
)

// allowedMethods returns the Allow header value for a resource.
func allowedMethods(resource Resource) string {
	switch {
	case resource.ResourceType == ResourceCollection:
		return "OPTIONS, GET, HEAD, POST"
	case resource.ResourceType == ResourceCard && resource.View == ViewDownload:
		return "OPTIONS, GET, HEAD, PUT, DELETE"
	default:
		return "OPTIONS, GET, HEAD"
	}
}

// allow is allowedMethods limited to safe methods on a read-only handler.
func (h *Handler) allow(resource Resource) string {
	if h.readOnly {
		return "OPTIONS, GET, HEAD"
	}
	return allowedMethods(resource)
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request, rc *RequestContext) {
	w.Header().Set("Allow", h.allow(rc.Resource))
	w.WriteHeader(http.StatusOK)
}
