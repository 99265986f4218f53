package server

import (
	"net/http"
)

// handlePost builds a card from the request body and returns it as a
// download without storing anything.
func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request, rc *RequestContext) {
	rc.Logger.Info("post request received")

	if rc.Resource.ResourceType != ResourceCollection {
		w.Header().Set("Allow", h.allow(rc.Resource))
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	c, err := h.readContact(w, r)
	if err != nil {
		h.writeError(w, rc, err)
		return
	}
	b, err := c.Build(r.Context(), h.cardOptions(rc)...)
	if err != nil {
		h.writeError(w, rc, err)
		return
	}

	w.Header().Set("Vary", "User-Agent")
	if err := b.Download(w, r.UserAgent()); err != nil {
		rc.Logger.Warn("failed to write card", "error", err)
	}
}
