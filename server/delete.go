package server

import (
	"net/http"
)

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, rc *RequestContext) {
	rc.Logger.Info("delete request received", "id", rc.Resource.ID)

	if rc.Resource.ResourceType != ResourceCard || rc.Resource.View != ViewDownload {
		w.Header().Set("Allow", h.allow(rc.Resource))
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// Get the contact to check it exists and to compare its ETag
	existing, err := h.Storage.GetContact(r.Context(), rc.Resource.ID)
	if err != nil {
		h.writeError(w, rc, err)
		return
	}

	ifMatch := r.Header.Get("If-Match")
	if ifMatch != "" && ifMatch != "*" && ifMatch != existing.ETag {
		rc.Logger.Warn("etag mismatch",
			"client_etag", ifMatch,
			"server_etag", existing.ETag)
		http.Error(w, "Precondition Failed", http.StatusPreconditionFailed)
		return
	}

	if err := h.Storage.DeleteContact(r.Context(), rc.Resource.ID); err != nil {
		h.writeError(w, rc, err)
		return
	}

	rc.Logger.Info("contact deleted", "id", rc.Resource.ID)
	w.WriteHeader(http.StatusNoContent)
}
