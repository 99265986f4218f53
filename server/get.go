package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cyp0633/libvcard/qr"
	"github.com/cyp0633/libvcard/vcard"
	"github.com/cyp0633/libvcard/xcard"
)

// cardSummary is one entry of the collection listing.
type cardSummary struct {
	ID       string    `json:"id"`
	Href     string    `json:"href"`
	ETag     string    `json:"etag"`
	Modified time.Time `json:"modified"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request, rc *RequestContext) {
	records, err := h.Storage.ListContacts(r.Context())
	if err != nil {
		h.writeError(w, rc, err)
		return
	}

	cards := make([]cardSummary, 0, len(records))
	for _, rec := range records {
		href, err := h.URLConverter.EncodePath(Resource{ID: rec.Contact.ID, ResourceType: ResourceCard})
		if err != nil {
			rc.Logger.Warn("skipping contact with unencodable id",
				"id", rec.Contact.ID,
				"error", err)
			continue
		}
		cards = append(cards, cardSummary{
			ID:       rec.Contact.ID,
			Href:     href,
			ETag:     rec.ETag,
			Modified: rec.Modified,
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(cards); err != nil {
		rc.Logger.Warn("failed to write listing", "error", err)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, rc *RequestContext) {
	rc.Logger.Info("get request received",
		"id", rc.Resource.ID,
		"view", rc.Resource.View)

	rec, err := h.Storage.GetContact(r.Context(), rc.Resource.ID)
	if err != nil {
		h.writeError(w, rc, err)
		return
	}

	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == rec.ETag {
		w.Header().Set("ETag", rec.ETag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	b, err := rec.Contact.Build(r.Context(), h.cardOptions(rc)...)
	if err != nil {
		// stored contacts were valid when written, so a failure here is a media source gone bad
		h.writeError(w, rc, &HTTPError{Status: http.StatusBadGateway, Message: "Failed to build card", Err: err})
		return
	}

	w.Header().Set("ETag", rec.ETag)
	switch rc.Resource.View {
	case ViewQR:
		h.writeQR(w, r, rc, b)
	case ViewXCard:
		h.writeXCard(w, rc, b)
	default:
		w.Header().Set("Vary", "User-Agent")
		if err := b.Download(w, r.UserAgent()); err != nil {
			rc.Logger.Warn("failed to write card", "error", err)
			return
		}
		rc.Logger.Info("card downloaded",
			"id", rc.Resource.ID,
			"format", vcard.DetectFormat(r.UserAgent()).String())
	}
}

func (h *Handler) writeQR(w http.ResponseWriter, r *http.Request, rc *RequestContext, b *vcard.Builder) {
	size := h.QRSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			h.writeError(w, rc, &HTTPError{Status: http.StatusBadRequest, Message: "invalid size", Err: err})
			return
		}
		size = n
	}

	png, err := qr.Encode(b.BuildVCard(), size)
	switch {
	case errors.Is(err, qr.ErrInvalidSize):
		h.writeError(w, rc, &HTTPError{Status: http.StatusBadRequest, Message: "invalid size", Err: err})
		return
	case err != nil:
		h.writeError(w, rc, &HTTPError{Status: http.StatusUnprocessableEntity, Message: "card does not fit in a QR code", Err: err})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	if _, err := w.Write(png); err != nil {
		rc.Logger.Warn("failed to write QR code", "error", err)
	}
}

func (h *Handler) writeXCard(w http.ResponseWriter, rc *RequestContext, b *vcard.Builder) {
	data, err := xcard.Marshal(b.Properties())
	if err != nil {
		h.writeError(w, rc, err)
		return
	}

	w.Header().Set("Content-Type", xcard.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+b.Filename()+".xml")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		rc.Logger.Warn("failed to write xCard", "error", err)
	}
}
