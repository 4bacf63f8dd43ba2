package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/lojf/festival/internal/services"
)

// GET /admin/pass/{dNo}.png?event=
//
// The code encodes the contestant's attendance lookup URL so a volunteer can
// scan a pass at the venue.
func (h *Handlers) ContestantPass(w http.ResponseWriter, r *http.Request) {
	dNo := services.NormDNo(chi.URLParam(r, "dNo"))
	event := services.NormTitle(r.URL.Query().Get("event"))
	if dNo == "" || event == "" {
		writeFail(w, http.StatusBadRequest, codeBadRequest, "event and dNo are required")
		return
	}

	event, err := h.Att.EventTitle(r.Context(), event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// ensure the contestant is registered for the event
	listing, err := h.Regs.ListByEvent(r.Context(), event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !hasContestant(listing, dNo) {
		writeError(w, r, services.ErrNotFound)
		return
	}

	png, err := qrcode.Encode(h.lookupURL(r, event, dNo), qrcode.Medium, 256)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, string(services.CodeInternal), "failed to generate qr")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handlers) lookupURL(r *http.Request, event, dNo string) string {
	base := strings.TrimRight(h.Config.PublicBaseURL, "/")
	if base == "" {
		base = "http://" + r.Host
	}
	return base + "/admin/attendance/" + url.PathEscape(dNo) + "?event=" + url.QueryEscape(event)
}

func hasContestant(l *services.Listing, dNo string) bool {
	for _, reg := range l.OnStage {
		for _, c := range reg.Contestants {
			if c.DNo == dNo {
				return true
			}
		}
	}
	return false
}
