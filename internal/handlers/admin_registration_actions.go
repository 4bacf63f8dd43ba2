package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type duplicateGroupView struct {
	Signature string `json:"signature"`
	IDs       []uint `json:"ids"`
}

// GET /admin/registrations?event=
func (h *Handlers) AdminRegistrations(w http.ResponseWriter, r *http.Request) {
	event := r.URL.Query().Get("event")
	if event == "" {
		writeFail(w, http.StatusBadRequest, codeBadRequest, "event is required")
		return
	}
	listing, err := h.Regs.ListByEvent(r.Context(), event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListing(listing))
}

// GET /admin/teams/{teamID}/duplicates
func (h *Handlers) TeamDuplicates(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Dups.ListDuplicates(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]duplicateGroupView, len(groups))
	for i, g := range groups {
		out[i] = duplicateGroupView{Signature: g.Signature, IDs: g.IDs}
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": out})
}

// GET /admin/registrations/onstage/{id}/deletable
func (h *Handlers) OnStageDeletable(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	deletable, err := h.Dups.IsDeletable(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "deletable": deletable})
}

// POST /admin/registrations/onstage/{id}/delete
func (h *Handlers) OnStageDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Dups.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
