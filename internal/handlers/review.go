package handlers

import (
	"net/http"

	"github.com/lojf/festival/internal/services"
)

type reviewRequest struct {
	Status string `json:"status"`
	Remark string `json:"remark"`
}

// GET /coordinator/registrations
func (h *Handlers) CoordinatorRegistrations(w http.ResponseWriter, r *http.Request) {
	events, ok := h.requireCoordinator(w, r)
	if !ok {
		return
	}
	listing, err := h.Regs.ListForCoordinator(r.Context(), events)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListing(listing))
}

// POST /coordinator/registrations/{id}/review
//
// Registrations outside the coordinator's events are reported as not found.
func (h *Handlers) DecideReview(w http.ResponseWriter, r *http.Request) {
	events, ok := h.requireCoordinator(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reg, err := h.Regs.GetOffStage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !assigned(events, reg.EventName) {
		writeError(w, r, services.ErrNotFound)
		return
	}

	reg, err = h.Reviews.Decide(r.Context(), id, req.Status, req.Remark)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOffStage(*reg))
}

func assigned(events []string, title string) bool {
	for _, e := range events {
		if services.NormTitle(e) == title {
			return true
		}
	}
	return false
}
