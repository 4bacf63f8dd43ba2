package handlers

import (
	"net/http"

	"github.com/lojf/festival/internal/services"
)

type eventRequest struct {
	Title            string `json:"title"`
	StageType        string `json:"stageType"`
	OpenRegistration bool   `json:"openRegistration"`
}

type teamRequest struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Shift    string `json:"shift"`
}

// GET /admin/events
func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	evs, err := h.Catalog.ListEvents(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]eventView, len(evs))
	for i, e := range evs {
		out[i] = toEvent(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

// POST /admin/events
func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ev, err := h.Catalog.CreateEvent(r.Context(), services.EventInput{
		Title: req.Title, StageType: req.StageType, OpenRegistration: req.OpenRegistration,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEvent(*ev))
}

// POST /admin/events/{id}/registration
func (h *Handlers) SetRegistrationOpen(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Open bool `json:"open"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ev, err := h.Catalog.SetRegistrationOpen(r.Context(), id, req.Open)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEvent(*ev))
}

// POST /admin/teams
func (h *Handlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.Catalog.CreateTeam(r.Context(), services.TeamInput{TeamID: req.TeamID, TeamName: req.TeamName, Shift: req.Shift})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, teamView{TeamID: t.TeamID, TeamName: t.TeamName, Shift: t.Shift})
}
