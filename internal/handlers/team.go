package handlers

import (
	"errors"
	"net/http"

	"github.com/lojf/festival/internal/services"
)

type offStageRequest struct {
	RegistrationID uint   `json:"registrationId"`
	EventName      string `json:"eventName"`
	TeamName       string `json:"teamName"`
	SongTitle      string `json:"songTitle"`
	Tune           string `json:"tune"`
}

type onStageRequest struct {
	EventName   string           `json:"eventName"`
	TeamName    string           `json:"teamName"`
	Contestants []contestantView `json:"contestants"`
}

// POST /team/offstage
func (h *Handlers) SubmitOffStage(w http.ResponseWriter, r *http.Request) {
	team, ok := h.requireTeam(w, r)
	if !ok {
		return
	}
	var req offStageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reg, err := h.Regs.SubmitOffStage(r.Context(), services.OffStageInput{
		TeamID:         team,
		TeamName:       h.teamName(r, team, req.TeamName),
		EventName:      req.EventName,
		SongTitle:      req.SongTitle,
		Tune:           req.Tune,
		RegistrationID: req.RegistrationID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOffStage(*reg))
}

// POST /team/onstage
func (h *Handlers) SubmitOnStage(w http.ResponseWriter, r *http.Request) {
	team, ok := h.requireTeam(w, r)
	if !ok {
		return
	}
	var req onStageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cs := make([]services.Contestant, len(req.Contestants))
	for i, c := range req.Contestants {
		cs[i] = services.Contestant{ContestantName: c.ContestantName, DNo: c.DNo}
	}
	reg, err := h.Regs.SubmitOnStage(r.Context(), services.OnStageInput{
		TeamID:      team,
		TeamName:    h.teamName(r, team, req.TeamName),
		EventName:   req.EventName,
		Contestants: cs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOnStage(*reg))
}

// GET /team/registrations
func (h *Handlers) TeamRegistrations(w http.ResponseWriter, r *http.Request) {
	team, ok := h.requireTeam(w, r)
	if !ok {
		return
	}
	listing, err := h.Regs.ListByTeam(r.Context(), team)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListing(listing))
}

// teamName prefers the roster name over whatever the client sent.
func (h *Handlers) teamName(r *http.Request, teamID, fallback string) string {
	t, err := h.Catalog.Team(r.Context(), teamID)
	if err == nil {
		return t.TeamName
	}
	if !errors.Is(err, services.ErrNotFound) {
		h.Logger.Warn().Err(err).Str("team_id", teamID).Msg("team lookup failed")
	}
	return fallback
}
