package handlers

import (
	"net/http"
	"strings"
)

const (
	headerTeam              = "X-Festival-Team"
	headerCoordinatorEvents = "X-Festival-Coordinator-Events"
	headerStaff             = "X-Festival-Staff"
	headerClientID          = "X-Client-ID"
)

// Sessions resolves who is calling. Login itself lives outside this service.
type Sessions interface {
	// Team returns the caller's team id, or "" when not signed in as a team.
	Team(r *http.Request) string
	// CoordinatorEvents returns the event titles assigned to the caller.
	CoordinatorEvents(r *http.Request) []string
	// Staff names the volunteer or admin recording attendance.
	Staff(r *http.Request) string
}

// HeaderSessions trusts identity headers set by the upstream auth gateway.
type HeaderSessions struct{}

func NewHeaderSessions() HeaderSessions { return HeaderSessions{} }

func (HeaderSessions) Team(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerTeam))
}

func (HeaderSessions) CoordinatorEvents(r *http.Request) []string {
	var out []string
	for _, t := range strings.Split(r.Header.Get(headerCoordinatorEvents), ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (HeaderSessions) Staff(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerStaff))
}

// clientID keys the in-flight guard: an explicit device id, else the
// caller's address.
func clientID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(headerClientID)); id != "" {
		return id
	}
	return r.RemoteAddr
}

func (h *Handlers) requireTeam(w http.ResponseWriter, r *http.Request) (string, bool) {
	team := h.Sessions.Team(r)
	if team == "" {
		writeFail(w, http.StatusUnauthorized, codeUnauthorized, "team session required")
		return "", false
	}
	return team, true
}

func (h *Handlers) requireCoordinator(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	events := h.Sessions.CoordinatorEvents(r)
	if len(events) == 0 {
		writeFail(w, http.StatusUnauthorized, codeUnauthorized, "coordinator session required")
		return nil, false
	}
	return events, true
}

func (h *Handlers) staff(r *http.Request) string {
	if s := h.Sessions.Staff(r); s != "" {
		return s
	}
	return "admin"
}
