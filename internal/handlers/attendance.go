package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/lojf/festival/internal/guard"
	"github.com/lojf/festival/internal/services"
)

type markRequest struct {
	EventName          string `json:"eventName"`
	LotNumber          string `json:"lotNumber"`
	DNo                string `json:"dNo"`
	Status             string `json:"status"`
	MalpracticeDetails string `json:"malpracticeDetails"`
}

type teamMarkRequest struct {
	EventName string `json:"eventName"`
	LotNumber string `json:"lotNumber"`
	Marks     []struct {
		DNo                string `json:"dNo"`
		Status             string `json:"status"`
		MalpracticeDetails string `json:"malpracticeDetails"`
	} `json:"marks"`
}

type markResultView struct {
	DNo    string          `json:"dNo"`
	OK     bool            `json:"ok"`
	Record *attendanceView `json:"record,omitempty"`
	Error  *errorDetail    `json:"error,omitempty"`
}

// hold takes the in-flight slot for one contestant. A guard failure lets
// the mark through; the ledger upsert is safe to repeat.
func (h *Handlers) hold(r *http.Request, eventName, dNo string) (release func(), ok bool) {
	key := guard.Key(clientID(r), services.NormTitle(eventName), services.NormDNo(dNo))
	got, err := h.Guard.Acquire(r.Context(), key)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("key", key).Msg("in-flight guard unavailable")
		return func() {}, true
	}
	if !got {
		return nil, false
	}
	return func() {
		if err := h.Guard.Release(r.Context(), key); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("key", key).Msg("in-flight release failed")
		}
	}, true
}

// POST /admin/attendance
func (h *Handlers) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	release, ok := h.hold(r, req.EventName, req.DNo)
	if !ok {
		writeJSON(w, http.StatusConflict, errorBody{Error: errorDetail{
			Code: codeInFlight, Message: "a mark for this contestant is already in flight", Record: services.NormDNo(req.DNo),
		}})
		return
	}
	defer release()

	rec, err := h.Att.Mark(r.Context(), services.MarkInput{
		EventName:          req.EventName,
		LotNumber:          req.LotNumber,
		DNo:                req.DNo,
		Status:             req.Status,
		MalpracticeDetails: req.MalpracticeDetails,
		MarkedBy:           h.staff(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendance(*rec))
}

// POST /admin/attendance/team
//
// Every contestant gets its own result. Any failure turns the response into
// 207 so the client retries only the failed rows.
func (h *Handlers) MarkTeamAttendance(w http.ResponseWriter, r *http.Request) {
	var req teamMarkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out := make([]markResultView, len(req.Marks))
	in := services.TeamMarkInput{EventName: req.EventName, LotNumber: req.LotNumber, MarkedBy: h.staff(r)}
	var slots []int
	for i, m := range req.Marks {
		release, ok := h.hold(r, req.EventName, m.DNo)
		if !ok {
			out[i] = markResultView{DNo: services.NormDNo(m.DNo), Error: &errorDetail{
				Code: codeInFlight, Message: "a mark for this contestant is already in flight", Record: services.NormDNo(m.DNo),
			}}
			continue
		}
		defer release()
		slots = append(slots, i)
		in.Marks = append(in.Marks, services.ContestantMark{DNo: m.DNo, Status: m.Status, MalpracticeDetails: m.MalpracticeDetails})
	}

	failed := len(req.Marks) - len(slots)
	for j, res := range h.Att.MarkTeam(r.Context(), in) {
		v := markResultView{DNo: res.DNo}
		if res.Err != nil {
			d := detailOf(r, res.Err)
			v.Error = &d
			failed++
		} else {
			rec := toAttendance(*res.Record)
			v.OK, v.Record = true, &rec
		}
		out[slots[j]] = v
	}

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, map[string]any{"results": out, "failed": failed})
}

// GET /admin/attendance?event=
func (h *Handlers) QueryAttendance(w http.ResponseWriter, r *http.Request) {
	event := r.URL.Query().Get("event")
	if event == "" {
		writeFail(w, http.StatusBadRequest, codeBadRequest, "event is required")
		return
	}
	title, err := h.Att.EventTitle(r.Context(), event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sheet, err := h.Att.Query(r.Context(), title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	marks := make(map[string]markView, len(sheet))
	for dNo, m := range sheet {
		marks[dNo] = markView{Status: m.Status, MalpracticeDetails: m.MalpracticeDetails}
	}
	writeJSON(w, http.StatusOK, map[string]any{"eventName": title, "marks": marks})
}

// GET /admin/attendance/{dNo}?event=
//
// Target of the contestant pass QR. Contestants without a mark read UNMARKED.
func (h *Handlers) ContestantAttendance(w http.ResponseWriter, r *http.Request) {
	event := r.URL.Query().Get("event")
	dNo := chi.URLParam(r, "dNo")
	if event == "" || dNo == "" {
		writeFail(w, http.StatusBadRequest, codeBadRequest, "event and dNo are required")
		return
	}
	title, err := h.Att.EventTitle(r.Context(), event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sheet, err := h.Att.Query(r.Context(), title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m := sheet.Lookup(dNo)
	writeJSON(w, http.StatusOK, map[string]any{
		"eventName":          title,
		"dNo":                services.NormDNo(dNo),
		"status":             m.Status,
		"malpracticeDetails": m.MalpracticeDetails,
	})
}
