package handlers

import (
	"net/http"
	"time"

	"github.com/lojf/festival/internal/export"
	"github.com/lojf/festival/internal/services"
)

// exportFilter reads the query and resolves the event to its catalog title.
func (h *Handlers) exportFilter(w http.ResponseWriter, r *http.Request) (services.ExportFilter, bool) {
	f := services.ExportFilter{EventName: r.URL.Query().Get("event"), Status: r.URL.Query().Get("status")}
	if f.EventName == "" {
		writeFail(w, http.StatusBadRequest, codeBadRequest, "event is required")
		return f, false
	}
	title, err := h.Att.EventTitle(r.Context(), f.EventName)
	if err != nil {
		writeError(w, r, err)
		return f, false
	}
	f.EventName = title
	return f, true
}

// GET /admin/export/attendance.csv?event=&status=
func (h *Handlers) ExportAttendanceCSV(w http.ResponseWriter, r *http.Request) {
	f, ok := h.exportFilter(w, r)
	if !ok {
		return
	}
	rows, err := h.Exports.Rows(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(f.EventName, time.Now()))
	if err := export.WriteCSV(w, rows); err != nil {
		h.Logger.Warn().Err(err).Str("event", f.EventName).Msg("csv export interrupted")
	}
}

// POST /admin/export/attendance/sheets?event=
func (h *Handlers) ExportAttendanceSheets(w http.ResponseWriter, r *http.Request) {
	if h.Sheets == nil {
		writeFail(w, http.StatusServiceUnavailable, codeUnavailable, "google sheets export is not configured")
		return
	}
	f, ok := h.exportFilter(w, r)
	if !ok {
		return
	}
	rows, err := h.Exports.Rows(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := h.Sheets.Push(r.Context(), f.EventName, rows, time.Now())
	if err != nil {
		h.Logger.Error().Err(err).Str("event", f.EventName).Msg("sheets export failed")
		writeFail(w, http.StatusBadGateway, codeUnavailable, "google sheets export failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": n, "spreadsheetId": h.Sheets.SpreadsheetID()})
}
