package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/lojf/festival/internal/middleware"
	"github.com/lojf/festival/internal/services"
)

// Codes produced by the HTTP layer itself.
const (
	codeUnauthorized = "unauthorized"
	codeBadRequest   = "bad_request"
	codeInFlight     = "in_flight"
	codeUnavailable  = "unavailable"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Record  string `json:"record,omitempty"`
	Field   string `json:"field,omitempty"`
	// RequestID is set on internal errors so the failure can be found in the logs.
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFail(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func statusOf(code services.Code) int {
	switch code {
	case services.CodeValidation:
		return http.StatusUnprocessableEntity
	case services.CodeNotOpen, services.CodeNotDuplicate:
		return http.StatusConflict
	case services.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError maps a service error to its status. Internal errors are logged
// and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, statusOf(services.CodeOf(err)), errorBody{Error: detailOf(r, err)})
}

func detailOf(r *http.Request, err error) errorDetail {
	var e *services.Error
	if !errors.As(err, &e) || e.Code == services.CodeInternal {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		return errorDetail{
			Code:      string(services.CodeInternal),
			Message:   "internal error",
			RequestID: middleware.GetRequestID(r.Context()),
		}
	}
	return errorDetail{
		Code:    string(e.Code),
		Message: e.Message,
		Record:  e.Metadata["record"],
		Field:   e.Metadata["field"],
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFail(w, http.StatusBadRequest, codeBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		writeFail(w, http.StatusBadRequest, codeBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
