package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"financeflow/internal/core"
	"financeflow/internal/identity"
	"financeflow/internal/ledger"
	"financeflow/internal/profile"
	"financeflow/internal/store"
)

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeCondition maps the core's condition taxonomy onto HTTP statuses. The
// attempted change either took effect or it did not; the status says which.
func writeCondition(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, ledger.ErrValidation),
		errors.Is(err, profile.ErrUnknownCurrency),
		errors.Is(err, core.ErrInvalidAmount):
		status, code = http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(err, store.ErrWriteFailed):
		status, code = http.StatusBadGateway, "write_failed"
	case errors.Is(err, store.ErrLoadFailed):
		status, code = http.StatusServiceUnavailable, "load_failed"
	case errors.Is(err, identity.ErrAuthFailed):
		status, code = http.StatusUnauthorized, "auth_failed"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
	}

	if status >= 500 {
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
	}
	writeJSON(w, status, errorResponse{Code: code, Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Error: msg})
}
