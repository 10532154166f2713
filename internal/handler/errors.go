package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/service"
)

// ErrorResponse is the JSON error envelope for all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError maps a service error onto the right status and envelope.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "not_found", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidTrip):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	case errors.Is(err, service.ErrAnalysisUnavailable):
		respondJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: ErrorDetail{Code: "analysis_unavailable", Message: "AI analysis is not configured"},
		})
	default:
		slog.Error("internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// respondBadRequest rejects a request before it reaches the service layer
// (malformed body, invalid UUID).
func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: message},
	})
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: name is
// required" → "name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrInvalidTrip.Error() + ": ",
	} {
		if i := strings.LastIndex(msg, sentinel); i >= 0 {
			return msg[i+len(sentinel):]
		}
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
