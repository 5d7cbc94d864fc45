package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"overcooked-floor/floor-svc/internal/domain"
)

var categoryStatus = map[domain.Category]int{
	domain.CategoryNotFound:      http.StatusNotFound,
	domain.CategoryPrecondition:  http.StatusConflict,
	domain.CategoryAuthorization: http.StatusForbidden,
	domain.CategoryConsistency:   http.StatusUnprocessableEntity,
	domain.CategoryBusinessRule:  http.StatusConflict,
	domain.CategoryValidation:    http.StatusBadRequest,
}

// StatusFor maps a failure category onto an HTTP status code.
func StatusFor(c domain.Category) int {
	if status, ok := categoryStatus[c]; ok {
		return status
	}
	return http.StatusConflict
}

type errorBody struct {
	Reason  domain.Reason  `json:"reason"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError renders business failures with their reason and hides infrastructure errors
// behind a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if f, ok := domain.AsFailure(err); ok {
		writeJSON(w, StatusFor(f.Category()), errorBody{Reason: f.Reason, Message: f.Message, Details: f.Details})
		return
	}
	h.Logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, errorBody{Reason: "internal_error", Message: "internal error"})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Reason: domain.ReasonInvalidInput, Message: message})
}
