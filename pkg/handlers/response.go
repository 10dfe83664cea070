package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/classsight/insight-engine/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// writePipelineError maps pipeline sentinel errors to HTTP responses. Raw
// driver and model errors never reach the client; the sentinels carry
// sanitized text only.
func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMissingDistrict):
		_ = ErrorResponse(w, http.StatusBadRequest, "missing_district", "A district id is required")
	case errors.Is(err, apperrors.ErrUnsafeQuery):
		_ = ErrorResponse(w, http.StatusBadRequest, "unsafe_query", "The query was rejected by safety checks")
	case errors.Is(err, apperrors.ErrUnknownView):
		_ = ErrorResponse(w, http.StatusNotFound, "unknown_view", "No such analytics view")
	case errors.Is(err, apperrors.ErrRendererFailure):
		_ = ErrorResponse(w, http.StatusBadGateway, "renderer_failure", "Report generation failed, please retry")
	case errors.Is(err, apperrors.ErrQueryFailed):
		_ = ErrorResponse(w, http.StatusBadGateway, "query_failed", "Analytics data is temporarily unavailable")
	default:
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
