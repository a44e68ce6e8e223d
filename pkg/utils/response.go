package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/logger"
)

// ErrorResponse is the uniform error body: a machine-readable kind, an
// actionable message, and the per-field breakdown for validation reports.
type ErrorResponse struct {
	Error      string                    `json:"error"`
	Kind       string                    `json:"kind"`
	Field      string                    `json:"field,omitempty"`
	Violations []apperror.FieldViolation `json:"violations,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// WriteError maps an app error to its HTTP status and writes the uniform
// error body. Unknown errors become a generic 500 so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		logger.L.Error("unclassified error", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Kind:  string(apperror.KindInternal),
		})
		return
	}

	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		logger.L.Error("request failed", zap.String("kind", string(kind)), zap.Error(err))
	}

	WriteJSON(w, status, ErrorResponse{
		Error:      appErr.Message,
		Kind:       string(kind),
		Field:      appErr.Field,
		Violations: appErr.Violations,
	})
}

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusUnprocessableEntity
	case apperror.KindReference:
		return http.StatusUnprocessableEntity
	case apperror.KindDuplicate, apperror.KindLockedPeriod:
		return http.StatusConflict
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
