package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-backend/internal/apperror"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperror.Validation("phone", "bad phone"), http.StatusUnprocessableEntity},
		{"reference", apperror.Reference("role", "Wizard"), http.StatusUnprocessableEntity},
		{"duplicate", apperror.Duplicate("username", "x"), http.StatusConflict},
		{"locked period", apperror.LockedPeriod("January", 2026), http.StatusConflict},
		{"not found", apperror.NotFound("employee", 7), http.StatusNotFound},
		{"unauthorized", apperror.Unauthorized("no"), http.StatusUnauthorized},
		{"transaction", apperror.Transaction("insert", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteErrorCarriesViolations(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperror.ValidationReport([]apperror.FieldViolation{
		{Field: "phone", Reason: "bad phone"},
		{Field: "email", Reason: "bad email"},
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation", body.Kind)
	require.Len(t, body.Violations, 2)
	assert.Equal(t, "phone", body.Violations[0].Field)
}

func TestWriteErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("pq: secret table detail"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), "secret")
}
