package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expose   bool
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.NewValidationError(domain.FieldError{Field: "limit", Message: "must be at most 100"}), false, http.StatusBadRequest, "validation failed"},
		{"unauthorized", domain.ErrUnauthorized, false, http.StatusUnauthorized, "unauthorized"},
		{"forbidden maps to 401", fmt.Errorf("stats: %w", domain.ErrForbidden), false, http.StatusUnauthorized, "unauthorized"},
		{"credentials", domain.ErrInvalidCredentials, false, http.StatusUnauthorized, "invalid credentials"},
		{"duplicate user", domain.ErrUserExists, false, http.StatusBadRequest, "user already exists"},
		{"order not found", fmt.Errorf("get: %w", domain.ErrOrderNotFound), false, http.StatusNotFound, "order not found"},
		{"report not found", domain.ErrReportNotFound, false, http.StatusNotFound, "sample report not found"},
		{"transition", fmt.Errorf("%w: completed -> failed", domain.ErrInvalidTransition), false, http.StatusBadRequest, "order is no longer pending"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), false, http.StatusMethodNotAllowed, "method not allowed"},
		{"unexpected", errors.New("mongo: connection refused"), false, http.StatusInternalServerError, "internal server error"},
		{"in progress", domain.ErrPaymentInProgress, false, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/orders", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop(), tt.expose)(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.Empty(t, body.Detail)
		})
	}
}

func TestHTTPErrorHandler_ValidationDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/orders?limit=0", nil), rec)

	err := domain.NewValidationError(
		domain.FieldError{Field: "limit", Message: "must be at least 1"},
		domain.FieldError{Field: "status", Message: "must be one of: pending, completed, failed, cancelled, all"},
	)
	NewHTTPErrorHandler(zerolog.Nop(), false)(err, c)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 2)
	assert.Equal(t, "limit", body.Details[0].Field)
	assert.Equal(t, "status", body.Details[1].Field)
}

func TestHTTPErrorHandler_DetailOutsideProduction(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop(), true)(errors.New("aggregate: boom"), c)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", body.Error)
	assert.Equal(t, "aggregate: boom", body.Detail)
}
