package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperr.ErrEmptyOrder, 400},
		{"not found", apperr.ErrOrderNotFound, 404},
		{"admission denied", apperr.New(apperr.KindAdmissionDenied, "ordering is closed"), 403},
		{"conflict", apperr.ErrInsufficientStock, 409},
		{"gone", apperr.ErrPromoExpired, 410},
		{"wrapped still maps", fmt.Errorf("product 1: %w", apperr.ErrInsufficientStock), 409},
		{"unclassified", errors.New("pg: connection refused"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestError_NeverLeaksInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("pg: password authentication failed"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["message"])
}

func TestError_BusinessMessagePassedThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperr.New(apperr.KindAdmissionDenied, "order limit reached"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "order limit reached", body["message"])
}
