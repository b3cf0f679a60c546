package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(includeStack bool) *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), includeStack)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return decoded
}

func TestHandleError_APIError(t *testing.T) {
	h := newTestHandler(false)

	req := httptest.NewRequest(http.MethodGet, "/api/pages/bogus", nil)
	rec := httptest.NewRecorder()
	h.HandleError(rec, req, ErrPageNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	decoded := decodeProblem(t, rec)
	assert.Equal(t, TypePageNotFound, decoded["type"])
	assert.Equal(t, "PAGE_NOT_FOUND", decoded["error_code"])
	assert.Equal(t, "/api/pages/bogus", decoded["instance"])
}

func TestHandleError_NilIsNoop(t *testing.T) {
	h := newTestHandler(false)
	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Empty(t, rec.Body.String())
}

func TestErrorToProblem_Timeout(t *testing.T) {
	h := newTestHandler(false)
	req := httptest.NewRequest(http.MethodGet, "/api/pages/trends", nil)

	problem := h.ErrorToProblem(context.DeadlineExceeded, req)
	assert.Equal(t, http.StatusGatewayTimeout, problem.Status)
	assert.Equal(t, TypeTimeout, problem.Type)
}

func TestErrorToProblem_CodeMapping(t *testing.T) {
	h := newTestHandler(false)
	req := httptest.NewRequest(http.MethodGet, "/api/export/forecasts", nil)

	tests := []struct {
		err      *APIError
		wantType string
	}{
		{ErrValidationFailed, TypeValidation},
		{ErrInvalidParameter, TypeValidation},
		{ErrNotFound, TypeNotFound},
		{ErrPageNotFound, TypePageNotFound},
		{ErrIndicatorNotFound, TypeIndicatorNotFound},
		{ErrForecastsMissing, TypeForecastsMissing},
		{ErrRateLimitExceeded, TypeRateLimit},
		{ErrInternalServer, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.ErrorCode, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, req)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, tt.err.StatusCode, problem.Status)
		})
	}
}

func TestErrorToProblem_GenericFallbacks(t *testing.T) {
	h := newTestHandler(false)
	req := httptest.NewRequest(http.MethodGet, "/api/meta/indicators", nil)

	notFound := h.ErrorToProblem(fmt.Errorf("dataset not found"), req)
	assert.Equal(t, http.StatusNotFound, notFound.Status)

	internal := h.ErrorToProblem(fmt.Errorf("something exploded"), req)
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, TypeInternal, internal.Type)
}

func TestHandlePanic(t *testing.T) {
	h := newTestHandler(true)

	req := httptest.NewRequest(http.MethodGet, "/api/pages/overview", nil)
	rec := httptest.NewRecorder()
	h.HandlePanic(rec, req, "unexpected nil")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	decoded := decodeProblem(t, rec)
	assert.Equal(t, "unexpected nil", decoded["panic"])
	assert.NotEmpty(t, decoded["stack"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler(false)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/pages/overview", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	decoded := decodeProblem(t, rec)
	assert.Contains(t, decoded["detail"], "DELETE")
}
