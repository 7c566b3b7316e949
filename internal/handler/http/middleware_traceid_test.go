package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeWithTraceID(t *testing.T, requestTraceID string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if requestTraceID != "" {
		req.Header.Set(traceIDHeader, requestTraceID)
	}
	rec := httptest.NewRecorder()
	newTestHandler(&service.Services{}).withTraceID(next).ServeHTTP(rec, req)

	return rec, captured
}

func TestWithTraceID_ReusesRequestHeader(t *testing.T) {
	rec, captured := executeWithTraceID(t, "my-custom-trace-id")

	assert.Equal(t, "my-custom-trace-id", rec.Header().Get(traceIDHeader))
	require.NotNil(t, captured)
	traceID, ok := utils.GetTraceIDFromContext(captured.Context())
	require.True(t, ok)
	assert.Equal(t, "my-custom-trace-id", traceID)
}

func TestWithTraceID_GeneratesUUIDv7(t *testing.T) {
	rec, captured := executeWithTraceID(t, "")

	id, err := uuid.Parse(rec.Header().Get(traceIDHeader))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	traceID, ok := utils.GetTraceIDFromContext(captured.Context())
	require.True(t, ok)
	assert.Equal(t, id.String(), traceID)
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	rec1, _ := executeWithTraceID(t, "")
	rec2, _ := executeWithTraceID(t, "")

	assert.NotEqual(t, rec1.Header().Get(traceIDHeader), rec2.Header().Get(traceIDHeader))
}
