package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wasdash/internal/tracing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestObservabilityPassesThrough(t *testing.T) {
	var sawRequestID string
	handler := Observability(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawRequestID = tracing.GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/parse", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
	assert.NotEmpty(t, sawRequestID)
}

func TestObservabilityDefaultStatus(t *testing.T) {
	handler := Observability(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResponseWrapperFirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapper := &responseWrapper{ResponseWriter: rec, statusCode: http.StatusOK}

	wrapper.WriteHeader(http.StatusNotFound)
	wrapper.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNotFound, wrapper.statusCode)
}

func TestResponseWrapperWriteMarksHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapper := &responseWrapper{ResponseWriter: rec, statusCode: http.StatusOK}

	_, err := wrapper.Write([]byte("body"))
	require.NoError(t, err)
	assert.True(t, wrapper.wroteHeader)
	assert.Equal(t, http.StatusOK, wrapper.statusCode)
}
