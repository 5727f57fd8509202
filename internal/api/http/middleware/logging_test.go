package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sleeptracker-server/internal/logger"
)

func TestLogging_Handle(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	m := NewLogging(log)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/average-screen-time", nil)
	w := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(w, req)

	require.Equal(t, http.StatusTeapot, w.Code)

	entry := buf.String()
	assert.Contains(t, entry, "method=GET")
	assert.Contains(t, entry, "path=/api/analytics/average-screen-time")
	assert.Contains(t, entry, "status=418")
}

func TestLogging_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	m := NewLogging(log)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(w, req)

	assert.Contains(t, buf.String(), "status=200")
}
