package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/middleware"
)

// serveLogged runs one request through SlogLogger and returns the decoded log line.
func serveLogged(t *testing.T, next http.HandlerFunc, req *http.Request) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	h := middleware.NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))(next)

	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSlogLogger_requestFields(t *testing.T) {
	created := `{"name":"Rome"}`
	req := httptest.NewRequest(http.MethodPost, "/trips?on_conflict=rename", nil)
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "host/abc-000001"))

	entry := serveLogged(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(created))
	}, req)

	require.Equal(t, "request", entry["msg"])
	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "POST", entry["method"])
	require.Equal(t, "/trips", entry["path"])
	require.Equal(t, "on_conflict=rename", entry["query"])
	require.EqualValues(t, http.StatusCreated, entry["status"])
	require.EqualValues(t, len(created), entry["bytes"])
	require.Equal(t, "host/abc-000001", entry["request_id"])
	require.Contains(t, entry, "duration_ms")
}

// A handler that never calls WriteHeader has implicitly answered 200.
func TestSlogLogger_implicitOK(t *testing.T) {
	entry := serveLogged(t, func(http.ResponseWriter, *http.Request) {},
		httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.EqualValues(t, http.StatusOK, entry["status"])
	require.EqualValues(t, 0, entry["bytes"])
}

func TestSlogLogger_levelFollowsStatus(t *testing.T) {
	for status, want := range map[int]string{
		http.StatusNoContent:           "INFO",
		http.StatusConflict:            "WARN",
		http.StatusUnprocessableEntity: "WARN",
		http.StatusInternalServerError: "ERROR",
	} {
		entry := serveLogged(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}, httptest.NewRequest(http.MethodDelete, "/trips/Rome", nil))

		require.Equal(t, want, entry["level"], "status %d", status)
	}
}
