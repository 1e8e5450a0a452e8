package slogx

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Service: "flock", Version: "test", Env: "test", Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { slog.SetDefault(Discard()) })

	logger.Debug("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "flock", line["service"])
	require.Equal(t, "v", line["k"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var seen *slog.Logger
	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(WithPrincipal(r.Context(), "u1", "o1"))
		seen.Info("inside")
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/people", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	reqID := rec.Header().Get("X-Request-ID")
	require.Len(t, reqID, 26) // ulid

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inside, access map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &access))

	require.Equal(t, reqID, inside["req_id"])
	require.Equal(t, "u1", inside["user_id"])
	require.Equal(t, "o1", inside["org_id"])
	require.Equal(t, "http_request", access["msg"])
	require.EqualValues(t, 201, access["status"])
}

func TestFromContextDefault(t *testing.T) {
	require.Equal(t, slog.Default(), FromContext(t.Context()))
}
