package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadascribe/scribe-backend/pkg/ctxutil"
)

// logLine runs one request through Logger and decodes the JSON line.
func logLine(t *testing.T, h http.Handler, req *http.Request) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger(logger)(h).ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	return line
}

func TestLogger_Fields(t *testing.T) {
	t.Parallel()

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ruach":{}}`))
	})
	req := httptest.NewRequest(http.MethodGet, "/api/word-lookup?words=ruach", nil)
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-1"))

	line := logLine(t, h, req)

	assert.Equal(t, "http.request", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/api/word-lookup", line["path"])
	assert.EqualValues(t, 200, line["status"])
	assert.EqualValues(t, 12, line["bytes"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Contains(t, line, "duration")
	assert.NotContains(t, line, "user_key")
	assert.NotContains(t, line, "route")
}

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   string
	}{
		{http.StatusCreated, "INFO"},
		{http.StatusNotFound, "INFO"},
		{http.StatusUnprocessableEntity, "INFO"},
		{http.StatusUnauthorized, "WARN"},
		{http.StatusTooManyRequests, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
		{http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			line := logLine(t, h, httptest.NewRequest(http.MethodPost, "/api/auth", nil))
			assert.Equal(t, tt.want, line["level"])
			assert.EqualValues(t, tt.status, line["status"])
		})
	}
}

func TestLogger_UserKeyAndRoute(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/words/{id}", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodPut, "/api/words/430", nil)
	req = req.WithContext(ctxutil.WithUserKey(req.Context(), 42))

	line := logLine(t, mux, req)

	assert.EqualValues(t, 42, line["user_key"])
	assert.Equal(t, "PUT /api/words/{id}", line["route"])
	assert.Equal(t, "/api/words/430", line["path"])
}

func TestStatusWriter_FirstHeaderWins(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec, status: http.StatusOK}
	_, _ = sw.Write([]byte("ok"))
	sw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, sw.status)
	assert.Equal(t, 2, sw.bytes)
	assert.Same(t, rec, sw.Unwrap())
}
