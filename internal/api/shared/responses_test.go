package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Run("without trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		RespondWithError(w, req, http.StatusNotFound, "Post not found")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
	})

	t.Run("with trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		w := httptest.NewRecorder()

		RespondWithError(w, req, http.StatusUnauthorized, "Unauthorized")

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Unauthorized", body["error"])
		assert.Equal(t, GetTraceID(req.Context()), body["trace_id"])
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "server error logs at error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "client error logs at debug", status: http.StatusConflict, wantLevel: "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := logger.WithLogger(context.Background(), l)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/user/signup", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			cause := errors.New("dial tcp: postgres://admin:hunter2@db:5432/blog refused")
			RespondWithErrorAndLog(w, req, tt.status, "Error while signing up", cause)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"error":"Error while signing up"}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "hunter2")

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "API error response", entry["msg"])
			assert.Equal(t, float64(tt.status), entry["status_code"])
			assert.NotContains(t, entry["error"], "hunter2")
		})
	}
}
