package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/leadclick/internal/config"
	"github.com/nexconsult/leadclick/internal/services"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Log.FilePath = filepath.Join(t.TempDir(), "activity.log")
	cfg.Server.Environment = "test"
	if mutate != nil {
		mutate(cfg)
	}

	log, _ := test.NewNullLogger()
	container, err := services.NewContainer(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	srv := NewServer(cfg, log, container)
	t.Cleanup(srv.Close)
	return srv, cfg.Log.FilePath
}

func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	return w
}

func TestServerHealth(t *testing.T) {
	srv, logPath := newTestServer(t, nil)

	w := do(srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(data, []byte(" - Health check requested\n")), string(data))
}

func TestServerClickMissingURL(t *testing.T) {
	srv, logPath := newTestServer(t, nil)

	w := do(srv, http.MethodPost, "/click", `{"name":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing URL"}`, w.Body.String())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Missing URL in request")
	assert.NotContains(t, string(data), "Visiting URL")
}

func TestServerNotFoundAndMethod(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := do(srv, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"path":"/nope"`)

	w = do(srv, http.MethodGet, "/click", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), `"method":"GET"`)
}

func TestServerMetrics(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := do(srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "leadclick_pipeline_sessions_active 0")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestServerRateLimitedClick(t *testing.T) {
	srv, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Security.RateLimit.RequestsPerMinute = 1
		cfg.Security.RateLimit.BurstSize = 1
	})

	assert.Equal(t, http.StatusBadRequest, do(srv, http.MethodPost, "/click", `{}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(srv, http.MethodPost, "/click", `{}`).Code)

	// health is never limited
	assert.Equal(t, http.StatusOK, do(srv, http.MethodGet, "/health", "").Code)
}
