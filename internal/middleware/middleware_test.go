package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/charlesng35/catcatalog/pkg/logger"
	"github.com/charlesng35/catcatalog/pkg/metrics"
	"github.com/charlesng35/catcatalog/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestLoggerMiddleware(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	logger.Replace(zap.New(core))
	t.Cleanup(func() { logger.Replace(nil) })

	r := gin.New()
	r.Use(Logger())
	r.GET("/cats/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := serve(r, http.MethodGet, "/cats/3")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())

	serve(r, http.MethodGet, "/boom")

	entries := recorded.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	require.Equal(t, "http", first["module"])
	require.Equal(t, "/cats/3", first["path"])
	require.Equal(t, "/cats/:id", first["route"])
	require.EqualValues(t, http.StatusOK, first["status"])
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)

	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(r, http.MethodGet, "/panic")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var payload response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.False(t, payload.Success)
	require.Equal(t, "INTERNAL_SERVER_ERROR", payload.Error.Code)
}

func TestNotFoundHandler(t *testing.T) {
	r := gin.New()
	r.NoRoute(NotFoundHandler)

	w := serve(r, http.MethodGet, "/missing")

	require.Equal(t, http.StatusNotFound, w.Code)
	var payload response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.False(t, payload.Success)
	require.Equal(t, "NOT_FOUND", payload.Error.Code)
	require.Contains(t, payload.Error.Message, "route /missing not found")
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.PUT("/cats/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	preflight := serve(r, http.MethodOptions, "/cats/1")
	require.Equal(t, http.StatusNoContent, preflight.Code)
	require.Equal(t, "*", preflight.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, preflight.Header().Get("Access-Control-Allow-Methods"), "PUT")
	require.Contains(t, preflight.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	require.Contains(t, preflight.Header().Get("Access-Control-Allow-Headers"), "Content-Type")

	w := serve(r, http.MethodPut, "/cats/1")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/cats", func(c *gin.Context) {
		c.JSON(http.StatusOK, []any{})
	})

	w := serve(r, http.MethodGet, "/cats")
	require.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestMetricsMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/cats", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	serve(r, http.MethodGet, "/cats")
	serve(r, http.MethodGet, "/nowhere")

	require.GreaterOrEqual(t, testutil.CollectAndCount(metrics.APILatency), 2)
}
