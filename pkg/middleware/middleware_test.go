package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

// ==================== CorrelationID ====================

func TestCorrelationID_Generated(t *testing.T) {
	r := newTestRouter(CorrelationID())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = GetCorrelationID(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(CorrelationIDHeader))
	assert.Len(t, seen, 36)
}

func TestCorrelationID_Propagated(t *testing.T) {
	r := newTestRouter(CorrelationID())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, GetCorrelationID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(CorrelationIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(CorrelationIDHeader))
}

func TestGetCorrelationID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetCorrelationID(c))
}

// ==================== Recovery ====================

func TestRecovery(t *testing.T) {
	r := newTestRouter(CorrelationID(), Recovery())
	r.GET("/panic", func(c *gin.Context) {
		panic("renderer exploded")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body["success"].(bool))
}

// ==================== SecurityHeaders ====================

func TestSecurityHeaders(t *testing.T) {
	r := newTestRouter(SecurityHeaders())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

// ==================== Metrics ====================

func TestMetrics(t *testing.T) {
	r := newTestRouter(Metrics("metrics-test"))
	r.POST("/api/v1/invoices", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("metrics-test", "POST", "/api/v1/invoices", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/invoices", nil))
	require.Equal(t, http.StatusOK, w.Code)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("metrics-test", "POST", "/api/v1/invoices", "200"))
	assert.Equal(t, before+1, after)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("metrics-test", "GET", "not_found", "404")))
}

// ==================== RequestLogger / Tracing ====================

func TestRequestLoggerAndTracing_PassThrough(t *testing.T) {
	r := newTestRouter(CorrelationID(), Tracing("test"), RequestLogger("/healthz"))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	for path, want := range map[string]int{"/healthz": http.StatusOK, "/x": http.StatusAccepted} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code)
	}
}
