package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharpfade/booking-api/internal/config"
)

func rateLimitedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(cfg))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doPing(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BurstExhaustionYields429(t *testing.T) {
	r := rateLimitedRouter(&config.Config{RateLimitRPS: 1, RateLimitBurst: 2})

	require.Equal(t, http.StatusOK, doPing(r, "10.0.0.1:4000").Code)
	require.Equal(t, http.StatusOK, doPing(r, "10.0.0.1:4000").Code)

	w := doPing(r, "10.0.0.1:4000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limited")
}

func TestRateLimit_IsolatesClients(t *testing.T) {
	r := rateLimitedRouter(&config.Config{RateLimitRPS: 1, RateLimitBurst: 1})

	require.Equal(t, http.StatusOK, doPing(r, "10.0.0.1:4000").Code)
	require.Equal(t, http.StatusTooManyRequests, doPing(r, "10.0.0.1:4000").Code)

	// A different client keeps its own bucket.
	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.2:4000").Code)
}
