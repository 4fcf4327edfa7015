package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(config RateLimiterConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", RateLimiterMiddleware(config), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r http.Handler) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w.Code
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	r := newLimitedRouter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 1})

	require.Equal(t, http.StatusOK, get(r))
	assert.Equal(t, http.StatusTooManyRequests, get(r))
}

func TestRateLimiterInstancesAreIndependent(t *testing.T) {
	exhausted := newLimitedRouter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 1})
	fresh := newLimitedRouter(RateLimiterConfig{RequestsPerSecond: 100, Burst: 100})

	require.Equal(t, http.StatusOK, get(exhausted))
	require.Equal(t, http.StatusTooManyRequests, get(exhausted))

	// The same client IP against another instance starts from its own
	// limiter, not the exhausted one
	assert.Equal(t, http.StatusOK, get(fresh))
}

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	r := newLimitedRouter(RateLimiterConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		CleanupInterval:   time.Nanosecond,
		TTL:               time.Nanosecond,
	})

	require.Equal(t, http.StatusOK, get(r))

	// Once the visitor entry has gone idle past its TTL the sweep drops
	// it, so the next request gets a fresh limiter instead of the
	// exhausted one
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, http.StatusOK, get(r))
}
