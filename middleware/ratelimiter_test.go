package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(60)

	for i := 0; i < 30; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should be within burst", i)
	}
}

func TestRateLimiter_RejectsOverBudget(t *testing.T) {
	rl := NewRateLimiter(2)

	assert.True(t, rl.Allow("10.0.0.2"))
	assert.False(t, rl.Allow("10.0.0.2"), "second immediate request exceeds burst of 1")
}

func TestRateLimiter_BucketsArePerClient(t *testing.T) {
	rl := NewRateLimiter(2)

	assert.True(t, rl.Allow("10.0.0.3"))
	assert.True(t, rl.Allow("10.0.0.4"), "a second client has its own bucket")
}

func TestRateLimiter_PrunesIdleClients(t *testing.T) {
	rl := NewRateLimiter(60)

	rl.Allow("10.0.0.5")
	rl.Allow("10.0.0.6")

	rl.mu.Lock()
	rl.clients["10.0.0.5"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.pruneStale(time.Now().Add(-limiterIdleTTL))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "10.0.0.5")
	assert.Contains(t, rl.clients, "10.0.0.6")
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	rl := NewRateLimiter(2)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
