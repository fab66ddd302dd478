package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers. Catalogue reads are cheap, so they get a generous
// budget; reservation and profile writes hit the document store and the
// notification pipeline, so their budget is tighter.
const (
	readRequestsPerMinute  = 120
	writeRequestsPerMinute = 30

	// Clients idle longer than this have their bucket evicted so the
	// per-IP map stays bounded.
	limiterIdleTTL = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter tracks one token bucket per client IP.
type RateLimiter struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	rate    rate.Limit
	burst   int
}

func NewRateLimiter(perMinute int) *RateLimiter {
	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
	}
	go rl.evictLoop()
	return rl
}

// Allow consumes one token for the given client IP, creating its bucket
// on first sight.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

func (rl *RateLimiter) evictLoop() {
	for {
		time.Sleep(limiterIdleTTL)
		rl.pruneStale(time.Now().Add(-limiterIdleTTL))
	}
}

func (rl *RateLimiter) pruneStale(cutoff time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, client := range rl.clients {
		if client.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// Middleware rejects requests over the client's budget with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ReadRateLimit limits public catalogue traffic per client IP.
func ReadRateLimit() gin.HandlerFunc {
	return NewRateLimiter(readRequestsPerMinute).Middleware()
}

// WriteRateLimit limits reservation and profile writes per client IP.
func WriteRateLimit() gin.HandlerFunc {
	return NewRateLimiter(writeRequestsPerMinute).Middleware()
}
