package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleEvictAfter is how long a client may stay quiet before its limiter is
// dropped; it also paces how often the registry sweeps.
const idleEvictAfter = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientRegistry holds one token bucket per client IP. Idle limiters are
// evicted in-line while serving requests, so the registry owns no background
// goroutine and needs no shutdown path.
type clientRegistry struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	swept   time.Time
}

func newClientRegistry(now time.Time) *clientRegistry {
	return &clientRegistry{
		clients: make(map[string]*clientLimiter),
		swept:   now,
	}
}

func (r *clientRegistry) allow(ip string, rps float64, burst int, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.swept) > idleEvictAfter {
		r.sweepLocked(now)
	}

	client, ok := r.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
		r.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.Allow()
}

func (r *clientRegistry) sweepLocked(now time.Time) {
	for ip, client := range r.clients {
		if now.Sub(client.lastSeen) > idleEvictAfter {
			delete(r.clients, ip)
		}
	}
	r.swept = now
}

// RateLimit applies a per-client-IP token bucket.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	registry := newClientRegistry(time.Now())

	return func(c *gin.Context) {
		if !registry.allow(c.ClientIP(), rps, burst, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
