// Package limiter rate-limits requests per client with a token bucket each.
package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New returns a limiter allowing each client perSecond requests per second on
// average, with bursts of up to burst. A perSecond of zero or less disables
// limiting.
func New(perSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idle:    5 * time.Minute,
		clients: map[string]*client{},
		now:     time.Now,
	}
}

type Limiter struct {
	limit rate.Limit
	burst int

	// Buckets unused for this long are forgotten.
	idle time.Duration

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time

	now func() time.Time
}

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func (lim *Limiter) Enabled() bool {
	return lim.limit > 0
}

// Allow reports whether the client identified by key may make a request now,
// spending a token if so.
func (lim *Limiter) Allow(key string) bool {
	if !lim.Enabled() {
		return true
	}

	lim.mu.Lock()
	defer lim.mu.Unlock()

	now := lim.now()
	lim.sweep(now)

	c, ok := lim.clients[key]
	if !ok {
		c = &client{bucket: rate.NewLimiter(lim.limit, lim.burst)}
		lim.clients[key] = c
	}
	c.lastSeen = now
	return c.bucket.AllowN(now, 1)
}

// sweep drops idle clients at most once per idle period. Caller holds mu.
func (lim *Limiter) sweep(now time.Time) {
	if now.Sub(lim.lastSweep) < lim.idle {
		return
	}
	lim.lastSweep = now
	for key, c := range lim.clients {
		if now.Sub(c.lastSeen) >= lim.idle {
			delete(lim.clients, key)
		}
	}
}

// Middleware rejects requests over the limit with an empty 429. Clients are
// keyed by IP.
func (lim *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !lim.Allow(c.ClientIP()) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
