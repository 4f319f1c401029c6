package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-client-IP token bucket. Used on the auth
// endpoints to slow down confirmation-code guessing.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		entry, ok := clients[ip]
		if !ok {
			entry = &client{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
			clients[ip] = entry
		}
		entry.lastSeen = time.Now()

		// Evict clients idle long enough for their bucket to have fully
		// refilled.
		if len(clients) > 1000 {
			cutoff := time.Now().Add(-10 * time.Minute)
			for key, value := range clients {
				if value.lastSeen.Before(cutoff) {
					delete(clients, key)
				}
			}
		}
		mu.Unlock()

		if !entry.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Request was throttled."})
			c.Abort()
			return
		}
		c.Next()
	}
}
