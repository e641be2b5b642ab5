package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mkoga/todo-api/internal/errors"
)

// RateLimiter rejects clients that exceed max requests within a sliding
// window, keyed by client IP. State is per process.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	max     int
	window  time.Duration
}

// NewRateLimiter creates a rate limiter and starts a background sweep that
// evicts idle clients.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string][]time.Time),
		max:     max,
		window:  window,
	}
	go rl.sweep()
	return rl
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()
		cutoff := now.Add(-rl.window)

		rl.mu.Lock()
		times := rl.clients[ip]
		i := 0
		for i < len(times) && !times[i].After(cutoff) {
			i++
		}
		times = times[i:]

		if len(times) >= rl.max {
			rl.clients[ip] = times
			rl.mu.Unlock()
			apperrors.RespondWith(c, &apperrors.AppError{
				Status:  http.StatusTooManyRequests,
				Code:    apperrors.ErrCodeRateLimited,
				Message: "Too many requests, please try again later",
			})
			return
		}

		rl.clients[ip] = append(times, now)
		rl.mu.Unlock()

		c.Next()
	}
}

// sweep drops clients whose entire history has aged out of the window.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-rl.window)
		rl.mu.Lock()
		for ip, times := range rl.clients {
			if len(times) == 0 || !times[len(times)-1].After(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}
