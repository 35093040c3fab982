package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateLimiter struct {
	requests  map[string]*clientRequest
	mu        sync.Mutex
	limit     int
	window    time.Duration
	lastSweep time.Time
}

type clientRequest struct {
	count     int
	resetTime time.Time
}

// RateLimiter allows limit requests per client IP in each window.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	rl := &rateLimiter{
		requests:  make(map[string]*clientRequest),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}

	return func(c *gin.Context) {
		allowed, retryAfter := rl.allow(c.ClientIP(), time.Now())
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *rateLimiter) allow(ip string, now time.Time) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.window {
		rl.cleanup(now)
	}

	client, exists := rl.requests[ip]
	if !exists || now.After(client.resetTime) {
		rl.requests[ip] = &clientRequest{count: 1, resetTime: now.Add(rl.window)}
		return true, 0
	}

	if client.count >= rl.limit {
		return false, client.resetTime.Sub(now)
	}
	client.count++
	return true, 0
}

// cleanup drops expired entries; the caller holds mu.
func (rl *rateLimiter) cleanup(now time.Time) {
	for ip, client := range rl.requests {
		if now.After(client.resetTime) {
			delete(rl.requests, ip)
		}
	}
	rl.lastSweep = now
}
