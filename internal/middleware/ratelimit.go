package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitorIdleTimeout is how long an idle client keeps its bucket
const visitorIdleTimeout = 3 * time.Minute

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	name     string
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	done     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter and starts its cleanup loop. name only
// shows up in logs.
func NewRateLimiter(name string, r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		name:     name,
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		done:     make(chan struct{}),
	}

	go rl.cleanupLoop(time.Minute)

	return rl
}

// GetLimiter returns the bucket of ip, creating it on first use
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// Visitors is the number of tracked clients
func (rl *RateLimiter) Visitors() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Stop ends the cleanup loop
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTimeout {
			delete(rl.visitors, ip)
		}
	}
}

// RateLimitMiddleware answers 429 once a client has used up its bucket
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)

		if !l.Allow() {
			log.Warn("Rate limit exceeded", "limiter", limiter.name, "ip", ip, "path", c.Request.URL.Path)
			if limiter.rate > 0 {
				wait := math.Ceil(1 / float64(limiter.rate))
				c.Header("Retry-After", strconv.Itoa(int(wait)))
			}
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Zu viele Anfragen. Bitte später erneut versuchen.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
