package middleware

import (
	"net/http"
	"sync"
	"time"

	"bunq-wrapped/internal/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	visitorEvictInterval = time.Minute
	visitorIdleTTL       = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter applies a token-bucket limit per client IP. A background
// loop evicts idle clients until Stop is called.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      int
	burst    int
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates the limiter and starts its eviction loop.
// Callers own the lifecycle and must Stop it on shutdown.
func NewRateLimiter(rps, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rps,
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go rl.evictIdle()
	return rl
}

// Middleware rejects requests beyond the client's budget with the
// standard 429 envelope.
func (rl *IPRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.getVisitor(getIP(c)).Allow() {
				traceID := GetTraceID(c)
				resp := errors.NewErrorResponse(errors.SystemRateLimitExceeded, traceID)
				return c.JSON(http.StatusTooManyRequests, resp)
			}

			return next(c)
		}
	}
}

// Stop ends the eviction loop. Safe to call more than once.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *IPRateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(rl.rps), rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func getIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

func (rl *IPRateLimiter) evictIdle() {
	ticker := time.NewTicker(visitorEvictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > visitorIdleTTL {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}
