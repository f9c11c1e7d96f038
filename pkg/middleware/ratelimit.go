package middleware

import (
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"stempede-store/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultLimiterIdle is how long a client's bucket is kept without traffic.
const DefaultLimiterIdle = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than idle are dropped.
type RateLimiter struct {
	limiters  sync.Map
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
}

func NewRateLimiter(r float64, burst int, idle time.Duration) *RateLimiter {
	if idle <= 0 {
		idle = DefaultLimiterIdle
	}

	rl := &RateLimiter{
		rate:  rate.Limit(r),
		burst: burst,
		idle:  idle,
		now:   time.Now,
	}
	rl.lastSweep.Store(rl.now().UnixNano())
	return rl
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	now := rl.now().UnixNano()
	rl.maybeSweep(now)

	entry, ok := rl.limiters.Load(ip)
	if !ok {
		fresh := &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		entry, _ = rl.limiters.LoadOrStore(ip, fresh)
	}

	client := entry.(*clientLimiter)
	client.lastSeen.Store(now)
	return client.limiter
}

// maybeSweep evicts idle buckets at most once per idle period. Only the
// caller that wins the swap does the work.
func (rl *RateLimiter) maybeSweep(now int64) {
	last := rl.lastSweep.Load()
	if now-last < int64(rl.idle) || !rl.lastSweep.CompareAndSwap(last, now) {
		return
	}

	rl.limiters.Range(func(key, value any) bool {
		if now-value.(*clientLimiter).lastSeen.Load() > int64(rl.idle) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// Len reports the number of tracked clients.
func (rl *RateLimiter) Len() int {
	n := 0
	rl.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// RateLimit rejects clients that exceed their bucket with 429.
func RateLimit(config utils.RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	if !config.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	return limit(NewRateLimiter(config.RPS, config.Burst, config.Idle), logger)
}

// limit applies limiter keyed on the client address.
func limit(limiter *RateLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if !limiter.getLimiter(ip).Allow() {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path))
				utils.ResponseTooManyRequests(w, "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the host part of RemoteAddr. Forwarded headers only
// affect it when the router trusts its proxy and runs chi's RealIP.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
