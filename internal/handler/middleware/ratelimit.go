package middleware

import (
	"net/http"
	"sync"
	"time"

	"vehicle-care-booking/internal/handler/httperr"
	"vehicle-care-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket kept in process memory. Clients are
// keyed by user id once authenticated, else by client ip.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	visitors sync.Map
	mu       sync.Mutex
	lastGC   time.Time
	now      func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		rps:   rate.Limit(cfg.RPS),
		burst: cfg.Burst,
		now:   time.Now,
	}
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if id, ok := GetUserID(c); ok {
			key = id.String()
		}

		if !r.allow(key) {
			c.Header("Retry-After", "1")
			httperr.AbortWithError(c, http.StatusTooManyRequests, nil, "Too many requests", nil)
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) allow(key string) bool {
	now := r.now()
	v, _ := r.visitors.LoadOrStore(key, &visitor{limiter: rate.NewLimiter(r.rps, r.burst)})
	vis := v.(*visitor)

	r.mu.Lock()
	vis.lastSeen = now
	if now.Sub(r.lastGC) > limiterIdleTTL {
		r.lastGC = now
		r.visitors.Range(func(k, val any) bool {
			if now.Sub(val.(*visitor).lastSeen) > limiterIdleTTL {
				r.visitors.Delete(k)
			}
			return true
		})
	}
	r.mu.Unlock()

	return vis.limiter.AllowN(now, 1)
}
