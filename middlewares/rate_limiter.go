package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/utils"
	"golang.org/x/time/rate"
)

// DefaultLimiterIdleTTL is how long an IP's bucket survives without traffic.
const DefaultLimiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter keeps one token bucket per client IP for the login
// endpoints. Buckets idle for longer than idleTTL are evicted.
type LoginRateLimiter struct {
	perMinute int
	idleTTL   time.Duration
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
}

func NewLoginRateLimiter(perMinute int) *LoginRateLimiter {
	return &LoginRateLimiter{
		perMinute: perMinute,
		idleTTL:   DefaultLimiterIdleTTL,
		visitors:  make(map[string]*visitor),
		now:       time.Now,
	}
}

func (rl *LoginRateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rl.perMinute)), rl.perMinute),
		}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops idle buckets. Caller holds mu.
func (rl *LoginRateLimiter) sweep(now time.Time) {
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= rl.idleTTL {
			delete(rl.visitors, ip)
		}
	}
	rl.lastSweep = now
}

func (rl *LoginRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.APIError{
				StatusCode: http.StatusTooManyRequests,
				Message:    "Too many login attempts, please wait a moment",
				Success:    false,
			})
			return
		}
		c.Next()
	}
}
