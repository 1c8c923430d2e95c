package ratelimit

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/logging"
)

const idleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerIP hands every client IP its own token bucket. Buckets idle for longer
// than idleTTL are dropped on the next sweep.
type PerIP struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func NewPerIP(perSecond float64, burst int) *PerIP {
	if burst < 1 {
		burst = 1
	}
	return &PerIP{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

func (p *PerIP) Allow(ip string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if now.Sub(p.lastSweep) > idleTTL {
		for k, v := range p.visitors {
			if now.Sub(v.lastSeen) > idleTTL {
				delete(p.visitors, k)
			}
		}
		p.lastSweep = now
	}

	v, ok := p.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(p.limit, p.burst)}
		p.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (p *PerIP) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if !p.Allow(ip) {
			logging.FromContext(c.Request().Context()).Warn("rate_limited", "status", 429, "remote_ip", ip)
			return apperr.New(apperr.ErrTooManyRequests, "Too many requests")
		}
		return next(c)
	}
}
