package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/logger"
)

// limiterIdleTTL is how long an IP may stay silent before its limiter is
// dropped. A bucket refills completely within a minute, so a dropped
// limiter and a fresh one behave the same.
const limiterIdleTTL = 3 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	perMin    int
	now       func() time.Time
	lastSweep time.Time
}

func newLimiterStore(perMin int) *limiterStore {
	return &limiterStore{
		limiters:  make(map[string]*ipLimiter),
		perMin:    perMin,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterIdleTTL {
		s.sweep(now)
	}

	l, ok := s.limiters[ip]
	if !ok {
		l = &ipLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin),
		}
		s.limiters[ip] = l
	}
	l.lastSeen = now
	return l.limiter
}

// sweep drops limiters idle for limiterIdleTTL. Callers hold mu.
func (s *limiterStore) sweep(now time.Time) {
	for ip, l := range s.limiters {
		if now.Sub(l.lastSeen) >= limiterIdleTTL {
			delete(s.limiters, ip)
		}
	}
	s.lastSweep = now
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware allows perMin requests per minute per client IP, with
// a burst of the same size. Idle IPs are forgotten after limiterIdleTTL.
func RateLimitMiddleware(perMin int, log *zap.Logger) gin.HandlerFunc {
	if perMin <= 0 {
		perMin = 200
	}
	store := newLimiterStore(perMin)
	log = logger.OrNop(log)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			log.Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httperr.HTTPError{
				Code:    "rate_limited",
				Message: "Trop de requêtes, réessayez plus tard.",
			})
			return
		}
		c.Next()
	}
}
