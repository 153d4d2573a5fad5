package auth

import (
	"sync"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles login attempts per person name to slow down
// PIN guessing. Limiters are created lazily and kept for the process
// lifetime; the roster is small.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewLoginLimiter(perSecond float64, burst int) *LoginLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 5
	}
	return &LoginLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

// Allow reports whether another attempt for this name may proceed.
func (l *LoginLimiter) Allow(name string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[name]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[name] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}
