package ratelimiter

import (
	"sync"
	"time"
)

type FixedWindowRateLimiter struct {
	sync.RWMutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func NewFixedWindowLimiter(limit int, frame time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  frame,
		now:     time.Now,
	}
}

// Allow reports whether ip may issue another request in the current window,
// and if not, how long until the window resets.
func (rl *FixedWindowRateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	w, ok := rl.clients[ip]
	if !ok || !now.Before(w.resetAt) {
		rl.clients[ip] = &window{count: 1, resetAt: now.Add(rl.window)}
		rl.evict(now)
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	return false, w.resetAt.Sub(now)
}

// evict drops expired windows so idle clients do not accumulate.
func (rl *FixedWindowRateLimiter) evict(now time.Time) {
	for ip, w := range rl.clients {
		if !now.Before(w.resetAt) {
			delete(rl.clients, ip)
		}
	}
}
