package discord

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles interactions per user with a token bucket each.
// Buckets idle for longer than idleTTL are dropped on the next sweep.
type Limiter struct {
	mu      sync.Mutex
	m       map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

type limiterEntry struct {
	l        *rate.Limiter
	lastSeen time.Time
}

func NewLimiter(rps float64, burst int) *Limiter {
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		m:       make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

// Allow reports whether key may act now.
func (p *Limiter) Allow(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	e, ok := p.m[key]
	if !ok {
		e = &limiterEntry{l: rate.NewLimiter(p.rps, p.burst)}
		p.m[key] = e
	}
	e.lastSeen = now
	return e.l.AllowN(now, 1)
}

// Sweep drops idle buckets.
func (p *Limiter) Sweep() {
	p.mu.Lock()
	defer p.mu.Unlock()
	cutoff := p.now().Add(-p.idleTTL)
	for k, e := range p.m {
		if e.lastSeen.Before(cutoff) {
			delete(p.m, k)
		}
	}
}
