// Package limiter throttles requests per client key with token buckets.
package limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter *rate.Limiter
	seen    time.Time
}

// Limiter keeps one token bucket per client key (usually the remote IP).
// Idle buckets are dropped by Sweep.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int

	now func() time.Time
}

// New returns a Limiter allowing rps sustained requests and bursts of burst
// requests per client.
func New(rps float64, burst int) *Limiter {
	return &Limiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether the client identified by key may proceed now.
func (l *Limiter) Allow(key string) bool {
	return l.get(key).AllowN(l.now(), 1)
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.clients[key]; ok {
		c.seen = l.now()
		return c.limiter
	}

	lim := rate.NewLimiter(l.limit, l.burst)
	l.clients[key] = &client{limiter: lim, seen: l.now()}
	return lim
}

// Sweep drops clients not seen for longer than idle and returns how many
// were removed.
func (l *Limiter) Sweep(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, c := range l.clients {
		if l.now().Sub(c.seen) > idle {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
