package httpapi

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientLimiter rate-limits per client address.
type ClientLimiter struct {
	mu   sync.Mutex
	m    map[string]*clientEntry
	r    rate.Limit
	b    int
	idle time.Duration
	now  func() time.Time
}

type clientEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		m:    make(map[string]*clientEntry),
		r:    rate.Limit(reqPerSec),
		b:    burst,
		idle: 10 * time.Minute,
		now:  time.Now,
	}
}

func (cl *ClientLimiter) limiterFor(client string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if e, ok := cl.m[client]; ok {
		e.seen = now
		return e.lim
	}
	// drop idle clients before growing the map
	for k, e := range cl.m {
		if now.Sub(e.seen) > cl.idle {
			delete(cl.m, k)
		}
	}
	lim := rate.NewLimiter(cl.r, cl.b)
	cl.m[client] = &clientEntry{lim: lim, seen: now}
	return lim
}

func (cl *ClientLimiter) Allow(client string) bool {
	return cl.limiterFor(client).Allow()
}

// Middleware answers 429 once a client exceeds its budget. A limiter
// with a zero rate lets everything through.
func (cl *ClientLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cl == nil || cl.r <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		if !cl.Allow(clientHost(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(1))
			WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
