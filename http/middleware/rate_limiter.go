package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/httpd/errorhandler"
	"github.com/xy-planning-network/httpd/logger"
	"golang.org/x/time/rate"
)

const visitorTTL = 60 * time.Minute

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
	val         map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors whose newly seen addresses are limited
// to limit requests every second with bursts of up to burst.
func NewVisitors(limit rate.Limit, burst int) *Visitors {
	return &Visitors{
		limit:       limit,
		burst:       burst,
		lastCleanup: time.Now().UTC(),
		val:         make(map[string]Visitor),
	}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len returns the number of tracked addresses.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
// cleanup sweeps at most once per hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()

	if time.Since(vs.lastCleanup) < visitorTTL {
		return
	}

	vs.lastCleanup = time.Now().UTC()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler,
// answering 429 to an address exceeding its limit.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
//
// If visitors is nil, NoopAdapter returns and this middleware does nothing.
func RateLimit(visitors *Visitors, l logger.Logger) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer visitors.cleanup()

			if !visitors.Fetch(ipAddress(r)).Limiter.Allow() {
				reject(w, r, errorhandler.TooManyRequests(errorhandler.WithLogger(l)), l)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
