package middleware

import (
	"net/http"

	"github.com/xy-planning-network/httpd/errorhandler"
	"github.com/xy-planning-network/httpd/logger"
	"golang.org/x/sync/semaphore"
)

// LimitConcurrency bounds the requests handled at once to n.
//
// A request waits for a slot until its context is done,
// at which point it is answered 503.
//
// If n is less than 1, NoopAdapter returns and this middleware does nothing.
func LimitConcurrency(n int, l logger.Logger) Adapter {
	if n < 1 {
		return NoopAdapter
	}

	sem := semaphore.NewWeighted(int64(n))
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sem.Acquire(r.Context(), 1); err != nil {
				reject(w, r, errorhandler.ServiceUnavailable(errorhandler.WithLogger(l)), l)
				return
			}
			defer sem.Release(1)

			h.ServeHTTP(w, r)
		})
	}
}
