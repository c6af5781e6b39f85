package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/httpd/errorhandler"
	"github.com/xy-planning-network/httpd/logger"
)

// AllowMethods answers 405 to a request whose method is not one of methods,
// listing methods in the Allow header.
//
// If methods is empty, NoopAdapter returns and this middleware does nothing.
func AllowMethods(l logger.Logger, methods ...string) Adapter {
	if len(methods) == 0 {
		return NoopAdapter
	}

	allowed := make(map[string]bool, len(methods))
	for _, m := range methods {
		allowed[strings.ToUpper(m)] = true
	}
	allow := strings.Join(methods, ", ")

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed[r.Method] {
				w.Header().Set("Allow", allow)
				reject(w, r, errorhandler.MethodNotAllowed(errorhandler.WithLogger(l)), l)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
