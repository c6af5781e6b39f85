package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/httpd"
	"github.com/xy-planning-network/httpd/logger"
)

// LogMaskVal replaces the values of query parameters LogRequest scrubs.
const LogMaskVal = "xxxxxxx"

// LogRequest logs the request's method, requested URL, originating IP address,
// response status, body size and duration using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			if val := q.Get("password"); val != "" {
				q.Set("password", LogMaskVal)
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			m := httpsnoop.CaptureMetrics(h, w, r)

			data := map[string]any{
				"duration": m.Duration.String(),
				"ip":       ipAddress(r),
				"method":   r.Method,
				"size":     m.Written,
				"status":   m.Code,
				"uri":      uri,
			}
			if id, ok := r.Context().Value(httpd.RequestIDKey).(string); ok {
				data["id"] = id
			}

			ls.Info(r.Method+" "+uri, &logger.LogContext{Data: data})
		})
	}
}
