package middleware

import (
	"net/http"

	"github.com/xy-planning-network/httpd/errorhandler"
	"github.com/xy-planning-network/httpd/logger"
	"github.com/xy-planning-network/httpd/response"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	//NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter passes the http.Handler through untouched.
func NoopAdapter(h http.Handler) http.Handler { return h }

// reject answers the request with eh in place of the next handler.
func reject(w http.ResponseWriter, r *http.Request, eh errorhandler.Handler, l logger.Logger) {
	sink := response.New(w, r)
	defer sink.Release()

	if err := eh.Serve(sink); err != nil && l != nil {
		l.Error("could not serve rejection", &logger.LogContext{Error: err, Request: r})
	}
}
