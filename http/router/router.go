package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/httpd/http/middleware"
)

// A Route maps a path and HTTP methods to an [http.Handler].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Methods     []string
	Handler     http.Handler
	Middlewares []middleware.Adapter
}

// Router routes requests to the handlers registered on it,
// applying the every-request stack ahead of each.
type Router struct {
	everyReqStack []middleware.Adapter
	r             *mux.Router
}

var _ http.Handler = (*Router)(nil)

// New constructs a [*Router] applying middlewares to every request, in order.
func New(middlewares ...middleware.Adapter) *Router {
	return &Router{
		everyReqStack: append([]middleware.Adapter(nil), middlewares...),
		r:             mux.NewRouter(),
	}
}

// CatchAll sets up a handler for all routes not otherwise registered to funnel to.
func (r *Router) CatchAll(handler http.Handler) {
	r.r.PathPrefix("/").Handler(middleware.Chain(handler, r.everyReqStack...))
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.Handler] as the default
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.Handler) {
	r.r.NotFoundHandler = middleware.Chain(handler, r.everyReqStack...)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter(nil), r.everyReqStack...), middlewares...)
		mws = append(mws, route.Middlewares...)
		rt := r.r.Handle(route.Path, middleware.Chain(route.Handler, mws...))
		if len(route.Methods) > 0 {
			rt.Methods(route.Methods...)
		}
	}
}

// ServeHTTP dispatches the request to the handler whose Route matches.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}
