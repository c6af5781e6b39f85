package server

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/httpd/errorhandler"
	"github.com/xy-planning-network/httpd/logger"
	"github.com/xy-planning-network/httpd/resource"
	"github.com/xy-planning-network/httpd/response"
)

var errNoProvider = errors.New("no provider can load path")

// dispatch answers r with the first resource.Provider able to load its path.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	sink := response.New(w, r)
	defer sink.Release()

	err := errNoProvider
	for _, p := range s.cfg.ResourceProviders() {
		if p.CanLoad(r.URL.Path) {
			err = p.Load(sink, r)
			break
		}
	}

	if err != nil {
		s.fail(sink, r, err)
	}
}

// fail answers r with the errorhandler.Handler matching err.
func (s *Server) fail(sink *response.Writer, r *http.Request, err error) {
	if sink.Committed() {
		s.l.Error("response failed after headers were sent", &logger.LogContext{Error: err, Request: r})
		return
	}

	var eh errorhandler.Handler
	switch {
	case errors.Is(err, errNoProvider), errors.Is(err, resource.ErrNotExist):
		eh = errorhandler.NotFound(s.cfg, s.handlerOpts()...)
	case errors.Is(err, resource.ErrForbidden):
		eh = errorhandler.Forbidden(s.cfg, s.handlerOpts()...)
	default:
		s.l.Error("could not load resource", &logger.LogContext{Error: err, Request: r})
		eh = errorhandler.InternalServerError(err, *s.verbose, s.handlerOpts()...)
	}

	err = eh.Serve(sink)
	if err == nil {
		return
	}

	s.l.Error("could not serve error response", &logger.LogContext{Error: err, Request: r})
	if sink.Committed() {
		return
	}

	if err := errorhandler.InternalServerError(err, *s.verbose, s.handlerOpts()...).Serve(sink); err != nil {
		s.l.Error("could not serve internal server error", &logger.LogContext{Error: err, Request: r})
	}
}

func (s *Server) handlerOpts() []errorhandler.OptFn {
	return []errorhandler.OptFn{errorhandler.WithFs(s.fs), errorhandler.WithLogger(s.l)}
}
