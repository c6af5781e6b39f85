package server

import (
	"context"
	"time"

	"github.com/spf13/afero"
	"github.com/xy-planning-network/httpd"
	"github.com/xy-planning-network/httpd/http/middleware"
	"github.com/xy-planning-network/httpd/logger"
	"golang.org/x/time/rate"
)

// An OptFn configures a *Server when constructing a new one.
type OptFn func(*Server)

// WithContext sets the context.Context whose cancellation stops Guide.
func WithContext(ctx context.Context) OptFn {
	return func(s *Server) {
		s.ctx = ctx
	}
}

// WithEnv sets the Environment, deciding on panic recovery and error verbosity.
//
// An invalid env leaves the default, read from the ENVIRONMENT environment variable.
func WithEnv(env httpd.Environment) OptFn {
	return func(s *Server) {
		if env.Valid() == nil {
			s.env = env
		}
	}
}

// WithFs sets the filesystem error documents are read from.
func WithFs(fs afero.Fs) OptFn {
	return func(s *Server) {
		s.fs = fs
	}
}

// WithLogger sets the logger.Logger of the server and its middlewares.
func WithLogger(l logger.Logger) OptFn {
	return func(s *Server) {
		s.l = l
	}
}

// WithReadHeaderTimeout bounds the time a client may take to send request headers.
//
// A d less than or equal to 0 leaves the default of 10 seconds.
func WithReadHeaderTimeout(d time.Duration) OptFn {
	return func(s *Server) {
		if d > 0 {
			s.readHeaderTimeout = d
		}
	}
}

// WithVerboseErrors sets whether 500 responses render the text of the error.
// By default, only the Development and Testing environments do.
func WithVerboseErrors(verbose bool) OptFn {
	return func(s *Server) {
		s.verbose = &verbose
	}
}

// WithRateLimit limits every client address to limit requests every second with bursts of up to burst.
//
// A limit less than or equal to 0 disables rate limiting.
func WithRateLimit(limit float64, burst int) OptFn {
	return func(s *Server) {
		if limit <= 0 {
			s.visitors = nil
			return
		}

		if burst < 1 {
			burst = 1
		}

		s.visitors = middleware.NewVisitors(rate.Limit(limit), burst)
	}
}
