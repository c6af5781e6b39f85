package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/xy-planning-network/httpd"
	"github.com/xy-planning-network/httpd/config"
	"github.com/xy-planning-network/httpd/http/middleware"
	"github.com/xy-planning-network/httpd/http/router"
	"github.com/xy-planning-network/httpd/logger"
)

const (
	defaultReadHeaderTimeout = 10 * time.Second
	shutdownTimeout          = 5 * time.Second
)

// A Server serves the resources a config.ServerConfig describes.
type Server struct {
	cfg               config.ServerConfig
	ctx               context.Context
	env               httpd.Environment
	fs                afero.Fs
	l                 logger.Logger
	readHeaderTimeout time.Duration
	router            *router.Router
	srv               *http.Server
	verbose           *bool
	visitors          *middleware.Visitors
}

// New constructs a *Server listening on the ListenPort of cfg.
// Default options are applied first followed by the options passed into New.
//
// New returns an httpd.ErrBadConfig-wrapped error if cfg is nil.
func New(cfg config.ServerConfig, opts ...OptFn) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no config", httpd.ErrBadConfig)
	}

	s := &Server{
		cfg:               cfg,
		ctx:               context.Background(),
		env:               httpd.EnvVarOrEnv("ENVIRONMENT", httpd.Development),
		readHeaderTimeout: defaultReadHeaderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}

	if s.l == nil {
		s.l = logger.New(logger.WithEnv(s.env))
	}

	if s.verbose == nil {
		verbose := s.env.Verbose()
		s.verbose = &verbose
	}

	s.router = router.New(
		middleware.ReportPanic(s.env, *s.verbose, s.l),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(s.l),
		middleware.RateLimit(s.visitors, s.l),
		middleware.LimitConcurrency(cfg.MaxServerThreads(), s.l),
		middleware.AllowMethods(s.l, cfg.SupportedMethods()...),
	)
	s.router.CatchAll(http.HandlerFunc(s.dispatch))

	s.srv = &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ListenPort()),
		Handler:           s.router,
		ReadHeaderTimeout: s.readHeaderTimeout,
	}
	s.srv.SetKeepAlivesEnabled(cfg.KeepAlive())

	return s, nil
}

// EmitHTTPServer exposes the *http.Server Guide runs.
func (s *Server) EmitHTTPServer() *http.Server { return s.srv }

func (s *Server) EmitLogger() logger.Logger { return s.l }

// ServeHTTP handles a request the way the running server would.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// Guide begins the web server.
//
// These, and cancelling the context.Context set by WithContext, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
//
// Guide returns the error of a server unable to listen.
func (s *Server) Guide() error {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case sig := <-ch:
			s.l.Info(fmt.Sprint("received shutdown signal: ", sig), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.l.Info(fmt.Sprintf("running web server at %s", s.srv.Addr), nil)
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("could not listen: %w", err)
			s.l.Error(err.Error(), nil)
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return s.Shutdown()
}

// Shutdown shutdowns the web server, waiting up to 5 seconds for requests in flight.
func (s *Server) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.l.Info("shutting down web server", nil)
	err := s.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	s.l.Info("web server shutdown successfully", nil)
	return nil
}
