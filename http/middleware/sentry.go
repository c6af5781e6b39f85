package middleware

import (
	"fmt"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/httpd"
	"github.com/xy-planning-network/httpd/errorhandler"
	"github.com/xy-planning-network/httpd/logger"
)

// ReportPanic recovers panics raised by the http.Handler it wraps.
//
// In development, ReportPanic uses handlers.RecoveryHandler,
// printing the stack trace through l and answering 500.
// Otherwise, ReportPanic reports the panic to Sentry through sentryhttp
// and answers with errorhandler.InternalServerError, rendering the panic when verbose.
func ReportPanic(env httpd.Environment, verbose bool, l logger.Logger) Adapter {
	if env.IsDevelopment() {
		return handlers.RecoveryHandler(
			handlers.PrintRecoveryStack(true),
			handlers.RecoveryLogger(recoveryLogger{l}),
		)
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
		Timeout:         2 * time.Second,
	})

	return func(h http.Handler) http.Handler {
		reported := sh.Handle(h)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}

				if v == http.ErrAbortHandler {
					panic(v)
				}

				err := fmt.Errorf("recovered from panic: %v", v)
				if l != nil {
					l.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
				}

				reject(w, r, errorhandler.InternalServerError(err, verbose, errorhandler.WithLogger(l)), l)
			}()

			reported.ServeHTTP(w, r)
		})
	}
}

// recoveryLogger adapts a logger.Logger to handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	l logger.Logger
}

func (rl recoveryLogger) Println(v ...any) {
	if rl.l == nil {
		return
	}

	rl.l.Error(fmt.Sprint(v...), nil)
}
