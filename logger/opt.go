package logger

import (
	"log"

	"github.com/xy-planning-network/httpd"
)

// A LoggerOptFn is a functional option configuring a ServerLogger when constructing a new one.
type LoggerOptFn func(*ServerLogger)

// WithEnv sets the Environment reported to Sentry.
//
// An invalid env leaves the default, read from the ENVIRONMENT environment variable.
func WithEnv(env httpd.Environment) LoggerOptFn {
	return func(l *ServerLogger) {
		if env.Valid() == nil {
			l.env = env
		}
	}
}

// WithLevel sets the log level ServerLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *ServerLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger ServerLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *ServerLogger) {
		l.l = log
	}
}
