package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/xy-planning-network/httpd"
)

// A SentryLogger logs through a ServerLogger
// and ships the errors of Warn, Error and Fatal logs to Sentry.
type SentryLogger struct {
	l *ServerLogger
}

// NewSentryLogger constructs a SentryLogger based off the provided ServerLogger.
//
// If Sentry cannot be initialized, the error is logged and sl is returned.
func NewSentryLogger(sl *ServerLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  sl.env.String(),
		IgnoreErrors: []string{"write: broken pipe", "connection reset by peer"},
	})
	if err != nil {
		sl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return sl
	}

	// NOTE(dlk): the SentryLogger method is one more frame above the call site
	l := *sl
	l.skip++

	return &SentryLogger{l: &l}
}

// Debug writes a debug log.
func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }

// Error writes an error log and sends it to Sentry.
func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.l.Error(msg, ctx)
	sl.send(LogLevelError, ctx)
}

// Fatal writes a fatal log and sends it to Sentry.
func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	sl.l.Fatal(msg, ctx)
	sl.send(LogLevelFatal, ctx)
}

// Info writes an info log.
func (sl *SentryLogger) Info(msg string, ctx *LogContext) { sl.l.Info(msg, ctx) }

// Warn writes a warning log and sends it to Sentry.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	sl.l.Warn(msg, ctx)
	sl.send(LogLevelWarn, ctx)
}

// LogLevel returns the LogLevel set for the SentryLogger.
func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

// sentryLevels maps the LogLevels shipped to Sentry.
var sentryLevels = map[LogLevel]sentry.Level{
	LogLevelWarn:  sentry.LevelWarning,
	LogLevelError: sentry.LevelError,
	LogLevelFatal: sentry.LevelFatal,
}

// send ships the LogContext.Error to Sentry when level is at or above the LogLevel of sl,
// tagging it with the request ID and attaching the request and any data.
func (sl *SentryLogger) send(level LogLevel, ctx *LogContext) {
	if level < sl.l.ll || ctx == nil || ctx.Error == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
			if id, ok := ctx.Request.Context().Value(httpd.RequestIDKey).(string); ok {
				scope.SetTag("request_id", id)
			}
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		scope.SetLevel(sentryLevels[level])
		sentry.CaptureException(ctx.Error)
	})
}
