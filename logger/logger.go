package logger

import (
	"log"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/xy-planning-network/httpd"
)

// callerFrames is the depth of the call site below ServerLogger.log.
const callerFrames = 2

var httpdPathRegex = regexp.MustCompile("httpd/.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// NewLogLevel parses val, in any case, into a LogLevel.
func NewLogLevel(val string) LogLevel {
	switch strings.ToUpper(val) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	case LogLevelFatal:
		return "[FATAL]"
	default:
		return "[UNK]"
	}
}

// ServerLogger implements Logger using log.
type ServerLogger struct {
	env  httpd.Environment
	l    *log.Logger
	ll   LogLevel
	skip int
}

// New constructs a ServerLogger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The environment is read from ENVIRONMENT, defaulting to DEVELOPMENT.
// The log level is read from LOG_LEVEL, defaulting to INFO.
//
// When SENTRY_DSN is set, the ServerLogger is wrapped in a SentryLogger.
func New(opts ...LoggerOptFn) Logger {
	ll := NewLogLevel(os.Getenv("LOG_LEVEL"))
	if ll == LogLevelUnk {
		ll = LogLevelInfo
	}

	l := &ServerLogger{
		env: httpd.EnvVarOrEnv("ENVIRONMENT", httpd.Development),
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  ll,
	}
	for _, opt := range opts {
		opt(l)
	}

	if dsn := httpd.EnvVarOrString("SENTRY_DSN", ""); dsn != "" {
		l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, dsn)
	}

	return l
}

// Debug writes a debug log.
func (l *ServerLogger) Debug(msg string, ctx *LogContext) {
	l.log(color.WhiteString, LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *ServerLogger) Error(msg string, ctx *LogContext) {
	l.log(color.RedString, LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
//
// Fatal does not exit; the caller decides how to stop.
func (l *ServerLogger) Fatal(msg string, ctx *LogContext) {
	l.log(color.MagentaString, LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *ServerLogger) Info(msg string, ctx *LogContext) {
	l.log(color.BlueString, LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *ServerLogger) Warn(msg string, ctx *LogContext) {
	l.log(color.YellowString, LogLevelWarn, msg, ctx)
}

// LogLevel returns the LogLevel set for the ServerLogger.
func (l *ServerLogger) LogLevel() LogLevel { return l.ll }

// log prints msg prefixed by level and the call site, followed by ctx if there is one.
// Nothing is printed below the LogLevel of l.
func (l *ServerLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, ctx *LogContext) {
	if level < l.ll {
		return
	}

	_, file, line, _ := runtime.Caller(callerFrames + l.skip)
	msg = colorizer("%s %s:%d '%s'", level, immediateFilepath(file), line, msg)

	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

// immediateFilepath trims file down to the path inside this module
// or, outside of it, to the file and the directory it is in
// e.g.,:
// /home/dlk/my-project/main.go => my-project/main.go
// /home/dlk/httpd/server/server.go => httpd/server/server.go
func immediateFilepath(file string) string {
	if match := httpdPathRegex.FindString(file); match != "" {
		return match
	}

	dir, file := path.Split(file)
	return path.Base(dir) + "/" + file
}
