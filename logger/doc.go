/*
Package logger provides logging functionality to an httpd server by defining the required behavior in [Logger]
and providing an implementation of it with [ServerLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, if [ServerLogger] is initialized with [LogLevelWarn],
only [*ServerLogger.Warn], [*ServerLogger.Error], and [*ServerLogger.Fatal] produce messages.

# ServerLogger

Log messages emitted by [ServerLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [WARN] errorhandler/handler.go:143 'could not close error document' log_context: {"error":"close /httpd/404.html: file already closed"}

The log context is a JSON-encoded [LogContext].
It carries data inessential to the message proper
but gives a fuller picture of the server state at the time of logging.

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] returns a [SentryLogger],
which additionally ships the [LogContext.Error] of Warn, Error and Fatal messages to Sentry.
*/
package logger
