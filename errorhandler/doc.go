/*
Package errorhandler renders an HTTP error condition to a [response.Sink].

An [ErrorHandler] is built for one error occurrence and served once.
Its [Kind] selects how it renders:

  - [Plain] writes the message as text/plain.
  - [HTML] synthesizes a text/html document from the message and explanation,
    or, when an override document is configured, streams that file verbatim.

Serving an override document declares its Content-Length and flushes the headers
before the first body byte. When the configured document does not exist,
Serve returns [ErrHandlerNotFound] without touching the sink:
that is a server misconfiguration for the caller to report as an internal error,
not the client-facing status the handler was built for.
*/
package errorhandler
