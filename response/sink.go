package response

import "io"

// A Sink receives exactly one HTTP response.
//
// Flushing is never implicit except in Flush:
// an implementation does not send headers until FlushHeaders or Flush is called.
type Sink interface {
	SetStatus(code int)
	SetContentType(contentType string)
	SetContentLength(n int64)

	// Writer returns the text writer for the response body.
	// Text is buffered until Flush.
	Writer() io.Writer

	// FlushHeaders sends the status and headers.
	// Calling FlushHeaders more than once has no effect.
	FlushHeaders() error

	// Flush sends the headers if they have not been sent,
	// then any buffered text.
	Flush() error

	// ServeStream copies r to the client.
	// ServeStream fails with ErrHeadersNotFlushed when called before FlushHeaders.
	ServeStream(r io.Reader) (int64, error)
}
