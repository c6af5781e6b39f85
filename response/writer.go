package response

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
)

var pool = &sync.Pool{New: func() any { return new(bytes.Buffer) }}

// Writer implements Sink over an http.ResponseWriter.
//
// A Writer is used by one goroutine for one response.
// Call Release once the response is complete.
type Writer struct {
	w       http.ResponseWriter
	buf     *bytes.Buffer
	status  int
	flushed bool
	discard bool
	length  bool
}

var _ Sink = (*Writer)(nil)

// New constructs a *Writer responding to r through w.
//
// Responses to HEAD requests keep their headers, Content-Length included,
// and drop their body.
func New(w http.ResponseWriter, r *http.Request) *Writer {
	b := pool.Get().(*bytes.Buffer)
	b.Reset()

	return &Writer{
		w:       w,
		buf:     b,
		status:  http.StatusOK,
		discard: r != nil && r.Method == http.MethodHead,
	}
}

// Header exposes the header map for headers the Sink has no setter for.
// Changes after FlushHeaders are not sent.
func (rw *Writer) Header() http.Header { return rw.w.Header() }

// SetStatus records the status code. It is ignored once headers are flushed.
func (rw *Writer) SetStatus(code int) {
	if rw.flushed {
		return
	}

	rw.status = code
}

// Status returns the recorded status code.
func (rw *Writer) Status() int { return rw.status }

// SetContentType records the Content-Type header. It is ignored once headers are flushed.
func (rw *Writer) SetContentType(contentType string) {
	if rw.flushed {
		return
	}

	rw.w.Header().Set("Content-Type", contentType)
}

// SetContentLength records the Content-Length header. It is ignored once headers are flushed.
func (rw *Writer) SetContentLength(n int64) {
	if rw.flushed {
		return
	}

	rw.length = true
	rw.w.Header().Set("Content-Length", strconv.FormatInt(n, 10))
}

// Committed asserts whether headers have been sent.
func (rw *Writer) Committed() bool { return rw.flushed }

// Writer returns the buffer text is written to until Flush.
func (rw *Writer) Writer() io.Writer { return rw.buf }

// FlushHeaders sends the status and headers exactly once.
func (rw *Writer) FlushHeaders() error {
	if rw.flushed {
		return nil
	}

	rw.flushed = true
	rw.w.WriteHeader(rw.status)
	return nil
}

// Flush sends the headers, if not yet sent, followed by any buffered text.
//
// When no Content-Length was declared before headers are sent,
// Flush declares the length of the buffered text.
func (rw *Writer) Flush() error {
	if !rw.flushed && !rw.length {
		rw.SetContentLength(int64(rw.buf.Len()))
	}

	if err := rw.FlushHeaders(); err != nil {
		return err
	}

	if err := rw.writeBuffered(); err != nil {
		return err
	}

	if f, ok := rw.w.(http.Flusher); ok {
		f.Flush()
	}

	return nil
}

// ServeStream copies r to the client after any buffered text.
func (rw *Writer) ServeStream(r io.Reader) (int64, error) {
	if !rw.flushed {
		return 0, fmt.Errorf("%w: cannot serve stream", ErrHeadersNotFlushed)
	}

	if err := rw.writeBuffered(); err != nil {
		return 0, err
	}

	dst := io.Writer(rw.w)
	if rw.discard {
		dst = io.Discard
	}

	n, err := io.Copy(dst, r)
	if err != nil {
		return n, fmt.Errorf("cannot serve stream: %w", err)
	}

	return n, nil
}

// Release returns the text buffer to the pool.
// The *Writer must not be used after Release.
func (rw *Writer) Release() {
	if rw.buf == nil {
		return
	}

	pool.Put(rw.buf)
	rw.buf = nil
}

func (rw *Writer) writeBuffered() error {
	if rw.buf.Len() == 0 {
		return nil
	}

	if rw.discard {
		rw.buf.Reset()
		return nil
	}

	if _, err := rw.buf.WriteTo(rw.w); err != nil {
		return fmt.Errorf("cannot write body: %w", err)
	}

	return nil
}
