/*
Package responsetest exposes a Recorder implementing response.Sink,
which keeps every call in order so tests can assert on header and body ordering
without running an HTTP server.
*/
package responsetest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xy-planning-network/httpd/response"
)

// An Op names a call made on a Recorder.
type Op string

const (
	OpContentLength Op = "content-length"
	OpContentType   Op = "content-type"
	OpFlush         Op = "flush"
	OpFlushHeaders  Op = "flush-headers"
	OpStatus        Op = "status"
	OpStream        Op = "stream"
	OpWrite         Op = "write"
)

// A Recorder is a response.Sink keeping the calls made on it.
type Recorder struct {
	Code          int
	ContentType   string
	ContentLength int64

	// Body holds text and streamed bytes as they would reach the client.
	Body bytes.Buffer

	// Ops lists every call in the order it was made.
	Ops []Op

	// HeaderFlushes counts the times headers were actually sent.
	HeaderFlushes int

	// StreamErr, when set, is returned by ServeStream without reading anything.
	StreamErr error

	flushed bool
	pending bytes.Buffer
}

var _ response.Sink = (*Recorder)(nil)

// NewRecorder constructs a *Recorder with no Content-Length declared.
func NewRecorder() *Recorder { return &Recorder{ContentLength: -1} }

func (rec *Recorder) SetStatus(code int) {
	rec.Ops = append(rec.Ops, OpStatus)
	rec.Code = code
}

func (rec *Recorder) SetContentType(contentType string) {
	rec.Ops = append(rec.Ops, OpContentType)
	rec.ContentType = contentType
}

func (rec *Recorder) SetContentLength(n int64) {
	rec.Ops = append(rec.Ops, OpContentLength)
	rec.ContentLength = n
}

func (rec *Recorder) Writer() io.Writer { return recordWriter{rec} }

func (rec *Recorder) FlushHeaders() error {
	rec.Ops = append(rec.Ops, OpFlushHeaders)
	rec.flushHeaders()
	return nil
}

func (rec *Recorder) Flush() error {
	rec.Ops = append(rec.Ops, OpFlush)
	rec.flushHeaders()
	_, err := rec.pending.WriteTo(&rec.Body)
	return err
}

func (rec *Recorder) ServeStream(r io.Reader) (int64, error) {
	rec.Ops = append(rec.Ops, OpStream)
	if !rec.flushed {
		return 0, fmt.Errorf("%w: cannot serve stream", response.ErrHeadersNotFlushed)
	}

	if rec.StreamErr != nil {
		return 0, rec.StreamErr
	}

	if _, err := rec.pending.WriteTo(&rec.Body); err != nil {
		return 0, err
	}

	return io.Copy(&rec.Body, r)
}

// Index returns the position of the first op in Ops, or -1.
func (rec *Recorder) Index(op Op) int {
	for i, o := range rec.Ops {
		if o == op {
			return i
		}
	}

	return -1
}

// Touched asserts whether any call was made on the Recorder.
func (rec *Recorder) Touched() bool { return len(rec.Ops) > 0 }

func (rec *Recorder) flushHeaders() {
	if rec.flushed {
		return
	}

	rec.flushed = true
	rec.HeaderFlushes++
}

type recordWriter struct {
	rec *Recorder
}

func (w recordWriter) Write(p []byte) (int, error) {
	w.rec.Ops = append(w.rec.Ops, OpWrite)
	return w.rec.pending.Write(p)
}
