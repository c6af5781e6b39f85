package errorhandler

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sync"

	"github.com/spf13/afero"
	"github.com/xy-planning-network/httpd/logger"
	"github.com/xy-planning-network/httpd/response"
)

// A Handler renders one error response.
type Handler interface {
	Serve(sink response.Sink) error
}

var defaultLogger = sync.OnceValue(func() logger.Logger { return logger.New() })

// ErrorHandler renders a status and message as a Kind of document.
// An ErrorHandler is not safe for concurrent use and is served once.
type ErrorHandler struct {
	kind         Kind
	status       int
	message      string
	explanation  string
	documentPath string
	fs           afero.Fs
	l            logger.Logger
	served       bool
}

var _ Handler = (*ErrorHandler)(nil)

// New constructs an *ErrorHandler of the given Kind.
//
// When message is empty, the status text of status is used.
// The default filesystem is the OS filesystem.
func New(kind Kind, status int, message string, opts ...OptFn) *ErrorHandler {
	if message == "" {
		message = http.StatusText(status)
	}

	h := &ErrorHandler{
		kind:    kind,
		status:  status,
		message: message,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.fs == nil {
		h.fs = afero.NewOsFs()
	}

	if h.l == nil {
		h.l = defaultLogger()
	}

	return h
}

// Kind returns the Kind of document h renders.
func (h *ErrorHandler) Kind() Kind { return h.kind }

// Status returns the status code h responds with.
func (h *ErrorHandler) Status() int { return h.status }

// Message returns the message h renders.
func (h *ErrorHandler) Message() string { return h.message }

// DocumentPath returns the override document h serves, if any.
func (h *ErrorHandler) DocumentPath() string { return h.documentPath }

// Serve writes the error response to sink.
//
// Serve returns ErrHandlerNotFound, before making any call on sink,
// when an override document is configured but does not exist.
// Serve returns ErrAlreadyServed when called a second time.
func (h *ErrorHandler) Serve(sink response.Sink) error {
	if h.served {
		return fmt.Errorf("%w: %d %s", ErrAlreadyServed, h.status, h.message)
	}

	h.served = true

	if h.kind == HTML && h.documentPath != "" {
		return h.serveFile(sink)
	}

	sink.SetStatus(h.status)
	sink.SetContentType(h.kind.ContentType())

	switch h.kind {
	case HTML:
		doc := Document{Title: h.message, Message: h.explanation}
		if err := doc.Render(sink.Writer()); err != nil {
			return fmt.Errorf("cannot render %d document: %w", h.status, err)
		}

	default:
		if _, err := io.WriteString(sink.Writer(), h.message); err != nil {
			return fmt.Errorf("cannot write %d message: %w", h.status, err)
		}
	}

	return sink.Flush()
}

// serveFile streams the override document after declaring its length.
func (h *ErrorHandler) serveFile(sink response.Sink) error {
	f, err := h.fs.Open(h.documentPath)
	if errors.Is(err, fs.ErrNotExist) {
		return h.notFound()
	}

	if err != nil {
		return fmt.Errorf("%d occurred, cannot open error handler (%s): %w", h.status, h.documentPath, err)
	}

	// NOTE(dlk): close failures are logged, never returned
	defer h.close(f)

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%d occurred, cannot stat error handler (%s): %w", h.status, h.documentPath, err)
	}

	if info.IsDir() {
		return h.notFound()
	}

	sink.SetStatus(h.status)
	sink.SetContentType(h.kind.ContentType())
	sink.SetContentLength(info.Size())
	if err := sink.FlushHeaders(); err != nil {
		return err
	}

	if _, err := sink.ServeStream(f); err != nil {
		return fmt.Errorf("cannot serve error handler (%s): %w", h.documentPath, err)
	}

	return sink.Flush()
}

func (h *ErrorHandler) notFound() error {
	return fmt.Errorf("%w: %d occurred, specified error handler (%s) was not found", ErrHandlerNotFound, h.status, h.documentPath)
}

// close releases f, logging instead of returning any failure.
func (h *ErrorHandler) close(f afero.File) {
	if err := f.Close(); err != nil {
		h.l.Warn("could not close error document", &logger.LogContext{
			Data:  map[string]any{"path": h.documentPath, "status": h.status},
			Error: err,
		})
	}
}
