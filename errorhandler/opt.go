package errorhandler

import (
	"github.com/spf13/afero"
	"github.com/xy-planning-network/httpd/logger"
)

// An OptFn configures an ErrorHandler when constructing a new one.
type OptFn func(*ErrorHandler)

// WithDocument sets the path of the override document served instead of a synthesized one.
// An empty path keeps the synthesized document.
//
// Only HTML handlers serve override documents.
func WithDocument(path string) OptFn {
	return func(h *ErrorHandler) {
		h.documentPath = path
	}
}

// WithExplanation sets the text rendered below the message in a synthesized document.
func WithExplanation(explanation string) OptFn {
	return func(h *ErrorHandler) {
		h.explanation = explanation
	}
}

// WithFs sets the filesystem override documents are read from.
func WithFs(fs afero.Fs) OptFn {
	return func(h *ErrorHandler) {
		h.fs = fs
	}
}

// WithLogger sets the logger.Logger reporting failures that do not fail Serve.
func WithLogger(l logger.Logger) OptFn {
	return func(h *ErrorHandler) {
		h.l = l
	}
}
