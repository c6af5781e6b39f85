package errorhandler_test

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/httpd/errorhandler"
	"github.com/xy-planning-network/httpd/logger"
	rt "github.com/xy-planning-network/httpd/response/responsetest"
)

func TestErrorHandlerServePlain(t *testing.T) {
	// Arrange
	fs := newTrackFs()
	sink := rt.NewRecorder()
	h := errorhandler.New(errorhandler.Plain, http.StatusMethodNotAllowed, "Method Not Allowed", errorhandler.WithFs(fs))

	// Act
	err := h.Serve(sink)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, sink.Code)
	require.Equal(t, "text/plain", sink.ContentType)
	require.Equal(t, "Method Not Allowed", sink.Body.String())
	require.Equal(t, 1, sink.HeaderFlushes)
	require.Zero(t, fs.opens)
}

func TestErrorHandlerServeDocument(t *testing.T) {
	// Arrange
	fs := newTrackFs()
	sink := rt.NewRecorder()
	h := errorhandler.New(
		errorhandler.HTML,
		http.StatusNotFound,
		"Not Found",
		errorhandler.WithExplanation("The requested resource was not found"),
		errorhandler.WithFs(fs),
	)

	// Act
	err := h.Serve(sink)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusNotFound, sink.Code)
	require.Equal(t, "text/html", sink.ContentType)
	require.Contains(t, sink.Body.String(), "<title>Not Found</title>")
	require.Contains(t, sink.Body.String(), "The requested resource was not found")
	require.Equal(t, 1, sink.HeaderFlushes)
	require.Equal(t, -1, sink.Index(rt.OpFlushHeaders))
	require.Equal(t, -1, sink.Index(rt.OpStream))
	require.Zero(t, fs.opens)
}

func TestErrorHandlerServeDocumentEscapes(t *testing.T) {
	// Arrange
	sink := rt.NewRecorder()
	h := errorhandler.New(
		errorhandler.HTML,
		http.StatusBadRequest,
		"<script>alert(1)</script>",
		errorhandler.WithExplanation("a & b"),
	)

	// Act
	require.Nil(t, h.Serve(sink))

	// Assert
	require.NotContains(t, sink.Body.String(), "<script>")
	require.Contains(t, sink.Body.String(), "&lt;script&gt;")
	require.Contains(t, sink.Body.String(), "a &amp; b")
}

func TestErrorHandlerServeFile(t *testing.T) {
	// Arrange
	fs := newTrackFs()
	doc := bytes.Repeat([]byte("x"), 1024)
	require.Nil(t, afero.WriteFile(fs, "/httpd/403.html", doc, 0644))

	sink := rt.NewRecorder()
	h := errorhandler.New(
		errorhandler.HTML,
		http.StatusForbidden,
		"Forbidden",
		errorhandler.WithDocument("/httpd/403.html"),
		errorhandler.WithFs(fs),
	)

	// Act
	err := h.Serve(sink)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusForbidden, sink.Code)
	require.Equal(t, "text/html", sink.ContentType)
	require.Equal(t, int64(1024), sink.ContentLength)
	require.Equal(t, doc, sink.Body.Bytes())
	require.Equal(t, 1, sink.HeaderFlushes)
	require.Less(t, sink.Index(rt.OpContentLength), sink.Index(rt.OpFlushHeaders))
	require.Less(t, sink.Index(rt.OpFlushHeaders), sink.Index(rt.OpStream))
	require.Less(t, sink.Index(rt.OpStream), sink.Index(rt.OpFlush))
	require.Equal(t, -1, sink.Index(rt.OpWrite))
	require.Equal(t, 1, fs.opens)
	require.Equal(t, 1, fs.closes)
}

func TestErrorHandlerServeFileStreamErr(t *testing.T) {
	// Arrange
	fs := newTrackFs()
	require.Nil(t, afero.WriteFile(fs, "/httpd/403.html", []byte("forbidden"), 0644))

	expected := errors.New("broken pipe")
	sink := rt.NewRecorder()
	sink.StreamErr = expected

	h := errorhandler.New(
		errorhandler.HTML,
		http.StatusForbidden,
		"Forbidden",
		errorhandler.WithDocument("/httpd/403.html"),
		errorhandler.WithFs(fs),
	)

	// Act
	err := h.Serve(sink)

	// Assert
	require.ErrorIs(t, err, expected)
	require.Equal(t, -1, sink.Index(rt.OpFlush))
	require.Equal(t, 1, fs.closes)
}

func TestErrorHandlerServeFileCloseErr(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))

	fs := newTrackFs()
	fs.closeErr = errors.New("file already closed")
	require.Nil(t, afero.WriteFile(fs, "/httpd/404.html", []byte("gone"), 0644))

	sink := rt.NewRecorder()
	h := errorhandler.New(
		errorhandler.HTML,
		http.StatusNotFound,
		"Not Found",
		errorhandler.WithDocument("/httpd/404.html"),
		errorhandler.WithFs(fs),
		errorhandler.WithLogger(l),
	)

	// Act
	err := h.Serve(sink)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "gone", sink.Body.String())
	require.Equal(t, 1, fs.closes)
	require.Contains(t, b.String(), "[WARN]")
	require.Contains(t, b.String(), "file already closed")
}

func TestErrorHandlerServeFileNotFound(t *testing.T) {
	for _, tc := range []struct {
		name  string
		setup func(afero.Fs)
	}{
		{"Missing", func(afero.Fs) {}},
		{"Directory", func(fs afero.Fs) { fs.MkdirAll("/httpd/404.html", 0755) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			fs := newTrackFs()
			tc.setup(fs)

			sink := rt.NewRecorder()
			h := errorhandler.New(
				errorhandler.HTML,
				http.StatusNotFound,
				"Not Found",
				errorhandler.WithDocument("/httpd/404.html"),
				errorhandler.WithFs(fs),
			)

			// Act
			err := h.Serve(sink)

			// Assert
			require.ErrorIs(t, err, errorhandler.ErrHandlerNotFound)
			require.Contains(t, err.Error(), "/httpd/404.html")
			require.False(t, sink.Touched())
			require.Zero(t, sink.Body.Len())
			require.Equal(t, fs.opens, fs.closes)
		})
	}
}

func TestErrorHandlerServePlainIgnoresDocument(t *testing.T) {
	// Arrange
	fs := newTrackFs()
	sink := rt.NewRecorder()
	h := errorhandler.New(
		errorhandler.Plain,
		http.StatusServiceUnavailable,
		"",
		errorhandler.WithDocument("/httpd/503.html"),
		errorhandler.WithFs(fs),
	)

	// Act
	err := h.Serve(sink)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusText(http.StatusServiceUnavailable), sink.Body.String())
	require.Zero(t, fs.opens)
}

func TestErrorHandlerServeTwice(t *testing.T) {
	// Arrange
	h := errorhandler.New(errorhandler.Plain, http.StatusBadRequest, "Bad Request")
	require.Nil(t, h.Serve(rt.NewRecorder()))
	sink := rt.NewRecorder()

	// Act
	err := h.Serve(sink)

	// Assert
	require.ErrorIs(t, err, errorhandler.ErrAlreadyServed)
	require.False(t, sink.Touched())
}

func TestKind(t *testing.T) {
	require.Equal(t, "plain", errorhandler.Plain.String())
	require.Equal(t, "html", errorhandler.HTML.String())
	require.Equal(t, "text/plain", errorhandler.Plain.ContentType())
	require.Equal(t, "text/html", errorhandler.HTML.ContentType())
	require.Equal(t, "text/plain", errorhandler.Kind(42).ContentType())
}

func TestDocumentRender(t *testing.T) {
	b := new(strings.Builder)
	require.Nil(t, errorhandler.Document{Title: "Gone", Message: "Moved on."}.Render(b))
	require.Contains(t, b.String(), "<h1>Gone</h1>")
	require.Contains(t, b.String(), "<p>Moved on.</p>")
}

// trackFs counts opened and closed files on top of an in-memory filesystem.
type trackFs struct {
	afero.Fs
	opens    int
	closes   int
	closeErr error
}

func newTrackFs() *trackFs { return &trackFs{Fs: afero.NewMemMapFs()} }

func (fs *trackFs) Open(name string) (afero.File, error) {
	f, err := fs.Fs.Open(name)
	if err != nil {
		return nil, err
	}

	fs.opens++
	return &trackFile{File: f, fs: fs}, nil
}

type trackFile struct {
	afero.File
	fs *trackFs
}

func (f *trackFile) Close() error {
	f.fs.closes++
	if err := f.File.Close(); err != nil {
		return err
	}

	return f.fs.closeErr
}
