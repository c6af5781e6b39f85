package mimemap_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/httpd/mimemap"
)

const mimeTypes = `
# MIME types served by httpd
text/html	html htm
text/css	css
image/png	png PNG
application/octet-stream
application/x-font	woff   # trailing comment
`

func TestNew(t *testing.T) {
	// Arrange + Act
	zero := mimemap.New("")
	custom := mimemap.New("application/octet-stream")

	// Assert
	require.Equal(t, mimemap.DefaultType, zero.DefaultType())
	require.Equal(t, mimemap.DefaultType, zero.TypeByExtension("html"))
	require.Equal(t, 0, zero.Len())
	require.Equal(t, "application/octet-stream", custom.TypeByExtension(".exe"))
}

func TestFromReader(t *testing.T) {
	// Arrange + Act
	tbl, err := mimemap.FromReader(strings.NewReader(mimeTypes), "text/plain")

	// Assert
	require.Nil(t, err)
	require.Equal(t, 5, tbl.Len())

	for _, tc := range []struct {
		ext      string
		expected string
	}{
		{"html", "text/html"},
		{".htm", "text/html"},
		{"HTML", "text/html"},
		{"css", "text/css"},
		{"png", "image/png"},
		{"woff", "application/x-font"},
		{"dhtml", "text/plain"},
		{"", "text/plain"},
	} {
		t.Run(tc.ext, func(t *testing.T) {
			require.Equal(t, tc.expected, tbl.TypeByExtension(tc.ext))
		})
	}

	require.Equal(t, "text/css", mimemap.TypeByPath(tbl, "/www/styles/site.css"))
	require.Equal(t, "text/plain", mimemap.TypeByPath(tbl, "/www/README"))
}

func TestFromReaderErr(t *testing.T) {
	t.Run("Malformed", func(t *testing.T) {
		_, err := mimemap.FromReader(strings.NewReader("html text/html\n"), "")
		require.ErrorIs(t, err, mimemap.ErrMalformed)
	})

	t.Run("Read", func(t *testing.T) {
		expected := errors.New("disk on fire")
		_, err := mimemap.FromReader(iotest.ErrReader(expected), "")
		require.ErrorIs(t, err, expected)
	})
}
