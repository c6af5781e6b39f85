// Package mimemap maps file extensions to MIME types, falling back to a default type.
package mimemap

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"
)

// DefaultType is the fallback MIME type when none is configured.
const DefaultType = "text/plain"

// A Mapping resolves a file extension to a MIME type.
type Mapping interface {
	// TypeByExtension returns the MIME type for ext, with or without its leading dot,
	// or the default type when ext is unknown.
	TypeByExtension(ext string) string

	// DefaultType returns the fallback MIME type.
	DefaultType() string
}

// A Table is a Mapping backed by an in-memory map.
// A Table is not modified after construction and is safe for concurrent use.
type Table struct {
	def   string
	types map[string]string
}

var _ Mapping = (*Table)(nil)

// New constructs an empty *Table resolving every extension to defaultType.
//
// If defaultType is empty, DefaultType is used.
func New(defaultType string) *Table {
	if defaultType == "" {
		defaultType = DefaultType
	}

	return &Table{def: defaultType, types: make(map[string]string)}
}

// FromReader constructs a *Table from r,
// which holds lines in the mime.types format:
//
//	# comment
//	text/html	html htm
//	image/png	png
//
// A MIME type without extensions is accepted and ignored.
// When an extension is listed more than once, the last listing wins.
func FromReader(r io.Reader, defaultType string) (*Table, error) {
	t := New(defaultType)

	sc := bufio.NewScanner(r)
	var n int
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}

		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if !strings.Contains(fields[0], "/") {
			return nil, fmt.Errorf("%w: line %d: %q is not a MIME type", ErrMalformed, n, fields[0])
		}

		for _, ext := range fields[1:] {
			t.types[normalize(ext)] = fields[0]
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read MIME types: %w", err)
	}

	return t, nil
}

// DefaultType returns the fallback MIME type of the *Table.
func (t *Table) DefaultType() string { return t.def }

// Len returns the number of known extensions.
func (t *Table) Len() int { return len(t.types) }

// TypeByExtension returns the MIME type for ext.
// Lookups ignore case and a leading dot.
func (t *Table) TypeByExtension(ext string) string {
	if typ, ok := t.types[normalize(ext)]; ok {
		return typ
	}

	return t.def
}

// TypeByPath returns the MIME type for the extension of the file at p.
func TypeByPath(m Mapping, p string) string {
	return m.TypeByExtension(path.Ext(p))
}

func normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
