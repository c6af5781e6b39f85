package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/xy-planning-network/httpd/logger"
	"github.com/xy-planning-network/httpd/mimemap"
	"github.com/xy-planning-network/httpd/response"
)

// FileProvider serves static files below a document root.
// A FileProvider is safe for concurrent use.
type FileProvider struct {
	root     string
	index    []string
	mime     mimemap.Mapping
	excluded map[string]bool
	fs       afero.Fs
	l        logger.Logger
}

var _ Provider = (*FileProvider)(nil)

// A FileOptFn configures a FileProvider when constructing a new one.
type FileOptFn func(*FileProvider)

// WithExcludedExtensions keeps files with any of exts, with or without their leading dot,
// from being served as static content.
func WithExcludedExtensions(exts ...string) FileOptFn {
	return func(p *FileProvider) {
		for _, ext := range exts {
			if ext == "" {
				continue
			}
			p.excluded[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
		}
	}
}

// WithFileSystem sets the filesystem files are read from.
func WithFileSystem(fs afero.Fs) FileOptFn {
	return func(p *FileProvider) {
		p.fs = fs
	}
}

// WithLogger sets the logger.Logger reporting failures that do not fail Load.
func WithLogger(l logger.Logger) FileOptFn {
	return func(p *FileProvider) {
		p.l = l
	}
}

// NewFileProvider constructs a *FileProvider serving files below root.
// A request for a directory is served the first of index present in it.
func NewFileProvider(root string, index []string, m mimemap.Mapping, opts ...FileOptFn) *FileProvider {
	if m == nil {
		m = mimemap.New("")
	}

	p := &FileProvider{
		root:     root,
		index:    append([]string(nil), index...),
		mime:     m,
		excluded: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}

	if p.l == nil {
		p.l = logger.New()
	}

	return p
}

// CanLoad asserts whether a file or directory exists for urlPath.
func (p *FileProvider) CanLoad(urlPath string) bool {
	name := p.filename(urlPath)
	if p.isExcluded(name) {
		return false
	}

	_, err := p.fs.Stat(name)
	return err == nil
}

// Load streams the file for the request path, resolving directories through the index.
//
// Load returns ErrForbidden for a directory without an index file
// and ErrNotExist when nothing exists at the path.
func (p *FileProvider) Load(sink response.Sink, r *http.Request) error {
	name, info, err := p.resolve(r.URL.Path)
	if err != nil {
		return err
	}

	f, err := p.fs.Open(name)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", r.URL.Path, err)
	}
	defer p.close(f, name)

	sink.SetStatus(http.StatusOK)
	sink.SetContentType(mimemap.TypeByPath(p.mime, name))
	sink.SetContentLength(info.Size())
	if err := sink.FlushHeaders(); err != nil {
		return err
	}

	if _, err := sink.ServeStream(f); err != nil {
		return fmt.Errorf("cannot serve %s: %w", r.URL.Path, err)
	}

	return sink.Flush()
}

// resolve finds the file to serve for urlPath.
func (p *FileProvider) resolve(urlPath string) (string, os.FileInfo, error) {
	name := p.filename(urlPath)
	if p.isExcluded(name) {
		return "", nil, fmt.Errorf("%w: %s", ErrNotExist, urlPath)
	}

	info, err := p.fs.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, fmt.Errorf("%w: %s", ErrNotExist, urlPath)
	}

	if errors.Is(err, fs.ErrPermission) {
		return "", nil, fmt.Errorf("%w: %s", ErrForbidden, urlPath)
	}

	if err != nil {
		return "", nil, fmt.Errorf("cannot stat %s: %w", urlPath, err)
	}

	if !info.IsDir() {
		return name, info, nil
	}

	for _, idx := range p.index {
		candidate := filepath.Join(name, idx)
		if p.isExcluded(candidate) {
			continue
		}

		info, err := p.fs.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, info, nil
		}
	}

	return "", nil, fmt.Errorf("%w: %s has no index", ErrForbidden, urlPath)
}

// filename maps urlPath onto the document root.
// Cleaning urlPath as an absolute path keeps ".." from escaping the root.
func (p *FileProvider) filename(urlPath string) string {
	clean := path.Clean("/" + urlPath)
	return filepath.Join(p.root, filepath.FromSlash(clean))
}

func (p *FileProvider) isExcluded(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return ext != "" && p.excluded[ext]
}

func (p *FileProvider) close(f afero.File, name string) {
	if err := f.Close(); err != nil {
		p.l.Warn("could not close file", &logger.LogContext{
			Data:  map[string]any{"path": name},
			Error: err,
		})
	}
}
