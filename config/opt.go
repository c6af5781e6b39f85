package config

import (
	"github.com/spf13/afero"
	"github.com/xy-planning-network/httpd/logger"
)

// A LoadOptFn configures how Load reads its sources.
type LoadOptFn func(*loader)

// WithFs sets the filesystem httpd.conf and the MIME source are read from.
func WithFs(fs afero.Fs) LoadOptFn {
	return func(l *loader) {
		l.fs = fs
	}
}

// WithLogger sets the logger.Logger reporting failures that do not fail Load.
func WithLogger(log logger.Logger) LoadOptFn {
	return func(l *loader) {
		l.log = log
	}
}
