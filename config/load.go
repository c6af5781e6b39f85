package config

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/xy-planning-network/httpd"
	"github.com/xy-planning-network/httpd/logger"
	"github.com/xy-planning-network/httpd/mimemap"
)

// directives holds the httpd.conf values Load recognizes.
// A nil field was absent from the file.
type directives struct {
	Listen                 *int    `mapstructure:"Listen"`
	DocumentRoot           *string `mapstructure:"DocumentRoot"`
	MaxThreads             *int    `mapstructure:"MaxThreads"`
	KeepAlive              *string `mapstructure:"KeepAlive"`
	ErrorDocument404       *string `mapstructure:"ErrorDocument404"`
	ErrorDocument403       *string `mapstructure:"ErrorDocument403"`
	ServletMappedExtension *string `mapstructure:"ServletMappedExtension"`
	MimeType               *string `mapstructure:"MimeType"`
	DefaultMimeType        *string `mapstructure:"DefaultMimeType"`
	DirectoryIndex         *string `mapstructure:"DirectoryIndex"`
}

type loader struct {
	fs  afero.Fs
	log logger.Logger
}

// Load constructs a *Config from the httpd.conf file in basePath.
//
// An empty basePath uses DefaultBasePath and an empty tempPath uses DefaultTempPath.
//
// Load returns an httpd.ErrNotExist-wrapped error if httpd.conf or the MIME source cannot be opened,
// an httpd.ErrParse-wrapped error if a numeric directive is not an integer
// and an httpd.ErrBadConfig-wrapped error if the values read cannot run a server.
func Load(basePath, tempPath string, opts ...LoadOptFn) (*Config, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	if l.fs == nil {
		l.fs = afero.NewOsFs()
	}

	if l.log == nil {
		l.log = logger.New()
	}

	if basePath == "" {
		basePath = DefaultBasePath
	}

	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}

	raw, err := l.read(basePath + configFile)
	if err != nil {
		return nil, err
	}

	d, err := decode(raw)
	if err != nil {
		return nil, err
	}

	cfg := Default(tempPath)
	cfg.basePath = basePath
	cfg.documentRootPath = basePath + DefaultDocumentRoot

	if d.Listen != nil {
		cfg.listenPort = *d.Listen
	}

	if d.DocumentRoot != nil {
		cfg.documentRootPath = basePath + *d.DocumentRoot
	}

	if d.MaxThreads != nil {
		cfg.maxServerThreads = *d.MaxThreads
	}

	if d.KeepAlive != nil {
		cfg.keepAlive = strings.EqualFold(*d.KeepAlive, "on")
	}

	if d.ErrorDocument404 != nil {
		cfg.errorDocument404Path = basePath + *d.ErrorDocument404
	}

	if d.ErrorDocument403 != nil {
		cfg.errorDocument403Path = basePath + *d.ErrorDocument403
	}

	if d.ServletMappedExtension != nil {
		cfg.servletMappedExtension = *d.ServletMappedExtension
	}

	// NOTE(dlk): the index defaults keep the extension they were built with,
	// a later ServletMappedExtension does not rename Index.dhtml.
	if d.DirectoryIndex != nil {
		cfg.directoryIndex = append(cfg.directoryIndex, strings.Fields(*d.DirectoryIndex)...)
	}

	def := mimemap.DefaultType
	if d.DefaultMimeType != nil && *d.DefaultMimeType != "" {
		def = *d.DefaultMimeType
	}

	cfg.mimeTypeMapping = mimemap.New(def)
	if d.MimeType != nil && *d.MimeType != "" {
		m, err := l.mimeTypes(basePath+*d.MimeType, def)
		if err != nil {
			return nil, err
		}

		cfg.mimeTypeMapping = m
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decode converts raw directive values into their typed form.
// Directive names match exactly and integers are base 10.
func decode(raw map[string]string) (directives, error) {
	var d directives
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(decimalHook),
		MatchName:  func(mapKey, fieldName string) bool { return mapKey == fieldName },
		Result:     &d,
	})
	if err != nil {
		return d, err
	}

	if err := dec.Decode(raw); err != nil {
		return d, fmt.Errorf("%w: %s", httpd.ErrParse, err)
	}

	return d, nil
}

// decimalHook parses a string headed for an int field as a base 10 integer.
func decimalHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return data, nil
	}

	s := data.(string)
	if s == "" {
		return nil, fmt.Errorf("%w: empty value", httpd.ErrParse)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an integer", httpd.ErrParse, s)
	}

	return n, nil
}

func (l *loader) read(name string) (map[string]string, error) {
	f, err := l.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", httpd.ErrNotExist, err)
	}
	defer l.close(f)

	raw, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", httpd.ErrNotExist, name, err)
	}

	return raw, nil
}

func (l *loader) mimeTypes(name, def string) (*mimemap.Table, error) {
	f, err := l.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", httpd.ErrNotExist, err)
	}
	defer l.close(f)

	return mimemap.FromReader(f, def)
}

func (l *loader) close(c io.Closer) {
	if err := c.Close(); err != nil {
		l.log.Warn("could not close config source", &logger.LogContext{Error: err})
	}
}
