package config

import (
	"net/http"

	"github.com/xy-planning-network/httpd/mimemap"
	"github.com/xy-planning-network/httpd/resource"
)

const (
	DefaultBasePath               = "/httpd/"
	DefaultDocumentRoot           = "www/"
	DefaultTempPath               = "/httpd/temp/"
	DefaultListenPort             = 8080
	DefaultServletMappedExtension = "dhtml"
	DefaultMaxServerThreads       = 10
	configFile                    = "httpd.conf"
)

var supportedMethods = []string{http.MethodGet, http.MethodPost, http.MethodHead}

// A ServerConfig exposes the settings a server runs with.
type ServerConfig interface {
	BasePath() string
	DocumentRootPath() string
	TempPath() string
	ListenPort() int
	ServletMappedExtension() string
	MimeTypeMapping() mimemap.Mapping
	MaxServerThreads() int
	KeepAlive() bool
	ErrorDocument404Path() string
	ErrorDocument403Path() string
	DirectoryIndex() []string
	SupportedMethods() []string
	ResourceProviders() []resource.Provider
}

// A Config is an immutable ServerConfig.
// Use Default or Load to construct one.
type Config struct {
	basePath               string
	documentRootPath       string
	tempPath               string
	listenPort             int
	servletMappedExtension string
	mimeTypeMapping        mimemap.Mapping
	maxServerThreads       int
	keepAlive              bool
	errorDocument404Path   string
	errorDocument403Path   string
	directoryIndex         []string
	providers              []resource.Provider
}

var _ ServerConfig = (*Config)(nil)

// Default constructs the *Config a server runs with when httpd.conf sets nothing.
//
// An empty tempPath uses DefaultTempPath.
func Default(tempPath string) *Config {
	if tempPath == "" {
		tempPath = DefaultTempPath
	}

	return &Config{
		basePath:               DefaultBasePath,
		documentRootPath:       DefaultBasePath + DefaultDocumentRoot,
		tempPath:               tempPath,
		listenPort:             DefaultListenPort,
		servletMappedExtension: DefaultServletMappedExtension,
		mimeTypeMapping:        mimemap.New(mimemap.DefaultType),
		maxServerThreads:       DefaultMaxServerThreads,
		directoryIndex:         defaultIndex(DefaultServletMappedExtension),
	}
}

func defaultIndex(ext string) []string {
	return []string{"Index." + ext, "index.html", "index.htm"}
}

// BasePath is the directory httpd.conf, error documents and the MIME source are found in.
// It always ends in "/".
func (c *Config) BasePath() string { return c.basePath }

// DocumentRootPath is the directory static content is served from.
func (c *Config) DocumentRootPath() string { return c.documentRootPath }

// TempPath is the scratch directory.
func (c *Config) TempPath() string { return c.tempPath }

// ListenPort is the TCP port the server binds.
func (c *Config) ListenPort() int { return c.listenPort }

// ServletMappedExtension is the file extension reserved for dynamic handlers.
func (c *Config) ServletMappedExtension() string { return c.servletMappedExtension }

// MimeTypeMapping is never nil.
func (c *Config) MimeTypeMapping() mimemap.Mapping { return c.mimeTypeMapping }

// MaxServerThreads bounds the requests handled at once.
func (c *Config) MaxServerThreads() int { return c.maxServerThreads }

func (c *Config) KeepAlive() bool { return c.keepAlive }

// ErrorDocument404Path is the file served for 404 responses or "" for none.
func (c *Config) ErrorDocument404Path() string { return c.errorDocument404Path }

// ErrorDocument403Path is the file served for 403 responses or "" for none.
func (c *Config) ErrorDocument403Path() string { return c.errorDocument403Path }

// DirectoryIndex lists, in order of preference, the files served for a directory.
func (c *Config) DirectoryIndex() []string { return append([]string(nil), c.directoryIndex...) }

// SupportedMethods lists the HTTP methods a server accepts.
func (c *Config) SupportedMethods() []string { return append([]string(nil), supportedMethods...) }

// ResourceProviders lists, in the order they are asked, the providers resolving requests.
func (c *Config) ResourceProviders() []resource.Provider {
	return append([]resource.Provider(nil), c.providers...)
}

// WithResourceProviders returns a copy of c whose ResourceProviders is providers.
func (c *Config) WithResourceProviders(providers ...resource.Provider) *Config {
	cp := *c
	cp.directoryIndex = c.DirectoryIndex()
	cp.providers = append([]resource.Provider(nil), providers...)

	return &cp
}
