package config_test

import (
	"bytes"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/httpd"
	"github.com/xy-planning-network/httpd/config"
	"github.com/xy-planning-network/httpd/logger"
)

const base = "/srv/httpd/"

func writeConf(t *testing.T, fs afero.Fs, content string) {
	require.Nil(t, afero.WriteFile(fs, base+"httpd.conf", []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	writeConf(t, fs, "# nothing set\n")

	// Act
	cfg, err := config.Load(base, "", config.WithFs(fs))

	// Assert
	require.Nil(t, err)
	require.Equal(t, base, cfg.BasePath())
	require.Equal(t, base+"www/", cfg.DocumentRootPath())
	require.Equal(t, "/httpd/temp/", cfg.TempPath())
	require.Equal(t, 8080, cfg.ListenPort())
	require.Equal(t, "dhtml", cfg.ServletMappedExtension())
	require.Equal(t, 10, cfg.MaxServerThreads())
	require.False(t, cfg.KeepAlive())
	require.Empty(t, cfg.ErrorDocument404Path())
	require.Empty(t, cfg.ErrorDocument403Path())
	require.Equal(t, []string{"Index.dhtml", "index.html", "index.htm"}, cfg.DirectoryIndex())
	require.NotNil(t, cfg.MimeTypeMapping())
	require.Equal(t, "text/plain", cfg.MimeTypeMapping().DefaultType())
}

func TestLoadBasePathSlash(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	writeConf(t, fs, "")

	// Act
	cfg, err := config.Load("/srv/httpd", "/scratch/", config.WithFs(fs))

	// Assert
	require.Nil(t, err)
	require.Equal(t, base, cfg.BasePath())
	require.Equal(t, "/scratch/", cfg.TempPath())
}

func TestLoadDirectives(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	writeConf(t, fs, `
# test server
Listen 9090
DocumentRoot public/
MaxThreads 4
KeepAlive ON
ErrorDocument404 errors/404.html
ErrorDocument403 errors/403.html
ServletMappedExtension jsx
MimeType conf/mime.types
DefaultMimeType application/octet-stream
DirectoryIndex home.html default.html
Unknown value
`)
	require.Nil(t, afero.WriteFile(fs, base+"conf/mime.types", []byte("text/html html htm\ntext/css css\n"), 0644))

	// Act
	cfg, err := config.Load(base, "", config.WithFs(fs))

	// Assert
	require.Nil(t, err)
	require.Equal(t, 9090, cfg.ListenPort())
	require.Equal(t, base+"public/", cfg.DocumentRootPath())
	require.Equal(t, 4, cfg.MaxServerThreads())
	require.True(t, cfg.KeepAlive())
	require.Equal(t, base+"errors/404.html", cfg.ErrorDocument404Path())
	require.Equal(t, base+"errors/403.html", cfg.ErrorDocument403Path())
	require.Equal(t, "jsx", cfg.ServletMappedExtension())
	require.Equal(t, []string{"Index.dhtml", "index.html", "index.htm", "home.html", "default.html"}, cfg.DirectoryIndex())
	require.Equal(t, "text/html", cfg.MimeTypeMapping().TypeByExtension("htm"))
	require.Equal(t, "text/css", cfg.MimeTypeMapping().TypeByExtension(".CSS"))
	require.Equal(t, "application/octet-stream", cfg.MimeTypeMapping().TypeByExtension("bin"))
}

func TestLoadKeepAlive(t *testing.T) {
	for _, tc := range []struct {
		value    string
		expected bool
	}{
		{"on", true},
		{"On", true},
		{"off", false},
		{"yes", false},
		{"", false},
	} {
		t.Run(tc.value, func(t *testing.T) {
			// Arrange
			fs := afero.NewMemMapFs()
			writeConf(t, fs, "KeepAlive "+tc.value)

			// Act
			cfg, err := config.Load(base, "", config.WithFs(fs))

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, cfg.KeepAlive())
		})
	}
}

func TestLoadDecimalIntegers(t *testing.T) {
	for _, tc := range []struct {
		value    string
		expected int
	}{
		{"8081", 8081},
		{"010", 10},
		{"08080", 8080},
		{"+80", 80},
	} {
		t.Run(tc.value, func(t *testing.T) {
			// Arrange
			fs := afero.NewMemMapFs()
			writeConf(t, fs, "Listen "+tc.value)

			// Act
			cfg, err := config.Load(base, "", config.WithFs(fs))

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, cfg.ListenPort())
		})
	}
}

func TestLoadKeysCaseSensitive(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	writeConf(t, fs, `
listen 9000
keepalive on
maxthreads 3
documentroot public/
errordocument404 errors/404.html
LISTEN 9001
directoryindex home.html
`)

	// Act
	cfg, err := config.Load(base, "", config.WithFs(fs))

	// Assert
	require.Nil(t, err)
	require.Equal(t, 8080, cfg.ListenPort())
	require.False(t, cfg.KeepAlive())
	require.Equal(t, 10, cfg.MaxServerThreads())
	require.Equal(t, base+"www/", cfg.DocumentRootPath())
	require.Empty(t, cfg.ErrorDocument404Path())
	require.Equal(t, []string{"Index.dhtml", "index.html", "index.htm"}, cfg.DirectoryIndex())
}

func TestLoadDirectoryIndexAppends(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	writeConf(t, fs, "DirectoryIndex home.html")

	// Act
	cfg, err := config.Load(base, "", config.WithFs(fs))

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"Index.dhtml", "index.html", "index.htm", "home.html"}, cfg.DirectoryIndex())
}

func TestLoadErr(t *testing.T) {
	for _, tc := range []struct {
		name     string
		conf     string
		expected error
	}{
		{"Listen-Not-Int", "Listen eighty", httpd.ErrParse},
		{"Listen-Empty", "Listen", httpd.ErrParse},
		{"Listen-Hex", "Listen 0x10", httpd.ErrParse},
		{"Listen-Underscore", "Listen 8_080", httpd.ErrParse},
		{"MaxThreads-Empty", "MaxThreads", httpd.ErrParse},
		{"MaxThreads-Not-Int", "MaxThreads many", httpd.ErrParse},
		{"Listen-Zero", "Listen 0", httpd.ErrBadConfig},
		{"Listen-Too-Big", "Listen 70000", httpd.ErrBadConfig},
		{"MaxThreads-Zero", "MaxThreads 0", httpd.ErrBadConfig},
		{"Missing-Mime-Source", "MimeType conf/missing.types", httpd.ErrNotExist},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			fs := afero.NewMemMapFs()
			writeConf(t, fs, tc.conf)

			// Act
			cfg, err := config.Load(base, "", config.WithFs(fs))

			// Assert
			require.ErrorIs(t, err, tc.expected)
			require.Nil(t, cfg)
		})
	}
}

func TestLoadMissingConf(t *testing.T) {
	// Act
	cfg, err := config.Load(base, "", config.WithFs(afero.NewMemMapFs()))

	// Assert
	require.ErrorIs(t, err, httpd.ErrNotExist)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Nil(t, cfg)
}

type closeErrFs struct {
	afero.Fs
}

func (fs closeErrFs) Open(name string) (afero.File, error) {
	f, err := fs.Fs.Open(name)
	if err != nil {
		return nil, err
	}

	return closeErrFile{f}, nil
}

type closeErrFile struct {
	afero.File
}

func (f closeErrFile) Close() error {
	f.File.Close()
	return errors.New("close failed")
}

func TestLoadCloseErrLogged(t *testing.T) {
	// Arrange
	mem := afero.NewMemMapFs()
	writeConf(t, mem, "Listen 8081")

	var b bytes.Buffer
	l := logger.New(logger.WithLogger(log.New(&b, "", 0)), logger.WithLevel(logger.LogLevelDebug))

	// Act
	cfg, err := config.Load(base, "", config.WithFs(closeErrFs{mem}), config.WithLogger(l))

	// Assert
	require.Nil(t, err)
	require.Equal(t, 8081, cfg.ListenPort())
	require.Contains(t, b.String(), "close failed")
}
