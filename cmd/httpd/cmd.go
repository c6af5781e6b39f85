package main

import (
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/httpd"
	"github.com/xy-planning-network/httpd/config"
	"github.com/xy-planning-network/httpd/logger"
	"github.com/xy-planning-network/httpd/resource"
	"github.com/xy-planning-network/httpd/server"
)

type options struct {
	basePath          string
	tempPath          string
	rateLimit         float64
	rateBurst         int
	readHeaderTimeout time.Duration
	verboseErrors     bool
	fs                afero.Fs
}

// newRootCmd constructs the command loading the config and guiding the server.
func newRootCmd(l logger.Logger) *cobra.Command {
	opts := options{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:           "httpd",
		Short:         "Serve static content as configured by httpd.conf",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := build(cmd, opts, l)
			if err != nil {
				return err
			}

			return srv.Guide()
		},
	}

	cmd.Flags().StringVar(
		&opts.basePath,
		"base-path",
		httpd.EnvVarOrDir("HTTPD_BASE_PATH", config.DefaultBasePath),
		"directory holding httpd.conf",
	)
	cmd.Flags().StringVar(
		&opts.tempPath,
		"temp-path",
		httpd.EnvVarOrDir("HTTPD_TEMP_PATH", config.DefaultTempPath),
		"scratch directory",
	)
	cmd.Flags().Float64Var(
		&opts.rateLimit,
		"rate-limit",
		float64(httpd.EnvVarOrInt("HTTPD_RATE_LIMIT", 0)),
		"requests per second allowed from one client address, 0 for no limit",
	)
	cmd.Flags().IntVar(
		&opts.rateBurst,
		"rate-burst",
		httpd.EnvVarOrInt("HTTPD_RATE_BURST", 20),
		"requests one client address may send at once",
	)
	cmd.Flags().DurationVar(
		&opts.readHeaderTimeout,
		"read-header-timeout",
		httpd.EnvVarOrDuration("HTTPD_READ_HEADER_TIMEOUT", 10*time.Second),
		"time a client may take to send request headers",
	)
	cmd.Flags().BoolVar(
		&opts.verboseErrors,
		"verbose-errors",
		httpd.EnvVarOrBool("HTTPD_VERBOSE_ERRORS", httpd.EnvVarOrEnv("ENVIRONMENT", httpd.Development).Verbose()),
		"render error text in 500 responses",
	)

	return cmd
}

// build loads the config found in opts.basePath and constructs the server for it.
func build(cmd *cobra.Command, opts options, l logger.Logger) (*server.Server, error) {
	cfg, err := config.Load(opts.basePath, opts.tempPath, config.WithFs(opts.fs), config.WithLogger(l))
	if err != nil {
		return nil, err
	}

	files := resource.NewFileProvider(
		cfg.DocumentRootPath(),
		cfg.DirectoryIndex(),
		cfg.MimeTypeMapping(),
		resource.WithFileSystem(opts.fs),
		resource.WithExcludedExtensions(cfg.ServletMappedExtension()),
		resource.WithLogger(l),
	)

	return server.New(
		cfg.WithResourceProviders(files),
		server.WithContext(cmd.Context()),
		server.WithEnv(httpd.EnvVarOrEnv("ENVIRONMENT", httpd.Development)),
		server.WithFs(opts.fs),
		server.WithLogger(l),
		server.WithRateLimit(opts.rateLimit, opts.rateBurst),
		server.WithReadHeaderTimeout(opts.readHeaderTimeout),
		server.WithVerboseErrors(opts.verboseErrors),
	)
}
