// Command httpd serves the document root configured by the httpd.conf in its base path.
//
// Usage:
//
//	httpd [--base-path dir] [--temp-path dir] [--rate-limit n] [--rate-burst n]
//	      [--read-header-timeout d] [--verbose-errors]
//
// Flags default to HTTPD_BASE_PATH, HTTPD_TEMP_PATH, HTTPD_RATE_LIMIT, HTTPD_RATE_BURST,
// HTTPD_READ_HEADER_TIMEOUT and HTTPD_VERBOSE_ERRORS, which may also be set in a .env file
// in the working directory along with LOG_LEVEL, ENVIRONMENT and SENTRY_DSN.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xy-planning-network/httpd/logger"
)

func main() {
	if err := loadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := logger.New()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(l).ExecuteContext(ctx); err != nil {
		l.Fatal(err.Error(), nil)
		cancel()
		os.Exit(1)
	}
}
