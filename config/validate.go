package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/httpd"
)

var validate = validator.New()

// limits holds the values of a Config that must stay in range.
type limits struct {
	BasePath         string `validate:"required,endswith=/"`
	DocumentRootPath string `validate:"required"`
	ListenPort       int    `validate:"min=1,max=65535"`
	MaxServerThreads int    `validate:"min=1"`
}

// Validate asserts c holds values a server can run with.
// Validate returns an httpd.ErrBadConfig-wrapped error naming every broken rule.
func (c *Config) Validate() error {
	err := validate.Struct(limits{
		BasePath:         c.basePath,
		DocumentRootPath: c.documentRootPath,
		ListenPort:       c.listenPort,
		MaxServerThreads: c.maxServerThreads,
	})
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %s", httpd.ErrBadConfig, err)
	}

	broken := make([]string, 0, len(errs))
	for _, fe := range errs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		broken = append(broken, fmt.Sprintf("%s %v breaks %s", fe.Field(), fe.Value(), rule))
	}

	return fmt.Errorf("%w: %s", httpd.ErrBadConfig, strings.Join(broken, "; "))
}
