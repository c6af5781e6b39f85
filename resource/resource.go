// Package resource resolves request paths to servable content.
package resource

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/httpd/response"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotExist  = errors.New("resource not exist")
)

// A Provider is a strategy for resolving a request path to content.
//
// A server asks each Provider in turn whether it CanLoad the path
// and lets the first that can Load the response.
type Provider interface {
	CanLoad(path string) bool
	Load(sink response.Sink, r *http.Request) error
}
