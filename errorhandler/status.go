package errorhandler

import "net/http"

// DocumentConfig exposes the override documents configured for error statuses.
type DocumentConfig interface {
	ErrorDocument403Path() string
	ErrorDocument404Path() string
}

const (
	notFoundExplanation  = "The requested resource was not found on this server."
	forbiddenExplanation = "You do not have permission to access the requested resource."
	internalExplanation  = "The server encountered an internal error and was unable to complete the request."
)

// NotFound constructs the HTML handler for a requested resource that does not exist,
// serving the 404 override document of cfg when one is configured.
func NotFound(cfg DocumentConfig, opts ...OptFn) *ErrorHandler {
	return New(HTML, http.StatusNotFound, "Error 404 - Not Found", withDefaults(
		opts,
		WithExplanation(notFoundExplanation),
		WithDocument(cfg.ErrorDocument404Path()),
	)...)
}

// Forbidden constructs the HTML handler for a resource the client may not access,
// serving the 403 override document of cfg when one is configured.
func Forbidden(cfg DocumentConfig, opts ...OptFn) *ErrorHandler {
	return New(HTML, http.StatusForbidden, "Error 403 - Forbidden", withDefaults(
		opts,
		WithExplanation(forbiddenExplanation),
		WithDocument(cfg.ErrorDocument403Path()),
	)...)
}

// InternalServerError constructs the HTML handler for an unexpected failure.
// The text of err is only rendered when verbose is true.
func InternalServerError(err error, verbose bool, opts ...OptFn) *ErrorHandler {
	explanation := internalExplanation
	if verbose && err != nil {
		explanation = err.Error()
	}

	return New(HTML, http.StatusInternalServerError, "Error 500 - Internal Server Error", withDefaults(
		opts,
		WithExplanation(explanation),
	)...)
}

// BadRequest constructs the plain text handler for a malformed request.
func BadRequest(opts ...OptFn) *ErrorHandler {
	return New(Plain, http.StatusBadRequest, "Error 400 - Bad Request", opts...)
}

// MethodNotAllowed constructs the plain text handler for a method the server does not support.
func MethodNotAllowed(opts ...OptFn) *ErrorHandler {
	return New(Plain, http.StatusMethodNotAllowed, "Error 405 - Method Not Allowed", opts...)
}

// RangeNotSatisfiable constructs the plain text handler for a Range outside the resource.
func RangeNotSatisfiable(opts ...OptFn) *ErrorHandler {
	return New(Plain, http.StatusRequestedRangeNotSatisfiable, "Error 416 - Range Not Satisfiable", opts...)
}

// TooManyRequests constructs the plain text handler for a client sending requests too quickly.
func TooManyRequests(opts ...OptFn) *ErrorHandler {
	return New(Plain, http.StatusTooManyRequests, "Error 429 - Too Many Requests", opts...)
}

// ServiceUnavailable constructs the plain text handler for a server unable to take the request.
func ServiceUnavailable(opts ...OptFn) *ErrorHandler {
	return New(Plain, http.StatusServiceUnavailable, "Error 503 - Service Unavailable", opts...)
}

// withDefaults places defaults ahead of opts so callers can override them.
func withDefaults(opts []OptFn, defaults ...OptFn) []OptFn {
	return append(defaults, opts...)
}
