package errorhandler

import "errors"

var (
	ErrAlreadyServed   = errors.New("error handler already served")
	ErrHandlerNotFound = errors.New("configured error handler not found")
)
