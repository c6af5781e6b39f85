package response

import "errors"

var (
	ErrHeadersNotFlushed = errors.New("headers not flushed")
)
