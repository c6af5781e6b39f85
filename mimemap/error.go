package mimemap

import "errors"

var ErrMalformed = errors.New("malformed MIME types")
