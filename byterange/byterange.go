// Package byterange describes an inclusive interval of bytes within a resource,
// as requested by an HTTP Range header.
//
// A Range is a plain value: building one with a composite literal or [Of]
// performs no checks, so a reversed interval such as {100, 50} can exist.
// Code handing a Range to anything that slices a resource
// builds it with [New] or checks it with [Range.Valid] or [Range.ValidFor] first.
package byterange

import (
	"errors"
	"fmt"
)

var (
	ErrInvalid        = errors.New("invalid range")
	ErrNotSatisfiable = errors.New("range not satisfiable")
)

// A Range is the inclusive byte interval [From, To].
// The zero value is the first byte of a resource.
type Range struct {
	From int64
	To   int64
}

// Of constructs a Range without validating it.
func Of(from, to int64) Range {
	return Range{From: from, To: to}
}

// New constructs a Range, returning ErrInvalid if from is negative
// or from is past to.
func New(from, to int64) (Range, error) {
	r := Of(from, to)
	if err := r.Valid(); err != nil {
		return Range{}, err
	}

	return r, nil
}

// Valid asserts r describes a non-empty, forward interval of non-negative offsets.
func (r Range) Valid() error {
	if r.From < 0 || r.To < 0 {
		return fmt.Errorf("%w: negative offset in %s", ErrInvalid, r)
	}

	if r.From > r.To {
		return fmt.Errorf("%w: %s starts after it ends", ErrInvalid, r)
	}

	return nil
}

// ValidFor asserts r is Valid and falls entirely within a resource of size bytes.
func (r Range) ValidFor(size int64) error {
	if err := r.Valid(); err != nil {
		return err
	}

	if r.To >= size {
		return fmt.Errorf("%w: %s exceeds resource of %d bytes", ErrNotSatisfiable, r, size)
	}

	return nil
}

// Len returns the number of bytes r covers.
// Len is only meaningful for a Valid Range.
func (r Range) Len() int64 { return r.To - r.From + 1 }

// String formats r as the byte-range-spec of a Range header, e.g. "100-199".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// ContentRange formats r as the value of a Content-Range header
// for a resource of size bytes, e.g. "bytes 100-199/1000".
func (r Range) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %s/%d", r, size)
}
