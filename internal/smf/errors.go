package smf

import (
	"errors"
	"fmt"
)

// Error definitions for container decoding failures.
var (
	ErrMalformedVarint     = errors.New("malformed variable-length quantity")
	ErrTruncatedChunk      = errors.New("truncated chunk")
	ErrUnsupportedFormat   = errors.New("unsupported header format")
	ErrUnknownHeaderFormat = errors.New("unknown header format")
)

// ParseError records where in the input buffer decoding failed.
// The wrapped Err is one of the sentinel errors above.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("smf: offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// rebase shifts the offset of a chunk-relative ParseError to an absolute one.
func rebase(err error, base int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Offset += base
	}
	return err
}
