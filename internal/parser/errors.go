package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine is returned by ParseRecord for a line that is not a data line.
	ErrMalformedLine = errors.New("malformed emoji line")

	// ErrUnknownStatus means a data line matched the grammar but carried a
	// status literal outside the known set. The whole build is aborted.
	ErrUnknownStatus = errors.New("unknown emoji status")
)

// UnknownStatusError carries the offending token and, when raised by the
// builder, the 1-based line number.
type UnknownStatusError struct {
	Line  int
	Token string
}

func (e *UnknownStatusError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s %q", e.Line, ErrUnknownStatus, e.Token)
	}
	return fmt.Sprintf("%s %q", ErrUnknownStatus, e.Token)
}

func (e *UnknownStatusError) Unwrap() error {
	return ErrUnknownStatus
}
