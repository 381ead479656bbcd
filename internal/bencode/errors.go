package bencode

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF     = errors.New("unexpected end of data")
	ErrInvalidInteger    = errors.New("invalid integer")
	ErrInvalidLength     = errors.New("invalid string length")
	ErrMissingTerminator = errors.New("missing terminator")
	ErrInvalidKey        = errors.New("invalid dictionary key")
	ErrUnknownTag        = errors.New("unknown value tag")
	ErrNotDictionary     = errors.New("top-level value is not a dictionary")
	ErrTooDeep           = errors.New("nesting too deep")
)

// DecodeError reports malformed bencoded input. Err wraps one of the
// sentinel errors above, so errors.Is can be used to tell them apart.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bencode: %v at offset %d", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
