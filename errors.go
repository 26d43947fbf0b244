package plainjson

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrMalformedInput = errors.New("plainjson: malformed input")
	ErrTypeMismatch   = errors.New("plainjson: type mismatch")
	ErrUnknownMember  = errors.New("plainjson: unknown member")
	ErrTooDeep        = errors.New("plainjson: nesting too deep")
)

// DecodeError describes the first problem the reader recovered from.
// Kind is one of the Err* sentinels; errors.Is matches against it.
type DecodeError struct {
	Kind   error
	Offset int
	Type   reflect.Type
	Member string
}

func (e *DecodeError) Error() string {
	switch {
	case e.Member != "" && e.Type != nil:
		return fmt.Sprintf("%v: member %q of %v at offset %d", e.Kind, e.Member, e.Type, e.Offset)
	case e.Type != nil:
		return fmt.Sprintf("%v: %v at offset %d", e.Kind, e.Type, e.Offset)
	default:
		return fmt.Sprintf("%v at offset %d", e.Kind, e.Offset)
	}
}

func (e *DecodeError) Unwrap() error { return e.Kind }
