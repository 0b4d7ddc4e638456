package asf

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientData = errors.New("asf: insufficient data")
	ErrMalformedObject  = errors.New("asf: malformed object")
	ErrLimitExceeded    = errors.New("asf: limit exceeded")
	ErrValidation       = errors.New("asf: validation failed")
)

// ObjectError locates a decode failure within the header's child list.
// Index is -1 for the root header object itself.
type ObjectError struct {
	Index  int
	Kind   ObjectKind
	ID     GUID
	Offset int
	Err    error
}

func (e *ObjectError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("header object at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("child object %d (%s %s) at offset %d: %v", e.Index, e.Kind, e.ID, e.Offset, e.Err)
}

func (e *ObjectError) Unwrap() error { return e.Err }
