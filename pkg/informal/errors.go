package informal

import (
	"errors"
	"fmt"
)

// Error categories returned by resolution.
var (
	ErrInput           = errors.New("input error")
	ErrUnsupportedType = errors.New("unsupported input type")
)

// InputError reports an I/O failure of the line source or message writer.
// It aborts resolution; parse and validation failures never produce one.
type InputError struct {
	Op    string // "read" or "write"
	Cause error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", ErrInput, e.Op, e.Cause)
}

func (e *InputError) Unwrap() []error {
	return []error{ErrInput, e.Cause}
}

func readError(cause error) error {
	return &InputError{Op: "read", Cause: cause}
}

func writeError(cause error) error {
	return &InputError{Op: "write", Cause: cause}
}
