package poly

import (
	"errors"
	"fmt"
)

// InvalidArgumentError reports an input value that cannot serve as a
// polynomial coefficient. It is the only error kind this package produces:
// construction is the sole fallible operation.
type InvalidArgumentError struct {
	// Index is the position of the offending value in the coefficient
	// sequence, or -1 when the error is not positional.
	Index int

	// Value is the offending input as supplied.
	Value string

	// Message describes why the value was rejected.
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("coefficient %d (%s): %s", e.Index, e.Value, e.Message)
	}
	return fmt.Sprintf("coefficient %s: %s", e.Value, e.Message)
}

// IsInvalidArgument reports whether err (possibly wrapped) is an
// InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var argErr *InvalidArgumentError
	return errors.As(err, &argErr)
}
