package engine

import (
	"errors"
	"fmt"
)

// RuntimeError is an error detected while executing a session.
//
// The categories:
//   - Undefined polynomial: a step references a name that is neither
//     declared nor saved by an earlier step
//   - Duplicate name: a step tries to save a result under an existing name
//   - Unsupported op: a step names an operation the executor doesn't know
//   - Missing argument: an op lacks a field it requires (eval without at,
//     add without with)
//
// The structured fields let callers report the failing step precisely.
type RuntimeError struct {
	// Code names the error category.
	Code RuntimeErrorCode

	// Message describes the failure for humans.
	Message string

	// Seq is the 1-based step number where the error occurred,
	// or 0 when the error is not step-scoped.
	Seq int

	// Name is the offending name: a polynomial reference, a save target,
	// an op, or a missing field, depending on Code.
	Name string
}

// RuntimeErrorCode is the stable identifier for a runtime error category.
type RuntimeErrorCode string

const (
	// ErrCodeUndefinedPolynomial indicates a reference to an unknown name.
	ErrCodeUndefinedPolynomial RuntimeErrorCode = "UNDEFINED_POLYNOMIAL"

	// ErrCodeDuplicateName indicates a save target that already exists.
	ErrCodeDuplicateName RuntimeErrorCode = "DUPLICATE_NAME"

	// ErrCodeUnsupportedOp indicates an operation the executor doesn't know.
	ErrCodeUnsupportedOp RuntimeErrorCode = "UNSUPPORTED_OP"

	// ErrCodeMissingArgument indicates an op invoked without a required field.
	ErrCodeMissingArgument RuntimeErrorCode = "MISSING_ARGUMENT"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Seq > 0 && e.Name != "" {
		return fmt.Sprintf("%s: %s (step=%d, name=%s)", e.Code, e.Message, e.Seq, e.Name)
	}
	if e.Seq > 0 {
		return fmt.Sprintf("%s: %s (step=%d)", e.Code, e.Message, e.Seq)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUndefinedPolynomial reports whether err (possibly wrapped) is an
// undefined name error.
func IsUndefinedPolynomial(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeUndefinedPolynomial
	}
	return false
}

// IsDuplicateName reports whether err (possibly wrapped) is a duplicate
// save name error.
func IsDuplicateName(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeDuplicateName
	}
	return false
}

// NewUndefinedPolynomialError creates a RuntimeError for an unknown reference.
func NewUndefinedPolynomialError(seq int, name string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUndefinedPolynomial,
		Message: fmt.Sprintf("polynomial %q is not defined", name),
		Seq:     seq,
		Name:    name,
	}
}

// NewDuplicateNameError creates a RuntimeError for a save name collision.
func NewDuplicateNameError(seq int, name string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeDuplicateName,
		Message: fmt.Sprintf("name %q is already defined", name),
		Seq:     seq,
		Name:    name,
	}
}

// NewUnsupportedOpError creates a RuntimeError for an unknown operation.
func NewUnsupportedOpError(seq int, op string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUnsupportedOp,
		Message: fmt.Sprintf("unsupported op %q", op),
		Seq:     seq,
		Name:    op,
	}
}

// NewMissingArgumentError creates a RuntimeError for a missing op field.
func NewMissingArgumentError(seq int, field string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeMissingArgument,
		Message: fmt.Sprintf("op requires a %q argument", field),
		Seq:     seq,
		Name:    field,
	}
}
