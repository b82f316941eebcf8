package worksheet

import (
	"fmt"
	"strings"
)

// Validation error codes (W100-W199)
const (
	ErrNameEmpty         = "W101" // worksheet name must be non-empty
	ErrNoPolynomials     = "W102" // at least one polynomial required
	ErrNoSteps           = "W103" // at least one step required
	ErrUnsupportedOp     = "W104" // op not in the supported set
	ErrUndefinedOperand  = "W105" // step references an undefined name
	ErrMissingAt         = "W106" // eval requires an at value
	ErrMissingWith       = "W107" // add requires a with operand
	ErrDuplicateSaveName = "W108" // save collides with an existing name
	ErrUnexpectedField   = "W109" // field does not apply to this op
)

// ValidationError represents a worksheet validation error.
type ValidationError struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
	Code    string `json:"code" yaml:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a parsed worksheet against semantic rules, collecting
// every violation rather than stopping at the first.
//
// Operand references are checked in step order: a name saved by step n is
// defined for steps after n, not before.
func Validate(ws *Worksheet) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(ws.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required and must be non-empty",
			Code:    ErrNameEmpty,
		})
	}

	if len(ws.Polynomials) == 0 {
		errs = append(errs, ValidationError{
			Field:   "polynomials",
			Message: "at least one polynomial is required",
			Code:    ErrNoPolynomials,
		})
	}

	if len(ws.Steps) == 0 {
		errs = append(errs, ValidationError{
			Field:   "steps",
			Message: "at least one step is required",
			Code:    ErrNoSteps,
		})
	}

	defined := make(map[string]bool, len(ws.Polynomials))
	for name := range ws.Polynomials {
		defined[name] = true
	}

	for i, step := range ws.Steps {
		if !IsSupportedOp(step.Op) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("steps[%d].op", i),
				Message: fmt.Sprintf("unsupported op %q, must be one of %v", step.Op, SupportedOps),
				Code:    ErrUnsupportedOp,
			})
		}

		if step.Poly != "" && !defined[step.Poly] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("steps[%d].poly", i),
				Message: fmt.Sprintf("undefined polynomial %q", step.Poly),
				Code:    ErrUndefinedOperand,
			})
		}

		switch step.Op {
		case OpEval:
			if step.At == nil {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("steps[%d].at", i),
					Message: "eval requires an \"at\" value",
					Code:    ErrMissingAt,
				})
			}
		case OpAdd:
			if step.With == "" {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("steps[%d].with", i),
					Message: "add requires a \"with\" operand",
					Code:    ErrMissingWith,
				})
			} else if !defined[step.With] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("steps[%d].with", i),
					Message: fmt.Sprintf("undefined polynomial %q", step.With),
					Code:    ErrUndefinedOperand,
				})
			}
		}

		if step.Op != OpEval && step.At != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("steps[%d].at", i),
				Message: fmt.Sprintf("op %q does not take an \"at\" value", step.Op),
				Code:    ErrUnexpectedField,
			})
		}

		if step.Op != OpAdd && step.With != "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("steps[%d].with", i),
				Message: fmt.Sprintf("op %q does not take a \"with\" operand", step.Op),
				Code:    ErrUnexpectedField,
			})
		}

		switch step.Op {
		case OpDifferentiate, OpIntegrate, OpAdd:
			if step.Save != "" {
				if defined[step.Save] {
					errs = append(errs, ValidationError{
						Field:   fmt.Sprintf("steps[%d].save", i),
						Message: fmt.Sprintf("name %q is already defined", step.Save),
						Code:    ErrDuplicateSaveName,
					})
				}
				defined[step.Save] = true
			}
		case OpFormat, OpEval:
			if step.Save != "" {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("steps[%d].save", i),
					Message: fmt.Sprintf("op %q does not produce a polynomial to save", step.Op),
					Code:    ErrUnexpectedField,
				})
			}
		}
	}

	return errs
}
