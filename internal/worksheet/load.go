package worksheet

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/polyx/poly"
)

// ParseError represents a worksheet parsing error with source position.
type ParseError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and parses a worksheet from a single CUE file.
// The CUE evaluation happens in-process through the SDK.
func Load(path string) (*Worksheet, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &ParseError{Field: "file", Message: fmt.Sprintf("worksheet not found: %s", path)}
	}
	if err != nil {
		return nil, &ParseError{Field: "file", Message: fmt.Sprintf("error accessing worksheet: %v", err)}
	}
	if info.IsDir() {
		return nil, &ParseError{Field: "file", Message: fmt.Sprintf("not a file: %s", path)}
	}

	cfg := &load.Config{Dir: filepath.Dir(path)}
	instances := load.Instances([]string{filepath.Base(path)}, cfg)
	if len(instances) == 0 {
		return nil, &ParseError{Field: "file", Message: "no CUE instance loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, formatCUEError(inst.Err)
	}

	ctx := cuecontext.New()
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	return Compile(value)
}

// Compile parses a CUE value into a Worksheet.
//
// The value must carry a top-level worksheet struct, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`worksheet: { name: "demo", ... }`)
//	ws, err := worksheet.Compile(v)
func Compile(v cue.Value) (*Worksheet, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	root := v.LookupPath(cue.ParsePath("worksheet"))
	if !root.Exists() {
		return nil, &ParseError{
			Field:   "worksheet",
			Message: "top-level worksheet block is required",
			Pos:     v.Pos(),
		}
	}

	ws := &Worksheet{
		Polynomials: make(map[string]poly.Polynomial),
	}

	// Parse name (required)
	nameVal := root.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &ParseError{
			Field:   "name",
			Message: "name is required",
			Pos:     root.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	ws.Name = norm.NFC.String(name)

	// Parse description (optional)
	descVal := root.LookupPath(cue.ParsePath("description"))
	if descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		ws.Description = desc
	}

	if err := parsePolynomials(root, ws); err != nil {
		return nil, err
	}

	ws.Steps, err = parseSteps(root)
	if err != nil {
		return nil, err
	}

	return ws, nil
}

// parsePolynomials extracts the named polynomial declarations.
// Labels are NFC normalized before use; two labels that normalize to the
// same name are rejected rather than letting one shadow the other.
func parsePolynomials(v cue.Value, ws *Worksheet) error {
	polysVal := v.LookupPath(cue.ParsePath("polynomials"))
	if !polysVal.Exists() {
		return &ParseError{
			Field:   "polynomials",
			Message: "polynomials block is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := polysVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}

	for iter.Next() {
		name := norm.NFC.String(iter.Label())

		coeffs, err := parseCoefficients(iter.Value())
		if err != nil {
			return err
		}

		p, err := poly.New(coeffs...)
		if err != nil {
			return &ParseError{
				Field:   fmt.Sprintf("polynomials.%s", name),
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}

		if _, exists := ws.Polynomials[name]; exists {
			return &ParseError{
				Field:   fmt.Sprintf("polynomials.%s", name),
				Message: fmt.Sprintf("duplicate polynomial name %q after normalization", name),
				Pos:     iter.Value().Pos(),
			}
		}

		ws.Polynomials[name] = p
		ws.Order = append(ws.Order, name)
	}

	return nil
}

// parseCoefficients reads a CUE list of numbers, highest power first.
func parseCoefficients(v cue.Value) ([]float64, error) {
	listIter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var coeffs []float64
	for listIter.Next() {
		c, err := listIter.Value().Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		coeffs = append(coeffs, c)
	}

	return coeffs, nil
}

// parseSteps extracts the step list.
func parseSteps(v cue.Value) ([]Step, error) {
	stepsVal := v.LookupPath(cue.ParsePath("steps"))
	if !stepsVal.Exists() {
		return nil, &ParseError{
			Field:   "steps",
			Message: "steps list is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := stepsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var steps []Step
	for i := 0; iter.Next(); i++ {
		step, err := parseStep(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	if len(steps) == 0 {
		return nil, &ParseError{
			Field:   "steps",
			Message: "at least one step is required",
			Pos:     stepsVal.Pos(),
		}
	}

	return steps, nil
}

// parseStep parses a single step entry.
func parseStep(v cue.Value, index int) (Step, error) {
	var step Step

	opVal := v.LookupPath(cue.ParsePath("op"))
	if !opVal.Exists() {
		return step, &ParseError{
			Field:   fmt.Sprintf("steps[%d].op", index),
			Message: "op is required",
			Pos:     v.Pos(),
		}
	}
	op, err := opVal.String()
	if err != nil {
		return step, formatCUEError(err)
	}
	step.Op = op

	polyVal := v.LookupPath(cue.ParsePath("poly"))
	if !polyVal.Exists() {
		return step, &ParseError{
			Field:   fmt.Sprintf("steps[%d].poly", index),
			Message: "poly is required",
			Pos:     v.Pos(),
		}
	}
	operand, err := polyVal.String()
	if err != nil {
		return step, formatCUEError(err)
	}
	step.Poly = norm.NFC.String(operand)

	atVal := v.LookupPath(cue.ParsePath("at"))
	if atVal.Exists() {
		at, err := atVal.Float64()
		if err != nil {
			return step, formatCUEError(err)
		}
		step.At = &at
	}

	withVal := v.LookupPath(cue.ParsePath("with"))
	if withVal.Exists() {
		with, err := withVal.String()
		if err != nil {
			return step, formatCUEError(err)
		}
		step.With = norm.NFC.String(with)
	}

	saveVal := v.LookupPath(cue.ParsePath("save"))
	if saveVal.Exists() {
		save, err := saveVal.String()
		if err != nil {
			return step, formatCUEError(err)
		}
		step.Save = norm.NFC.String(save)
	}

	return step, nil
}

// formatCUEError converts a CUE error list into a positioned ParseError.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// A single compile failure can fan out into several CUE errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Surface the first one, with its source position when available
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &ParseError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
