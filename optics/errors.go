package optics

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every message is prefixed with "optics:"; callers match
// them with errors.Is.
var (
	// ErrType is returned when a value passed for a physical quantity is not
	// a gosymbol.Expr.
	ErrType = errors.New("optics: value is not a symbolic expression")

	// ErrAssumption is returned when a symbol lacks a declared assumption
	// (real or positive) required by its role.
	ErrAssumption = errors.New("optics: required assumption not declared")

	// ErrUnknownVariable is returned by ValidateSymbol for a role outside
	// {z, R, w, w0, zR, wavelength}.
	ErrUnknownVariable = errors.New("optics: unrecognized variable")

	// ErrMissingArgument is returned when a GaussianBeam is built with neither
	// q nor the complete (w, R) pair.
	ErrMissingArgument = errors.New("optics: missing argument")

	// ErrNotABCD is returned when a transfer matrix is not 2x2.
	ErrNotABCD = errors.New("optics: ABCD matrix must be 2x2")
)

// ValidationError carries the role and value that failed validation.
type ValidationError struct {
	Variable string
	Value    any
	// Want names the violated assumption for ErrAssumption.
	Want string
	Err  error
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrAssumption):
		return fmt.Sprintf("%v: %v must be explicitly %s for %q", e.Err, e.Value, e.Want, e.Variable)
	case errors.Is(e.Err, ErrType):
		return fmt.Sprintf("%v: %q got %T", e.Err, e.Variable, e.Value)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Variable)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
