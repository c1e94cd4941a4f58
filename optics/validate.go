package optics

import (
	"reflect"

	gosymbol "github.com/njchilds90/matrixoptics"
)

type requirement int

const (
	requireReal requirement = iota + 1
	requirePositive
)

func (r requirement) String() string {
	if r == requirePositive {
		return "positive"
	}
	return "real"
}

// roles maps every recognised variable to the assumption it needs.
// lambda0 is accepted as an alias for wavelength.
var roles = map[string]requirement{
	"z":          requireReal,
	"R":          requireReal,
	"w":          requirePositive,
	"w0":         requirePositive,
	"zR":         requirePositive,
	"wavelength": requirePositive,
	"lambda0":    requirePositive,
}

// ValidateSymbol checks that v may stand for the named physical variable.
//
// v must be a gosymbol.Expr (ErrType). z and R must be provably real; w, w0,
// zR and wavelength must be provably positive (ErrAssumption). Any other
// variable name fails with ErrUnknownVariable. Failures are returned as
// *ValidationError.
func ValidateSymbol(v any, variable string) error {
	e, ok := v.(gosymbol.Expr)
	if !ok || isNil(e) {
		return &ValidationError{Variable: variable, Value: v, Err: ErrType}
	}
	req, ok := roles[variable]
	if !ok {
		return &ValidationError{Variable: variable, Value: v, Err: ErrUnknownVariable}
	}

	holds := gosymbol.IsReal(e)
	if req == requirePositive {
		holds = gosymbol.IsPositive(e)
	}
	if !holds {
		return &ValidationError{Variable: variable, Value: v, Want: req.String(), Err: ErrAssumption}
	}
	return nil
}

// isNil reports a nil interface or a typed nil pointer such as (*gosymbol.Sym)(nil).
func isNil(e gosymbol.Expr) bool {
	if e == nil {
		return true
	}
	rv := reflect.ValueOf(e)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

type check struct {
	value gosymbol.Expr
	role  string
}

func validateAll(checks ...check) error {
	for _, c := range checks {
		if err := ValidateSymbol(c.value, c.role); err != nil {
			return err
		}
	}
	return nil
}
