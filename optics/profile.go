package optics

import (
	gosymbol "github.com/njchilds90/matrixoptics"
)

// BeamRadius returns the 1/e field radius at axial distance z from the
// waist, w0*sqrt(1 + (z/zR)^2). z must be real; w0 and zR positive.
func BeamRadius(z, w0, zR gosymbol.Expr) (gosymbol.Expr, error) {
	if err := validateAll(check{z, "z"}, check{w0, "w0"}, check{zR, "zR"}); err != nil {
		return nil, err
	}
	ratio := gosymbol.PowOf(gosymbol.Div(z, zR), gosymbol.N(2))
	return gosymbol.Simplify(gosymbol.MulOf(w0, gosymbol.SqrtOf(gosymbol.AddOf(gosymbol.N(1), ratio)))), nil
}

// BeamCurvature returns the wavefront radius of curvature at axial distance
// z from the waist, z*(1 + (zR/z)^2), or gosymbol.Oo when z is zero.
func BeamCurvature(z, zR gosymbol.Expr) (gosymbol.Expr, error) {
	if err := validateAll(check{z, "z"}, check{zR, "zR"}); err != nil {
		return nil, err
	}
	if gosymbol.IsZero(z) {
		return gosymbol.Oo, nil
	}
	ratio := gosymbol.PowOf(gosymbol.Div(zR, z), gosymbol.N(2))
	return gosymbol.Simplify(gosymbol.MulOf(z, gosymbol.AddOf(gosymbol.N(1), ratio))), nil
}

// RayleighRange returns pi*w0^2/wavelength.
func RayleighRange(w0, wavelength gosymbol.Expr) (gosymbol.Expr, error) {
	if err := validateAll(check{w0, "w0"}, check{wavelength, "wavelength"}); err != nil {
		return nil, err
	}
	return gosymbol.Simplify(gosymbol.Div(
		gosymbol.MulOf(gosymbol.Pi, gosymbol.PowOf(w0, gosymbol.N(2))),
		wavelength,
	)), nil
}
