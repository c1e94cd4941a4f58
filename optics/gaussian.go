package optics

import (
	"fmt"

	gosymbol "github.com/njchilds90/matrixoptics"
)

// DefaultWavelength names the wavelength symbol used when none is given.
// It is declared positive.
const DefaultWavelength = "lambda0"

// GaussianBeam is an ideal Gaussian beam described by its complex beam
// parameter q and its wavelength. Curvature and radius are derived from q on
// each call and never cached.
type GaussianBeam struct {
	q          gosymbol.Expr
	wavelength gosymbol.Expr
}

type beamOptions struct {
	q, w, r    gosymbol.Expr
	wavelength gosymbol.Expr
}

// BeamOption configures NewGaussianBeam.
type BeamOption func(*beamOptions)

// WithQ sets the complex beam parameter directly. q is not validated; when
// it is set, WithRadius and WithCurvature are ignored.
func WithQ(q gosymbol.Expr) BeamOption {
	return func(o *beamOptions) { o.q = q }
}

// WithRadius sets the 1/e field radius w. It must be declared positive.
func WithRadius(w gosymbol.Expr) BeamOption {
	return func(o *beamOptions) { o.w = w }
}

// WithCurvature sets the wavefront radius of curvature R. It must be
// declared real, or be gosymbol.Oo for a beam waist.
func WithCurvature(r gosymbol.Expr) BeamOption {
	return func(o *beamOptions) { o.r = r }
}

// WithWavelength overrides the default lambda0 symbol. It must be declared
// positive.
func WithWavelength(wavelength gosymbol.Expr) BeamOption {
	return func(o *beamOptions) { o.wavelength = wavelength }
}

// NewGaussianBeam builds a beam either from q or from the pair (w, R):
//
//	1/q = 1/R - i*wavelength/(pi*w^2)
//
// The wavelength is always validated. Without q, both w and R are required
// (ErrMissingArgument).
func NewGaussianBeam(opts ...BeamOption) (*GaussianBeam, error) {
	o := beamOptions{wavelength: gosymbol.S(DefaultWavelength, gosymbol.Positive)}
	for _, opt := range opts {
		opt(&o)
	}
	if err := ValidateSymbol(o.wavelength, "wavelength"); err != nil {
		return nil, err
	}
	if o.q != nil {
		return &GaussianBeam{q: o.q, wavelength: o.wavelength}, nil
	}
	if o.w == nil || o.r == nil {
		return nil, fmt.Errorf("%w: both w and R are required when q is not given", ErrMissingArgument)
	}
	if err := ValidateSymbol(o.w, "w"); err != nil {
		return nil, err
	}

	var rinv gosymbol.Expr = gosymbol.N(0)
	if !gosymbol.IsInfinite(o.r) {
		if err := ValidateSymbol(o.r, "R"); err != nil {
			return nil, err
		}
		rinv = gosymbol.Div(gosymbol.N(1), o.r)
	}
	qinv := gosymbol.AddOf(rinv, gosymbol.Neg(gosymbol.Div(
		gosymbol.MulOf(gosymbol.I, o.wavelength),
		gosymbol.MulOf(gosymbol.Pi, gosymbol.PowOf(o.w, gosymbol.N(2))),
	)))
	return &GaussianBeam{
		q:          gosymbol.Simplify(gosymbol.Div(gosymbol.N(1), qinv)),
		wavelength: o.wavelength,
	}, nil
}

func (b *GaussianBeam) Q() gosymbol.Expr          { return b.q }
func (b *GaussianBeam) Wavelength() gosymbol.Expr { return b.wavelength }

// R returns the wavefront radius of curvature 1/Re(1/q), or gosymbol.Oo at
// a waist where Re(1/q) is zero.
func (b *GaussianBeam) R() gosymbol.Expr {
	rinv := gosymbol.Re(b.qinv())
	if gosymbol.IsZero(rinv) {
		return gosymbol.Oo
	}
	return gosymbol.Simplify(gosymbol.Div(gosymbol.N(1), rinv))
}

// W returns the 1/e field radius sqrt(-wavelength/(pi*Im(1/q))).
// The radicand is not checked; an unphysical q yields a non-real result.
func (b *GaussianBeam) W() gosymbol.Expr {
	im := gosymbol.Im(b.qinv())
	return gosymbol.Simplify(gosymbol.SqrtOf(gosymbol.Neg(
		gosymbol.Div(b.wavelength, gosymbol.MulOf(gosymbol.Pi, im)),
	)))
}

// RayleighRange returns Im(q).
func (b *GaussianBeam) RayleighRange() gosymbol.Expr {
	return gosymbol.Im(b.q)
}

// WaistDistance returns Re(q), the axial distance from the waist to the
// plane the beam is described at. It is positive past the waist.
func (b *GaussianBeam) WaistDistance() gosymbol.Expr {
	return gosymbol.Re(b.q)
}

// WaistRadius returns sqrt(wavelength*zR/pi) with zR = Im(q).
func (b *GaussianBeam) WaistRadius() gosymbol.Expr {
	return gosymbol.Simplify(gosymbol.SqrtOf(gosymbol.Div(
		gosymbol.MulOf(b.wavelength, b.RayleighRange()),
		gosymbol.Pi,
	)))
}

// Apply propagates the beam through the ABCD matrix m using
//
//	q' = (A*q + B)/(C*q + D)
//
// and returns a new beam with the same wavelength.
func (b *GaussianBeam) Apply(m *gosymbol.Matrix) (*GaussianBeam, error) {
	if err := checkABCD(m); err != nil {
		return nil, err
	}
	a, bb, c, d := entries(m)
	q := gosymbol.Cancel(
		gosymbol.AddOf(gosymbol.MulOf(a, b.q), bb),
		gosymbol.AddOf(gosymbol.MulOf(c, b.q), d),
	)
	return &GaussianBeam{q: q, wavelength: b.wavelength}, nil
}

func (b *GaussianBeam) qinv() gosymbol.Expr {
	return gosymbol.Div(gosymbol.N(1), b.q)
}
