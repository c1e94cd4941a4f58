package optics

import (
	gosymbol "github.com/njchilds90/matrixoptics"
)

// Lens returns the ABCD matrix of a thin lens of focal length f:
//
//	[[1, 0], [-1/f, 1]]
//
// f is not validated; a zero focal length stays symbolic.
func Lens(f gosymbol.Expr) *gosymbol.Matrix {
	return gosymbol.MatrixFromSlice(2, 2, []gosymbol.Expr{
		gosymbol.N(1), gosymbol.N(0),
		gosymbol.Neg(gosymbol.Div(gosymbol.N(1), f)), gosymbol.N(1),
	})
}

// Propagate returns the ABCD matrix of propagation by distance d in a
// medium of constant index:
//
//	[[1, d], [0, 1]]
func Propagate(d gosymbol.Expr) *gosymbol.Matrix {
	return gosymbol.MatrixFromSlice(2, 2, []gosymbol.Expr{
		gosymbol.N(1), d,
		gosymbol.N(0), gosymbol.N(1),
	})
}

// Compose returns the system matrix of elements listed in the order a ray
// meets them, i.e. elements[n-1] * ... * elements[0], with entries in
// canonical form. With no elements it returns the identity.
func Compose(elements ...*gosymbol.Matrix) (*gosymbol.Matrix, error) {
	sys := gosymbol.Identity(2)
	for _, m := range elements {
		if err := checkABCD(m); err != nil {
			return nil, err
		}
		sys = m.MatMul(sys)
	}
	return sys.Map(gosymbol.Simplify), nil
}

// ImageDistance returns -B/D, the distance behind the last element at which
// the system images its input plane. For an object at distance s0 in front
// of a lens, pass Lens(f) * Propagate(s0). Nothing checks that m describes
// such a system. When D is algebraically zero the image is at infinity and
// gosymbol.Oo is returned.
func ImageDistance(m *gosymbol.Matrix) (gosymbol.Expr, error) {
	if err := checkABCD(m); err != nil {
		return nil, err
	}
	b, d := m.Get(0, 1), m.Get(1, 1)
	if gosymbol.IsZero(d) && !gosymbol.IsZero(b) {
		return gosymbol.Oo, nil
	}
	return gosymbol.Simplify(gosymbol.Neg(gosymbol.Div(b, d))), nil
}

// Unimodular reports whether det(m) == 1, which holds for every lossless
// element between media of equal refractive index.
func Unimodular(m *gosymbol.Matrix) (bool, error) {
	if err := checkABCD(m); err != nil {
		return false, err
	}
	return gosymbol.Equivalent(m.Det(), gosymbol.N(1)), nil
}

func checkABCD(m *gosymbol.Matrix) error {
	if m == nil || m.Rows() != 2 || m.Cols() != 2 {
		return ErrNotABCD
	}
	return nil
}

func entries(m *gosymbol.Matrix) (a, b, c, d gosymbol.Expr) {
	return m.Get(0, 0), m.Get(0, 1), m.Get(1, 0), m.Get(1, 1)
}
