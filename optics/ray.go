package optics

import (
	gosymbol "github.com/njchilds90/matrixoptics"
)

// Ray is a paraxial ray: transverse offset Rho from the optical axis and
// angle Theta to it. A Ray is never modified; Apply returns a new one.
type Ray struct {
	Rho   gosymbol.Expr
	Theta gosymbol.Expr
}

// NewRay returns the ray with offset rho and angle theta.
func NewRay(rho, theta gosymbol.Expr) *Ray {
	return &Ray{Rho: rho, Theta: theta}
}

// Apply transforms the ray by the ABCD matrix m:
//
//	rho'   = A*rho + B*theta
//	theta' = C*rho + D*theta
//
// Both components are returned in canonical form.
func (r *Ray) Apply(m *gosymbol.Matrix) (*Ray, error) {
	if err := checkABCD(m); err != nil {
		return nil, err
	}
	a, b, c, d := entries(m)
	return &Ray{
		Rho:   gosymbol.Simplify(gosymbol.AddOf(gosymbol.MulOf(a, r.Rho), gosymbol.MulOf(b, r.Theta))),
		Theta: gosymbol.Simplify(gosymbol.AddOf(gosymbol.MulOf(c, r.Rho), gosymbol.MulOf(d, r.Theta))),
	}, nil
}

func (r *Ray) String() string {
	return "(" + r.Rho.String() + ", " + r.Theta.String() + ")"
}
