// Package optics implements symbolic paraxial (ABCD) matrix optics on top of
// the gosymbol algebra engine.
//
// The package provides:
//
//   - ABCD matrices for a thin lens (Lens) and free-space propagation
//     (Propagate), plus Compose for chaining elements in the order a ray
//     meets them.
//   - Ray, a (rho, theta) pair transformed by Apply, and ImageDistance for a
//     lens-then-propagation system matrix.
//   - GaussianBeam, built from the complex beam parameter q or from the
//     beam radius w and wavefront curvature R, with R and W derived from q
//     on demand.
//   - BeamRadius, BeamCurvature and RayleighRange as standalone profile
//     formulas in terms of the waist.
//
// Inputs that enter a physical formula must carry declared assumptions
// (gosymbol.Real, gosymbol.Positive); ValidateSymbol checks them. Symbolic
// values have no magnitude, so nothing is inferred from numbers at runtime.
//
// All values are immutable. Every function is safe for concurrent use.
package optics
