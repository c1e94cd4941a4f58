package gosymbol

import (
	"errors"
	"math/big"
)

var (
	errDivByZero = errors.New("gosymbol: division by zero")
	errInfinite  = errors.New("gosymbol: infinity has no normal form")
)

// ============================================================
// Canonical simplification
// ============================================================

// Simplify returns e in canonical form: a product of a Gaussian-rational
// coefficient and integer powers of atoms and primitive polynomials, with
// common factors cancelled. Expressions that cannot be normalised (division
// by an exact zero) come back with local rewriting only.
func Simplify(e Expr) Expr {
	if hasInfinity(e) {
		return simplifyInfinite(e.Simplify())
	}
	r, err := canon(e)
	if err != nil {
		return e.Simplify()
	}
	return r.expr()
}

// IsZero reports whether e is algebraically zero.
func IsZero(e Expr) bool {
	if hasInfinity(e) {
		return false
	}
	r, err := canon(e)
	return err == nil && r.isZero()
}

// Equivalent reports whether a and b are algebraically equal. Infinity is
// equivalent only to itself.
func Equivalent(a, b Expr) bool {
	ia, ib := IsInfinite(Simplify(a)), IsInfinite(Simplify(b))
	if ia || ib {
		return ia && ib
	}
	return IsZero(AddOf(a, Neg(b)))
}

// Re returns the real part of e. When some atom of e is not provably real
// the result is the unevaluated re(e).
func Re(e Expr) Expr {
	re, _, ok := reIm(e)
	if !ok {
		return ReOf(Simplify(e))
	}
	return re
}

// Im returns the imaginary part of e, see Re.
func Im(e Expr) Expr {
	_, im, ok := reIm(e)
	if !ok {
		return ImOf(Simplify(e))
	}
	return im
}

func reIm(e Expr) (re, im Expr, ok bool) {
	r, err := canon(e)
	if err != nil {
		return nil, nil, false
	}
	rr, ri, ok := r.reIm()
	if !ok {
		return nil, nil, false
	}
	return rr.expr(), ri.expr(), true
}

// canon converts an expression tree into the factored rational normal form.
func canon(e Expr) (*rform, error) {
	switch v := e.(type) {
	case *Num:
		return rConst(cReal(v.val)), nil
	case *Sym:
		return rAtom(symAtom(v)), nil
	case *Const:
		if v == I {
			return rConst(cImag()), nil
		}
		return rAtom(piAtom), nil
	case *Infinity:
		return nil, errInfinite
	case *Add:
		acc := rConst(cInt(0))
		for _, t := range v.terms {
			r, err := canon(t)
			if err != nil {
				return nil, err
			}
			acc = acc.add(r)
		}
		return acc, nil
	case *Mul:
		acc := rConst(cInt(1))
		for _, f := range v.factors {
			r, err := canon(f)
			if err != nil {
				return nil, err
			}
			acc = acc.mul(r)
		}
		return acc, nil
	case *Pow:
		return canonPow(v)
	case *Func:
		return canonFunc(v)
	}
	return rAtom(opaqueAtom(e)), nil
}

func canonPow(p *Pow) (*rform, error) {
	base, err := canon(p.base)
	if err != nil {
		return nil, err
	}
	exp := p.exp.Simplify()
	if en, ok := exp.(*Num); ok {
		num := en.val.Num()
		if en.IsInteger() && num.IsInt64() {
			k := int(num.Int64())
			if base.isZero() && k < 0 {
				return nil, errDivByZero
			}
			return base.pow(k), nil
		}
		if en.val.Denom().Cmp(big.NewInt(2)) == 0 && num.IsInt64() {
			k := int(num.Int64())
			if base.isZero() && k < 0 {
				return nil, errDivByZero
			}
			return base.sqrt().pow(k), nil
		}
	}
	if base.isConst() && base.c.isOne() {
		return base, nil
	}
	ex, err := canon(exp)
	if err != nil {
		return nil, err
	}
	return rAtom(opaqueAtom(&Pow{base: base.expr(), exp: ex.expr()})), nil
}

func canonFunc(f *Func) (*rform, error) {
	arg, err := canon(f.arg)
	if err != nil {
		return nil, err
	}
	switch f.name {
	case "re", "im":
		if re, im, ok := arg.reIm(); ok {
			if f.name == "re" {
				return re, nil
			}
			return im, nil
		}
	case "abs":
		if arg.isPositive() {
			return arg, nil
		}
		if arg.neg().isPositive() {
			return arg.neg(), nil
		}
		if re, im, ok := arg.reIm(); ok {
			return re.mul(re).add(im.mul(im)).sqrt(), nil
		}
	}
	return rAtom(opaqueAtom(&Func{name: f.name, arg: arg.expr()})), nil
}

// ============================================================
// Infinity
// ============================================================

func hasInfinity(e Expr) bool {
	switch v := e.(type) {
	case *Infinity:
		return true
	case *Add:
		for _, t := range v.terms {
			if hasInfinity(t) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if hasInfinity(f) {
				return true
			}
		}
	case *Pow:
		return hasInfinity(v.base) || hasInfinity(v.exp)
	case *Func:
		return hasInfinity(v.arg)
	}
	return false
}

// simplifyInfinite applies the few rules needed around a beam waist:
// finite + oo = oo, positive * oo = oo, oo^-k = 0. Children are reduced
// first; a subexpression left without infinity gets the canonical form.
func simplifyInfinite(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		inf, unresolved := false, false
		for i, t := range v.terms {
			terms[i] = simplifyInfinite(t)
			switch {
			case IsInfinite(terms[i]):
				inf = true
			case hasInfinity(terms[i]):
				unresolved = true
			}
		}
		if inf && !unresolved {
			return Oo
		}
		return settleInfinite(AddOf(terms...))
	case *Mul:
		factors := make([]Expr, len(v.factors))
		inf, zero, unresolved, positive := false, false, false, true
		for i, f := range v.factors {
			factors[i] = simplifyInfinite(f)
			switch {
			case IsInfinite(factors[i]):
				inf = true
			case hasInfinity(factors[i]):
				unresolved = true
			case IsZero(factors[i]):
				zero = true
			case !IsPositive(factors[i]):
				positive = false
			}
		}
		switch {
		case unresolved || (inf && zero):
			return MulOf(factors...)
		case zero:
			return N(0)
		case inf && positive:
			return Oo
		}
		return settleInfinite(MulOf(factors...))
	case *Pow:
		base := simplifyInfinite(v.base)
		if IsInfinite(base) {
			if en, ok := v.exp.(*Num); ok && en.IsNegative() {
				return N(0)
			}
			if en, ok := v.exp.(*Num); ok && en.IsPositive() {
				return Oo
			}
		}
		return settleInfinite(PowOf(base, v.exp))
	}
	return e
}

func settleInfinite(e Expr) Expr {
	if hasInfinity(e) {
		return e
	}
	return Simplify(e)
}
