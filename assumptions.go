package gosymbol

// IsReal reports whether e is provably real from declared assumptions.
// A false result means "not provable", not "complex".
func IsReal(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return true
	case *Sym:
		return v.IsReal()
	case *Const:
		return v == Pi
	case *Add:
		for _, t := range v.terms {
			if !IsReal(t) {
				return false
			}
		}
		return true
	case *Mul:
		for _, f := range v.factors {
			if !IsReal(f) {
				return false
			}
		}
		return true
	case *Pow:
		en, ok := v.exp.(*Num)
		if !ok {
			return IsPositive(v.base) && IsReal(v.exp)
		}
		if en.IsInteger() {
			return IsReal(v.base)
		}
		return isNonNegative(v.base)
	case *Func:
		return true
	}
	return false
}

// IsPositive reports whether e is provably strictly positive.
func IsPositive(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.IsPositive()
	case *Sym:
		return v.IsPositive()
	case *Const:
		return v == Pi
	case *Add:
		strict := false
		for _, t := range v.terms {
			if !isNonNegative(t) {
				return false
			}
			if IsPositive(t) {
				strict = true
			}
		}
		return strict
	case *Mul:
		negatives := 0
		for _, f := range v.factors {
			if n, ok := f.(*Num); ok && n.IsNegative() {
				negatives++
				continue
			}
			if !IsPositive(f) {
				return false
			}
		}
		return negatives%2 == 0
	case *Pow:
		if IsPositive(v.base) {
			return IsReal(v.exp)
		}
		if en, ok := v.exp.(*Num); ok && isEvenInteger(en) {
			return isNonZeroReal(v.base)
		}
		return false
	case *Func:
		return v.name == "abs" && isNonZeroReal(v.arg)
	}
	return false
}

func isNonNegative(e Expr) bool {
	if IsPositive(e) {
		return true
	}
	switch v := e.(type) {
	case *Num:
		return !v.IsNegative()
	case *Add:
		for _, t := range v.terms {
			if !isNonNegative(t) {
				return false
			}
		}
		return true
	case *Mul:
		for _, f := range v.factors {
			if !isNonNegative(f) {
				return false
			}
		}
		return true
	case *Pow:
		if en, ok := v.exp.(*Num); ok && isEvenInteger(en) {
			return IsReal(v.base)
		}
		return isNonNegative(v.base) && IsReal(v.exp)
	case *Func:
		return v.name == "abs"
	}
	return false
}

func isNonZeroReal(e Expr) bool {
	if n, ok := e.(*Num); ok {
		return !n.IsZero()
	}
	return IsPositive(e) || (IsPositive(Neg(e)) && IsReal(e))
}

func isEvenInteger(n *Num) bool {
	return n.IsInteger() && n.val.Num().Bit(0) == 0
}
