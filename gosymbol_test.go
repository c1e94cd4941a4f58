package gosymbol_test

import (
	"math/big"
	"strings"
	"testing"

	gosymbol "github.com/njchilds90/matrixoptics"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := gosymbol.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := gosymbol.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := gosymbol.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_Eval(t *testing.T) {
	n, ok := gosymbol.N(7).Eval()
	if !ok || n.String() != "7" {
		t.Errorf("Num.Eval() should succeed with same value")
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_String(t *testing.T) {
	x := gosymbol.S("x")
	if x.String() != "x" {
		t.Errorf("want x, got %s", x.String())
	}
}

func TestSym_Sub_Match(t *testing.T) {
	x := gosymbol.S("x")
	result := x.Sub("x", gosymbol.N(3))
	if gosymbol.String(result) != "3" {
		t.Errorf("want 3, got %s", gosymbol.String(result))
	}
}

func TestSym_Sub_NoMatch(t *testing.T) {
	x := gosymbol.S("x")
	result := x.Sub("y", gosymbol.N(3))
	if gosymbol.String(result) != "x" {
		t.Errorf("want x, got %s", gosymbol.String(result))
	}
}

func TestSym_Assumptions(t *testing.T) {
	if gosymbol.S("x").IsReal() {
		t.Error("plain symbol must not be real")
	}
	if !gosymbol.S("x", gosymbol.Real).IsReal() {
		t.Error("symbol declared real must be real")
	}
	w := gosymbol.S("w", gosymbol.Positive)
	if !w.IsPositive() || !w.IsReal() {
		t.Error("positive symbol must be positive and real")
	}
}

func TestSym_AssumptionsAreIdentity(t *testing.T) {
	if gosymbol.S("x").Equal(gosymbol.S("x", gosymbol.Real)) {
		t.Error("symbols with different assumptions must differ")
	}
	if gosymbol.Equivalent(gosymbol.S("x"), gosymbol.S("x", gosymbol.Real)) {
		t.Error("symbols with different assumptions must not be equivalent")
	}
}

func TestSymbols(t *testing.T) {
	syms := gosymbol.Symbols("rho0, theta0 d", gosymbol.Real)
	if len(syms) != 3 {
		t.Fatalf("want 3 symbols, got %d", len(syms))
	}
	for i, want := range []string{"rho0", "theta0", "d"} {
		if syms[i].Name() != want || !syms[i].IsReal() {
			t.Errorf("symbol %d: want real %s, got %s", i, want, syms[i].Name())
		}
	}
}

func TestSym_LaTeX_Greek(t *testing.T) {
	if got := gosymbol.S("lambda0").LaTeX(); got != `\lambda_0` {
		t.Errorf("want \\lambda_0, got %s", got)
	}
	if got := gosymbol.S("f").LaTeX(); got != "f" {
		t.Errorf("want f, got %s", got)
	}
}

// ============================================================
// Add / Mul / Pow local rewriting
// ============================================================

func TestAdd_Simple(t *testing.T) {
	expr := gosymbol.AddOf(gosymbol.S("x"), gosymbol.N(3))
	if gosymbol.String(expr) != "x + 3" {
		t.Errorf("want 'x + 3', got %s", gosymbol.String(expr))
	}
}

func TestAdd_CollapseToZero(t *testing.T) {
	expr := gosymbol.AddOf(gosymbol.N(1), gosymbol.N(-1))
	if gosymbol.String(expr) != "0" {
		t.Errorf("want 0, got %s", gosymbol.String(expr))
	}
}

func TestAdd_LikeTerms(t *testing.T) {
	expr := gosymbol.AddOf(gosymbol.S("x"), gosymbol.S("x"))
	if gosymbol.String(expr) != "2*x" {
		t.Errorf("want '2*x', got %s", gosymbol.String(expr))
	}
}

func TestMul_Simple(t *testing.T) {
	expr := gosymbol.MulOf(gosymbol.N(3), gosymbol.S("x"))
	if gosymbol.String(expr) != "3*x" {
		t.Errorf("want '3*x', got %s", gosymbol.String(expr))
	}
}

func TestMul_ZeroCollapse(t *testing.T) {
	expr := gosymbol.MulOf(gosymbol.N(0), gosymbol.S("x"))
	if gosymbol.String(expr) != "0" {
		t.Errorf("0*x should be 0, got %s", gosymbol.String(expr))
	}
}

func TestMul_OneElide(t *testing.T) {
	expr := gosymbol.MulOf(gosymbol.N(1), gosymbol.S("x"))
	if gosymbol.String(expr) != "x" {
		t.Errorf("1*x should be x, got %s", gosymbol.String(expr))
	}
}

func TestPow_Simple(t *testing.T) {
	expr := gosymbol.PowOf(gosymbol.S("x"), gosymbol.N(2))
	if gosymbol.String(expr) != "x^2" {
		t.Errorf("want x^2, got %s", gosymbol.String(expr))
	}
}

func TestPow_ZeroExp(t *testing.T) {
	expr := gosymbol.PowOf(gosymbol.S("x"), gosymbol.N(0))
	if gosymbol.String(expr) != "1" {
		t.Errorf("x^0 should be 1, got %s", gosymbol.String(expr))
	}
}

func TestPow_NumericEval(t *testing.T) {
	expr := gosymbol.PowOf(gosymbol.N(2), gosymbol.N(3))
	if gosymbol.String(expr) != "8" {
		t.Errorf("2^3 should be 8, got %s", gosymbol.String(expr))
	}
}

func TestPow_NestedKeepsBranch(t *testing.T) {
	// (x^2)^(1/2) is |x|, not x, unless x is declared positive.
	x := gosymbol.S("x", gosymbol.Real)
	expr := gosymbol.SqrtOf(gosymbol.PowOf(x, gosymbol.N(2)))
	if expr.Equal(x) {
		t.Error("sqrt(x^2) must not collapse to x for real x")
	}
	w := gosymbol.S("w", gosymbol.Positive)
	if got := gosymbol.SqrtOf(gosymbol.PowOf(w, gosymbol.N(2))); !got.Equal(w) {
		t.Errorf("sqrt(w^2) should be w for positive w, got %s", got)
	}
}

func TestPow_ExponentBeyondInt64StaysExact(t *testing.T) {
	huge := new(big.Rat).SetInt(new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(3)))
	expr := gosymbol.PowOf(gosymbol.N(2), gosymbol.NRat(huge))
	if _, ok := expr.(*gosymbol.Pow); !ok {
		t.Fatalf("2^(2^64+3) should stay a power, got %s", expr)
	}
	if got := gosymbol.Simplify(expr); got.String() == "8" {
		t.Errorf("2^(2^64+3) must not wrap to 2^3, got %s", got)
	}
}

// ============================================================
// Canonical simplification
// ============================================================

func TestSimplify_CancelSelf(t *testing.T) {
	x := gosymbol.S("x")
	if got := gosymbol.Simplify(gosymbol.Div(x, x)); got.String() != "1" {
		t.Errorf("x/x should be 1, got %s", got)
	}
	if got := gosymbol.Simplify(gosymbol.AddOf(x, gosymbol.Neg(x))); got.String() != "0" {
		t.Errorf("x - x should be 0, got %s", got)
	}
}

func TestSimplify_PolynomialCancel(t *testing.T) {
	x := gosymbol.S("x")
	num := gosymbol.AddOf(gosymbol.PowOf(x, gosymbol.N(2)), gosymbol.N(-1))
	den := gosymbol.AddOf(x, gosymbol.N(-1))
	got := gosymbol.Cancel(num, den)
	if got.String() != "x + 1" {
		t.Errorf("(x^2-1)/(x-1) should be x + 1, got %s", got)
	}
}

func TestSimplify_CommonDenominator(t *testing.T) {
	a, b := gosymbol.S("a"), gosymbol.S("b")
	// 1/a + 1/b == (a + b)/(a*b)
	lhs := gosymbol.AddOf(gosymbol.Div(gosymbol.N(1), a), gosymbol.Div(gosymbol.N(1), b))
	rhs := gosymbol.Div(gosymbol.AddOf(a, b), gosymbol.MulOf(a, b))
	if !gosymbol.Equivalent(lhs, rhs) {
		t.Errorf("1/a + 1/b should equal (a+b)/(ab), got %s", gosymbol.Simplify(lhs))
	}
}

func TestSimplify_ImaginaryUnit(t *testing.T) {
	if got := gosymbol.Simplify(gosymbol.MulOf(gosymbol.I, gosymbol.I)); got.String() != "-1" {
		t.Errorf("I*I should be -1, got %s", got)
	}
}

func TestSimplify_ComplexFactorCancel(t *testing.T) {
	z := gosymbol.S("z", gosymbol.Real)
	zR := gosymbol.S("zR", gosymbol.Positive)
	// (z^2 + zR^2)/(z - i zR) == z + i zR
	num := gosymbol.AddOf(gosymbol.PowOf(z, gosymbol.N(2)), gosymbol.PowOf(zR, gosymbol.N(2)))
	den := gosymbol.AddOf(z, gosymbol.MulOf(gosymbol.N(-1), gosymbol.I, zR))
	want := gosymbol.AddOf(z, gosymbol.MulOf(gosymbol.I, zR))
	got := gosymbol.Cancel(num, den)
	if !gosymbol.Eq(got, want).Holds() {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestSimplify_Idempotent(t *testing.T) {
	x, y := gosymbol.S("x"), gosymbol.S("y", gosymbol.Positive)
	expr := gosymbol.Div(
		gosymbol.AddOf(gosymbol.PowOf(x, gosymbol.N(2)), gosymbol.SqrtOf(y)),
		gosymbol.AddOf(x, gosymbol.MulOf(gosymbol.I, y)),
	)
	once := gosymbol.Simplify(expr)
	twice := gosymbol.Simplify(once)
	if once.String() != twice.String() {
		t.Errorf("simplify not idempotent: %s vs %s", once, twice)
	}
}

func TestSimplify_DivisionByZeroLeftSymbolic(t *testing.T) {
	expr := gosymbol.Div(gosymbol.N(1), gosymbol.N(0))
	got := gosymbol.Simplify(expr)
	if gosymbol.IsZero(got) {
		t.Errorf("1/0 must not simplify to zero, got %s", got)
	}
}

// ============================================================
// Square roots
// ============================================================

func TestSqrt_PositiveSymbol(t *testing.T) {
	w := gosymbol.S("w", gosymbol.Positive)
	got := gosymbol.Simplify(gosymbol.SqrtOf(gosymbol.MulOf(gosymbol.N(4), gosymbol.PowOf(w, gosymbol.N(2)))))
	if got.String() != "2*w" {
		t.Errorf("sqrt(4w^2) should be 2*w, got %s", got)
	}
}

func TestSqrt_PlainSymbolStays(t *testing.T) {
	x := gosymbol.S("x")
	got := gosymbol.Simplify(gosymbol.SqrtOf(gosymbol.PowOf(x, gosymbol.N(2))))
	if got.String() != "sqrt(x^2)" {
		t.Errorf("sqrt(x^2) should stay unevaluated, got %s", got)
	}
}

func TestSqrt_Integer(t *testing.T) {
	got := gosymbol.Simplify(gosymbol.SqrtOf(gosymbol.N(8)))
	if got.String() != "2*sqrt(2)" {
		t.Errorf("sqrt(8) should be 2*sqrt(2), got %s", got)
	}
}

func TestSqrt_SquaredIsRadicand(t *testing.T) {
	x := gosymbol.S("x", gosymbol.Real)
	rad := gosymbol.AddOf(gosymbol.PowOf(x, gosymbol.N(2)), gosymbol.N(1))
	sq := gosymbol.PowOf(gosymbol.SqrtOf(rad), gosymbol.N(2))
	if !gosymbol.Equivalent(sq, rad) {
		t.Errorf("sqrt(x^2+1)^2 should be x^2+1, got %s", gosymbol.Simplify(sq))
	}
}

func TestSqrt_NegativeOfPositive(t *testing.T) {
	w := gosymbol.S("w", gosymbol.Positive)
	got := gosymbol.Simplify(gosymbol.SqrtOf(gosymbol.Neg(gosymbol.PowOf(w, gosymbol.N(2)))))
	if !gosymbol.Equivalent(got, gosymbol.MulOf(gosymbol.I, w)) {
		t.Errorf("sqrt(-w^2) should be I*w, got %s", got)
	}
}

// ============================================================
// Real and imaginary parts
// ============================================================

func TestReIm_Reciprocal(t *testing.T) {
	a, b := gosymbol.S("a", gosymbol.Real), gosymbol.S("b", gosymbol.Real)
	z := gosymbol.Div(gosymbol.N(1), gosymbol.AddOf(a, gosymbol.MulOf(gosymbol.I, b)))
	mod := gosymbol.AddOf(gosymbol.PowOf(a, gosymbol.N(2)), gosymbol.PowOf(b, gosymbol.N(2)))
	if !gosymbol.Equivalent(gosymbol.Re(z), gosymbol.Div(a, mod)) {
		t.Errorf("Re(1/(a+ib)) wrong: %s", gosymbol.Re(z))
	}
	if !gosymbol.Equivalent(gosymbol.Im(z), gosymbol.Div(gosymbol.Neg(b), mod)) {
		t.Errorf("Im(1/(a+ib)) wrong: %s", gosymbol.Im(z))
	}
}

func TestReIm_UnknownStaysUnevaluated(t *testing.T) {
	q := gosymbol.S("q")
	got := gosymbol.Re(q)
	f, ok := got.(*gosymbol.Func)
	if !ok || f.FuncName() != "re" {
		t.Errorf("Re(q) for complex q should be re(q), got %s", got)
	}
	if gosymbol.IsZero(got) {
		t.Error("re(q) must not be zero")
	}
}

func TestReIm_PureImaginary(t *testing.T) {
	zR := gosymbol.S("zR", gosymbol.Positive)
	q := gosymbol.MulOf(gosymbol.I, zR)
	if !gosymbol.IsZero(gosymbol.Re(gosymbol.Div(gosymbol.N(1), q))) {
		t.Errorf("Re(1/(i zR)) should be 0, got %s", gosymbol.Re(gosymbol.Div(gosymbol.N(1), q)))
	}
}

// ============================================================
// Assumption inference
// ============================================================

func TestIsPositive_Inference(t *testing.T) {
	x := gosymbol.S("x", gosymbol.Real)
	w := gosymbol.S("w", gosymbol.Positive)
	cases := []struct {
		name string
		e    gosymbol.Expr
		want bool
	}{
		{"real symbol", x, false},
		{"square plus one", gosymbol.AddOf(gosymbol.PowOf(x, gosymbol.N(2)), gosymbol.N(1)), true},
		{"bare square", gosymbol.PowOf(x, gosymbol.N(2)), false},
		{"pi w^2", gosymbol.MulOf(gosymbol.Pi, gosymbol.PowOf(w, gosymbol.N(2))), true},
		{"negative w", gosymbol.Neg(w), false},
		{"sqrt of sum", gosymbol.SqrtOf(gosymbol.AddOf(gosymbol.PowOf(x, gosymbol.N(2)), w)), true},
		{"reciprocal", gosymbol.Div(gosymbol.N(1), w), true},
	}
	for _, c := range cases {
		if got := gosymbol.IsPositive(c.e); got != c.want {
			t.Errorf("%s: IsPositive(%s) = %v, want %v", c.name, c.e, got, c.want)
		}
	}
}

func TestIsReal_Inference(t *testing.T) {
	x := gosymbol.S("x", gosymbol.Real)
	if !gosymbol.IsReal(gosymbol.Div(gosymbol.AddOf(x, gosymbol.N(1)), x)) {
		t.Error("(x+1)/x should be real")
	}
	if gosymbol.IsReal(gosymbol.MulOf(gosymbol.I, x)) {
		t.Error("I*x should not be real")
	}
	if gosymbol.IsReal(gosymbol.S("y")) {
		t.Error("plain y should not be provably real")
	}
}

// ============================================================
// Infinity
// ============================================================

func TestInfinity(t *testing.T) {
	x := gosymbol.S("x")
	if !gosymbol.Equivalent(gosymbol.Oo, gosymbol.Oo) {
		t.Error("oo should equal oo")
	}
	if gosymbol.Equivalent(gosymbol.Oo, x) {
		t.Error("oo should not equal x")
	}
	if got := gosymbol.Simplify(gosymbol.AddOf(gosymbol.Oo, gosymbol.N(5))); !gosymbol.IsInfinite(got) {
		t.Errorf("oo + 5 should be oo, got %s", got)
	}
	if got := gosymbol.Simplify(gosymbol.Div(gosymbol.N(1), gosymbol.Oo)); got.String() != "0" {
		t.Errorf("1/oo should be 0, got %s", got)
	}
	negRecip := gosymbol.Neg(gosymbol.Div(gosymbol.N(1), gosymbol.Oo))
	if got := gosymbol.Simplify(gosymbol.MulOf(negRecip, x)); got.String() != "0" {
		t.Errorf("-x/oo should be 0, got %s", got)
	}
	if got := gosymbol.Simplify(gosymbol.AddOf(gosymbol.MulOf(negRecip, x), gosymbol.S("y"))); got.String() != "y" {
		t.Errorf("y - x/oo should be y, got %s", got)
	}
}

// ============================================================
// Equation tests
// ============================================================

func TestEquation_String(t *testing.T) {
	eq := gosymbol.Eq(gosymbol.S("x"), gosymbol.N(5))
	if eq.String() != "x = 5" {
		t.Errorf("want 'x = 5', got %s", eq.String())
	}
}

func TestEquation_Residual(t *testing.T) {
	// x = 5 => x - 5 = 0
	eq := gosymbol.Eq(gosymbol.S("x"), gosymbol.N(5))
	res := eq.Residual()
	if !strings.Contains(gosymbol.String(res), "x") {
		t.Errorf("residual should contain x, got %s", res)
	}
	if eq.Holds() {
		t.Error("x = 5 should not hold symbolically")
	}
}

// ============================================================
// FreeSymbols / Eval
// ============================================================

func TestFreeSymbols(t *testing.T) {
	expr := gosymbol.AddOf(gosymbol.S("a"), gosymbol.MulOf(gosymbol.S("b"), gosymbol.Pi))
	syms := gosymbol.FreeSymbols(expr)
	if len(syms) != 2 || syms["a"] == nil || syms["b"] == nil {
		t.Errorf("want {a, b}, got %v", syms)
	}
}

func TestEval_AfterSubstitution(t *testing.T) {
	x := gosymbol.S("x")
	expr := gosymbol.AddOf(gosymbol.PowOf(x, gosymbol.N(2)), gosymbol.N(1))
	v, ok := gosymbol.Sub(expr, "x", gosymbol.N(3)).Eval()
	if !ok || v.String() != "10" {
		t.Errorf("x^2+1 at 3 should be 10, got %v", v)
	}
}

// ============================================================
// Matrix tests
// ============================================================

func TestMatrix_MulIdentity(t *testing.T) {
	a, b, c, d := gosymbol.S("a"), gosymbol.S("b"), gosymbol.S("c"), gosymbol.S("d")
	m := gosymbol.MatrixFromSlice(2, 2, []gosymbol.Expr{a, b, c, d})
	got := gosymbol.Identity(2).MatMul(m)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !gosymbol.Equivalent(got.Get(i, j), m.Get(i, j)) {
				t.Errorf("I*M [%d,%d]: want %s, got %s", i, j, m.Get(i, j), got.Get(i, j))
			}
		}
	}
}

func TestMatrix_Det(t *testing.T) {
	a, b, c, d := gosymbol.S("a"), gosymbol.S("b"), gosymbol.S("c"), gosymbol.S("d")
	m := gosymbol.MatrixFromSlice(2, 2, []gosymbol.Expr{a, b, c, d})
	want := gosymbol.AddOf(gosymbol.MulOf(a, d), gosymbol.Neg(gosymbol.MulOf(b, c)))
	if !gosymbol.Equivalent(m.Det(), want) {
		t.Errorf("want a*d - b*c, got %s", m.Det())
	}
	if !gosymbol.Equivalent(gosymbol.Identity(3).Det(), gosymbol.N(1)) {
		t.Errorf("det(I3) should be 1, got %s", gosymbol.Identity(3).Det())
	}
}

func TestMatrix_ApplySubLeavesReceiver(t *testing.T) {
	a := gosymbol.S("a")
	m := gosymbol.MatrixFromSlice(1, 2, []gosymbol.Expr{a, gosymbol.N(1)})
	sub := m.ApplySub("a", gosymbol.N(2))
	if !gosymbol.Equivalent(sub.Get(0, 0), gosymbol.N(2)) {
		t.Errorf("want 2, got %s", sub.Get(0, 0))
	}
	if !m.Get(0, 0).Equal(a) {
		t.Errorf("ApplySub mutated the receiver: %s", m.Get(0, 0))
	}
}

func TestMatrix_DimensionMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MatMul of 2x2 by 3x3 should panic")
		}
	}()
	gosymbol.Identity(2).MatMul(gosymbol.Identity(3))
}

// ============================================================
// Determinism test
// ============================================================

func TestDeterminism(t *testing.T) {
	for i := 0; i < 10; i++ {
		expr := gosymbol.AddOf(gosymbol.S("z"), gosymbol.S("a"), gosymbol.S("m"), gosymbol.N(1))
		result := gosymbol.String(gosymbol.Simplify(expr))
		expected := gosymbol.String(gosymbol.Simplify(gosymbol.AddOf(gosymbol.S("z"), gosymbol.S("a"), gosymbol.S("m"), gosymbol.N(1))))
		if result != expected {
			t.Errorf("non-deterministic output on iteration %d: %s != %s", i, result, expected)
		}
	}
}
