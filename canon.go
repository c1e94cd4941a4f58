package gosymbol

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// cnum — Gaussian rational re + im*i
// ============================================================

type cnum struct{ re, im *big.Rat }

func cReal(r *big.Rat) cnum { return cnum{re: new(big.Rat).Set(r), im: new(big.Rat)} }
func cInt(n int64) cnum     { return cnum{re: new(big.Rat).SetInt64(n), im: new(big.Rat)} }
func cImag() cnum           { return cnum{re: new(big.Rat), im: new(big.Rat).SetInt64(1)} }

func (a cnum) isZero() bool { return a.re.Sign() == 0 && a.im.Sign() == 0 }
func (a cnum) isReal() bool { return a.im.Sign() == 0 }
func (a cnum) isOne() bool  { return a.im.Sign() == 0 && a.re.Cmp(big.NewRat(1, 1)) == 0 }

func cAdd(a, b cnum) cnum {
	return cnum{re: new(big.Rat).Add(a.re, b.re), im: new(big.Rat).Add(a.im, b.im)}
}

func cMul(a, b cnum) cnum {
	re := new(big.Rat).Sub(new(big.Rat).Mul(a.re, b.re), new(big.Rat).Mul(a.im, b.im))
	im := new(big.Rat).Add(new(big.Rat).Mul(a.re, b.im), new(big.Rat).Mul(a.im, b.re))
	return cnum{re: re, im: im}
}

func cNeg(a cnum) cnum { return cnum{re: new(big.Rat).Neg(a.re), im: new(big.Rat).Neg(a.im)} }

// cInv panics on zero; callers check.
func cInv(a cnum) cnum {
	d := new(big.Rat).Add(new(big.Rat).Mul(a.re, a.re), new(big.Rat).Mul(a.im, a.im))
	if d.Sign() == 0 {
		panic("gosymbol: division by zero")
	}
	return cnum{re: new(big.Rat).Quo(a.re, d), im: new(big.Rat).Quo(new(big.Rat).Neg(a.im), d)}
}

func cPow(a cnum, k int) cnum {
	if k < 0 {
		a, k = cInv(a), -k
	}
	out := cInt(1)
	for ; k > 0; k-- {
		out = cMul(out, a)
	}
	return out
}

func (a cnum) expr() Expr {
	switch {
	case a.isReal():
		return NRat(a.re)
	case a.re.Sign() == 0:
		return MulOf(NRat(a.im), I)
	}
	return AddOf(NRat(a.re), MulOf(NRat(a.im), I))
}

func (a cnum) String() string { return a.re.RatString() + "," + a.im.RatString() }

// ============================================================
// atoms and monomials
// ============================================================

// atom is an indivisible factor: a symbol, pi, a square root, or an
// opaque application. root is set for square roots: expr == sqrt(root).
type atom struct {
	key  string
	expr Expr
	real bool
	pos  bool
	root *rform
}

func symAtom(s *Sym) *atom {
	return &atom{key: "s:" + s.key(), expr: s, real: s.IsReal(), pos: s.IsPositive()}
}

var piAtom = &atom{key: "c:pi", expr: Pi, real: true, pos: true}

func opaqueAtom(e Expr) *atom {
	return &atom{key: "o:" + e.String(), expr: e, real: IsReal(e), pos: IsPositive(e)}
}

func sqrtAtom(root *rform) *atom {
	re := root.expr()
	nonneg := root.isPositive() || isNonNegative(re)
	return &atom{
		key:  "r:" + root.key(),
		expr: &Pow{base: re, exp: F(1, 2)},
		real: nonneg,
		pos:  root.isPositive(),
		root: root,
	}
}

type mpow struct {
	a   *atom
	exp int
}

// mono is a product of atom powers sorted by atom key.
type mono []mpow

func (m mono) key() string {
	var sb strings.Builder
	for _, p := range m {
		sb.WriteString(p.a.key)
		sb.WriteByte('^')
		sb.WriteString(strconv.Itoa(p.exp))
		sb.WriteByte(';')
	}
	return sb.String()
}

func monoMul(a, b mono) mono {
	out := make(mono, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i].a.key < b[j].a.key):
			out = append(out, a[i])
			i++
		case i == len(a) || b[j].a.key < a[i].a.key:
			out = append(out, b[j])
			j++
		default:
			if e := a[i].exp + b[j].exp; e != 0 {
				out = append(out, mpow{a: a[i].a, exp: e})
			}
			i++
			j++
		}
	}
	return out
}

// monoDiv returns a/b when b divides a.
func monoDiv(a, b mono) (mono, bool) {
	neg := make(mono, len(b))
	for i, p := range b {
		neg[i] = mpow{a: p.a, exp: -p.exp}
	}
	q := monoMul(a, neg)
	for _, p := range q {
		if p.exp < 0 {
			return nil, false
		}
	}
	return q, true
}

// lexCmp orders monomials lexicographically, smaller atom keys first.
func lexCmp(a, b mono) int {
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i].a.key < b[j].a.key):
			return 1
		case i == len(a) || b[j].a.key < a[i].a.key:
			return -1
		case a[i].exp != b[j].exp:
			if a[i].exp > b[j].exp {
				return 1
			}
			return -1
		}
		i++
		j++
	}
	return 0
}

// ============================================================
// poly — sparse multivariate polynomial over Gaussian rationals
// ============================================================

type pterm struct {
	m mono
	c cnum
}

type poly struct{ terms map[string]pterm }

func newPoly() *poly { return &poly{terms: map[string]pterm{}} }

func polyConst(c cnum) *poly {
	p := newPoly()
	p.addTerm(nil, c)
	return p
}

func polyAtom(a *atom) *poly {
	p := newPoly()
	p.addTerm(mono{{a: a, exp: 1}}, cInt(1))
	return p
}

func (p *poly) addTerm(m mono, c cnum) {
	if c.isZero() {
		return
	}
	k := m.key()
	if t, ok := p.terms[k]; ok {
		s := cAdd(t.c, c)
		if s.isZero() {
			delete(p.terms, k)
			return
		}
		p.terms[k] = pterm{m: t.m, c: s}
		return
	}
	p.terms[k] = pterm{m: m, c: c}
}

func (p *poly) isZero() bool { return len(p.terms) == 0 }

func (p *poly) constValue() (cnum, bool) {
	if p.isZero() {
		return cInt(0), true
	}
	if t, ok := p.terms[""]; ok && len(p.terms) == 1 {
		return t.c, true
	}
	return cnum{}, false
}

// sorted returns terms leading first.
func (p *poly) sorted() []pterm {
	out := make([]pterm, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return lexCmp(out[i].m, out[j].m) > 0 })
	return out
}

func (p *poly) leading() pterm { return p.sorted()[0] }

func (p *poly) add(q *poly) *poly {
	out := newPoly()
	for _, t := range p.terms {
		out.addTerm(t.m, t.c)
	}
	for _, t := range q.terms {
		out.addTerm(t.m, t.c)
	}
	return out
}

func (p *poly) mul(q *poly) *poly {
	out := newPoly()
	for _, a := range p.terms {
		for _, b := range q.terms {
			out.addTerm(monoMul(a.m, b.m), cMul(a.c, b.c))
		}
	}
	return out
}

func (p *poly) scale(c cnum, m mono) *poly {
	out := newPoly()
	for _, t := range p.terms {
		out.addTerm(monoMul(t.m, m), cMul(t.c, c))
	}
	return out
}

// divExact divides p by d treating every atom as an independent variable.
func (p *poly) divExact(d *poly) (*poly, bool) {
	if d.isZero() {
		return nil, false
	}
	ld := d.leading()
	inv := cInv(ld.c)
	q := newPoly()
	r := p.add(newPoly())
	for steps := 0; !r.isZero(); steps++ {
		if steps > 10000 {
			return nil, false
		}
		lr := r.leading()
		m, ok := monoDiv(lr.m, ld.m)
		if !ok {
			return nil, false
		}
		c := cMul(lr.c, inv)
		q.addTerm(m, c)
		r = r.add(d.scale(cNeg(c), m))
	}
	return q, true
}

// content splits p = c * m * prim where m is the monomial gcd of the terms
// and prim has leading coefficient one.
func (p *poly) content() (cnum, mono, *poly) {
	ts := p.sorted()
	gcd := map[string]mpow{}
	for i, t := range ts {
		seen := map[string]bool{}
		for _, mp := range t.m {
			seen[mp.a.key] = true
			if i == 0 {
				gcd[mp.a.key] = mp
			} else if g, ok := gcd[mp.a.key]; ok && mp.exp < g.exp {
				gcd[mp.a.key] = mp
			}
		}
		for k := range gcd {
			if !seen[k] {
				delete(gcd, k)
			}
		}
	}
	var m mono
	for _, mp := range gcd {
		m = append(m, mp)
	}
	sort.Slice(m, func(i, j int) bool { return m[i].a.key < m[j].a.key })
	c := ts[0].c
	neg := make(mono, len(m))
	for i, mp := range m {
		neg[i] = mpow{a: mp.a, exp: -mp.exp}
	}
	return c, m, p.scale(cInv(c), neg)
}

func (p *poly) key() string {
	ts := p.sorted()
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.c.String() + "*" + t.m.key()
	}
	return "(" + strings.Join(parts, "+") + ")"
}

func (p *poly) atoms() []*atom {
	var out []*atom
	for _, t := range p.terms {
		for _, mp := range t.m {
			out = append(out, mp.a)
		}
	}
	return out
}

// realParts splits p = re + i*im into polynomials with real coefficients.
func (p *poly) realParts() (re, im *poly) {
	re, im = newPoly(), newPoly()
	for _, t := range p.terms {
		re.addTerm(t.m, cReal(t.c.re))
		im.addTerm(t.m, cReal(t.c.im))
	}
	return re, im
}

// isPositive holds when every term is a positive coefficient times atoms
// that are positive or real with even exponent, and some term is strictly
// positive.
func (p *poly) isPositive() bool {
	strict := false
	for _, t := range p.terms {
		if !t.c.isReal() || t.c.re.Sign() <= 0 {
			return false
		}
		allPos := true
		for _, mp := range t.m {
			switch {
			case mp.a.pos:
			case mp.a.real && mp.exp%2 == 0:
				allPos = false
			default:
				return false
			}
		}
		if allPos {
			strict = true
		}
	}
	return strict
}

func (p *poly) expr() Expr {
	ts := p.sorted()
	terms := make([]Expr, len(ts))
	for i, t := range ts {
		fs := []Expr{t.c.expr()}
		for _, mp := range t.m {
			fs = append(fs, powExpr(mp.a.expr, mp.exp))
		}
		terms[i] = MulOf(fs...)
	}
	return AddOf(terms...)
}

func powExpr(base Expr, exp int) Expr {
	if exp == 1 {
		return base
	}
	return &Pow{base: base, exp: N(int64(exp))}
}

// ============================================================
// rform — factored rational normal form
// ============================================================

// factor is a power of either a single atom or a primitive polynomial with
// at least two terms and leading coefficient one.
type factor struct {
	p   *poly
	a   *atom
	key string
	exp int
}

type rform struct {
	c  cnum
	fs []factor
}

func rConst(c cnum) *rform { return &rform{c: c} }

func rAtom(a *atom) *rform {
	return &rform{c: cInt(1), fs: []factor{{p: polyAtom(a), a: a, key: a.key, exp: 1}}}
}

func (r *rform) isZero() bool { return r.c.isZero() }

func (r *rform) isConst() bool { return len(r.fs) == 0 }

func (r *rform) key() string {
	var sb strings.Builder
	sb.WriteString(r.c.String())
	for _, f := range r.fs {
		sb.WriteString("*")
		sb.WriteString(f.key)
		sb.WriteString("^")
		sb.WriteString(strconv.Itoa(f.exp))
	}
	return sb.String()
}

func (f factor) positive() bool {
	if f.a != nil {
		return f.a.pos
	}
	return f.p.isPositive()
}

func (f factor) real() bool {
	if f.a != nil {
		return f.a.real
	}
	for _, t := range f.p.terms {
		if !t.c.isReal() {
			return false
		}
	}
	for _, a := range f.p.atoms() {
		if !a.real {
			return false
		}
	}
	return true
}

func (r *rform) isPositive() bool {
	if !r.c.isReal() || r.c.re.Sign() <= 0 {
		return false
	}
	for _, f := range r.fs {
		if !f.positive() {
			return false
		}
	}
	return true
}

// fromPoly converts an expanded polynomial, reducing square-root atoms
// raised to a power of two or more.
func fromPoly(p *poly) *rform {
	if p.isZero() {
		return rConst(cInt(0))
	}
	clean := newPoly()
	var reducible []pterm
	for _, t := range p.terms {
		if hasReducibleRoot(t.m) {
			reducible = append(reducible, t)
		} else {
			clean.addTerm(t.m, t.c)
		}
	}
	out := fromCleanPoly(clean)
	for _, t := range reducible {
		tr := rConst(t.c)
		for _, mp := range t.m {
			tr = tr.mul(rAtom(mp.a).pow(mp.exp))
		}
		out = out.add(tr)
	}
	return out
}

func hasReducibleRoot(m mono) bool {
	for _, mp := range m {
		if mp.a.root != nil && (mp.exp >= 2 || mp.exp < 0) {
			return true
		}
	}
	return false
}

func fromCleanPoly(p *poly) *rform {
	if c, ok := p.constValue(); ok {
		return rConst(c)
	}
	c, m, prim := p.content()
	out := &rform{c: c}
	for _, mp := range m {
		out.fs = append(out.fs, factor{p: polyAtom(mp.a), a: mp.a, key: mp.a.key, exp: mp.exp})
	}
	if _, ok := prim.constValue(); !ok {
		out.fs = append(out.fs, factor{p: prim, key: prim.key(), exp: 1})
	}
	sort.Slice(out.fs, func(i, j int) bool { return out.fs[i].key < out.fs[j].key })
	return out.normalize()
}

func (r *rform) mul(o *rform) *rform {
	if r.isZero() || o.isZero() {
		return rConst(cInt(0))
	}
	out := &rform{c: cMul(r.c, o.c)}
	i, j := 0, 0
	for i < len(r.fs) || j < len(o.fs) {
		switch {
		case j == len(o.fs) || (i < len(r.fs) && r.fs[i].key < o.fs[j].key):
			out.fs = append(out.fs, r.fs[i])
			i++
		case i == len(r.fs) || o.fs[j].key < r.fs[i].key:
			out.fs = append(out.fs, o.fs[j])
			j++
		default:
			if e := r.fs[i].exp + o.fs[j].exp; e != 0 {
				f := r.fs[i]
				f.exp = e
				out.fs = append(out.fs, f)
			}
			i++
			j++
		}
	}
	return out.normalize()
}

// pow raises r to an integer power. r must be non-zero when k < 0.
func (r *rform) pow(k int) *rform {
	if k == 0 {
		return rConst(cInt(1))
	}
	if r.isZero() {
		return r
	}
	out := &rform{c: cPow(r.c, k)}
	for _, f := range r.fs {
		f.exp *= k
		out.fs = append(out.fs, f)
	}
	return out.normalize()
}

// normalize reduces square roots (sqrt(B)^2 = B) and cancels polynomial
// factors that divide one another.
func (r *rform) normalize() *rform {
	for i, f := range r.fs {
		if f.a == nil || f.a.root == nil || (f.exp >= 0 && f.exp < 2) {
			continue
		}
		q, rem := floorDiv(f.exp, 2)
		rest := &rform{c: r.c, fs: append(append([]factor{}, r.fs[:i]...), r.fs[i+1:]...)}
		if rem != 0 {
			f.exp = rem
			rest = rest.mul(&rform{c: cInt(1), fs: []factor{f}})
		}
		return rest.mul(f.a.root.pow(q))
	}
	for i, fi := range r.fs {
		for j, fj := range r.fs {
			if fi.a != nil || fj.a != nil || fi.exp <= 0 || fj.exp >= 0 {
				continue
			}
			k := min(fi.exp, -fj.exp)
			if q, ok := fi.p.divExact(fj.p); ok {
				return r.withExps(i, fi.exp-k, j, fj.exp+k).mul(fromPoly(q).pow(k))
			}
			if q, ok := fj.p.divExact(fi.p); ok {
				return r.withExps(i, fi.exp-k, j, fj.exp+k).mul(fromPoly(q).pow(-k))
			}
		}
	}
	return r
}

func (r *rform) withExps(i, ei, j, ej int) *rform {
	out := &rform{c: r.c}
	for n, f := range r.fs {
		switch n {
		case i:
			f.exp = ei
		case j:
			f.exp = ej
		}
		if f.exp != 0 {
			out.fs = append(out.fs, f)
		}
	}
	return out
}

func floorDiv(a, b int) (q, rem int) {
	q, rem = a/b, a%b
	if rem < 0 {
		q--
		rem += b
	}
	return q, rem
}

// split returns the common factor g and the non-negative cofactors of r and o.
func split(r, o *rform) (g, rr, oo *rform) {
	g = rConst(cInt(1))
	exps := map[string]factor{}
	for _, f := range r.fs {
		exps[f.key] = f
	}
	seen := map[string]bool{}
	for _, f := range o.fs {
		seen[f.key] = true
		e := 0
		if rf, ok := exps[f.key]; ok {
			e = rf.exp
		}
		f.exp = min(e, f.exp)
		if f.exp != 0 {
			g.fs = append(g.fs, f)
		}
	}
	for _, f := range r.fs {
		if !seen[f.key] && f.exp < 0 {
			g.fs = append(g.fs, f)
		}
	}
	sort.Slice(g.fs, func(i, j int) bool { return g.fs[i].key < g.fs[j].key })
	inv := g.invertRaw()
	return g, r.mulRaw(inv), o.mulRaw(inv)
}

func (r *rform) invertRaw() *rform {
	out := &rform{c: cInv(r.c)}
	for _, f := range r.fs {
		f.exp = -f.exp
		out.fs = append(out.fs, f)
	}
	return out
}

// mulRaw merges factors without normalization.
func (r *rform) mulRaw(o *rform) *rform {
	m := map[string]factor{}
	for _, f := range append(append([]factor{}, r.fs...), o.fs...) {
		if cur, ok := m[f.key]; ok {
			cur.exp += f.exp
			m[f.key] = cur
		} else {
			m[f.key] = f
		}
	}
	out := &rform{c: cMul(r.c, o.c)}
	for _, f := range m {
		if f.exp != 0 {
			out.fs = append(out.fs, f)
		}
	}
	sort.Slice(out.fs, func(i, j int) bool { return out.fs[i].key < out.fs[j].key })
	return out
}

// expand multiplies out a form whose exponents are all non-negative.
func (r *rform) expand() *poly {
	p := polyConst(r.c)
	for _, f := range r.fs {
		for k := 0; k < f.exp; k++ {
			p = p.mul(f.p)
		}
	}
	return p
}

// numDen splits r into expanded numerator and denominator polynomials.
func (r *rform) numDen() (num, den *poly) {
	num, den = polyConst(r.c), polyConst(cInt(1))
	for _, f := range r.fs {
		for k := 0; k < f.exp; k++ {
			num = num.mul(f.p)
		}
		for k := 0; k < -f.exp; k++ {
			den = den.mul(f.p)
		}
	}
	return num, den
}

func (r *rform) add(o *rform) *rform {
	if r.isZero() {
		return o
	}
	if o.isZero() {
		return r
	}
	g, a, b := split(r, o)
	s := a.expand().add(b.expand())
	if s.isZero() {
		return rConst(cInt(0))
	}
	return g.mul(fromPoly(s))
}

func (r *rform) neg() *rform { return r.mul(rConst(cInt(-1))) }

// sqrt returns the principal square root. Positive factors and the positive
// part of a real coefficient are pulled out; whatever remains stays under a
// single radical.
func (r *rform) sqrt() *rform {
	if r.isZero() {
		return r
	}
	out := rConst(cInt(1))
	rest := rConst(cInt(1))
	allPositive := true
	for _, f := range r.fs {
		if !f.positive() {
			allPositive = false
		}
	}
	if r.c.isReal() {
		c := r.c.re
		if c.Sign() < 0 {
			if allPositive {
				out = out.mul(rConst(cImag()))
			} else {
				rest = rest.mul(rConst(cInt(-1)))
			}
			c = new(big.Rat).Neg(c)
		}
		out = out.mul(sqrtRat(c))
	} else {
		rest = rest.mul(rConst(r.c))
	}
	for _, f := range r.fs {
		single := &rform{c: cInt(1), fs: []factor{f}}
		if !f.positive() {
			rest = rest.mul(single)
			continue
		}
		q, rem := floorDiv(f.exp, 2)
		f.exp = 1
		base := &rform{c: cInt(1), fs: []factor{f}}
		out = out.mul(base.pow(q))
		if rem == 1 {
			out = out.mul(rAtom(sqrtAtom(base)))
		}
	}
	if rest.isConst() && rest.c.isOne() {
		return out
	}
	return out.mul(rAtom(sqrtAtom(rest)))
}

// sqrtRat returns sqrt(c) for c > 0 as an exact rational times square roots
// of distinct integer factors.
func sqrtRat(c *big.Rat) *rform {
	n := new(big.Int).Mul(c.Num(), c.Denom())
	sq, free := squareSplit(n)
	out := rConst(cReal(new(big.Rat).SetFrac(sq, c.Denom())))
	for _, p := range free {
		out = out.mul(rAtom(sqrtAtom(rConst(cReal(new(big.Rat).SetInt(p))))))
	}
	return out
}

// squareSplit writes n = sq^2 * prod(free) with free square-free factors
// found by trial division; a large cofactor is kept whole.
func squareSplit(n *big.Int) (sq *big.Int, free []*big.Int) {
	sq = big.NewInt(1)
	m := new(big.Int).Set(n)
	for p := int64(2); p < 10000; p++ {
		bp := big.NewInt(p)
		if new(big.Int).Mul(bp, bp).Cmp(m) > 0 {
			break
		}
		count := 0
		for new(big.Int).Mod(m, bp).Sign() == 0 {
			m.Quo(m, bp)
			count++
		}
		for ; count >= 2; count -= 2 {
			sq.Mul(sq, bp)
		}
		if count == 1 {
			free = append(free, bp)
		}
	}
	if m.Cmp(big.NewInt(1)) > 0 {
		if r := new(big.Int).Sqrt(m); new(big.Int).Mul(r, r).Cmp(m) == 0 {
			sq.Mul(sq, r)
		} else {
			free = append(free, m)
		}
	}
	return sq, free
}

// reIm splits r into real and imaginary parts. ok is false when some atom
// is not provably real.
func (r *rform) reIm() (re, im *rform, ok bool) {
	realPart := &rform{c: cInt(1)}
	cx := &rform{c: r.c}
	for _, f := range r.fs {
		if f.a != nil && !f.a.real {
			return nil, nil, false
		}
		if f.a == nil {
			for _, a := range f.p.atoms() {
				if !a.real {
					return nil, nil, false
				}
			}
		}
		if f.real() {
			realPart.fs = append(realPart.fs, f)
		} else {
			cx.fs = append(cx.fs, f)
		}
	}
	num, den := cx.numDen()
	nr, ni := num.realParts()
	dr, di := den.realParts()
	if di.isZero() {
		inv := fromPoly(dr).pow(-1)
		return realPart.mul(fromPoly(nr)).mul(inv), realPart.mul(fromPoly(ni)).mul(inv), true
	}
	inv := fromPoly(dr.mul(dr).add(di.mul(di))).pow(-1)
	reNum := nr.mul(dr).add(ni.mul(di))
	imNum := ni.mul(dr).add(nr.mul(di).scale(cInt(-1), nil))
	return realPart.mul(fromPoly(reNum)).mul(inv), realPart.mul(fromPoly(imNum)).mul(inv), true
}

// expr converts the normal form back into an expression tree.
func (r *rform) expr() Expr {
	if r.isZero() {
		return N(0)
	}
	fs := []Expr{}
	if !r.c.isOne() {
		fs = append(fs, r.c.expr())
	}
	for _, f := range r.fs {
		var base Expr
		if f.a != nil {
			base = f.a.expr
		} else {
			base = f.p.expr()
		}
		fs = append(fs, powExpr(base, f.exp))
	}
	if len(fs) == 0 {
		return N(1)
	}
	return MulOf(fs...)
}
