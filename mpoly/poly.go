package mpoly

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathanmweiss/go-mgcd/field"
)

// Poly is a sparse multivariate polynomial over a Ring: a set of monomials with
// nonzero coefficients over a fixed number of variables, sorted in descending
// monomial order (terms[0] is the leading term).
//
// A Poly is immutable. Every method returns a new polynomial, so a polynomial can be
// shared freely as an operand of several computations.
type Poly[E any] struct {
	r     field.Ring[E]
	nvars int
	order Order
	terms []Monomial[E]
}

var (
	ErrRingMismatch     = errors.New("polynomials are over different rings")
	ErrVariableMismatch = errors.New("polynomials have different number of variables")
)

// builder accumulates terms, combining equal exponent vectors.
type builder[E any] struct {
	r     field.Ring[E]
	idx   map[string]int
	terms []Monomial[E]
}

func newBuilder[E any](r field.Ring[E], capacity int) *builder[E] {
	return &builder[E]{r: r, idx: make(map[string]int, capacity), terms: make([]Monomial[E], 0, capacity)}
}

// add takes ownership of exps.
func (b *builder[E]) add(exps []int, c E) {
	if b.r.IsZero(c) {
		return
	}

	k := ExponentKey(exps)
	if i, ok := b.idx[k]; ok {
		b.terms[i].Coef = b.r.Add(b.terms[i].Coef, c)
		return
	}

	b.idx[k] = len(b.terms)
	b.terms = append(b.terms, NewMonomial(exps, c))
}

func (b *builder[E]) build(nvars int, order Order) *Poly[E] {
	terms := b.terms[:0]
	for _, t := range b.terms {
		if !b.r.IsZero(t.Coef) {
			terms = append(terms, t)
		}
	}

	return fromTerms(b.r, nvars, order, terms)
}

// fromTerms sorts terms, which must have distinct exponents and nonzero coefficients.
func fromTerms[E any](r field.Ring[E], nvars int, order Order, terms []Monomial[E]) *Poly[E] {
	slices.SortFunc(terms, func(x, y Monomial[E]) int {
		return order.Compare(y.Exps, x.Exps)
	})

	return &Poly[E]{r: r, nvars: nvars, order: order, terms: terms}
}

// New builds a polynomial in Lex order. Terms with equal exponents are combined and
// zero coefficients dropped.
func New[E any](r field.Ring[E], nvars int, terms ...Monomial[E]) *Poly[E] {
	return NewWithOrder(r, nvars, Lex, terms...)
}

func NewWithOrder[E any](r field.Ring[E], nvars int, order Order, terms ...Monomial[E]) *Poly[E] {
	b := newBuilder(r, len(terms))
	for _, t := range terms {
		if len(t.Exps) != nvars {
			panic("monomial has wrong number of variables")
		}

		b.add(slices.Clone(t.Exps), t.Coef)
	}

	return b.build(nvars, order)
}

func Zero[E any](r field.Ring[E], nvars int) *Poly[E] {
	return &Poly[E]{r: r, nvars: nvars}
}

func Constant[E any](r field.Ring[E], nvars int, c E) *Poly[E] {
	if r.IsZero(c) {
		return Zero(r, nvars)
	}

	return &Poly[E]{r: r, nvars: nvars, terms: []Monomial[E]{NewMonomial(make([]int, nvars), c)}}
}

// Variable returns x_v.
func Variable[E any](r field.Ring[E], nvars, v int) *Poly[E] {
	exps := make([]int, nvars)
	exps[v] = 1

	return &Poly[E]{r: r, nvars: nvars, terms: []Monomial[E]{NewMonomial(exps, r.One())}}
}

func (p *Poly[E]) Ring() field.Ring[E] { return p.r }

func (p *Poly[E]) NVars() int { return p.nvars }

func (p *Poly[E]) Order() Order { return p.order }

func (p *Poly[E]) Len() int { return len(p.terms) }

// Terms returns the terms in descending order. The slice must not be modified.
func (p *Poly[E]) Terms() []Monomial[E] { return p.terms }

func (p *Poly[E]) IsZero() bool { return len(p.terms) == 0 }

func (p *Poly[E]) IsConstant() bool {
	return len(p.terms) == 0 || (len(p.terms) == 1 && p.terms[0].degree == 0)
}

func (p *Poly[E]) IsOne() bool {
	return p.IsConstant() && len(p.terms) == 1 && p.r.IsOne(p.terms[0].Coef)
}

func (p *Poly[E]) IsMonomial() bool { return len(p.terms) <= 1 }

// Lt is the leading term. It panics on the zero polynomial.
func (p *Poly[E]) Lt() Monomial[E] { return p.terms[0] }

// Lc is the leading coefficient, zero for the zero polynomial.
func (p *Poly[E]) Lc() E {
	if len(p.terms) == 0 {
		return p.r.Zero()
	}

	return p.terms[0].Coef
}

// Cc is the constant coefficient.
func (p *Poly[E]) Cc() E {
	if len(p.terms) == 0 {
		return p.r.Zero()
	}

	last := p.terms[len(p.terms)-1]
	if last.degree != 0 {
		return p.r.Zero()
	}

	return last.Coef
}

// Degree returns the degree in x_v, -1 for the zero polynomial.
func (p *Poly[E]) Degree(v int) int {
	if p.IsZero() {
		return -1
	}

	d := 0
	for _, t := range p.terms {
		d = max(d, t.Exps[v])
	}

	return d
}

// Degrees returns the degree in each variable.
func (p *Poly[E]) Degrees() []int {
	degs := make([]int, p.nvars)
	if p.IsZero() {
		for i := range degs {
			degs[i] = -1
		}

		return degs
	}

	for _, t := range p.terms {
		for i, e := range t.Exps {
			degs[i] = max(degs[i], e)
		}
	}

	return degs
}

// MinDegrees returns the smallest exponent of each variable over all terms, that is
// the exponents of the monomial content.
func (p *Poly[E]) MinDegrees() []int {
	if p.IsZero() {
		return make([]int, p.nvars)
	}

	mins := slices.Clone(p.terms[0].Exps)
	for _, t := range p.terms[1:] {
		for i, e := range t.Exps {
			mins[i] = min(mins[i], e)
		}
	}

	return mins
}

// TotalDegree is -1 for the zero polynomial.
func (p *Poly[E]) TotalDegree() int {
	d := -1
	for _, t := range p.terms {
		d = max(d, t.degree)
	}

	return d
}

// UsesVariable reports whether x_v occurs in p.
func (p *Poly[E]) UsesVariable(v int) bool {
	return p.Degree(v) > 0
}

func (p *Poly[E]) Equal(q *Poly[E]) bool {
	if p.nvars != q.nvars || len(p.terms) != len(q.terms) {
		return false
	}

	if p.order != q.order {
		q = q.WithOrder(p.order)
	}

	for i := range p.terms {
		if !equalExps(p.terms[i].Exps, q.terms[i].Exps) || !p.r.Equal(p.terms[i].Coef, q.terms[i].Coef) {
			return false
		}
	}

	return true
}

// WithOrder re-sorts p under another monomial order.
func (p *Poly[E]) WithOrder(o Order) *Poly[E] {
	if o == p.order {
		return p
	}

	return fromTerms(p.r, p.nvars, o, slices.Clone(p.terms))
}

func (p *Poly[E]) empty() *Poly[E] {
	return &Poly[E]{r: p.r, nvars: p.nvars, order: p.order}
}

// CheckCompatible returns an error unless p and q share a ring and a variable count.
func (p *Poly[E]) CheckCompatible(q *Poly[E]) error {
	if p.nvars != q.nvars {
		return ErrVariableMismatch
	}

	if !field.SameRing(p.r, q.r) {
		return ErrRingMismatch
	}

	return nil
}

func (p *Poly[E]) Add(q *Poly[E]) *Poly[E] {
	return p.merge(q, false)
}

func (p *Poly[E]) Sub(q *Poly[E]) *Poly[E] {
	return p.merge(q, true)
}

// merge walks both sorted term lists once.
func (p *Poly[E]) merge(q *Poly[E], negate bool) *Poly[E] {
	if q.order != p.order {
		q = q.WithOrder(p.order)
	}

	r := p.r
	out := make([]Monomial[E], 0, len(p.terms)+len(q.terms))

	i, j := 0, 0
	for i < len(p.terms) || j < len(q.terms) {
		var c int
		switch {
		case i == len(p.terms):
			c = -1
		case j == len(q.terms):
			c = 1
		default:
			c = p.order.Compare(p.terms[i].Exps, q.terms[j].Exps)
		}

		switch {
		case c > 0:
			out = append(out, p.terms[i])
			i++
		case c < 0:
			t := q.terms[j]
			if negate {
				t.Coef = r.Neg(t.Coef)
			}

			out = append(out, t)
			j++
		default:
			var s E
			if negate {
				s = r.Sub(p.terms[i].Coef, q.terms[j].Coef)
			} else {
				s = r.Add(p.terms[i].Coef, q.terms[j].Coef)
			}

			if !r.IsZero(s) {
				t := p.terms[i]
				t.Coef = s
				out = append(out, t)
			}

			i++
			j++
		}
	}

	return &Poly[E]{r: r, nvars: p.nvars, order: p.order, terms: out}
}

func (p *Poly[E]) Neg() *Poly[E] {
	out := make([]Monomial[E], len(p.terms))
	for i, t := range p.terms {
		t.Coef = p.r.Neg(t.Coef)
		out[i] = t
	}

	return &Poly[E]{r: p.r, nvars: p.nvars, order: p.order, terms: out}
}

func (p *Poly[E]) MulScalar(c E) *Poly[E] {
	if p.r.IsZero(c) {
		return p.empty()
	}

	if p.r.IsOne(c) {
		return p
	}

	out := make([]Monomial[E], 0, len(p.terms))
	for _, t := range p.terms {
		t.Coef = p.r.Mul(t.Coef, c)
		if !p.r.IsZero(t.Coef) {
			out = append(out, t)
		}
	}

	return &Poly[E]{r: p.r, nvars: p.nvars, order: p.order, terms: out}
}

// DivScalar divides every coefficient by c; ok is false when some division is not exact.
func (p *Poly[E]) DivScalar(c E) (*Poly[E], bool) {
	if p.r.IsOne(c) {
		return p, true
	}

	out := make([]Monomial[E], len(p.terms))
	for i, t := range p.terms {
		q, ok := p.r.DivExact(t.Coef, c)
		if !ok {
			return nil, false
		}

		t.Coef = q
		out[i] = t
	}

	return &Poly[E]{r: p.r, nvars: p.nvars, order: p.order, terms: out}, true
}

// MulMonomial multiplies by c*x^exps. Monomial orders are compatible with
// multiplication, so no re-sort is needed.
func (p *Poly[E]) MulMonomial(exps []int, c E) *Poly[E] {
	if p.r.IsZero(c) {
		return p.empty()
	}

	out := make([]Monomial[E], 0, len(p.terms))
	for _, t := range p.terms {
		coef := p.r.Mul(t.Coef, c)
		if !p.r.IsZero(coef) {
			out = append(out, NewMonomial(addExps(t.Exps, exps), coef))
		}
	}

	return &Poly[E]{r: p.r, nvars: p.nvars, order: p.order, terms: out}
}

// DivMonomial divides by x^exps, which must divide every term.
func (p *Poly[E]) DivMonomial(exps []int) *Poly[E] {
	out := make([]Monomial[E], len(p.terms))
	for i, t := range p.terms {
		if !dividesExps(exps, t.Exps) {
			panic("monomial does not divide polynomial")
		}

		out[i] = NewMonomial(subExps(t.Exps, exps), t.Coef)
	}

	return &Poly[E]{r: p.r, nvars: p.nvars, order: p.order, terms: out}
}

func (p *Poly[E]) Mul(q *Poly[E]) *Poly[E] {
	if p.IsZero() || q.IsZero() {
		return p.empty()
	}

	if len(q.terms) == 1 {
		return p.MulMonomial(q.terms[0].Exps, q.terms[0].Coef)
	}

	if len(p.terms) == 1 {
		return q.WithOrder(p.order).MulMonomial(p.terms[0].Exps, p.terms[0].Coef)
	}

	r := p.r
	b := newBuilder(r, len(p.terms)*len(q.terms))

	for _, s := range p.terms {
		for _, t := range q.terms {
			b.add(addExps(s.Exps, t.Exps), r.Mul(s.Coef, t.Coef))
		}
	}

	return b.build(p.nvars, p.order)
}

// Pow computes p^n by repeated squaring.
func (p *Poly[E]) Pow(n int) *Poly[E] {
	result := Constant(p.r, p.nvars, p.r.One())
	result.order = p.order

	base := p
	for n > 0 {
		if n%2 == 1 {
			result = result.Mul(base)
		}

		base = base.Mul(base)
		n /= 2
	}

	return result
}

// Monic divides by the leading coefficient. The ring must be a field.
func (p *Poly[E]) Monic() *Poly[E] {
	if p.IsZero() || p.r.IsOne(p.Lc()) {
		return p
	}

	return p.MulScalar(p.r.Reciprocal(p.Lc()))
}

// DivExact returns p/q; ok is false if q does not divide p exactly.
//
// Repeatedly cancels the leading term of the remainder against the leading term of q:
// if q divides p the leading monomial of every remainder is a multiple of lt(q).
func (p *Poly[E]) DivExact(q *Poly[E]) (*Poly[E], bool) {
	if q.IsZero() {
		return nil, false
	}

	if p.IsZero() {
		return p, true
	}

	q = q.WithOrder(p.order)

	if len(q.terms) == 1 {
		return p.divExactMonomial(q.terms[0])
	}

	r := p.r
	lt := q.terms[0]

	// cheap rejections: degrees and the trailing term.
	pd, qd := p.Degrees(), q.Degrees()
	for i := range pd {
		if qd[i] > pd[i] {
			return nil, false
		}
	}

	quotient := make([]Monomial[E], 0, len(p.terms))
	rem := p

	for !rem.IsZero() {
		head := rem.terms[0]
		if !dividesExps(lt.Exps, head.Exps) {
			return nil, false
		}

		c, ok := r.DivExact(head.Coef, lt.Coef)
		if !ok {
			return nil, false
		}

		exps := subExps(head.Exps, lt.Exps)
		quotient = append(quotient, NewMonomial(exps, c))
		rem = rem.Sub(q.MulMonomial(exps, c))
	}

	// quotient terms are produced in descending order.
	return &Poly[E]{r: r, nvars: p.nvars, order: p.order, terms: quotient}, true
}

func (p *Poly[E]) divExactMonomial(m Monomial[E]) (*Poly[E], bool) {
	out := make([]Monomial[E], len(p.terms))
	for i, t := range p.terms {
		if !dividesExps(m.Exps, t.Exps) {
			return nil, false
		}

		c, ok := p.r.DivExact(t.Coef, m.Coef)
		if !ok {
			return nil, false
		}

		out[i] = NewMonomial(subExps(t.Exps, m.Exps), c)
	}

	return &Poly[E]{r: p.r, nvars: p.nvars, order: p.order, terms: out}, true
}

// Divides reports whether p divides q.
func (p *Poly[E]) Divides(q *Poly[E]) bool {
	_, ok := q.DivExact(p)

	return ok
}

// ContentScalar returns the ring gcd of all coefficients.
func (p *Poly[E]) ContentScalar() E {
	r := p.r
	if p.IsZero() {
		return r.Zero()
	}

	g := p.terms[0].Coef
	for _, t := range p.terms[1:] {
		if r.IsUnit(g) {
			break
		}

		g = r.Gcd(g, t.Coef)
	}

	if r.IsField() {
		return r.One()
	}

	return g
}

// PrimitivePart divides p by its scalar content.
func (p *Poly[E]) PrimitivePart() *Poly[E] {
	if p.IsZero() {
		return p
	}

	pp, ok := p.DivScalar(p.ContentScalar())
	if !ok {
		panic("content does not divide polynomial")
	}

	return pp
}

// Permute renames variables: variable i of the result is variable perm[i] of p.
func (p *Poly[E]) Permute(perm []int) *Poly[E] {
	b := newBuilder(p.r, len(p.terms))
	for _, t := range p.terms {
		exps := make([]int, len(perm))
		for i, v := range perm {
			exps[i] = t.Exps[v]
		}

		b.add(exps, t.Coef)
	}

	return b.build(len(perm), p.order)
}

// InversePermutation returns the permutation undoing perm.
func InversePermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, v := range perm {
		inv[v] = i
	}

	return inv
}

// MapCoefficients applies f to every coefficient, producing a polynomial over r.
// Coefficients mapped to zero are dropped.
func MapCoefficients[E, F any](p *Poly[E], r field.Ring[F], f func(E) F) *Poly[F] {
	out := make([]Monomial[F], 0, len(p.terms))
	for _, t := range p.terms {
		c := f(t.Coef)
		if !r.IsZero(c) {
			out = append(out, Monomial[F]{Exps: t.Exps, Coef: c, degree: t.degree})
		}
	}

	return &Poly[F]{r: r, nvars: p.nvars, order: p.order, terms: out}
}

var varNames = []string{"x", "y", "z", "t", "u", "v", "w"}

// VarName is the printed name of variable v.
func VarName(v, nvars int) string {
	if nvars <= len(varNames) {
		return varNames[v]
	}

	return "x" + strconv.Itoa(v)
}

func (p *Poly[E]) String() string {
	if p.IsZero() {
		return "0"
	}

	bldr := strings.Builder{}
	for i, t := range p.terms {
		if i > 0 {
			bldr.WriteString(" + ")
		}

		coef := p.r.Format(t.Coef)
		monomial := ""
		for v, e := range t.Exps {
			if e == 0 {
				continue
			}

			if monomial != "" {
				monomial += "*"
			}

			monomial += VarName(v, p.nvars)
			if e > 1 {
				monomial += "^" + strconv.Itoa(e)
			}
		}

		switch {
		case monomial == "":
			bldr.WriteString(coef)
		case p.r.IsOne(t.Coef):
			bldr.WriteString(monomial)
		default:
			bldr.WriteString(coef)
			bldr.WriteString("*")
			bldr.WriteString(monomial)
		}
	}

	return bldr.String()
}
