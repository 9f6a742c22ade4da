package field

import (
	"strconv"
	"strings"
)

// Polynomial is a dense univariate polynomial over a Ring, coefficients ordered
// from lowest to highest degree (e.g. [1, 2, 3] is 1 + 2x + 3x^2).
//
// Polynomials are immutable: no method modifies its receiver or arguments, and the
// coefficient slice never has trailing zeros. The zero polynomial has no
// coefficients and degree -1.
type Polynomial[E any] struct {
	r     Ring[E]
	inner []E
}

// NewPolynomial takes ownership of inner.
func NewPolynomial[E any](r Ring[E], inner []E) *Polynomial[E] {
	p := &Polynomial[E]{r: r, inner: inner}
	p.removeLeadingZeroes()

	return p
}

// ConstantPolynomial returns the degree-0 polynomial c.
func ConstantPolynomial[E any](r Ring[E], c E) *Polynomial[E] {
	return NewPolynomial(r, []E{c})
}

// MonomialPolynomial returns c*x^deg.
func MonomialPolynomial[E any](r Ring[E], c E, deg int) *Polynomial[E] {
	inner := make([]E, deg+1)
	for i := range inner {
		inner[i] = r.Zero()
	}
	inner[deg] = c

	return NewPolynomial(r, inner)
}

// LinearPolynomial returns x - root.
func LinearPolynomial[E any](r Ring[E], root E) *Polynomial[E] {
	return NewPolynomial(r, []E{r.Neg(root), r.One()})
}

func (p *Polynomial[E]) removeLeadingZeroes() {
	i := len(p.inner) - 1
	for i >= 0 && p.r.IsZero(p.inner[i]) {
		i--
	}
	p.inner = p.inner[:i+1]
}

func (p *Polynomial[E]) Ring() Ring[E] { return p.r }

func (p *Polynomial[E]) IsZero() bool {
	return len(p.inner) == 0
}

func (p *Polynomial[E]) IsConstant() bool {
	return len(p.inner) <= 1
}

func (p *Polynomial[E]) IsOne() bool {
	return len(p.inner) == 1 && p.r.IsOne(p.inner[0])
}

func (p *Polynomial[E]) Equals(q *Polynomial[E]) bool {
	if len(p.inner) != len(q.inner) {
		return false
	}

	for i := range p.inner {
		if !p.r.Equal(p.inner[i], q.inner[i]) {
			return false
		}
	}

	return true
}

func (p *Polynomial[E]) Degree() int {
	return len(p.inner) - 1
}

func (p *Polynomial[E]) LeadCoeff() E {
	if len(p.inner) == 0 {
		return p.r.Zero()
	}

	return p.inner[len(p.inner)-1]
}

// Coeff returns the coefficient of x^i.
func (p *Polynomial[E]) Coeff(i int) E {
	if i < 0 || i >= len(p.inner) {
		return p.r.Zero()
	}

	return p.inner[i]
}

func (p *Polynomial[E]) Copy() *Polynomial[E] {
	innercopy := make([]E, len(p.inner))
	copy(innercopy, p.inner)

	return &Polynomial[E]{r: p.r, inner: innercopy}
}

func (p *Polynomial[E]) ToSlice() []E {
	list := make([]E, len(p.inner))
	copy(list, p.inner)

	return list
}

func (p *Polynomial[E]) String() string {
	if len(p.inner) == 0 {
		return "0"
	}

	bldr := strings.Builder{}
	first := true

	for i := len(p.inner) - 1; i >= 0; i-- {
		if p.r.IsZero(p.inner[i]) {
			continue
		}

		if !first {
			bldr.WriteString(" + ")
		}
		first = false

		bldr.WriteString(p.r.Format(p.inner[i]))

		if i != 0 {
			bldr.WriteString("*x^")
			bldr.WriteString(strconv.Itoa(i))
		}
	}

	return bldr.String()
}

// Evaluate uses Horner's rule.
func (p *Polynomial[E]) Evaluate(x E) E {
	r := p.r
	result := r.Zero()

	for i := len(p.inner) - 1; i >= 0; i-- {
		result = r.Add(p.inner[i], r.Mul(x, result))
	}

	return result
}

func (p *Polynomial[E]) Add(q *Polynomial[E]) *Polynomial[E] {
	return p.combine(q, p.r.Add)
}

func (p *Polynomial[E]) Sub(q *Polynomial[E]) *Polynomial[E] {
	return p.combine(q, p.r.Sub)
}

func (p *Polynomial[E]) combine(q *Polynomial[E], op func(a, b E) E) *Polynomial[E] {
	n := max(len(p.inner), len(q.inner))
	out := make([]E, n)

	for i := 0; i < n; i++ {
		out[i] = op(p.Coeff(i), q.Coeff(i))
	}

	return NewPolynomial(p.r, out)
}

func (p *Polynomial[E]) Neg() *Polynomial[E] {
	out := make([]E, len(p.inner))
	for i, c := range p.inner {
		out[i] = p.r.Neg(c)
	}

	return &Polynomial[E]{r: p.r, inner: out}
}

func (p *Polynomial[E]) MulScalar(s E) *Polynomial[E] {
	out := make([]E, len(p.inner))
	for i, c := range p.inner {
		out[i] = p.r.Mul(c, s)
	}

	return NewPolynomial(p.r, out)
}

// denseMultiplier is implemented by rings with a fast multiplication of coefficient
// slices, such as NTT-friendly prime fields.
type denseMultiplier[E any] interface {
	MulDense(a, b []E) ([]E, bool)
}

func (p *Polynomial[E]) Mul(q *Polynomial[E]) *Polynomial[E] {
	if p.IsZero() || q.IsZero() {
		return &Polynomial[E]{r: p.r}
	}

	if dm, ok := any(p.r).(denseMultiplier[E]); ok {
		if prod, ok := dm.MulDense(p.inner, q.inner); ok {
			return NewPolynomial(p.r, prod)
		}
	}

	r := p.r
	out := make([]E, len(p.inner)+len(q.inner)-1)
	for i := range out {
		out[i] = r.Zero()
	}

	// Perform schoolbook convolution: O(n*m).
	// out[i+j] += a[i] * b[j]
	for i, ai := range p.inner {
		if r.IsZero(ai) {
			continue
		}

		for j, bj := range q.inner {
			out[i+j] = r.Add(out[i+j], r.Mul(ai, bj))
		}
	}

	return NewPolynomial(r, out)
}

// ShiftLeft multiplies by x^k.
func (p *Polynomial[E]) ShiftLeft(k int) *Polynomial[E] {
	if p.IsZero() {
		return p
	}

	out := make([]E, len(p.inner)+k)
	for i := 0; i < k; i++ {
		out[i] = p.r.Zero()
	}
	copy(out[k:], p.inner)

	return &Polynomial[E]{r: p.r, inner: out}
}

// Monic divides by the leading coefficient. The ring must be a field.
func (p *Polynomial[E]) Monic() *Polynomial[E] {
	if p.IsZero() || p.r.IsOne(p.LeadCoeff()) {
		return p
	}

	return p.MulScalar(p.r.Reciprocal(p.LeadCoeff()))
}
