package mgcd

import (
	"math/big"
	"slices"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// scalarContent is the ring gcd of c and every coefficient of p. Over a field it
// is one.
func scalarContent[E any](p *mpoly.Poly[E], c E) E {
	r := p.Ring()
	if r.IsField() {
		return r.One()
	}

	for _, t := range p.Terms() {
		c = r.Gcd(c, t.Coef)
		if r.IsUnit(c) {
			break
		}
	}

	return c
}

// normalize picks the canonical associate of a gcd: monic over a field, positive
// lex leading coefficient over the integers whatever the order of g.
func normalize[E any](g *mpoly.Poly[E]) *mpoly.Poly[E] {
	if g.IsZero() {
		return g
	}

	if g.Ring().IsField() {
		return g.Monic()
	}

	if zg, ok := any(g).(*mpoly.Poly[*big.Int]); ok && zg.WithOrder(mpoly.Lex).Lc().Sign() < 0 {
		return g.Neg()
	}

	return g
}

// univariateCoefficient is one coefficient of a polynomial viewed as a polynomial
// in every variable but x_v with coefficients in K[x_v].
type univariateCoefficient[E any] struct {
	exps []int
	coef *field.Polynomial[E]
}

// coefficientsOver splits p = \sum_i c_i(x_v) * m_i, where the m_i do not contain
// x_v. The coefficients are sorted by descending Lex order of m_i, so the first one
// is the leading coefficient of p when x_v is its last variable.
func coefficientsOver[E any](p *mpoly.Poly[E], v int) []univariateCoefficient[E] {
	r := p.Ring()
	deg := max(p.Degree(v), 0)

	idx := make(map[string]int)
	exps := make([][]int, 0)
	coeffs := make([][]E, 0)

	for _, t := range p.Terms() {
		m := slices.Clone(t.Exps)
		m[v] = 0

		k := mpoly.ExponentKey(m)
		i, ok := idx[k]
		if !ok {
			i = len(exps)
			idx[k] = i

			c := make([]E, deg+1)
			for j := range c {
				c[j] = r.Zero()
			}

			exps = append(exps, m)
			coeffs = append(coeffs, c)
		}

		coeffs[i][t.Exps[v]] = t.Coef
	}

	out := make([]univariateCoefficient[E], len(exps))
	for i := range exps {
		out[i] = univariateCoefficient[E]{exps: exps[i], coef: field.NewPolynomial(r, coeffs[i])}
	}

	slices.SortFunc(out, func(x, y univariateCoefficient[E]) int {
		return mpoly.Lex.Compare(y.exps, x.exps)
	})

	return out
}

// univariateContent is the monic gcd of the coefficients of p in K[x_v].
func univariateContent[E any](p *mpoly.Poly[E], v int) *field.Polynomial[E] {
	var g *field.Polynomial[E]
	for _, c := range coefficientsOver(p, v) {
		if g == nil {
			g = c.coef.Monic()
		} else {
			g = field.Gcd(g, c.coef)
		}

		if g.Degree() == 0 {
			break
		}
	}

	return g
}

// divideUnivariate divides p by u(x_v), which must divide it.
func divideUnivariate[E any](p *mpoly.Poly[E], v int, u *field.Polynomial[E]) *mpoly.Poly[E] {
	if u.IsOne() {
		return p
	}

	q, ok := p.DivExact(mpoly.FromUnivariatePoly(p.NVars(), v, u))
	if !ok {
		panic("univariate content does not divide polynomial")
	}

	return q
}

// univariateGCD is the base case of the recursive algorithms: a and b only
// contain x_0.
func univariateGCD[E any](a, b *mpoly.Poly[E]) *mpoly.Poly[E] {
	g := field.Gcd(a.ToUnivariate(0), b.ToUnivariate(0))

	return mpoly.FromUnivariatePoly(a.NVars(), 0, g)
}

// varPower is the exponent vector of x_v^k.
func varPower(nvars, v, k int) []int {
	exps := make([]int, nvars)
	exps[v] = k

	return exps
}

func nonZero[E any](polys []*mpoly.Poly[E]) []*mpoly.Poly[E] {
	out := make([]*mpoly.Poly[E], 0, len(polys))
	for _, p := range polys {
		if !p.IsZero() {
			out = append(out, p)
		}
	}

	return out
}
