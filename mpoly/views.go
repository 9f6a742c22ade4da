package mpoly

import (
	"slices"

	"github.com/jonathanmweiss/go-mgcd/field"
)

// powers caches val^k for k <= maxExp.
func powers[E any](r field.Ring[E], val E, maxExp int) []E {
	pw := make([]E, maxExp+1)
	pw[0] = r.One()
	for k := 1; k <= maxExp; k++ {
		pw[k] = r.Mul(pw[k-1], val)
	}

	return pw
}

// Evaluate substitutes x_v = val. The result keeps nvars variables, x_v no longer
// occurs in it.
func (p *Poly[E]) Evaluate(v int, val E) *Poly[E] {
	if p.IsZero() {
		return p
	}

	r := p.r
	pw := powers(r, val, p.Degree(v))

	b := newBuilder(r, len(p.terms))
	for _, t := range p.terms {
		if t.Exps[v] == 0 {
			b.add(t.Exps, t.Coef)
			continue
		}

		exps := slices.Clone(t.Exps)
		exps[v] = 0
		b.add(exps, r.Mul(t.Coef, pw[t.Exps[v]]))
	}

	return b.build(p.nvars, p.order)
}

// EvaluateZero substitutes x_v = 0 for every v in vars, which drops every term
// using one of them.
func (p *Poly[E]) EvaluateZero(vars ...int) *Poly[E] {
	out := make([]Monomial[E], 0, len(p.terms))

outer:
	for _, t := range p.terms {
		for _, v := range vars {
			if t.Exps[v] != 0 {
				continue outer
			}
		}

		out = append(out, t)
	}

	return &Poly[E]{r: p.r, nvars: p.nvars, order: p.order, terms: out}
}

// EvaluateAll substitutes every variable, vals[i] for x_i.
func (p *Poly[E]) EvaluateAll(vals []E) E {
	r := p.r
	degs := p.Degrees()

	pws := make([][]E, p.nvars)
	for i := range pws {
		pws[i] = powers(r, vals[i], max(degs[i], 0))
	}

	acc := r.Zero()
	for _, t := range p.terms {
		c := t.Coef
		for i, e := range t.Exps {
			if e != 0 {
				c = r.Mul(c, pws[i][e])
			}
		}

		acc = r.Add(acc, c)
	}

	return acc
}

// EvaluateExcept substitutes vals[i] for every x_i with i != keep, giving a
// univariate polynomial in x_keep.
func (p *Poly[E]) EvaluateExcept(keep int, vals []E) *field.Polynomial[E] {
	r := p.r
	degs := p.Degrees()

	pws := make([][]E, p.nvars)
	for i := range pws {
		if i != keep {
			pws[i] = powers(r, vals[i], max(degs[i], 0))
		}
	}

	coeffs := make([]E, max(degs[keep], 0)+1)
	for i := range coeffs {
		coeffs[i] = r.Zero()
	}

	for _, t := range p.terms {
		c := t.Coef
		for i, e := range t.Exps {
			if i != keep && e != 0 {
				c = r.Mul(c, pws[i][e])
			}
		}

		coeffs[t.Exps[keep]] = r.Add(coeffs[t.Exps[keep]], c)
	}

	return field.NewPolynomial(r, coeffs)
}

// Shift substitutes x_v -> x_v + s.
func (p *Poly[E]) Shift(v int, s E) *Poly[E] {
	if p.IsZero() || p.r.IsZero(s) || p.Degree(v) == 0 {
		return p
	}

	coeffs := p.AsUnivariate(v)

	// (x_v + s) as a polynomial.
	lin := Variable(p.r, p.nvars, v).Add(Constant(p.r, p.nvars, s)).WithOrder(p.order)

	// Horner's rule in x_v.
	acc := p.empty()
	for k := len(coeffs) - 1; k >= 0; k-- {
		acc = acc.Mul(lin).Add(coeffs[k])
	}

	return acc
}

// AsUnivariate splits p = \sum_k c_k * x_v^k and returns the c_k, which no longer
// contain x_v.
func (p *Poly[E]) AsUnivariate(v int) []*Poly[E] {
	d := p.Degree(v)
	if d < 0 {
		return nil
	}

	parts := make([][]Monomial[E], d+1)
	for _, t := range p.terms {
		k := t.Exps[v]
		if k == 0 {
			parts[0] = append(parts[0], t)
			continue
		}

		exps := slices.Clone(t.Exps)
		exps[v] = 0
		parts[k] = append(parts[k], Monomial[E]{Exps: exps, Coef: t.Coef, degree: t.degree - k})
	}

	out := make([]*Poly[E], d+1)
	for k := range parts {
		// a subsequence of a sorted list with one variable zeroed stays sorted under
		// Lex only when v is the first variable, so sort again.
		out[k] = fromTerms(p.r, p.nvars, p.order, parts[k])
	}

	return out
}

// FromUnivariate rebuilds \sum_k coeffs[k] * x_v^k.
func FromUnivariate[E any](v int, coeffs []*Poly[E]) *Poly[E] {
	r := coeffs[0].r
	nvars, order := coeffs[0].nvars, coeffs[0].order

	b := newBuilder(r, 0)
	for k, c := range coeffs {
		for _, t := range c.terms {
			exps := slices.Clone(t.Exps)
			exps[v] += k
			b.add(exps, t.Coef)
		}
	}

	return b.build(nvars, order)
}

// Coefficient returns the coefficient of x_v^k.
func (p *Poly[E]) Coefficient(v, k int) *Poly[E] {
	out := make([]Monomial[E], 0)
	for _, t := range p.terms {
		if t.Exps[v] != k {
			continue
		}

		exps := slices.Clone(t.Exps)
		exps[v] = 0
		out = append(out, Monomial[E]{Exps: exps, Coef: t.Coef, degree: t.degree - k})
	}

	return &Poly[E]{r: p.r, nvars: p.nvars, order: p.order, terms: out}
}

// LcIn is the leading coefficient of p viewed as a polynomial in x_v.
func (p *Poly[E]) LcIn(v int) *Poly[E] {
	return p.Coefficient(v, p.Degree(v))
}

// ToUnivariate converts a polynomial in x_v only to a dense univariate one.
func (p *Poly[E]) ToUnivariate(v int) *field.Polynomial[E] {
	r := p.r

	coeffs := make([]E, max(p.Degree(v), 0)+1)
	for i := range coeffs {
		coeffs[i] = r.Zero()
	}

	for _, t := range p.terms {
		for i, e := range t.Exps {
			if i != v && e != 0 {
				panic("polynomial is not univariate")
			}
		}

		coeffs[t.Exps[v]] = t.Coef
	}

	return field.NewPolynomial(r, coeffs)
}

// FromUnivariatePoly embeds u as a polynomial in x_v.
func FromUnivariatePoly[E any](nvars, v int, u *field.Polynomial[E]) *Poly[E] {
	r := u.Ring()

	out := make([]Monomial[E], 0, u.Degree()+1)
	for k := u.Degree(); k >= 0; k-- {
		c := u.Coeff(k)
		if r.IsZero(c) {
			continue
		}

		exps := make([]int, nvars)
		exps[v] = k
		out = append(out, NewMonomial(exps, c))
	}

	return fromTerms(r, nvars, Lex, out)
}

// MulUnivariate multiplies p by u(x_v).
func (p *Poly[E]) MulUnivariate(v int, u *field.Polynomial[E]) *Poly[E] {
	return p.Mul(FromUnivariatePoly(p.nvars, v, u).WithOrder(p.order))
}
