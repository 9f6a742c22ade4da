package mgcd

import (
	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// hensel lifts a factorization target = G * H from its image G0 * H0 at
// x_w = 0 for every w in others, with x_u the main variable. The leading
// coefficients of G and H in x_u are imposed, so the lift is unique.
type hensel[E any] struct {
	r     field.Ring[E]
	nvars int
	u     int

	g0, h0 *field.Polynomial[E]
	// s*h0 + t*g0 = 1
	s, t *field.Polynomial[E]
}

func newHensel[E any](nvars, u int, g0, h0 *field.Polynomial[E]) (*hensel[E], bool) {
	one, s, t := field.ExtendedGcd(h0, g0)
	if one.Degree() != 0 {
		return nil, false
	}

	return &hensel[E]{r: g0.Ring(), nvars: nvars, u: u, g0: g0, h0: h0, s: s, t: t}, true
}

// solveUnivariate returns sigma, tau with sigma*h0 + tau*g0 = c and
// deg sigma < deg g0.
func (h *hensel[E]) solveUnivariate(c *field.Polynomial[E]) (sigma, tau *field.Polynomial[E]) {
	sigma = field.Mod(c.Mul(h.s), h.g0)

	tau, ok := field.DivExact(c.Sub(sigma.Mul(h.h0)), h.g0)
	if !ok {
		panic("diophantine remainder is not divisible")
	}

	return sigma, tau
}

func (h *hensel[E]) univariate(p *field.Polynomial[E]) *mpoly.Poly[E] {
	return mpoly.FromUnivariatePoly(h.nvars, h.u, p)
}

// withLeadingCoefficient replaces the leading coefficient of p in x_u by lc.
func (h *hensel[E]) withLeadingCoefficient(p, lc *mpoly.Poly[E]) *mpoly.Poly[E] {
	top := varPower(h.nvars, h.u, p.Degree(h.u))
	one := h.r.One()

	return p.Sub(p.LcIn(h.u).MulMonomial(top, one)).Add(lc.MulMonomial(top, one))
}

// liftTotalDegree is the EZ lifting: the error target - G*H is cancelled one total
// degree (in the variables other than x_u) at a time, each monomial coefficient
// by a univariate diophantine equation.
func (h *hensel[E]) liftTotalDegree(target, lcG, lcH *mpoly.Poly[E]) (g, hh *mpoly.Poly[E], err error) {
	g = h.withLeadingCoefficient(h.univariate(h.g0), lcG)
	hh = h.withLeadingCoefficient(h.univariate(h.h0), lcH)

	maxDeg := 0
	for _, t := range target.Terms() {
		maxDeg = max(maxDeg, t.TotalDegree()-t.Exps[h.u])
	}

	one := h.r.One()

	for k := 1; k <= maxDeg; k++ {
		e := target.Sub(g.Mul(hh))
		if e.IsZero() {
			return g, hh, nil
		}

		for _, c := range coefficientsOver(e, h.u) {
			if sumExps(c.exps) != k {
				continue
			}

			sigma, tau := h.solveUnivariate(c.coef)
			g = g.Add(h.univariate(sigma).MulMonomial(c.exps, one))
			hh = hh.Add(h.univariate(tau).MulMonomial(c.exps, one))
		}
	}

	if !target.Sub(g.Mul(hh)).IsZero() {
		return nil, nil, errUnlucky
	}

	return g, hh, nil
}

// liftWang is the EEZ lifting: the variables are lifted one at a time, solving a
// multivariate diophantine equation for each power of the current variable.
func (h *hensel[E]) liftWang(target, lcG, lcH *mpoly.Poly[E], others []int) (g, hh *mpoly.Poly[E], err error) {
	// targets[i] is target with x_w = 0 for w in others[i:].
	targets := make([]*mpoly.Poly[E], len(others)+1)
	targets[len(others)] = target

	for i := len(others) - 1; i >= 0; i-- {
		targets[i] = targets[i+1].EvaluateZero(others[i])
	}

	maxDeg := 0
	for _, w := range others {
		maxDeg = max(maxDeg, target.Degree(w))
	}

	g, hh = h.univariate(h.g0), h.univariate(h.h0)
	one := h.r.One()

	for i, w := range others {
		t := targets[i+1]
		prevG, prevH := g, hh

		g = h.withLeadingCoefficient(g, lcG.EvaluateZero(others[i+1:]...))
		hh = h.withLeadingCoefficient(hh, lcH.EvaluateZero(others[i+1:]...))

		e := t.Sub(g.Mul(hh))
		for k := 1; k <= t.Degree(w) && !e.IsZero(); k++ {
			c := e.Coefficient(w, k)
			if c.IsZero() {
				continue
			}

			sigma, tau := h.diophantine(prevH, prevG, c, others[:i], maxDeg)

			mono := varPower(h.nvars, w, k)
			g = g.Add(sigma.MulMonomial(mono, one))
			hh = hh.Add(tau.MulMonomial(mono, one))

			e = t.Sub(g.Mul(hh))
		}

		if !e.IsZero() {
			return nil, nil, errUnlucky
		}
	}

	return g, hh, nil
}

// diophantine solves sigma*a + tau*b = c modulo (x_w)^(maxDeg+1) for w in vars,
// where a and b reduce to h0 and g0 at x_w = 0.
func (h *hensel[E]) diophantine(a, b, c *mpoly.Poly[E], vars []int, maxDeg int) (sigma, tau *mpoly.Poly[E]) {
	if len(vars) == 0 {
		s, t := h.solveUnivariate(c.ToUnivariate(h.u))
		return h.univariate(s), h.univariate(t)
	}

	w := vars[len(vars)-1]
	rest := vars[:len(vars)-1]

	a0, b0 := a.EvaluateZero(w), b.EvaluateZero(w)
	sigma, tau = h.diophantine(a0, b0, c.EvaluateZero(w), rest, maxDeg)

	one := h.r.One()
	e := c.Sub(sigma.Mul(a)).Sub(tau.Mul(b))

	for m := 1; m <= maxDeg && !e.IsZero(); m++ {
		cm := e.Coefficient(w, m)
		if cm.IsZero() {
			continue
		}

		ds, dt := h.diophantine(a0, b0, cm, rest, maxDeg)

		mono := varPower(h.nvars, w, m)
		sigma = sigma.Add(ds.MulMonomial(mono, one))
		tau = tau.Add(dt.MulMonomial(mono, one))

		e = c.Sub(sigma.Mul(a)).Sub(tau.Mul(b))
	}

	return sigma, tau
}

func sumExps(exps []int) int {
	s := 0
	for _, e := range exps {
		s += e
	}

	return s
}
