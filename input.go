package mgcd

import (
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// gcdFunc computes the gcd of two polynomials over the same ring. Algorithms pass
// themselves as a gcdFunc to compute contents and trivial sub-cases.
type gcdFunc[E any] func(cfg *Config, a, b *mpoly.Poly[E]) (*mpoly.Poly[E], error)

// gcdKernel computes the gcd of a reduced input, in the reduced coordinates.
type gcdKernel[E any] func(cfg *Config, in *gcdInput[E]) (*mpoly.Poly[E], error)

// gcdInput is the result of reducing a pair of polynomials before running a gcd
// algorithm on them.
//
// a and b are in Lex order, their monomial contents are divided out and their
// variables are permuted so that bounds is non-increasing. Every variable up to
// lastPresent occurs in both a and b, no variable after it occurs in either.
type gcdInput[E any] struct {
	a, b *mpoly.Poly[E]

	// order of the caller's polynomials; the result is returned in it.
	order mpoly.Order
	// monomialGCD is x^min(content(a), content(b)) in the caller's variables.
	monomialGCD []int
	// perm maps reduced variables to caller variables, nil when no permutation
	// was applied.
	perm []int

	// bounds[v] is an upper bound on the degree of the gcd in variable v.
	bounds      []int
	lastPresent int

	// extensionDegree is 1, or the degree of an extension of the coefficient
	// field with enough elements to interpolate the gcd.
	extensionDegree int

	// early is set when the reduction already found the gcd. It is expressed in
	// the caller's variables.
	early *mpoly.Poly[E]
}

// reduceInput handles the trivial cases of gcd(a, b) and otherwise prepares the
// input of a gcd kernel. self is used for the sub-gcds the reduction needs.
func reduceInput[E any](cfg *Config, a, b *mpoly.Poly[E], self gcdFunc[E]) (*gcdInput[E], error) {
	r := a.Ring()
	nvars := a.NVars()

	in := &gcdInput[E]{
		order:           a.Order(),
		monomialGCD:     make([]int, nvars),
		extensionDegree: 1,
	}

	a, b = a.WithOrder(mpoly.Lex), b.WithOrder(mpoly.Lex)

	if a.IsZero() {
		in.early = b
		return in, nil
	}

	if b.IsZero() {
		in.early = a
		return in, nil
	}

	ma, mb := a.MinDegrees(), b.MinDegrees()
	for i := range in.monomialGCD {
		in.monomialGCD[i] = min(ma[i], mb[i])
	}

	a, b = a.DivMonomial(ma), b.DivMonomial(mb)

	if a.IsConstant() || b.IsConstant() {
		in.early = mpoly.Constant(r, nvars, scalarContent(a, scalarContent(b, r.Zero())))
		return in, nil
	}

	if a.Equal(b) {
		in.early = a
		return in, nil
	}

	da, db := a.Degrees(), b.Degrees()

	// a variable present in one operand only: gcd(a, b) is the gcd of b and the
	// coefficients of a in that variable.
	for v := 0; v < nvars; v++ {
		var polys []*mpoly.Poly[E]

		switch {
		case da[v] > 0 && db[v] == 0:
			polys = append(a.AsUnivariate(v), b)
		case db[v] > 0 && da[v] == 0:
			polys = append(b.AsUnivariate(v), a)
		default:
			continue
		}

		g, err := gcdArrayWith(cfg, polys, self)
		if err != nil {
			return nil, err
		}

		in.early = g

		return in, nil
	}

	bounds := make([]int, nvars)
	for v := range bounds {
		bounds[v] = min(da[v], db[v])
	}

	if r.IsField() && !field.CardinalityBelow(r, int64(cfg.Limits.EvaluationFactor*slices.Max(bounds))) {
		tightenBounds(cfg, a, b, bounds)

		for v, d := range bounds {
			if d != 0 || da[v] == 0 {
				continue
			}

			// the gcd does not depend on x_v.
			log.Tracef("variable %d eliminated by degree bound", v)

			g, err := gcdArrayWith(cfg, append(a.AsUnivariate(v), b.AsUnivariate(v)...), self)
			if err != nil {
				return nil, err
			}

			in.early = g

			return in, nil
		}
	}

	perm := make([]int, nvars)
	for i := range perm {
		perm[i] = i
	}

	slices.SortStableFunc(perm, func(x, y int) int {
		return bounds[y] - bounds[x]
	})

	in.perm = perm
	in.a, in.b = a.Permute(perm), b.Permute(perm)

	in.bounds = make([]int, nvars)
	in.lastPresent = -1

	for i, v := range perm {
		in.bounds[i] = bounds[v]
		if bounds[v] > 0 {
			in.lastPresent = i
		}
	}

	need := int64(cfg.Limits.EvaluationFactor * max(in.bounds[0], 1))
	in.extensionDegree = extensionDegree(r.Cardinality(), need)

	return in, nil
}

// tightenBounds lowers bounds[v] to the degree of the gcd of univariate images of a
// and b in x_v. An image whose degrees are preserved has a gcd at least as large as
// the image of the true gcd.
func tightenBounds[E any](cfg *Config, a, b *mpoly.Poly[E], bounds []int) {
	const attempts = 2

	r := a.Ring()
	da, db := a.Degrees(), b.Degrees()

	vals := make([]E, a.NVars())
	for v := range bounds {
		if bounds[v] == 0 {
			continue
		}

		for i := 0; i < attempts; i++ {
			for j := range vals {
				vals[j] = randomNonZero(r, cfg.Random)
			}

			ua, ub := a.EvaluateExcept(v, vals), b.EvaluateExcept(v, vals)
			if ua.Degree() != da[v] || ub.Degree() != db[v] {
				continue
			}

			bounds[v] = min(bounds[v], field.Gcd(ua, ub).Degree())
		}
	}
}

// restore maps a gcd of the reduced input back to the caller's variables.
func (in *gcdInput[E]) restore(g *mpoly.Poly[E]) *mpoly.Poly[E] {
	if in.perm != nil {
		g = g.Permute(mpoly.InversePermutation(in.perm))
	}

	g = g.MulMonomial(in.monomialGCD, g.Ring().One())

	return normalize(g.WithOrder(in.order))
}
