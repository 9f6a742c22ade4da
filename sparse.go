package mgcd

import (
	"errors"
	"slices"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// sparseInterpolate computes the monic gcd of a and b, which contain no variable
// after x_last, assuming its monomials are those of skeleton.
//
// The gcd is viewed as \sum_k x_0^k * S_k(x_1..x_last). Images are univariate gcds
// in x_0 at the points x_i = alpha_i^j, j = 1, 2, ..., so the coefficients of each
// S_k satisfy a transposed Vandermonde system in the values of its monomials at
// alpha. When the leading slot is a single monomial the images can be scaled to
// the right leading coefficient and every slot is solved on its own (Monic).
// Otherwise one system solves all coefficients together with the unknown scaling
// of each image (LinZip).
func sparseInterpolate[E any](cfg *Config, a, b, skeleton *mpoly.Poly[E], last int) (*mpoly.Poly[E], error) {
	r := a.Ring()

	if last == 0 {
		return univariateGCD(a, b), nil
	}

	if skeleton.IsMonomial() {
		return mpoly.New(r, a.NVars(), mpoly.NewMonomial(slices.Clone(skeleton.Lt().Exps), r.One())), nil
	}

	dmax := skeleton.Degree(0)
	slots := make([][][]int, dmax+1)
	for _, t := range skeleton.Terms() {
		slots[t.Exps[0]] = append(slots[t.Exps[0]], t.Exps)
	}

	nonEmpty := 0
	for _, s := range slots {
		if len(s) > 0 {
			nonEmpty++
		}
	}

	monic := len(slots[dmax]) == 1
	if !monic && nonEmpty == 1 {
		return nil, errDegenerateSkeleton
	}

	for attempt := 0; attempt < cfg.Limits.MaxFailedSubstitutions; attempt++ {
		sp := newSparseProblem(cfg, a, b, slots, last)

		var (
			g   *mpoly.Poly[E]
			err error
		)

		if monic {
			g, err = sp.solveMonic()
		} else {
			g, err = sp.solveLinZip(cfg.Limits.MaxUnderDetermined)
		}

		if errors.Is(err, errUnlucky) {
			continue
		}

		return g, err
	}

	return nil, errUnlucky
}

type sparseProblem[E any] struct {
	r     field.Ring[E]
	nvars int
	last  int

	a, b       *mpoly.Poly[E]
	degA, degB int

	// slots[k] holds the skeleton monomials of x_0 degree k, in descending order.
	slots [][][]int
	dmax  int

	alpha []E
	// point is alpha^j for the last image taken.
	point []E
}

func newSparseProblem[E any](cfg *Config, a, b *mpoly.Poly[E], slots [][][]int, last int) *sparseProblem[E] {
	r := a.Ring()
	nvars := a.NVars()

	alpha := make([]E, nvars)
	point := make([]E, nvars)

	for i := range alpha {
		alpha[i], point[i] = r.One(), r.One()
		if i >= 1 && i <= last {
			alpha[i] = randomNonZero(r, cfg.Random)
		}
	}

	return &sparseProblem[E]{
		r:     r,
		nvars: nvars,
		last:  last,
		a:     a,
		b:     b,
		degA:  a.Degree(0),
		degB:  b.Degree(0),
		slots: slots,
		dmax:  len(slots) - 1,
		alpha: alpha,
		point: point,
	}
}

// monomialValue evaluates the monomial x^m (without x_0) at alpha.
func (sp *sparseProblem[E]) monomialValue(m []int) E {
	r := sp.r

	val := r.One()
	for i := 1; i <= sp.last; i++ {
		if m[i] != 0 {
			val = r.Mul(val, field.Pow(r, sp.alpha[i], uint64(m[i])))
		}
	}

	return val
}

// nextImage returns the monic univariate gcd of a and b at the next power of alpha.
func (sp *sparseProblem[E]) nextImage() (*field.Polynomial[E], error) {
	r := sp.r
	for i := 1; i <= sp.last; i++ {
		sp.point[i] = r.Mul(sp.point[i], sp.alpha[i])
	}

	ua, ub := sp.a.EvaluateExcept(0, sp.point), sp.b.EvaluateExcept(0, sp.point)
	if ua.Degree() != sp.degA || ub.Degree() != sp.degB {
		return nil, errUnlucky
	}

	g := field.Gcd(ua, ub)

	switch {
	case g.Degree() < sp.dmax:
		return nil, errSkeleton
	case g.Degree() > sp.dmax:
		return nil, errUnlucky
	}

	for k, slot := range sp.slots {
		if len(slot) == 0 && !r.IsZero(g.Coeff(k)) {
			return nil, errSkeleton
		}
	}

	return g, nil
}

func (sp *sparseProblem[E]) images(n int) ([]*field.Polynomial[E], error) {
	out := make([]*field.Polynomial[E], n)
	for j := range out {
		g, err := sp.nextImage()
		if err != nil {
			return nil, err
		}

		out[j] = g
	}

	return out, nil
}

func (sp *sparseProblem[E]) solveMonic() (*mpoly.Poly[E], error) {
	r := sp.r

	size := 0
	for _, slot := range sp.slots {
		size = max(size, len(slot))
	}

	// one image more than needed checks the solution.
	images, err := sp.images(size + 1)
	if err != nil {
		return nil, err
	}

	// the leading monomial has coefficient one in the result, so the image at
	// alpha^j is scaled by its value there.
	top := sp.monomialValue(sp.slots[sp.dmax][0])
	scale := r.One()

	for j := range images {
		scale = r.Mul(scale, top)
		images[j] = images[j].MulScalar(scale)
	}

	terms := make([]mpoly.Monomial[E], 0)

	for k, slot := range sp.slots {
		if len(slot) == 0 {
			continue
		}

		nodes := make([]E, len(slot))
		rhs := make([]E, len(slot))

		for i, m := range slot {
			nodes[i] = sp.monomialValue(m)
			rhs[i] = images[i].Coeff(k)
		}

		coeffs, info := field.SolveVandermonde(r, nodes, rhs)
		if info != field.Consistent {
			return nil, errUnlucky
		}

		check := r.Zero()
		for i, node := range nodes {
			check = r.Add(check, r.Mul(coeffs[i], field.Pow(r, node, uint64(size+1))))
		}

		if !r.Equal(check, images[size].Coeff(k)) {
			return nil, errSkeleton
		}

		for i, m := range slot {
			terms = append(terms, mpoly.NewMonomial(slices.Clone(m), coeffs[i]))
		}
	}

	return mpoly.New(r, sp.nvars, terms...), nil
}

// solveLinZip solves for every coefficient c_m and for the scale lambda_j of every
// image but the first:
//
//	\sum_{m in S_k} c_m * m(alpha)^j - lambda_j * g_j[k] = 0
//
// with lambda_1 = 1. More images are added while the system is under-determined.
func (sp *sparseProblem[E]) solveLinZip(maxUnderDetermined int) (*mpoly.Poly[E], error) {
	r := sp.r

	monomials := make([][]int, 0)
	bySlot := make([][]int, len(sp.slots))

	for k, slot := range sp.slots {
		for _, m := range slot {
			bySlot[k] = append(bySlot[k], len(monomials))
			monomials = append(monomials, m)
		}
	}

	n := len(monomials)

	nonEmpty := 0
	for _, idx := range bySlot {
		if len(idx) > 0 {
			nonEmpty++
		}
	}

	values := make([]E, n)
	for i, m := range monomials {
		values[i] = sp.monomialValue(m)
	}

	// each image adds nonEmpty equations and one unknown.
	count := (n-1+nonEmpty-2)/(nonEmpty-1) + 1

	images, err := sp.images(count)
	if err != nil {
		return nil, err
	}

	for extra := 0; ; extra++ {
		solution, info := sp.linZipSystem(images, bySlot, values)

		switch info {
		case field.Consistent:
			terms := make([]mpoly.Monomial[E], n)
			for i, m := range monomials {
				terms[i] = mpoly.NewMonomial(slices.Clone(m), solution[i])
			}

			return mpoly.New(r, sp.nvars, terms...).Monic(), nil
		case field.Inconsistent:
			return nil, errSkeleton
		}

		if extra >= maxUnderDetermined {
			return nil, errUnlucky
		}

		g, err := sp.nextImage()
		if err != nil {
			return nil, err
		}

		images = append(images, g)
	}
}

func (sp *sparseProblem[E]) linZipSystem(images []*field.Polynomial[E], bySlot [][]int, values []E) ([]E, field.SystemInfo) {
	r := sp.r
	n := len(values)
	cols := n + len(images) - 1

	pw := make([]E, n)
	for i := range pw {
		pw[i] = r.One()
	}

	lhs := make([][]E, 0)
	rhs := make([]E, 0)

	for j, g := range images {
		for i := range pw {
			pw[i] = r.Mul(pw[i], values[i])
		}

		for k, idx := range bySlot {
			if len(idx) == 0 {
				continue
			}

			row := make([]E, cols)
			for i := range row {
				row[i] = r.Zero()
			}

			for _, i := range idx {
				row[i] = pw[i]
			}

			if j == 0 {
				rhs = append(rhs, g.Coeff(k))
			} else {
				row[n+j-1] = r.Neg(g.Coeff(k))
				rhs = append(rhs, r.Zero())
			}

			lhs = append(lhs, row)
		}
	}

	return field.SolveLinear(r, lhs, rhs)
}
