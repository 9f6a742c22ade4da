package mgcd

import (
	"errors"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// EZGCD computes gcd(a, b) over a field by Hensel lifting: a univariate gcd of an
// image where most variables are set to zero is lifted back to the multivariate
// gcd, with the leading coefficient fixed beforehand. The result is monic.
func EZGCD[E any](cfg *Config, a, b *mpoly.Poly[E]) (*mpoly.Poly[E], error) {
	return fieldGCD(cfg, a, b, EZ)
}

// EEZGCD is EZGCD with Wang's variable-by-variable lifting, which keeps the
// intermediate polynomials smaller when many variables are evaluated to nonzero
// values.
func EEZGCD[E any](cfg *Config, a, b *mpoly.Poly[E]) (*mpoly.Poly[E], error) {
	return fieldGCD(cfg, a, b, EEZ)
}

func ezKernel[E any](enhanced bool) gcdKernel[E] {
	return func(cfg *Config, in *gcdInput[E]) (*mpoly.Poly[E], error) {
		alg := EZ
		if enhanced {
			alg = EEZ
		}

		ez := &ezProblem[E]{
			cfg:      cfg,
			in:       in,
			self:     gcdWith[E](alg),
			enhanced: enhanced,
			r:        in.a.Ring(),
			nvars:    in.a.NVars(),
		}

		for v := 0; v <= in.lastPresent; v++ {
			ez.vars = append(ez.vars, v)
		}

		return ez.run()
	}
}

type ezProblem[E any] struct {
	cfg      *Config
	in       *gcdInput[E]
	self     gcdFunc[E]
	enhanced bool

	r     field.Ring[E]
	nvars int
	// vars are the variables of the input.
	vars []int
}

// ezContent is the input made primitive with respect to the main variable x_u.
type ezContent[E any] struct {
	a, b       *mpoly.Poly[E]
	contentGCD *mpoly.Poly[E]
	// gamma is the gcd of the leading coefficients of a and b in x_u; the leading
	// coefficient of the gcd divides it.
	gamma *mpoly.Poly[E]
}

func (ez *ezProblem[E]) run() (*mpoly.Poly[E], error) {
	a, b := ez.in.a, ez.in.b
	if len(ez.vars) == 1 {
		return univariateGCD(a, b), nil
	}

	u, zeros := ez.chooseScheme(a, b)
	log.Debugf("ez: main variable x%d, %d variables set to zero", u, len(zeros))

	ct, err := ez.contents(a, b, u)
	if err != nil {
		return nil, err
	}

	if ct.a.IsConstant() || ct.b.IsConstant() {
		return ct.contentGCD, nil
	}

	deg := imageDegree{bound: min(ct.a.Degree(u), ct.b.Degree(u))}

	for attempt := 0; attempt < ez.cfg.Limits.MaxEZAttempts; attempt++ {
		vals, ok := ez.evaluation(ct, u, zeros, attempt)
		if !ok {
			continue
		}

		ua, ub := ct.a.EvaluateExcept(u, vals), ct.b.EvaluateExcept(u, vals)
		g0 := field.Gcd(ua, ub)

		if g0.Degree() == 0 {
			return ct.contentGCD, nil
		}

		if !deg.observe(g0.Degree()) {
			log.Tracef("ez: attempt %d, image gcd of degree %d, bound %d", attempt, g0.Degree(), deg.bound)
			continue
		}

		if g0.Degree() == ua.Degree() && ct.a.Divides(ct.b) {
			return ct.a.Mul(ct.contentGCD), nil
		}

		if g0.Degree() == ub.Degree() && ct.b.Divides(ct.a) {
			return ct.b.Mul(ct.contentGCD), nil
		}

		if g0.Degree() == ua.Degree() || g0.Degree() == ub.Degree() {
			continue
		}

		g, err := ez.lift(ct, u, vals, g0, ua, ub)
		if errors.Is(err, errUnlucky) {
			log.Tracef("ez: attempt %d, lifting failed", attempt)
			continue
		}

		if err != nil {
			return nil, err
		}

		return g.Mul(ct.contentGCD), nil
	}

	if ez.in.extensionDegree > 1 {
		return nil, ErrEvaluationsExhausted
	}

	return nil, ErrRetriesExceeded
}

// imageDegree tracks the degree of the univariate gcd images. An image is only
// trusted once an earlier image from other evaluation values had the same degree.
type imageDegree struct {
	bound int
	seen  bool
}

// observe records an image of degree d and reports whether it is confirmed.
func (id *imageDegree) observe(d int) bool {
	switch {
	case d > id.bound:
		return false
	case d < id.bound || !id.seen:
		id.bound, id.seen = d, true
		return false
	}

	return true
}

// chooseScheme picks the main variable x_u and the variables that are set to zero
// in the images.
//
// A perfect variable is one whose pure powers x_u^deg occur in both a and b while
// both have a nonzero constant term: setting every other variable to zero keeps
// the degrees. Otherwise the variable allowing the largest set of zeros that keeps
// the leading and trailing coefficients in x_u nonzero is chosen.
func (ez *ezProblem[E]) chooseScheme(a, b *mpoly.Poly[E]) (u int, zeros []int) {
	if !ez.r.IsZero(a.Cc()) && !ez.r.IsZero(b.Cc()) {
		for _, u := range ez.vars {
			if hasPurePower(a, u) && hasPurePower(b, u) {
				return u, ez.others(u)
			}
		}
	}

	best := -1
	for _, v := range ez.vars {
		coeffs := []*mpoly.Poly[E]{a.LcIn(v), b.LcIn(v), a.Coefficient(v, 0), b.Coefficient(v, 0)}

		set := make([]int, 0)
		for _, w := range ez.others(v) {
			try := append(slices.Clone(set), w)
			if allNonZero(coeffs, try) {
				set = try
			}
		}

		if len(set) > best {
			best, u, zeros = len(set), v, set
		}
	}

	return u, zeros
}

func (ez *ezProblem[E]) others(u int) []int {
	out := make([]int, 0, len(ez.vars)-1)
	for _, v := range ez.vars {
		if v != u {
			out = append(out, v)
		}
	}

	return out
}

func hasPurePower[E any](p *mpoly.Poly[E], u int) bool {
	d := p.Degree(u)
	for _, t := range p.Terms() {
		if t.Exps[u] == d && t.TotalDegree() == d {
			return true
		}
	}

	return false
}

func allNonZero[E any](polys []*mpoly.Poly[E], zeros []int) bool {
	for _, p := range polys {
		if p.EvaluateZero(zeros...).IsZero() {
			return false
		}
	}

	return true
}

func (ez *ezProblem[E]) contents(a, b *mpoly.Poly[E], u int) (*ezContent[E], error) {
	contA, err := gcdArrayWith(ez.cfg, a.AsUnivariate(u), ez.self)
	if err != nil {
		return nil, err
	}

	contB, err := gcdArrayWith(ez.cfg, b.AsUnivariate(u), ez.self)
	if err != nil {
		return nil, err
	}

	contentGCD, err := ez.self(ez.cfg, contA, contB)
	if err != nil {
		return nil, err
	}

	pa, ok := a.DivExact(contA)
	if !ok {
		panic("content does not divide polynomial")
	}

	pb, ok := b.DivExact(contB)
	if !ok {
		panic("content does not divide polynomial")
	}

	gamma, err := ez.self(ez.cfg, pa.LcIn(u), pb.LcIn(u))
	if err != nil {
		return nil, err
	}

	return &ezContent[E]{a: pa, b: pb, contentGCD: contentGCD, gamma: gamma}, nil
}

// evaluation returns the values of the variables other than x_u for an attempt.
// Attempt k evaluates the first k variables of zeros at random nonzero values
// instead of zero. ok is false when a leading or trailing coefficient vanishes.
func (ez *ezProblem[E]) evaluation(ct *ezContent[E], u int, zeros []int, attempt int) ([]E, bool) {
	zeroSet := zeros[min(attempt, len(zeros)):]

	vals := make([]E, ez.nvars)
	for i := range vals {
		vals[i] = ez.r.Zero()
	}

	for _, w := range ez.others(u) {
		if !slices.Contains(zeroSet, w) {
			vals[w] = randomNonZero(ez.r, ez.cfg.Random)
		}
	}

	for _, p := range []*mpoly.Poly[E]{ct.a.LcIn(u), ct.b.LcIn(u), ct.a.Coefficient(u, 0), ct.b.Coefficient(u, 0)} {
		if ez.r.IsZero(p.EvaluateAll(vals)) {
			return nil, false
		}
	}

	return vals, true
}

// lift recovers the primitive gcd of ct.a and ct.b from its image g0.
func (ez *ezProblem[E]) lift(ct *ezContent[E], u int, vals []E, g0, ua, ub *field.Polynomial[E]) (*mpoly.Poly[E], error) {
	p, p0, ok := ez.liftBase(ct, u, vals, g0, ua, ub)
	if !ok {
		return nil, errUnlucky
	}

	h0, _ := field.DivExact(p0, g0)

	// gamma * p = G * H with lc(G) = gamma and lc(H) = lc(p).
	gammaVal := ct.gamma.EvaluateAll(vals)
	hl, ok := newHensel(ez.nvars, u, g0.MulScalar(gammaVal), h0)
	if !ok {
		return nil, errUnlucky
	}

	target := p.Mul(ct.gamma)
	lcG, lcH := ct.gamma, p.LcIn(u)

	// move the evaluation point to zero.
	others := ez.others(u)
	for _, w := range others {
		if !ez.r.IsZero(vals[w]) {
			target, lcG, lcH = target.Shift(w, vals[w]), lcG.Shift(w, vals[w]), lcH.Shift(w, vals[w])
		}
	}

	var (
		g   *mpoly.Poly[E]
		err error
	)

	if ez.enhanced {
		g, _, err = hl.liftWang(target, lcG, lcH, others)
	} else {
		g, _, err = hl.liftTotalDegree(target, lcG, lcH)
	}

	if err != nil {
		return nil, err
	}

	for _, w := range others {
		if !ez.r.IsZero(vals[w]) {
			g = g.Shift(w, ez.r.Neg(vals[w]))
		}
	}

	// G = (gamma / lc(gcd)) * gcd.
	candidate := g
	if !ct.gamma.IsConstant() {
		content, err := gcdArrayWith(ez.cfg, g.AsUnivariate(u), ez.self)
		if err != nil {
			return nil, err
		}

		candidate, ok = g.DivExact(content)
		if !ok {
			return nil, errUnlucky
		}
	}

	candidate = candidate.Monic()
	if !candidate.Divides(ct.a) || !candidate.Divides(ct.b) {
		return nil, errUnlucky
	}

	return candidate, nil
}

// liftBase picks the polynomial whose factorization g * (p / g) is lifted. Its
// image cofactor must be coprime to g0. When neither a nor b qualifies, a random
// combination a + c*b, still a multiple of the gcd, is tried.
func (ez *ezProblem[E]) liftBase(ct *ezContent[E], u int, vals []E, g0, ua, ub *field.Polynomial[E]) (*mpoly.Poly[E], *field.Polynomial[E], bool) {
	coprime := func(p0 *field.Polynomial[E]) bool {
		cofactor, _ := field.DivExact(p0, g0)
		return field.Gcd(cofactor, g0).Degree() == 0
	}

	if coprime(ua) {
		return ct.a, ua, true
	}

	if coprime(ub) {
		return ct.b, ub, true
	}

	for i := 0; i < ez.cfg.Limits.MaxFailedSubstitutions; i++ {
		c := randomNonZero(ez.r, ez.cfg.Random)

		p := ct.a.Add(ct.b.MulScalar(c))
		p0 := p.EvaluateExcept(u, vals)

		if p0.Degree() == p.Degree(u) && coprime(p0) {
			return p, p0, true
		}
	}

	return nil, nil, false
}
