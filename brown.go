package mgcd

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// BrownGCD computes gcd(a, b) over a field by dense evaluation and interpolation,
// one variable at a time down to univariate gcds. The result is monic.
func BrownGCD[E any](cfg *Config, a, b *mpoly.Poly[E]) (*mpoly.Poly[E], error) {
	return fieldGCD(cfg, a, b, Brown)
}

func brownKernel[E any](cfg *Config, in *gcdInput[E]) (*mpoly.Poly[E], error) {
	return brown(cfg, in, in.a, in.b, in.lastPresent)
}

// brown computes the gcd of a and b, which contain no variable after x_v.
func brown[E any](cfg *Config, in *gcdInput[E], a, b *mpoly.Poly[E], v int) (*mpoly.Poly[E], error) {
	for v > 0 && !a.UsesVariable(v) && !b.UsesVariable(v) {
		v--
	}

	if v == 0 {
		return univariateGCD(a, b), nil
	}

	return interpolateVariable(cfg, a, b, v, in.bounds[v], brownImages[E]{cfg: cfg, in: in})
}

// imageSource computes the gcd of the images of a and b at a value of x_{v+1}.
type imageSource[E any] interface {
	image(a, b *mpoly.Poly[E], v int) (*mpoly.Poly[E], error)
	// reset is called when the interpolation restarts from scratch.
	reset()
}

type brownImages[E any] struct {
	cfg *Config
	in  *gcdInput[E]
}

func (s brownImages[E]) image(a, b *mpoly.Poly[E], v int) (*mpoly.Poly[E], error) {
	return brown(s.cfg, s.in, a, b, v)
}

func (brownImages[E]) reset() {}

// interpolateVariable computes gcd(a, b) by interpolating x_v, the last variable
// of a and b, from gcds of images at x_v = s for random s.
//
// a and b are made primitive with respect to x_v first. Each image gcd is scaled
// so that its leading coefficient is gcd(lc(a), lc(b)) evaluated at s, which makes
// all images agree with a single polynomial. A candidate is accepted only when its
// primitive part divides both a and b.
func interpolateVariable[E any](cfg *Config, a, b *mpoly.Poly[E], v, bound int, src imageSource[E]) (*mpoly.Poly[E], error) {
	r := a.Ring()
	nvars := a.NVars()

	contA, contB := univariateContent(a, v), univariateContent(b, v)
	contentGCD := mpoly.FromUnivariatePoly(nvars, v, field.Gcd(contA, contB))

	a, b = divideUnivariate(a, v, contA), divideUnivariate(b, v, contB)
	if a.IsConstant() || b.IsConstant() {
		return contentGCD, nil
	}

	lcA, lcB := coefficientsOver(a, v)[0].coef, coefficientsOver(b, v)[0].coef
	lcGCD := field.Gcd(lcA, lcB)

	bound = min(bound, a.Degree(v), b.Degree(v))
	need := bound + lcGCD.Degree() + 1

	points := newEvaluationStack(r, cfg.Random, false)
	interp := newNewtonInterpolation(r, v)
	resets := 0

	for {
		s, ok := points.next()
		if !ok {
			return nil, ErrEvaluationsExhausted
		}

		if r.IsZero(lcA.Evaluate(s)) || r.IsZero(lcB.Evaluate(s)) {
			continue
		}

		g, err := src.image(a.Evaluate(v, s), b.Evaluate(v, s), v-1)
		if errors.Is(err, errUnlucky) {
			log.Tracef("x%d = %s: unlucky image", v, r.Format(s))
			continue
		}

		if err != nil {
			return nil, err
		}

		// coprime images: the primitive parts are coprime.
		if g.IsConstant() {
			return contentGCD, nil
		}

		g = g.Monic().MulScalar(lcGCD.Evaluate(s))

		if !interp.empty() {
			c := mpoly.Lex.Compare(g.Lt().Exps, interp.lt)
			if c > 0 {
				log.Tracef("x%d = %s: image degree too high", v, r.Format(s))
				continue
			}

			if c < 0 {
				// every previous point was unlucky.
				interp = newNewtonInterpolation(r, v)
			}
		}

		stable := interp.update(s, g)
		if !stable && interp.points < need {
			continue
		}

		if pp, ok := divisionTest(interp.poly, v, a, b); ok {
			return pp.Mul(contentGCD), nil
		}

		if interp.points >= need {
			resets++
			if resets > cfg.Limits.MaxUnluckyResets {
				return nil, errUnlucky
			}

			log.Tracef("x%d: division test failed after %d points", v, interp.points)

			interp = newNewtonInterpolation(r, v)
			src.reset()
		}
	}
}

// divisionTest returns the primitive part of candidate with respect to x_v when it
// divides both a and b.
func divisionTest[E any](candidate *mpoly.Poly[E], v int, a, b *mpoly.Poly[E]) (*mpoly.Poly[E], bool) {
	pp := divideUnivariate(candidate, v, univariateContent(candidate, v))

	if !pp.Divides(a) || !pp.Divides(b) {
		return nil, false
	}

	return pp, true
}
