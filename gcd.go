// Package mgcd computes greatest common divisors of multivariate polynomials over
// finite fields, the integers and the rationals.
package mgcd

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// Algorithm selects a gcd algorithm over fields.
type Algorithm int

const (
	Brown Algorithm = iota
	Zippel
	EZ
	EEZ
)

var algorithmNames = []string{"brown", "zippel", "ez", "eez"}

func (a Algorithm) String() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}

	return "unknown"
}

var errUnknownAlgorithm = errors.New("unknown algorithm")

// ParseAlgorithm is the inverse of Algorithm.String.
func ParseAlgorithm(s string) (Algorithm, error) {
	i := slices.Index(algorithmNames, strings.ToLower(s))
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", errUnknownAlgorithm, s)
	}

	return Algorithm(i), nil
}

func gcdWith[E any](alg Algorithm) gcdFunc[E] {
	switch alg {
	case Zippel:
		return ZippelGCD[E]
	case EZ:
		return EZGCD[E]
	case EEZ:
		return EEZGCD[E]
	default:
		return BrownGCD[E]
	}
}

func kernelFor[E any](alg Algorithm) gcdKernel[E] {
	switch alg {
	case Zippel:
		return zippelKernel[E]
	case EZ:
		return ezKernel[E](false)
	case EEZ:
		return ezKernel[E](true)
	default:
		return brownKernel[E]
	}
}

// runGCD reduces the input, runs kernel and maps its result back.
func runGCD[E any](cfg *Config, a, b *mpoly.Poly[E], self gcdFunc[E], kernel gcdKernel[E]) (*mpoly.Poly[E], error) {
	if err := a.CheckCompatible(b); err != nil {
		return nil, err
	}

	in, err := reduceInput(cfg, a, b, self)
	if err != nil {
		return nil, err
	}

	if in.early != nil {
		return in.restore(in.early), nil
	}

	g, err := kernel(cfg, in)
	if err != nil {
		return nil, err
	}

	return in.restore(g), nil
}

// fieldGCD runs one of the field algorithms. Small prime fields are replaced by an
// extension field, either upfront when the degree bounds ask for more points than
// the field has, or once the algorithm used every element of the field.
func fieldGCD[E any](cfg *Config, a, b *mpoly.Poly[E], alg Algorithm) (*mpoly.Poly[E], error) {
	if err := a.CheckCompatible(b); err != nil {
		return nil, err
	}

	if !a.Ring().IsField() {
		return nil, ErrNotAField
	}

	in, err := reduceInput(cfg, a, b, gcdWith[E](alg))
	if err != nil {
		return nil, err
	}

	if in.early != nil {
		return in.restore(in.early), nil
	}

	if in.extensionDegree > 1 {
		if g, ok, err := viaExtension(cfg, a, b, alg); ok {
			return g, err
		}
	}

	kernel := kernelFor[E](alg)

	for attempt := 0; attempt <= cfg.Limits.MaxUnluckyResets; attempt++ {
		g, err := kernel(cfg, in)

		switch {
		case err == nil:
			return in.restore(g), nil
		case errors.Is(err, errUnlucky):
			log.Tracef("%s: unlucky run %d", alg, attempt)
			continue
		case errors.Is(err, ErrEvaluationsExhausted):
			if g, ok, err := viaExtension(cfg, a, b, alg); ok {
				return g, err
			}
		}

		return nil, err
	}

	return nil, fmt.Errorf("%s: %w", alg, ErrRetriesExceeded)
}

// viaExtension runs alg over an extension of a prime field. ok is false for other
// rings.
func viaExtension[E any](cfg *Config, a, b *mpoly.Poly[E], alg Algorithm) (*mpoly.Poly[E], bool, error) {
	if _, ok := any(a.Ring()).(*field.PrimeField); !ok {
		return nil, false, nil
	}

	pa, pb := any(a).(*mpoly.Poly[uint64]), any(b).(*mpoly.Poly[uint64])

	g, err := modularGCDInGF(cfg, pa, pb, alg)
	if err != nil {
		return nil, true, err
	}

	return any(g.WithOrder(a.Order())).(*mpoly.Poly[E]), true, nil
}

// PolynomialGCD computes gcd(a, b), choosing the algorithm from the coefficient
// ring: the modular algorithm over the integers and the rationals, sparse
// interpolation over large finite fields and an extension field over small ones.
// The result is monic over fields and has a positive leading coefficient over the
// integers.
func PolynomialGCD[E any](cfg *Config, a, b *mpoly.Poly[E]) (*mpoly.Poly[E], error) {
	if err := a.CheckCompatible(b); err != nil {
		return nil, err
	}

	switch r := any(a.Ring()).(type) {
	case *field.Integers:
		g, err := ModularGCD(cfg, any(a).(*mpoly.Poly[*big.Int]), any(b).(*mpoly.Poly[*big.Int]))
		if err != nil {
			return nil, err
		}

		return any(g).(*mpoly.Poly[E]), nil
	case *field.Rationals:
		g, err := rationalGCD(cfg, any(a).(*mpoly.Poly[*big.Rat]), any(b).(*mpoly.Poly[*big.Rat]))
		if err != nil {
			return nil, err
		}

		return any(g).(*mpoly.Poly[E]), nil
	case *field.PrimeField:
		bound := 1
		for v, d := range a.Degrees() {
			bound = max(bound, min(d, b.Degree(v)))
		}

		if field.CardinalityBelow[uint64](r, int64(cfg.Limits.EvaluationFactor*bound)) {
			log.Debugf("gcd over F_%d: small field, using an extension", r.Modulus())

			g, err := ModularGCDInGF(cfg, any(a).(*mpoly.Poly[uint64]), any(b).(*mpoly.Poly[uint64]))
			if err != nil {
				return nil, err
			}

			return any(g.WithOrder(a.Order())).(*mpoly.Poly[E]), nil
		}
	}

	if !a.Ring().IsField() || !field.IsFinite(a.Ring()) {
		return nil, ErrUnsupportedRing
	}

	return ZippelGCD(cfg, a, b)
}

// rationalGCD clears denominators, computes the gcd over the integers and returns
// its monic associate.
func rationalGCD(cfg *Config, a, b *mpoly.Poly[*big.Rat]) (*mpoly.Poly[*big.Rat], error) {
	g, err := ModularGCD(cfg, clearDenominators(a), clearDenominators(b))
	if err != nil {
		return nil, err
	}

	q := mpoly.MapCoefficients[*big.Int, *big.Rat](g, field.Q, func(c *big.Int) *big.Rat {
		return new(big.Rat).SetInt(c)
	})

	return q.WithOrder(a.Order()).Monic(), nil
}

func clearDenominators(p *mpoly.Poly[*big.Rat]) *mpoly.Poly[*big.Int] {
	lcm := big.NewInt(1)
	for _, t := range p.Terms() {
		lcm = field.Lcm[*big.Int](field.Z, lcm, t.Coef.Denom())
	}

	return mpoly.MapCoefficients[*big.Rat, *big.Int](p, field.Z, func(c *big.Rat) *big.Int {
		n := new(big.Int).Quo(lcm, c.Denom())
		return n.Mul(n, c.Num())
	})
}

// PolynomialGCDArray computes the gcd of several polynomials over the same ring.
func PolynomialGCDArray[E any](cfg *Config, polys []*mpoly.Poly[E]) (*mpoly.Poly[E], error) {
	if len(polys) == 0 {
		return nil, errEmptyArray
	}

	for _, p := range polys[1:] {
		if err := polys[0].CheckCompatible(p); err != nil {
			return nil, err
		}
	}

	return gcdArrayWith(cfg, polys, PolynomialGCD[E])
}

var errEmptyArray = errors.New("gcd of an empty array")

// gcdArrayWith computes the gcd of polys with the pairwise gcd self.
//
// Sparse polynomials are reduced first when the sizes differ a lot. Otherwise the
// polynomial of smallest total degree is taken as a pivot and the others are
// combined into one random linear combination, so one pairwise gcd usually
// suffices. The remaining polynomials are then only checked for divisibility.
func gcdArrayWith[E any](cfg *Config, polys []*mpoly.Poly[E], self gcdFunc[E]) (*mpoly.Poly[E], error) {
	all := polys
	polys = nonZero(polys)

	switch len(polys) {
	case 0:
		return all[0], nil
	case 1:
		return normalize(polys[0]), nil
	case 2:
		return self(cfg, polys[0], polys[1])
	}

	polys = slices.Clone(polys)
	slices.SortStableFunc(polys, func(x, y *mpoly.Poly[E]) int {
		return x.Len() - y.Len()
	})

	if len(polys) >= 4 && polys[len(polys)-1].Len() > cfg.Limits.ArraySplitRatio*polys[0].Len() {
		half := len(polys) / 2

		g, err := gcdArrayWith(cfg, polys[:half], self)
		if err != nil {
			return nil, err
		}

		if g.IsConstant() {
			return g, nil
		}

		return gcdArrayWith(cfg, append([]*mpoly.Poly[E]{g}, polys[half:]...), self)
	}

	pivot := 0
	for i, p := range polys {
		if p.TotalDegree() < polys[pivot].TotalDegree() {
			pivot = i
		}
	}

	rest := slices.Delete(slices.Clone(polys), pivot, pivot+1)
	sum, deferred := sumTrick(cfg, rest)

	var (
		g   *mpoly.Poly[E]
		err error
	)

	if sum.IsZero() {
		g = normalize(polys[pivot])
	} else if g, err = self(cfg, polys[pivot], sum); err != nil {
		return nil, err
	}

	for _, p := range append(deferred, rest...) {
		if g.IsConstant() {
			break
		}

		if g.Divides(p) {
			continue
		}

		if g, err = self(cfg, g, p); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// sumTrick returns \sum c_i * p_i for random nonzero c_i. A polynomial whose
// addition lowers a degree of the sum (an unlucky c_i) is retried and eventually
// deferred.
func sumTrick[E any](cfg *Config, polys []*mpoly.Poly[E]) (*mpoly.Poly[E], []*mpoly.Poly[E]) {
	r := polys[0].Ring()
	sum := mpoly.Zero(r, polys[0].NVars()).WithOrder(polys[0].Order())

	var deferred []*mpoly.Poly[E]

	for _, p := range polys {
		want := sum.Degrees()
		for v, d := range p.Degrees() {
			want[v] = max(want[v], d)
		}

		added := false
		for i := 0; i <= cfg.Limits.SumTrickFails; i++ {
			cand := sum.Add(p.MulScalar(randomNonZero(r, cfg.Random)))
			if slices.Equal(cand.Degrees(), want) {
				sum, added = cand, true
				break
			}
		}

		if !added {
			deferred = append(deferred, p)
		}
	}

	return sum, deferred
}
