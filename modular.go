package mgcd

import (
	"errors"
	"math/big"

	log "github.com/sirupsen/logrus"
	"github.com/tuneinsight/lattigo/v6/ring"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

const (
	// primes of the modular algorithms are NTT friendly primes just below 2^31,
	// so two of them fit the machine word CRT phase.
	modularPrimeBits = 31
	modularNthRoot   = 16
)

// primeSequence yields distinct primes for the modular algorithms.
type primeSequence struct {
	gen ring.NTTFriendlyPrimesGenerator
}

func newPrimeSequence() *primeSequence {
	return &primeSequence{gen: ring.NewNTTFriendlyPrimesGenerator(modularPrimeBits, modularNthRoot)}
}

func (s *primeSequence) next() (*field.PrimeField, error) {
	p, err := s.gen.NextDownstreamPrime()
	if err != nil {
		return nil, err
	}

	return field.NewPrimeField(p)
}

// ModularGCD computes gcd(a, b) over the integers from gcds modulo a sequence of
// primes, combined with the Chinese remainder theorem. The result has a positive
// leading coefficient.
func ModularGCD(cfg *Config, a, b *mpoly.Poly[*big.Int]) (*mpoly.Poly[*big.Int], error) {
	if _, ok := any(a.Ring()).(*field.Integers); !ok {
		return nil, ErrUnsupportedRing
	}

	return runGCD(cfg, a, b, ModularGCD, modularKernel)
}

// reduceModulo maps an integer polynomial to F_p.
func reduceModulo(p *mpoly.Poly[*big.Int], f *field.PrimeField) *mpoly.Poly[uint64] {
	return mpoly.MapCoefficients[*big.Int, uint64](p, f, f.FromBig)
}

// primitiveZ splits an integer polynomial into its content and primitive part.
func primitiveZ(p *mpoly.Poly[*big.Int]) (*big.Int, *mpoly.Poly[*big.Int]) {
	c := p.ContentScalar()

	pp, _ := p.DivScalar(c)

	return c, pp
}

func modularKernel(cfg *Config, in *gcdInput[*big.Int]) (*mpoly.Poly[*big.Int], error) {
	z := field.Z
	nvars := in.a.NVars()

	ca, a := primitiveZ(in.a)
	cb, b := primitiveZ(in.b)
	content := mpoly.Constant[*big.Int](z, nvars, z.Gcd(ca, cb))

	// the leading coefficient of the gcd divides gamma.
	gamma := z.Gcd(a.Lc(), b.Lc())

	primes := newPrimeSequence()
	acc := newCRTAccumulator(nvars)

	var (
		lt   []int
		prev *mpoly.Poly[*big.Int]
	)

	for used := 0; used < cfg.Limits.MaxPrimes; used++ {
		f, err := primes.next()
		if err != nil {
			return nil, err
		}

		if f.FromBig(a.Lc()) == 0 || f.FromBig(b.Lc()) == 0 {
			continue
		}

		g, err := ZippelGCD(cfg, reduceModulo(a, f), reduceModulo(b, f))
		if errors.Is(err, ErrRetriesExceeded) {
			log.Tracef("modular: no gcd modulo %d", f.Modulus())
			continue
		}

		if err != nil {
			return nil, err
		}

		if g.IsConstant() {
			return content, nil
		}

		g = g.MulScalar(f.FromBig(gamma))

		if !acc.empty() {
			c := mpoly.Lex.Compare(g.Lt().Exps, lt)
			if c > 0 {
				log.Tracef("modular: unlucky prime %d", f.Modulus())
				continue
			}

			if c < 0 {
				acc, prev = newCRTAccumulator(nvars), nil
			}
		}

		lt = g.Lt().Exps
		acc.add(g, f)

		h := acc.symmetricLift()
		if prev != nil && h.Equal(prev) {
			_, pp := primitiveZ(h)
			if pp.Divides(a) && pp.Divides(b) {
				log.Debugf("modular: gcd found after %d primes", used+1)
				return pp.Mul(content), nil
			}
		}

		prev = h
	}

	return nil, ErrRetriesExceeded
}
