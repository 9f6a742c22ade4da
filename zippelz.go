package mgcd

import (
	"errors"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// ZippelGCDInZ computes gcd(a, b) over the integers from monic gcds modulo
// primes. The first prime fixes the monomials of the gcd; the images modulo the
// following primes are found by sparse interpolation against them. The monic
// images are combined by the Chinese remainder theorem and their rational
// coefficients recovered by rational reconstruction.
func ZippelGCDInZ(cfg *Config, a, b *mpoly.Poly[*big.Int]) (*mpoly.Poly[*big.Int], error) {
	if _, ok := any(a.Ring()).(*field.Integers); !ok {
		return nil, ErrUnsupportedRing
	}

	return runGCD(cfg, a, b, ZippelGCDInZ, zippelZKernel)
}

func zippelZKernel(cfg *Config, in *gcdInput[*big.Int]) (*mpoly.Poly[*big.Int], error) {
	z := field.Z
	nvars := in.a.NVars()

	ca, a := primitiveZ(in.a)
	cb, b := primitiveZ(in.b)
	content := mpoly.Constant[*big.Int](z, nvars, z.Gcd(ca, cb))

	primes := newPrimeSequence()
	acc := newCRTAccumulator(nvars)

	var (
		skeleton *mpoly.Poly[*big.Int]
		prev     *mpoly.Poly[*big.Int]
	)

	for used := 0; used < cfg.Limits.MaxPrimes; used++ {
		f, err := primes.next()
		if err != nil {
			return nil, err
		}

		if f.FromBig(a.Lc()) == 0 || f.FromBig(b.Lc()) == 0 {
			continue
		}

		ap, bp := reduceModulo(a, f), reduceModulo(b, f)

		var g *mpoly.Poly[uint64]
		if skeleton != nil {
			g, err = sparseInterpolate(cfg, ap, bp, reduceSkeleton(skeleton, f), in.lastPresent)
			if err == nil {
				g = g.Monic()
			}
		}

		if skeleton == nil || errors.Is(err, errSkeleton) || errors.Is(err, errDegenerateSkeleton) {
			g, err = ZippelGCD(cfg, ap, bp)
		}

		if errors.Is(err, errUnlucky) || errors.Is(err, ErrRetriesExceeded) {
			log.Tracef("zippel over Z: no gcd modulo %d", f.Modulus())
			continue
		}

		if err != nil {
			return nil, err
		}

		if g.IsConstant() {
			return content, nil
		}

		if skeleton != nil {
			c := mpoly.Lex.Compare(g.Lt().Exps, skeleton.Lt().Exps)
			if c > 0 {
				log.Tracef("zippel over Z: unlucky prime %d", f.Modulus())
				continue
			}

			if c < 0 {
				skeleton, acc, prev = nil, newCRTAccumulator(nvars), nil
			}
		}

		if skeleton == nil {
			skeleton = mpoly.MapCoefficients[uint64, *big.Int](g, z, func(uint64) *big.Int { return big.NewInt(1) })
		}

		acc.add(g, f)

		h, ok := acc.rationalLift()
		if !ok {
			continue
		}

		_, h = primitiveZ(h)
		if prev != nil && h.Equal(prev) && h.Divides(a) && h.Divides(b) {
			log.Debugf("zippel over Z: gcd found after %d primes", used+1)
			return h.Mul(content), nil
		}

		prev = h
	}

	return nil, ErrRetriesExceeded
}

// reduceSkeleton gives the monomials of skeleton unit coefficients modulo f.
func reduceSkeleton(skeleton *mpoly.Poly[*big.Int], f *field.PrimeField) *mpoly.Poly[uint64] {
	return mpoly.MapCoefficients[*big.Int, uint64](skeleton, f, func(*big.Int) uint64 { return 1 })
}
