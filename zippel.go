package mgcd

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// ZippelGCD computes gcd(a, b) over a field with Zippel's sparse interpolation.
// The first image in each variable fixes the set of monomials of the gcd; the
// following images are found by solving small linear systems instead of
// recursing. The result is monic.
func ZippelGCD[E any](cfg *Config, a, b *mpoly.Poly[E]) (*mpoly.Poly[E], error) {
	return fieldGCD(cfg, a, b, Zippel)
}

func zippelKernel[E any](cfg *Config, in *gcdInput[E]) (*mpoly.Poly[E], error) {
	return zippel(cfg, in, in.a, in.b, in.lastPresent)
}

func zippel[E any](cfg *Config, in *gcdInput[E], a, b *mpoly.Poly[E], v int) (*mpoly.Poly[E], error) {
	for v > 0 && !a.UsesVariable(v) && !b.UsesVariable(v) {
		v--
	}

	if v == 0 {
		return univariateGCD(a, b), nil
	}

	return interpolateVariable(cfg, a, b, v, in.bounds[v], &zippelImages[E]{cfg: cfg, in: in})
}

// zippelImages computes the first image of an interpolation recursively and the
// following ones by sparse interpolation against its support.
type zippelImages[E any] struct {
	cfg *Config
	in  *gcdInput[E]

	skeleton *mpoly.Poly[E]
	failures int
}

func (z *zippelImages[E]) image(a, b *mpoly.Poly[E], v int) (*mpoly.Poly[E], error) {
	if z.skeleton != nil {
		g, err := sparseInterpolate(z.cfg, a, b, z.skeleton, v)

		switch {
		case err == nil:
			return g, nil
		case errors.Is(err, errDegenerateSkeleton):
			return zippel(z.cfg, z.in, a, b, v)
		case errors.Is(err, errSkeleton):
			z.failures++
			if z.failures > z.cfg.Limits.MaxSparseFailures {
				return nil, ErrRetriesExceeded
			}

			log.Tracef("skeleton with %d terms rejected", z.skeleton.Len())
		default:
			return nil, err
		}
	}

	g, err := zippel(z.cfg, z.in, a, b, v)
	if err != nil {
		return nil, err
	}

	z.skeleton = g

	return g, nil
}

func (z *zippelImages[E]) reset() {
	z.skeleton = nil
}
