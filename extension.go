package mgcd

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// maxExtensionDoublings bounds how often ModularGCDInGF enlarges the extension.
const maxExtensionDoublings = 4

var errNotInBaseField = errors.New("gcd over the extension is not defined over the base field")

// ModularGCDInGF computes gcd(a, b) over a prime field that is too small to
// provide enough evaluation points. The polynomials are embedded in GF(p^k) for a
// large enough k, the gcd is computed there and mapped back: a monic gcd over an
// extension field has its coefficients in the base field.
func ModularGCDInGF(cfg *Config, a, b *mpoly.Poly[uint64]) (*mpoly.Poly[uint64], error) {
	return modularGCDInGF(cfg, a, b, Zippel)
}

func modularGCDInGF(cfg *Config, a, b *mpoly.Poly[uint64], alg Algorithm) (*mpoly.Poly[uint64], error) {
	if err := a.CheckCompatible(b); err != nil {
		return nil, err
	}

	base, ok := any(a.Ring()).(*field.PrimeField)
	if !ok {
		return nil, ErrUnsupportedRing
	}

	bound := 1
	da, db := a.Degrees(), b.Degrees()

	for v := range da {
		bound = max(bound, min(da[v], db[v]))
	}

	need := int64(cfg.Limits.EvaluationFactor * bound)
	k := max(2, extensionDegree(base.Cardinality(), need))

	for i := 0; i <= maxExtensionDoublings; i++ {
		gf, err := field.NewGaloisField(base, k, cfg.Random)
		if err != nil {
			return nil, err
		}

		log.Debugf("gcd over GF(%d^%d) with %s", base.Modulus(), k, alg)

		ae := mpoly.MapCoefficients[uint64, []uint64](a, gf, gf.Embed)
		be := mpoly.MapCoefficients[uint64, []uint64](b, gf, gf.Embed)

		g, err := gcdWith[[]uint64](alg)(cfg, ae, be)
		if errors.Is(err, ErrEvaluationsExhausted) {
			k *= 2
			continue
		}

		if err != nil {
			return nil, err
		}

		return projectToBase(g, base)
	}

	return nil, fmt.Errorf("extension degree %d: %w", k, ErrEvaluationsExhausted)
}

func projectToBase(g *mpoly.Poly[[]uint64], base *field.PrimeField) (*mpoly.Poly[uint64], error) {
	gf := g.Ring().(*field.GaloisField)

	var projectErr error
	out := mpoly.MapCoefficients[[]uint64, uint64](g, base, func(c []uint64) uint64 {
		v, ok := gf.Project(c)
		if !ok {
			projectErr = errNotInBaseField
		}

		return v
	})

	if projectErr != nil {
		return nil, projectErr
	}

	return out.Monic(), nil
}
