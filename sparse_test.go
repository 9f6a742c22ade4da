package mgcd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

func TestSparseInterpolate(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)
	x, y, z := xyz[uint64](f)
	one := mpoly.Constant[uint64](f, 3, 1)

	t.Run("monic", func(t *testing.T) {
		g := x.Add(y).Add(z)
		p, q := g.Mul(x.Pow(2).Add(z)), g.Mul(y.Pow(2).Add(x))

		// skeleton coefficients are ignored.
		res, err := sparseInterpolate(testConfig(1), p, q, g.MulScalar(17), 2)
		a.NoError(err)
		a.True(res.Equal(g), "got %s", res)
	})

	t.Run("linZip", func(t *testing.T) {
		// two monomials of top degree in x.
		g := x.Mul(y).Add(x.Mul(z)).Add(one)
		p, q := g.Mul(x.Add(y.Pow(2)).Add(one)), g.Mul(x.Pow(2).Add(z))

		res, err := sparseInterpolate(testConfig(2), p, q, g, 2)
		a.NoError(err)
		a.True(res.Equal(g), "got %s", res)
	})

	t.Run("wrongSkeleton", func(t *testing.T) {
		g := x.Add(y).Add(z)
		p, q := g.Mul(x.Pow(2).Add(z)), g.Mul(y.Pow(2).Add(x))

		_, err := sparseInterpolate(testConfig(3), p, q, x.Add(y), 2)
		a.ErrorIs(err, errSkeleton)
	})

	t.Run("monomial", func(t *testing.T) {
		p, q := x.Mul(y).Mul(z.Add(one)), x.Mul(y).Mul(z.Sub(one))

		res, err := sparseInterpolate(testConfig(4), p, q, x.Mul(y).MulScalar(3), 2)
		a.NoError(err)
		a.True(res.Equal(x.Mul(y)))
	})

	t.Run("degenerate", func(t *testing.T) {
		g := x.Mul(y).Add(x.Mul(z))
		_, err := sparseInterpolate(testConfig(5), g.Mul(x.Add(one)), g.Mul(y), g, 2)
		a.ErrorIs(err, errDegenerateSkeleton)
	})

	t.Run("univariate", func(t *testing.T) {
		x := mpoly.Variable[uint64](f, 1, 0)
		one := mpoly.Constant[uint64](f, 1, 1)

		res, err := sparseInterpolate(testConfig(6), x.Pow(2).Sub(one), x.Pow(3).Sub(one), x, 0)
		a.NoError(err)
		a.True(res.Equal(x.Sub(one)))
	})
}

func TestNewtonInterpolation(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)
	x, y, _ := xyz[uint64](f)
	one := mpoly.Constant[uint64](f, 3, 1)

	target := x.Pow(2).Mul(y.Pow(3)).Add(x.Mul(y).MulScalar(2)).Add(one.MulScalar(5))
	interp := newNewtonInterpolation[uint64](f, 1)
	a.True(interp.empty())

	for s := uint64(1); s <= 4; s++ {
		a.False(interp.update(s, target.Evaluate(1, s)))
	}

	a.True(interp.poly.Equal(target), "got %s", interp.poly)
	a.Equal(4, interp.points)
	a.Equal(4, interp.modulus.Degree())

	// one more point agrees with the interpolant.
	a.True(interp.update(9, target.Evaluate(1, 9)))
	a.True(interp.poly.Equal(target))
}
