package mgcd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

func TestReduceInput(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)
	x, y, z := xyz[uint64](f)
	one := mpoly.Constant[uint64](f, 3, 1)

	t.Run("permutation", func(t *testing.T) {
		g := x.Add(y.Pow(3)).Add(z.Pow(2))
		p, q := g.Mul(x.Add(one)), g.Mul(y.Add(one))

		in, err := reduceInput(testConfig(1), p, q, ZippelGCD[uint64])
		a.NoError(err)
		a.Nil(in.early)

		// y, z, x by decreasing degree bound.
		a.Equal([]int{1, 2, 0}, in.perm)
		a.Equal([]int{3, 2, 1}, in.bounds)
		a.Equal(2, in.lastPresent)
		a.Equal(1, in.extensionDegree)

		a.True(in.restore(in.a).Equal(p))
		a.True(in.restore(in.b).Equal(q))
	})

	t.Run("boundEliminatesVariable", func(t *testing.T) {
		// the gcd does not depend on z.
		g := x.Add(y.Pow(2))
		p, q := g.Mul(x.Pow(2).Add(z)), g.Mul(y.Add(z.Pow(3)))

		in, err := reduceInput(testConfig(2), p, q, ZippelGCD[uint64])
		a.NoError(err)
		a.NotNil(in.early)
		a.True(in.early.Equal(g))
	})

	t.Run("monomialContent", func(t *testing.T) {
		in, err := reduceInput(testConfig(3), x.Pow(3).Mul(y), x.Mul(z.Pow(2)), ZippelGCD[uint64])
		a.NoError(err)
		a.Equal([]int{1, 0, 0}, in.monomialGCD)
		a.True(in.restore(in.early).Equal(x))
	})

	t.Run("smallField", func(t *testing.T) {
		f3 := field.MustPrimeField(3)
		x, y, _ := xyz[uint64](f3)

		p := x.Pow(2).Add(y).Mul(x.Add(y))
		q := x.Pow(2).Sub(y.Pow(2))

		in, err := reduceInput(testConfig(4), p, q, ZippelGCD[uint64])
		a.NoError(err)
		a.Nil(in.early)
		// 3^3 >= 9 * 2 evaluation points.
		a.Equal(3, in.extensionDegree)
	})
}

func TestEvaluationStack(t *testing.T) {
	a := assert.New(t)

	f5 := field.MustPrimeField(5)
	s := newEvaluationStack[uint64](f5, field.NewRandomFromUint64(1), true)

	seen := map[uint64]bool{}
	for i := 0; i < 4; i++ {
		e, ok := s.next()
		a.True(ok)
		a.NotZero(e)
		a.False(seen[e])

		seen[e] = true
	}

	a.True(s.exhausted())
	a.Equal(4, s.count())

	_, ok := s.next()
	a.False(ok)

	z := newEvaluationStack[*big.Int](field.Z, field.NewRandomFromUint64(1), false)
	for i := 0; i < 100; i++ {
		_, ok := z.next()
		a.True(ok)
	}

	a.False(z.exhausted())
}

func TestExtensionDegree(t *testing.T) {
	a := assert.New(t)

	a.Equal(1, extensionDegree(nil, 1000))
	a.Equal(1, extensionDegree(big.NewInt(mersenne19), 1000))
	a.Equal(5, extensionDegree(big.NewInt(2), 18))
	a.Equal(2, extensionDegree(big.NewInt(5), 18))
	a.Equal(2, extensionDegree(big.NewInt(5), 25))
	a.Equal(3, extensionDegree(big.NewInt(5), 26))
}
