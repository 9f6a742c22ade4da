package mgcd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

func TestPrimeSequence(t *testing.T) {
	a := assert.New(t)

	primes := newPrimeSequence()
	seen := map[uint64]bool{}

	for i := 0; i < 8; i++ {
		f, err := primes.next()
		a.NoError(err)

		p := f.Modulus()
		a.False(seen[p])
		a.Less(p, uint64(1)<<modularPrimeBits)
		a.True(new(big.Int).SetUint64(p).ProbablyPrime(20))
		// NTT friendly.
		a.Equal(uint64(1), p%modularNthRoot)

		seen[p] = true
	}
}

func TestCRTAccumulator(t *testing.T) {
	a := assert.New(t)

	x, y, _ := xyz[*big.Int](field.Z)
	one := mpoly.Constant[*big.Int](field.Z, 3, big.NewInt(1))

	t.Run("symmetricWords", func(t *testing.T) {
		want := x.Pow(2).MulScalar(big.NewInt(-1_000_000_007)).Add(y.MulScalar(big.NewInt(123_456_789_012))).Sub(one)

		acc := newCRTAccumulator(3)
		a.True(acc.empty())

		primes := newPrimeSequence()
		for i := 0; i < 2; i++ {
			f, err := primes.next()
			a.NoError(err)
			acc.add(reduceModulo(want, f), f)
		}

		a.Nil(acc.bigs)
		a.True(acc.symmetricLift().Equal(want), "got %s", acc.symmetricLift())
	})

	t.Run("symmetricBig", func(t *testing.T) {
		c, _ := new(big.Int).SetString("-98765432109876543210987654321", 10)
		want := x.MulScalar(c).Add(y.Pow(3)).Add(one.MulScalar(big.NewInt(42)))

		acc := newCRTAccumulator(3)
		primes := newPrimeSequence()

		for i := 0; i < 4; i++ {
			f, err := primes.next()
			a.NoError(err)
			acc.add(reduceModulo(want, f), f)
		}

		a.NotNil(acc.bigs)
		a.Greater(acc.modulus().BitLen(), 64)
		a.True(acc.symmetricLift().Equal(want), "got %s", acc.symmetricLift())
	})

	t.Run("missingMonomials", func(t *testing.T) {
		// a monomial vanishing modulo the first prime is still recovered.
		primes := newPrimeSequence()
		f1, err := primes.next()
		a.NoError(err)
		f2, err := primes.next()
		a.NoError(err)

		want := x.MulScalar(new(big.Int).SetUint64(f1.Modulus())).Add(y)

		acc := newCRTAccumulator(3)
		acc.add(reduceModulo(want, f1), f1)
		acc.add(reduceModulo(want, f2), f2)

		a.True(acc.symmetricLift().Equal(want), "got %s", acc.symmetricLift())
	})

	t.Run("rational", func(t *testing.T) {
		// residues of want / 7.
		want := x.MulScalar(big.NewInt(3)).Sub(y.MulScalar(big.NewInt(5))).Add(one.MulScalar(big.NewInt(14)))
		seven := big.NewInt(7)

		acc := newCRTAccumulator(3)
		primes := newPrimeSequence()

		for i := 0; i < 2; i++ {
			f, err := primes.next()
			a.NoError(err)

			image := reduceModulo(want, f).MulScalar(f.Reciprocal(f.FromBig(seven)))
			acc.add(image, f)
		}

		got, ok := acc.rationalLift()
		a.True(ok)
		a.True(got.Equal(want), "got %s", got)
	})
}
