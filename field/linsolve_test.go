package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveLinear(t *testing.T) {
	a := assert.New(t)

	f := MustPrimeField(157)

	t.Run("square", func(t *testing.T) {
		// x + 2y = 5, 3x + 4y = 6
		sol, info := SolveLinear[uint64](f, [][]uint64{{1, 2}, {3, 4}}, []uint64{5, 6})
		a.Equal(Consistent, info)

		x, y := sol[0], sol[1]
		a.Equal(uint64(5), f.Add(x, f.Mul(2, y)))
		a.Equal(uint64(6), f.Add(f.Mul(3, x), f.Mul(4, y)))
	})

	t.Run("overDetermined", func(t *testing.T) {
		// x = 2, y = 3, x + y = 5
		sol, info := SolveLinear[uint64](f, [][]uint64{{1, 0}, {0, 1}, {1, 1}}, []uint64{2, 3, 5})
		a.Equal(Consistent, info)
		a.Equal([]uint64{2, 3}, sol)
	})

	t.Run("inconsistent", func(t *testing.T) {
		_, info := SolveLinear[uint64](f, [][]uint64{{1, 0}, {0, 1}, {1, 1}}, []uint64{2, 3, 6})
		a.Equal(Inconsistent, info)
	})

	t.Run("underDetermined", func(t *testing.T) {
		_, info := SolveLinear[uint64](f, [][]uint64{{1, 1}, {2, 2}}, []uint64{2, 4})
		a.Equal(UnderDetermined, info)

		_, info = SolveLinear[uint64](f, nil, nil)
		a.Equal(UnderDetermined, info)
	})

	t.Run("inconsistentBeforeUnderDetermined", func(t *testing.T) {
		_, info := SolveLinear[uint64](f, [][]uint64{{1, 1}, {2, 2}}, []uint64{2, 5})
		a.Equal(Inconsistent, info)
	})

	t.Run("inputsUntouched", func(t *testing.T) {
		lhs := [][]uint64{{2, 1}, {1, 3}}
		rhs := []uint64{1, 2}
		SolveLinear[uint64](f, lhs, rhs)
		a.Equal([][]uint64{{2, 1}, {1, 3}}, lhs)
		a.Equal([]uint64{1, 2}, rhs)
	})

	t.Run("rationals", func(t *testing.T) {
		r := func(n int64) *big.Rat { return big.NewRat(n, 1) }

		sol, info := SolveLinear[*big.Rat](Q, [][]*big.Rat{{r(2), r(1)}, {r(1), r(3)}}, []*big.Rat{r(1), r(2)})
		a.Equal(Consistent, info)
		a.Equal(0, sol[0].Cmp(big.NewRat(1, 5)))
		a.Equal(0, sol[1].Cmp(big.NewRat(3, 5)))
	})
}

func TestSolveLinearRandom(t *testing.T) {
	a := assert.New(t)

	f := MustPrimeField(largePrime)
	rnd := NewRandomFromUint64(5)

	const n = 12

	x := make([]uint64, n)
	for i := range x {
		x[i] = f.RandomElement(rnd)
	}

	lhs := make([][]uint64, n+3)
	rhs := make([]uint64, n+3)
	for i := range lhs {
		lhs[i] = make([]uint64, n)
		for j := range lhs[i] {
			lhs[i][j] = f.RandomElement(rnd)
			rhs[i] = f.Add(rhs[i], f.Mul(lhs[i][j], x[j]))
		}
	}

	sol, info := SolveLinear[uint64](f, lhs, rhs)
	a.Equal(Consistent, info)
	a.Equal(x, sol)
}
