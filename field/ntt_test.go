package field

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNTTForwardBackward(t *testing.T) {
	// Test the forward and backward NTT transforms.
	a := assert.New(t)
	f, err := NewPrimeField(65537)
	a.NoError(err)

	for i := 0; i < 8; i++ {
		cappingDegree := 1 << (i + 1)

		p1 := randomPolynomial(f, 12345+uint64(i), cappingDegree).ToSlice()
		pcpy := make([]uint64, len(p1))
		copy(pcpy, p1)

		a.NoError(f.NttForward(p1))
		a.NoError(f.NttBackward(p1))

		a.Equal(pcpy, p1)
	}

	a.ErrorIs(f.NttForward(make([]uint64, 3)), errNttLength)
}

func schoolbook(f *PrimeField, x, y []uint64) []uint64 {
	out := make([]uint64, len(x)+len(y)-1)
	for i := range x {
		for j := range y {
			out[i+j] = f.Add(out[i+j], f.Mul(x[i], y[j]))
		}
	}

	return out
}

func TestMulDense(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(65537)
	a.NoError(err)

	rnd := NewRandomFromUint64(3)

	for _, sizes := range [][2]int{{64, 64}, {100, 70}, {300, 129}} {
		x := make([]uint64, sizes[0])
		y := make([]uint64, sizes[1])
		for i := range x {
			x[i] = f.RandomElement(rnd)
		}
		for i := range y {
			y[i] = f.RandomElement(rnd)
		}

		prod, ok := f.MulDense(x, y)
		a.True(ok)
		a.Equal(schoolbook(f, x, y), prod)

		// Polynomial.Mul goes through MulDense for NTT friendly fields.
		p := NewPolynomial[uint64](f, x).Mul(NewPolynomial[uint64](f, y))
		a.True(p.Equals(NewPolynomial[uint64](f, schoolbook(f, x, y))))
	}

	_, ok := f.MulDense(make([]uint64, 3), make([]uint64, 3))
	a.False(ok)

	// 157-1 = 4*39 has no 128-th root of unity.
	_, ok = MustPrimeField(157).MulDense(make([]uint64, 64), make([]uint64, 64))
	a.False(ok)
}

func BenchmarkMulDense(b *testing.B) {
	f := MustPrimeField(65537)

	for _, n := range []int{64, 512, 4096} {
		x := randomPolynomial(f, 11, n).ToSlice()
		y := randomPolynomial(f, 17, n).ToSlice()

		b.Run(fmt.Sprintf("ntt/n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				f.MulDense(x, y)
			}
		})

		b.Run(fmt.Sprintf("schoolbook/n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				schoolbook(f, x, y)
			}
		})
	}
}
