package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChineseRemainders(t *testing.T) {
	a := assert.New(t)

	// x = 2 mod 3, x = 3 mod 5 => x = 8 mod 15
	x := ChineseRemainders(big.NewInt(2), big.NewInt(3), big.NewInt(3), big.NewInt(5))
	a.Equal(int64(8), x.Int64())

	v := big.NewInt(-123456789)
	m1 := big.NewInt(1000003)
	m2 := big.NewInt(998244353)

	r1 := new(big.Int).Mod(v, m1)
	r2 := new(big.Int).Mod(v, m2)

	x = ChineseRemainders(r1, m1, r2, m2)
	a.Equal(v, SymmetricMod(x, new(big.Int).Mul(m1, m2)))
}

func TestCRTWord(t *testing.T) {
	a := assert.New(t)

	p1 := MustPrimeField(2147483647) // 2^31-1
	p2 := MustPrimeField(998244353)

	const v = -42424242

	x, m, err := CRTWord(p1.FromInt64(v), p1.Modulus(), p2.FromInt64(v), p2)
	a.NoError(err)
	a.Equal(p1.Modulus()*p2.Modulus(), m)
	a.Equal(int64(v), SymmetricModWord(x, m))

	// m * 65537 does not fit in a word.
	_, _, err = CRTWord(x, m, 5, MustPrimeField(65537))
	a.ErrorIs(err, ErrWordOverflow)
}

func TestSymmetricMod(t *testing.T) {
	a := assert.New(t)

	m := big.NewInt(7)
	a.Equal(int64(3), SymmetricMod(big.NewInt(3), m).Int64())
	a.Equal(int64(-3), SymmetricMod(big.NewInt(4), m).Int64())
	a.Equal(int64(-1), SymmetricMod(big.NewInt(-8), m).Int64())

	a.Equal(int64(3), SymmetricModWord(3, 7))
	a.Equal(int64(-3), SymmetricModWord(4, 7))
}

func TestRationalReconstruction(t *testing.T) {
	a := assert.New(t)

	m := new(big.Int).Mul(big.NewInt(2147483647), big.NewInt(998244353))

	for _, frac := range [][2]int64{{-3, 7}, {22, 7}, {0, 1}, {1, 1}, {-1000, 999}} {
		num, den := big.NewInt(frac[0]), big.NewInt(frac[1])

		// u = num/den mod m
		u := new(big.Int).ModInverse(den, m)
		u.Mul(u, num)
		u.Mod(u, m)

		n, d, ok := RationalReconstruction(u, m)
		a.True(ok)
		a.Equal(0, n.Cmp(num), "%v", frac)
		a.Equal(0, d.Cmp(den), "%v", frac)
	}

	// no n/d with |n|, d <= 2 is 3 mod 11.
	_, _, ok := RationalReconstruction(big.NewInt(3), big.NewInt(11))
	a.False(ok)
}
