package field

import (
	"errors"
	"math"
	"math/big"

	"lukechampine.com/uint128"
)

// ErrWordOverflow is returned by the machine-word CRT once the combined modulus no
// longer fits a signed 64 bit word. Callers switch to ChineseRemainders.
var ErrWordOverflow = errors.New("machine word overflow in CRT")

// ChineseRemainders returns the x in [0, m1*m2) with x = r1 (mod m1) and x = r2 (mod m2).
// m1 and m2 must be coprime.
func ChineseRemainders(r1, m1, r2, m2 *big.Int) *big.Int {
	// x = r1 + m1 * ((r2 - r1) * m1^{-1} mod m2)
	inv := new(big.Int).ModInverse(m1, m2)

	t := new(big.Int).Sub(r2, r1)
	t.Mul(t, inv)
	t.Mod(t, m2)

	x := t.Mul(t, m1)
	x.Add(x, r1)

	m := new(big.Int).Mul(m1, m2)

	return x.Mod(x, m)
}

// CRTWord is ChineseRemainders for a word sized accumulated modulus m1 and a prime
// modulus p. It returns the combined residue and modulus m1*p, or ErrWordOverflow
// when m1*p does not fit an int64.
func CRTWord(r1, m1, r2 uint64, p *PrimeField) (x, m uint64, err error) {
	prod := uint128.From64(m1).MulWrap64(p.prime)
	if prod.Hi != 0 || prod.Lo > math.MaxInt64 {
		return 0, 0, ErrWordOverflow
	}

	inv := p.Inverse(p.Reduce(m1))
	t := p.Mul(p.Sub(p.Reduce(r2), p.Reduce(r1)), inv)

	// r1 + m1*t < m1 + m1*(p-1) = m1*p, which fits.
	acc := uint128.From64(m1).MulWrap64(t).AddWrap64(r1)

	return acc.Lo, prod.Lo, nil
}

// SymmetricMod maps v mod m into (-m/2, m/2].
func SymmetricMod(v, m *big.Int) *big.Int {
	r := new(big.Int).Mod(v, m)

	half := new(big.Int).Rsh(m, 1)
	if r.Cmp(half) > 0 {
		r.Sub(r, m)
	}

	return r
}

// SymmetricModWord is SymmetricMod for a word sized modulus below 2^63.
func SymmetricModWord(v, m uint64) int64 {
	v %= m
	if v > m/2 {
		return -int64(m - v)
	}

	return int64(v)
}

// RationalReconstruction finds n/d with n = u*d (mod m), |n|, 0 < d <= sqrt(m/2).
// ok is false when no such fraction exists.
//
// This is the half-extended Euclidean algorithm on (m, u), stopped as soon as the
// remainder drops below the bound (Wang's algorithm, see `Modern Computer Algebra`
// section 5.10).
func RationalReconstruction(u, m *big.Int) (num, den *big.Int, ok bool) {
	bound := new(big.Int).Rsh(m, 1)
	bound.Sqrt(bound)

	r0, r1 := new(big.Int).Set(m), new(big.Int).Mod(u, m)
	t0, t1 := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	tmp := new(big.Int)

	for r1.Cmp(bound) > 0 {
		q.Quo(r0, r1)

		tmp.Mul(q, r1)
		r0, r1 = r1, new(big.Int).Sub(r0, tmp)

		tmp.Mul(q, t1)
		t0, t1 = t1, new(big.Int).Sub(t0, tmp)
	}

	if t1.Sign() == 0 || new(big.Int).Abs(t1).Cmp(bound) > 0 {
		return nil, nil, false
	}

	if new(big.Int).GCD(nil, nil, new(big.Int).Abs(r1), new(big.Int).Abs(t1)).Cmp(big.NewInt(1)) != 0 {
		return nil, nil, false
	}

	num, den = r1, t1
	if den.Sign() < 0 {
		num = new(big.Int).Neg(num)
		den = new(big.Int).Neg(den)
	}

	return num, den, true
}
