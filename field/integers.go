package field

import (
	"math/big"
)

// Integers is the ring Z of arbitrary-precision integers. Elements are *big.Int and are
// never modified after creation.
type Integers struct{}

// Z is the shared integer ring.
var Z = &Integers{}

var _ Ring[*big.Int] = (*Integers)(nil)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// randomIntegerBits bounds RandomElement to (-2^15, 2^15).
const randomIntegerBits = 15

func (*Integers) Zero() *big.Int { return bigZero }

func (*Integers) One() *big.Int { return bigOne }

func (*Integers) FromInt64(v int64) *big.Int { return big.NewInt(v) }

func (*Integers) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

func (*Integers) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

func (*Integers) Neg(a *big.Int) *big.Int { return new(big.Int).Neg(a) }

func (*Integers) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

func (*Integers) DivExact(a, b *big.Int) (*big.Int, bool) {
	if b.Sign() == 0 {
		return nil, false
	}

	q, m := new(big.Int).QuoRem(a, b, new(big.Int))
	if m.Sign() != 0 {
		return nil, false
	}

	return q, true
}

// Gcd is non-negative.
func (*Integers) Gcd(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

func (z *Integers) Reciprocal(a *big.Int) *big.Int {
	if !z.IsUnit(a) {
		panic("integer is not a unit: " + a.String())
	}

	return a
}

func (*Integers) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }

func (*Integers) IsZero(a *big.Int) bool { return a.Sign() == 0 }

func (*Integers) IsOne(a *big.Int) bool { return a.Cmp(bigOne) == 0 }

func (*Integers) IsUnit(a *big.Int) bool { return a.IsInt64() && (a.Int64() == 1 || a.Int64() == -1) }

func (*Integers) IsField() bool { return false }

func (*Integers) Characteristic() *big.Int { return big.NewInt(0) }

func (*Integers) Cardinality() *big.Int { return nil }

func (*Integers) RandomElement(rnd *Random) *big.Int {
	const bound = 1 << randomIntegerBits

	return big.NewInt(rnd.Int64Range(-bound+1, bound-1))
}

func (*Integers) Format(a *big.Int) string { return a.String() }
