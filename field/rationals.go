package field

import (
	"math/big"
)

// Rationals is the field Q. Elements are *big.Rat and are never modified after creation.
type Rationals struct{}

// Q is the shared rational field.
var Q = &Rationals{}

var _ Ring[*big.Rat] = (*Rationals)(nil)

var (
	ratZero = new(big.Rat)
	ratOne  = big.NewRat(1, 1)
)

func (*Rationals) Zero() *big.Rat { return ratZero }

func (*Rationals) One() *big.Rat { return ratOne }

func (*Rationals) FromInt64(v int64) *big.Rat { return big.NewRat(v, 1) }

func (*Rationals) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }

func (*Rationals) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }

func (*Rationals) Neg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }

func (*Rationals) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

func (*Rationals) DivExact(a, b *big.Rat) (*big.Rat, bool) {
	if b.Sign() == 0 {
		return nil, false
	}

	return new(big.Rat).Quo(a, b), true
}

func (*Rationals) Gcd(a, b *big.Rat) *big.Rat {
	if a.Sign() == 0 && b.Sign() == 0 {
		return ratZero
	}

	return ratOne
}

func (*Rationals) Reciprocal(a *big.Rat) *big.Rat {
	if a.Sign() == 0 {
		panic("zero has no inverse")
	}

	return new(big.Rat).Inv(a)
}

func (*Rationals) Equal(a, b *big.Rat) bool { return a.Cmp(b) == 0 }

func (*Rationals) IsZero(a *big.Rat) bool { return a.Sign() == 0 }

func (*Rationals) IsOne(a *big.Rat) bool { return a.Cmp(ratOne) == 0 }

func (*Rationals) IsUnit(a *big.Rat) bool { return a.Sign() != 0 }

func (*Rationals) IsField() bool { return true }

func (*Rationals) Characteristic() *big.Int { return big.NewInt(0) }

func (*Rationals) Cardinality() *big.Int { return nil }

// RandomElement draws a small fraction with a nonzero denominator.
func (*Rationals) RandomElement(rnd *Random) *big.Rat {
	const bound = 1 << randomIntegerBits

	return big.NewRat(rnd.Int64Range(-bound+1, bound-1), rnd.Int64Range(1, bound-1))
}

func (*Rationals) Format(a *big.Rat) string { return a.RatString() }
