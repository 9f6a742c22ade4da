package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// FrField is the scalar field of BLS12-377, a 253-bit prime field backed by
// gnark-crypto's Montgomery arithmetic. Elements are fr.Element values.
type FrField struct{}

// Fr is the shared BLS12-377 scalar field.
var Fr = &FrField{}

var _ Ring[fr.Element] = (*FrField)(nil)

func (*FrField) Zero() fr.Element { return fr.Element{} }

func (*FrField) One() fr.Element { return fr.One() }

func (*FrField) FromInt64(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)

	return e
}

func (*FrField) Add(a, b fr.Element) fr.Element {
	var e fr.Element
	e.Add(&a, &b)

	return e
}

func (*FrField) Sub(a, b fr.Element) fr.Element {
	var e fr.Element
	e.Sub(&a, &b)

	return e
}

func (*FrField) Neg(a fr.Element) fr.Element {
	var e fr.Element
	e.Neg(&a)

	return e
}

func (*FrField) Mul(a, b fr.Element) fr.Element {
	var e fr.Element
	e.Mul(&a, &b)

	return e
}

func (f *FrField) DivExact(a, b fr.Element) (fr.Element, bool) {
	if b.IsZero() {
		return fr.Element{}, false
	}

	return f.Mul(a, f.Reciprocal(b)), true
}

func (*FrField) Gcd(a, b fr.Element) fr.Element {
	if a.IsZero() && b.IsZero() {
		return fr.Element{}
	}

	return fr.One()
}

func (*FrField) Reciprocal(a fr.Element) fr.Element {
	if a.IsZero() {
		panic("zero has no inverse")
	}

	var e fr.Element
	e.Inverse(&a)

	return e
}

func (*FrField) Equal(a, b fr.Element) bool { return a.Equal(&b) }

func (*FrField) IsZero(a fr.Element) bool { return a.IsZero() }

func (*FrField) IsOne(a fr.Element) bool { return a.IsOne() }

func (*FrField) IsUnit(a fr.Element) bool { return !a.IsZero() }

func (*FrField) IsField() bool { return true }

func (*FrField) Characteristic() *big.Int { return fr.Modulus() }

func (*FrField) Cardinality() *big.Int { return fr.Modulus() }

// RandomElement reduces 48 random bytes, which keeps the bias below 2^-128.
func (*FrField) RandomElement(rnd *Random) fr.Element {
	var buf [48]byte
	if _, err := rnd.Read(buf[:]); err != nil {
		panic(err)
	}

	var e fr.Element
	e.SetBytes(buf[:])

	return e
}

func (*FrField) Format(a fr.Element) string { return a.String() }
