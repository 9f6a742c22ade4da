package field

import (
	"math/big"
)

// Ring is a commutative ring with identity whose elements are values of type E.
//
// Implementations never mutate their arguments: every operation returns a fresh
// element, so elements can be shared freely between polynomials.
type Ring[E any] interface {
	Zero() E
	One() E
	FromInt64(v int64) E

	Add(a, b E) E
	Sub(a, b E) E
	Neg(a E) E
	Mul(a, b E) E

	// DivExact returns a/b, ok is false when b does not divide a.
	DivExact(a, b E) (E, bool)
	Gcd(a, b E) E
	// Reciprocal panics when a is not a unit.
	Reciprocal(a E) E

	Equal(a, b E) bool
	IsZero(a E) bool
	IsOne(a E) bool
	IsUnit(a E) bool
	IsField() bool

	Characteristic() *big.Int
	// Cardinality is nil for infinite rings.
	Cardinality() *big.Int

	RandomElement(rnd *Random) E
	Format(a E) string
}

// Pow computes base^exp by repeated squaring.
func Pow[E any](r Ring[E], base E, exp uint64) E {
	x := r.One()
	for exp > 0 {
		if exp%2 == 1 {
			x = r.Mul(x, base)
		}

		base = r.Mul(base, base)
		exp /= 2
	}

	return x
}

// Lcm returns a*b/gcd(a,b).
func Lcm[E any](r Ring[E], a, b E) E {
	if r.IsZero(a) || r.IsZero(b) {
		return r.Zero()
	}

	q, _ := r.DivExact(a, r.Gcd(a, b))

	return r.Mul(q, b)
}

// IsFinite reports whether the ring has finitely many elements.
func IsFinite[E any](r Ring[E]) bool {
	return r.Cardinality() != nil
}

// CardinalityBelow reports whether the ring is finite with fewer than n elements.
func CardinalityBelow[E any](r Ring[E], n int64) bool {
	c := r.Cardinality()
	if c == nil {
		return false
	}

	return c.Cmp(big.NewInt(n)) < 0
}

// SameRing reports whether r1 and r2 describe the same ring. Distinct instances of
// a ring type with equal characteristic and cardinality are considered equal,
// except extension fields, which must also share their modulus.
func SameRing[E any](r1, r2 Ring[E]) bool {
	if any(r1) == any(r2) {
		return true
	}

	if r1.Characteristic().Cmp(r2.Characteristic()) != 0 {
		return false
	}

	c1, c2 := r1.Cardinality(), r2.Cardinality()
	if c1 == nil || c2 == nil {
		return c1 == nil && c2 == nil && r1.IsField() == r2.IsField()
	}

	if c1.Cmp(c2) != 0 {
		return false
	}

	if g1, ok := any(r1).(*GaloisField); ok {
		g2, ok := any(r2).(*GaloisField)
		return ok && g1.Modulus().Equals(g2.Modulus())
	}

	return true
}
