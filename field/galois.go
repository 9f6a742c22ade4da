package field

import (
	"errors"
	"fmt"
	"math/big"
)

// GaloisField is GF(p^k), represented as polynomials over a PrimeField modulo a
// monic irreducible polynomial of degree k. Elements are trimmed coefficient slices
// (lowest degree first, no trailing zeros); the zero element is the empty slice.
type GaloisField struct {
	base    *PrimeField
	modulus *Polynomial[uint64]
}

var _ Ring[[]uint64] = (*GaloisField)(nil)

var (
	errModulusNotMonic       = errors.New("galois field modulus must be monic")
	errModulusNotIrreducible = errors.New("galois field modulus must be irreducible")
	errExtensionDegree       = errors.New("extension degree must be positive")
)

// NewGaloisField builds GF(p^k) over base with a random irreducible modulus.
func NewGaloisField(base *PrimeField, k int, rnd *Random) (*GaloisField, error) {
	if k < 1 {
		return nil, errExtensionDegree
	}

	if k == 1 {
		return &GaloisField{base: base, modulus: LinearPolynomial[uint64](base, 0)}, nil
	}

	// a random monic polynomial is irreducible with probability about 1/k.
	for {
		coeffs := make([]uint64, k+1)
		for i := 0; i < k; i++ {
			coeffs[i] = base.RandomElement(rnd)
		}
		coeffs[k] = 1

		m := NewPolynomial[uint64](base, coeffs)
		if IsIrreducible(m) {
			return &GaloisField{base: base, modulus: m}, nil
		}
	}
}

// NewGaloisFieldWithModulus builds base[x]/(modulus).
func NewGaloisFieldWithModulus(base *PrimeField, modulus *Polynomial[uint64]) (*GaloisField, error) {
	if !base.IsOne(modulus.LeadCoeff()) {
		return nil, errModulusNotMonic
	}

	if !IsIrreducible(modulus) {
		return nil, errModulusNotIrreducible
	}

	return &GaloisField{base: base, modulus: modulus}, nil
}

// IsIrreducible runs Ben-Or's test: f of degree n over GF(q) is irreducible iff
// gcd(x^(q^i) - x, f) = 1 for every i <= n/2.
func IsIrreducible(f *Polynomial[uint64]) bool {
	n := f.Degree()
	if n < 1 {
		return false
	}

	if n == 1 {
		return true
	}

	fld := f.Ring().(*PrimeField)
	x := MonomialPolynomial[uint64](fld, 1, 1)

	xqi := x
	for i := 1; i <= n/2; i++ {
		xqi = PowMod(xqi, fld.prime, f)

		if !Gcd(xqi.Sub(x), f).IsOne() {
			return false
		}
	}

	return true
}

// Base returns the prime subfield.
func (g *GaloisField) Base() *PrimeField { return g.base }

// Degree returns the extension degree k.
func (g *GaloisField) Degree() int { return g.modulus.Degree() }

// Modulus returns the irreducible defining polynomial.
func (g *GaloisField) Modulus() *Polynomial[uint64] { return g.modulus }

// Embed maps a base field element into GF(p^k).
func (g *GaloisField) Embed(c uint64) []uint64 {
	if c == 0 {
		return nil
	}

	return []uint64{c}
}

// Project maps an element of the prime subfield back to the base field; ok is false
// for elements outside it.
func (g *GaloisField) Project(e []uint64) (uint64, bool) {
	switch len(e) {
	case 0:
		return 0, true
	case 1:
		return e[0], true
	default:
		return 0, false
	}
}

func (g *GaloisField) toPoly(e []uint64) *Polynomial[uint64] {
	return &Polynomial[uint64]{r: g.base, inner: e}
}

func (g *GaloisField) Zero() []uint64 { return nil }

func (g *GaloisField) One() []uint64 { return []uint64{1} }

func (g *GaloisField) FromInt64(v int64) []uint64 { return g.Embed(g.base.FromInt64(v)) }

func (g *GaloisField) Add(a, b []uint64) []uint64 {
	return g.toPoly(a).Add(g.toPoly(b)).inner
}

func (g *GaloisField) Sub(a, b []uint64) []uint64 {
	return g.toPoly(a).Sub(g.toPoly(b)).inner
}

func (g *GaloisField) Neg(a []uint64) []uint64 {
	return g.toPoly(a).Neg().inner
}

func (g *GaloisField) Mul(a, b []uint64) []uint64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	return Mod(g.toPoly(a).Mul(g.toPoly(b)), g.modulus).inner
}

func (g *GaloisField) DivExact(a, b []uint64) ([]uint64, bool) {
	if len(b) == 0 {
		return nil, false
	}

	return g.Mul(a, g.Reciprocal(b)), true
}

func (g *GaloisField) Gcd(a, b []uint64) []uint64 {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	return g.One()
}

func (g *GaloisField) Reciprocal(a []uint64) []uint64 {
	if len(a) == 0 {
		panic("zero has no inverse")
	}

	// s*a + t*m = 1
	d, s, _ := ExtendedGcd(g.toPoly(a), g.modulus)
	if !d.IsOne() {
		panic("element is not invertible: modulus is reducible")
	}

	return Mod(s, g.modulus).inner
}

func (g *GaloisField) Equal(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func (g *GaloisField) IsZero(a []uint64) bool { return len(a) == 0 }

func (g *GaloisField) IsOne(a []uint64) bool { return len(a) == 1 && a[0] == 1 }

func (g *GaloisField) IsUnit(a []uint64) bool { return len(a) != 0 }

func (g *GaloisField) IsField() bool { return true }

func (g *GaloisField) Characteristic() *big.Int { return g.base.Characteristic() }

func (g *GaloisField) Cardinality() *big.Int {
	return new(big.Int).Exp(g.base.Characteristic(), big.NewInt(int64(g.Degree())), nil)
}

func (g *GaloisField) RandomElement(rnd *Random) []uint64 {
	coeffs := make([]uint64, g.Degree())
	for i := range coeffs {
		coeffs[i] = g.base.RandomElement(rnd)
	}

	return NewPolynomial[uint64](g.base, coeffs).inner
}

func (g *GaloisField) Format(a []uint64) string {
	if len(a) <= 1 {
		return g.toPoly(a).String()
	}

	return fmt.Sprintf("(%s)", g.toPoly(a).String())
}
