package mpoly

import (
	"encoding/binary"
)

// Order is a monomial order.
type Order int

const (
	// Lex compares exponents variable by variable, x0 first.
	Lex Order = iota
	// GrevLex compares total degree first, ties broken by the reverse lexicographic
	// order on the last differing variable.
	GrevLex
)

func (o Order) String() string {
	switch o {
	case Lex:
		return "lex"
	case GrevLex:
		return "grevlex"
	default:
		return "unknown"
	}
}

// Compare returns a positive number when a > b, zero when a == b and a negative
// number otherwise.
func (o Order) Compare(a, b []int) int {
	if o == GrevLex {
		da, db := sum(a), sum(b)
		if da != db {
			return da - db
		}

		for i := len(a) - 1; i >= 0; i-- {
			if a[i] != b[i] {
				return b[i] - a[i]
			}
		}

		return 0
	}

	for i := range a {
		if a[i] != b[i] {
			return a[i] - b[i]
		}
	}

	return 0
}

// Monomial is a term coefficient*x^Exps. Exps is shared between polynomials and
// must never be modified.
type Monomial[E any] struct {
	Exps []int
	Coef E

	degree int
}

// NewMonomial takes ownership of exps.
func NewMonomial[E any](exps []int, coef E) Monomial[E] {
	return Monomial[E]{Exps: exps, Coef: coef, degree: sum(exps)}
}

// TotalDegree is cached at construction.
func (m Monomial[E]) TotalDegree() int {
	return m.degree
}

// Divides reports whether the exponent vector of m divides that of o.
func (m Monomial[E]) Divides(o Monomial[E]) bool {
	return dividesExps(m.Exps, o.Exps)
}

// SameExps is exponent-vector equality; coefficients are ignored.
func (m Monomial[E]) SameExps(o Monomial[E]) bool {
	return equalExps(m.Exps, o.Exps)
}

func sum(exps []int) int {
	s := 0
	for _, e := range exps {
		s += e
	}

	return s
}

func dividesExps(a, b []int) bool {
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}

	return true
}

func equalExps(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func addExps(a, b []int) []int {
	out := make([]int, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}

	return out
}

func subExps(a, b []int) []int {
	out := make([]int, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}

	return out
}

// ExponentKey packs an exponent vector into a map key.
func ExponentKey(exps []int) string {
	buf := make([]byte, 0, 4*len(exps))
	for _, e := range exps {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(e))
	}

	return string(buf)
}
