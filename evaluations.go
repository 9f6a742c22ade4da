package mgcd

import (
	"math/big"

	"github.com/jonathanmweiss/go-mgcd/field"
)

// evaluationStack hands out distinct random evaluation points of a ring. Over a
// finite ring it reports exhaustion once every element was returned.
type evaluationStack[E any] struct {
	r   field.Ring[E]
	rnd *field.Random

	// limit is the ring cardinality when it fits an int64, -1 otherwise.
	limit int64
	used  map[string]struct{}

	// nonZero excludes zero from the points.
	nonZero bool
}

func newEvaluationStack[E any](r field.Ring[E], rnd *field.Random, nonZero bool) *evaluationStack[E] {
	limit := int64(-1)
	if c := r.Cardinality(); c != nil && c.IsInt64() {
		limit = c.Int64()
		if nonZero {
			limit--
		}
	}

	return &evaluationStack[E]{
		r:       r,
		rnd:     rnd,
		limit:   limit,
		used:    make(map[string]struct{}),
		nonZero: nonZero,
	}
}

// next returns a point that was not returned before; ok is false once the ring
// has no unused element left.
func (s *evaluationStack[E]) next() (E, bool) {
	if s.exhausted() {
		var zero E
		return zero, false
	}

	for {
		e := s.r.RandomElement(s.rnd)
		if s.nonZero && s.r.IsZero(e) {
			continue
		}

		k := s.r.Format(e)
		if _, ok := s.used[k]; ok {
			continue
		}

		s.used[k] = struct{}{}

		return e, true
	}
}

func (s *evaluationStack[E]) exhausted() bool {
	return s.limit >= 0 && int64(len(s.used)) >= s.limit
}

func (s *evaluationStack[E]) count() int {
	return len(s.used)
}

// randomNonZero draws a random unit of a field.
func randomNonZero[E any](r field.Ring[E], rnd *field.Random) E {
	for {
		e := r.RandomElement(rnd)
		if !r.IsZero(e) {
			return e
		}
	}
}

// extensionDegree returns the smallest k >= 2 with |r|^k >= need, or 1 when the
// ring is infinite or already has need elements.
func extensionDegree(card *big.Int, need int64) int {
	if card == nil || card.Cmp(big.NewInt(need)) >= 0 {
		return 1
	}

	k := 2
	pow := new(big.Int).Mul(card, card)
	for pow.Cmp(big.NewInt(need)) < 0 {
		pow.Mul(pow, card)
		k++
	}

	return k
}
