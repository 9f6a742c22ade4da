package mpoly

import (
	"github.com/jonathanmweiss/go-mgcd/field"
)

// Random draws a polynomial with up to nterms terms whose exponents are uniform in
// [0, maxDegree] and whose coefficients are random nonzero ring elements.
func Random[E any](r field.Ring[E], nvars, maxDegree, nterms int, rnd *field.Random) *Poly[E] {
	b := newBuilder(r, nterms)
	for i := 0; i < nterms; i++ {
		exps := make([]int, nvars)
		for v := range exps {
			exps[v] = rnd.Intn(maxDegree + 1)
		}

		b.add(exps, randomNonZero(r, rnd))
	}

	return b.build(nvars, Lex)
}

func randomNonZero[E any](r field.Ring[E], rnd *field.Random) E {
	for {
		c := r.RandomElement(rnd)
		if !r.IsZero(c) {
			return c
		}
	}
}
