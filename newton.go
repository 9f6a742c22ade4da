package mgcd

import (
	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// newtonInterpolation reconstructs a polynomial in x_v from its images at
// distinct values of x_v, one point at a time.
type newtonInterpolation[E any] struct {
	r field.Ring[E]
	v int

	poly *mpoly.Poly[E]
	// lt is the leading exponent vector of the images.
	lt []int
	// modulus is \prod (x_v - s_i) over the points used so far.
	modulus *field.Polynomial[E]
	points  int
}

func newNewtonInterpolation[E any](r field.Ring[E], v int) *newtonInterpolation[E] {
	return &newtonInterpolation[E]{
		r:       r,
		v:       v,
		modulus: field.ConstantPolynomial(r, r.One()),
	}
}

func (n *newtonInterpolation[E]) empty() bool {
	return n.poly == nil
}

// update adds the image at x_v = s. It reports whether the interpolant already
// took that value at s, in which case it is unchanged.
//
// The new interpolant is poly + (image - poly(s)) * M(x_v) / M(s), where M is the
// product of (x_v - s_i) over the previous points.
func (n *newtonInterpolation[E]) update(s E, image *mpoly.Poly[E]) bool {
	stable := false

	switch {
	case n.poly == nil:
		n.poly = image
		n.lt = image.Lt().Exps
	default:
		correction := image.Sub(n.poly.Evaluate(n.v, s))
		if correction.IsZero() {
			stable = true
			break
		}

		c := n.r.Reciprocal(n.modulus.Evaluate(s))
		n.poly = n.poly.Add(correction.MulScalar(c).MulUnivariate(n.v, n.modulus))
	}

	n.modulus = n.modulus.Mul(field.LinearPolynomial(n.r, s))
	n.points++

	return stable
}
