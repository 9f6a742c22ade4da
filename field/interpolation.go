package field

import "errors"

var (
	errPointsSizeMismatch = errors.New("points size mismatch")
	errNonUniqueXs        = errors.New("non-unique x values")
	errZeroNode           = errors.New("zero vandermonde node")
)

// SolveVandermonde solves the transposed Vandermonde system
//
//	\sum_m c_m * v_m^j = rhs[j-1],   j = 1..k
//
// for c, where v = nodes and k = len(nodes). Only the first k values of rhs are used.
//
// The algorithm follows Zippel's O(k^2) method:
// 1. Create P(z) = \prod_m (z - v_m).
// 2. For each m, create P_m(z) = P(z) / (z - v_m), using quick division by a linear factor.
// 3. Then d_m = \sum_j [z^j]P_m * rhs[j] / P_m(v_m), and c_m = d_m / v_m.
func SolveVandermonde[E any](r Ring[E], nodes, rhs []E) ([]E, SystemInfo) {
	if err := validateVandermonde(r, nodes, rhs); err != nil {
		if errors.Is(err, errNonUniqueXs) {
			return nil, UnderDetermined
		}

		return nil, Inconsistent
	}

	master := PolyProductMonicNegRoots(r, nodes)

	solution := make([]E, len(nodes))
	for m, v := range nodes {
		pm := divideByLinear(master, v) // O(n) fast division.

		num := r.Zero()
		for j := 0; j < len(nodes); j++ {
			num = r.Add(num, r.Mul(pm.Coeff(j), rhs[j]))
		}

		den := r.Mul(pm.Evaluate(v), v)
		solution[m], _ = r.DivExact(num, den)
	}

	return solution, Consistent
}

/*
divideByLinear divides m by (x - root). This is quicker than the long division method
since the divisor is of degree 1, and the caller knows there is no remainder.
*/
func divideByLinear[E any](m *Polynomial[E], root E) *Polynomial[E] {
	r := m.r
	if m.Degree() < 1 {
		return &Polynomial[E]{r: r}
	}

	qinner := make([]E, m.Degree())
	carry := r.Zero()

	for i := m.Degree(); i > 0; i-- {
		carry = r.Add(m.inner[i], r.Mul(carry, root))
		qinner[i-1] = carry
	}

	return NewPolynomial(r, qinner)
}

func validateVandermonde[E any](r Ring[E], nodes, rhs []E) error {
	if len(rhs) < len(nodes) {
		return errPointsSizeMismatch
	}

	for i, v := range nodes {
		if r.IsZero(v) {
			return errZeroNode
		}

		for j := 0; j < i; j++ {
			if r.Equal(nodes[j], v) {
				return errNonUniqueXs
			}
		}
	}

	return nil
}
