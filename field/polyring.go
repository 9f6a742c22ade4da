package field

// Following Algorithm 2.5 (Polynomial division with remainder) in
// `Modern Computer Algebra` by Joachim von zur Gathen and Jürgen Gerhard
//
// returns q, r such that a = q*b + r. The leading coefficient of b must be a unit.
func LongDiv[E any](a, b *Polynomial[E]) (q *Polynomial[E], rem *Polynomial[E]) {
	if b.IsZero() {
		panic("division by zero polynomial")
	}

	fld := a.r
	n, m := a.Degree(), b.Degree()
	if n < m {
		return &Polynomial[E]{r: fld}, a
	}

	u := fld.Reciprocal(b.LeadCoeff())

	remInner := a.ToSlice()
	qInner := make([]E, n-m+1)

	for i := n - m; i >= 0; i-- {
		c := remInner[m+i]
		if fld.IsZero(c) {
			qInner[i] = fld.Zero()
			continue
		}

		qInner[i] = fld.Mul(c, u)
		for j := 0; j <= m; j++ {
			remInner[i+j] = fld.Sub(remInner[i+j], fld.Mul(qInner[i], b.inner[j]))
		}
	}

	return NewPolynomial(fld, qInner), NewPolynomial(fld, remInner[:m])
}

// Mod returns a mod b.
func Mod[E any](a, b *Polynomial[E]) *Polynomial[E] {
	_, r := LongDiv(a, b)

	return r
}

// DivExact divides a by b over any ring; ok is false when the division leaves a
// remainder or a coefficient division is not exact.
func DivExact[E any](a, b *Polynomial[E]) (*Polynomial[E], bool) {
	if b.IsZero() {
		return nil, false
	}

	fld := a.r
	n, m := a.Degree(), b.Degree()
	if a.IsZero() {
		return a, true
	}

	if n < m {
		return nil, false
	}

	remInner := a.ToSlice()
	qInner := make([]E, n-m+1)
	lc := b.LeadCoeff()

	for i := n - m; i >= 0; i-- {
		c := remInner[m+i]
		if fld.IsZero(c) {
			qInner[i] = fld.Zero()
			continue
		}

		qi, ok := fld.DivExact(c, lc)
		if !ok {
			return nil, false
		}

		qInner[i] = qi
		for j := 0; j <= m; j++ {
			remInner[i+j] = fld.Sub(remInner[i+j], fld.Mul(qi, b.inner[j]))
		}
	}

	for i := 0; i < m; i++ {
		if !fld.IsZero(remInner[i]) {
			return nil, false
		}
	}

	return NewPolynomial(fld, qInner), true
}

// PartialExtendedEuclidean returns r = gcd(a,b), x, y such that ax + by = r,
// stopping as soon as r.Degree() < stopDegree. The ring must be a field.
func PartialExtendedEuclidean[E any](a, b *Polynomial[E], stopDegree int) (gcd, x, y *Polynomial[E]) {
	r := a.r

	A, B := a, b

	// Invariants:
	//   A = x0*a_orig + y0*b_orig
	//   B = x1*a_orig + y1*b_orig
	x0 := ConstantPolynomial(r, r.One())
	x1 := &Polynomial[E]{r: r}
	y0 := &Polynomial[E]{r: r}
	y1 := ConstantPolynomial(r, r.One())

	for A.Degree() >= stopDegree {
		// If B == 0, can't divide further.
		if B.IsZero() {
			break
		}

		// A = q*B + r
		q, rrem := LongDiv(A, B)
		A, B = B, rrem // GCD recursive step: gcd(A, B) = gcd(B,rrem)

		// following Bézout's identity:
		// x update: (x0, x1) = (x1, x0 - q*x1)
		x0, x1 = x1, x0.Sub(q.Mul(x1))

		// y update: (y0, y1) = (y1, y0 - q*y1)
		y0, y1 = y1, y0.Sub(q.Mul(y1))
	}

	return A, x0, y0
}

// Gcd returns the monic greatest common divisor of a and b over a field.
func Gcd[E any](a, b *Polynomial[E]) *Polynomial[E] {
	if a.IsZero() {
		return b.Monic()
	}

	if b.IsZero() {
		return a.Monic()
	}

	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	for !b.IsZero() {
		a, b = b, Mod(a, b)
	}

	return a.Monic()
}

// ExtendedGcd returns the monic g = gcd(a,b) with s*a + t*b = g.
func ExtendedGcd[E any](a, b *Polynomial[E]) (g, s, t *Polynomial[E]) {
	r := a.r
	if a.IsZero() {
		if b.IsZero() {
			return b, b, b
		}

		inv := r.Reciprocal(b.LeadCoeff())

		return b.MulScalar(inv), a, ConstantPolynomial(r, inv)
	}

	g, s, t = PartialExtendedEuclidean(a, b, 0)
	if g.IsZero() {
		return g, s, t
	}

	inv := r.Reciprocal(g.LeadCoeff())

	return g.MulScalar(inv), s.MulScalar(inv), t.MulScalar(inv)
}

// PowMod computes base^exp mod m.
func PowMod[E any](base *Polynomial[E], exp uint64, m *Polynomial[E]) *Polynomial[E] {
	result := Mod(ConstantPolynomial(base.r, base.r.One()), m)
	base = Mod(base, m)

	for exp > 0 {
		if exp%2 == 1 {
			result = Mod(result.Mul(base), m)
		}

		base = Mod(base.Mul(base), m)
		exp /= 2
	}

	return result
}

// PolyProductMonicNegRoots computes \prod (x - r_i).
func PolyProductMonicNegRoots[E any](f Ring[E], roots []E) *Polynomial[E] {
	n := len(roots)

	coeffs := make([]E, n+1)
	for i := range coeffs {
		coeffs[i] = f.Zero()
	}
	coeffs[0] = f.One()

	deg := 0
	for _, r := range roots {
		neg := f.Neg(r) // -r
		for j := deg; j >= 0; j-- {
			// new[j+1] += old[j] * 1
			coeffs[j+1] = f.Add(coeffs[j+1], coeffs[j])
			// new[j]   += old[j] * (-r)
			coeffs[j] = f.Mul(coeffs[j], neg)
		}
		deg++
	}

	return NewPolynomial(f, coeffs)
}
