package field

import "errors"

// minNttLength is the smallest operand length for which MulDense bothers with an NTT.
const minNttLength = 64

type twiddleSet struct {
	// For each stage s (m = 2<<s), fwd[s] (and inv[s]) has length m/2
	// holding w^j where w = psi^(n/m) for forward, and w = psiInv^(n/m) for inverse.
	fwd  [][]uint64
	inv  [][]uint64
	nInv uint64 // inverse of n (for inverse NTT scaling)
}

var errNttLength = errors.New("NTT: length must be a power of two")

func (f *PrimeField) getTwiddles(n int) (*twiddleSet, error) {
	f.mu.RLock()
	if ts, ok := f.twiddleCache[n]; ok {
		f.mu.RUnlock()
		return ts, nil
	}
	f.mu.RUnlock()

	// Build outside lock
	psi, err := f.GetRootOfUnity(uint64(n))
	if err != nil {
		return nil, err
	}
	psiInv := f.Inverse(psi)

	var fwd [][]uint64
	var inv [][]uint64

	// stages: m = 2,4,8,...,n  => stage index s = 0..(log2(n)-1)
	for m := 2; m <= n; m = m << 1 {
		half := m >> 1
		wmF := f.Pow(psi, uint64(n/m))    // forward stage root
		wmI := f.Pow(psiInv, uint64(n/m)) // inverse stage root

		rowF := make([]uint64, half)
		rowI := make([]uint64, half)

		wF := uint64(1)
		wI := uint64(1)
		for j := 0; j < half; j++ {
			rowF[j] = wF
			rowI[j] = wI
			wF = f.Mul(wF, wmF)
			wI = f.Mul(wI, wmI)
		}

		fwd = append(fwd, rowF)
		inv = append(inv, rowI)
	}

	ts := &twiddleSet{
		fwd:  fwd,
		inv:  inv,
		nInv: f.Inverse(uint64(n) % f.prime),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	// Another goroutine may have won the race; keep the first one.
	if existing, ok := f.twiddleCache[n]; ok {
		return existing, nil
	}

	f.twiddleCache[n] = ts

	return ts, nil
}

// NttForward transforms xs in place from coefficients to evaluations at the powers
// of an n-th root of unity (n = len(xs)).
func (f *PrimeField) NttForward(xs []uint64) error {
	n := len(xs)
	if n <= 1 {
		return nil
	}

	if !IsPowerOfTwo(uint64(n)) {
		return errNttLength
	}

	ts, err := f.getTwiddles(n)
	if err != nil {
		return err
	}

	bitReverseInPlace(xs)
	f.butterflies(xs, ts.fwd)

	return nil
}

// NttBackward is the inverse of NttForward, including the 1/n scaling.
func (f *PrimeField) NttBackward(xs []uint64) error {
	n := len(xs)
	if n <= 1 {
		return nil
	}

	if !IsPowerOfTwo(uint64(n)) {
		return errNttLength
	}

	ts, err := f.getTwiddles(n)
	if err != nil {
		return err
	}

	bitReverseInPlace(xs)
	f.butterflies(xs, ts.inv)

	// scale by n^{-1}
	for i := 0; i < n; i++ {
		xs[i] = f.Mul(xs[i], ts.nInv)
	}

	return nil
}

func (f *PrimeField) butterflies(xs []uint64, stages [][]uint64) {
	n := len(xs)
	for s, m := 0, 2; m <= n; s, m = s+1, m<<1 {
		half := m >> 1
		ws := stages[s] // length = half
		for k := 0; k < n; k += m {
			// breadth-first butterflies
			for j := 0; j < half; j++ {
				u := xs[k+j]
				t := f.Mul(ws[j], xs[k+j+half])
				xs[k+j] = f.Add(u, t)
				xs[k+j+half] = f.Sub(u, t)
			}
		}
	}
}

// MulDense multiplies two coefficient slices with an NTT when both are long and p-1
// has a large enough power of two. ok is false when the caller should fall back to
// schoolbook multiplication.
func (f *PrimeField) MulDense(a, b []uint64) (prod []uint64, ok bool) {
	if len(a) < minNttLength || len(b) < minNttLength {
		return nil, false
	}

	resultLen := len(a) + len(b) - 1
	n := 1
	for n < resultLen {
		n <<= 1
	}

	if (f.prime-1)%uint64(n) != 0 {
		return nil, false
	}

	fa := make([]uint64, n)
	fb := make([]uint64, n)
	copy(fa, a)
	copy(fb, b)

	if err := f.NttForward(fa); err != nil {
		return nil, false
	}

	if err := f.NttForward(fb); err != nil {
		return nil, false
	}

	for i := range fa {
		fa[i] = f.Mul(fa[i], fb[i])
	}

	if err := f.NttBackward(fa); err != nil {
		return nil, false
	}

	return fa[:resultLen], true
}

func bitReverseInPlace(xs []uint64) {
	n := len(xs)
	if n <= 1 {
		return
	}

	j := 0
	for i := 1; i < n-1; i++ {
		bit := n >> 1
		for j&bit != 0 {
			j &= ^bit
			bit >>= 1
		}
		j |= bit
		if i < j {
			xs[i], xs[j] = xs[j], xs[i]
		}
	}
}
