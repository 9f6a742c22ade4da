package mgcd

import (
	"errors"
	"math/big"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

// crtAccumulator combines images of an integer polynomial modulo distinct primes.
// It works on machine words while the product of the primes fits an int64 and
// switches to big.Int after that.
type crtAccumulator struct {
	nvars int

	exps  map[string][]int
	words map[string]uint64
	bigs  map[string]*big.Int

	modWord uint64
	modBig  *big.Int
}

func newCRTAccumulator(nvars int) *crtAccumulator {
	return &crtAccumulator{nvars: nvars}
}

func (acc *crtAccumulator) empty() bool {
	return acc.exps == nil
}

// add combines the image p modulo f.Modulus() into the accumulated residues.
// Monomials missing from either side have a zero residue there.
func (acc *crtAccumulator) add(p *mpoly.Poly[uint64], f *field.PrimeField) {
	if acc.empty() {
		acc.exps = make(map[string][]int, p.Len())
		acc.words = make(map[string]uint64, p.Len())

		for _, t := range p.Terms() {
			k := mpoly.ExponentKey(t.Exps)
			acc.exps[k] = t.Exps
			acc.words[k] = t.Coef
		}

		acc.modWord = f.Modulus()

		return
	}

	residues := make(map[string]uint64, p.Len())
	for _, t := range p.Terms() {
		k := mpoly.ExponentKey(t.Exps)
		residues[k] = t.Coef

		if _, ok := acc.exps[k]; !ok {
			acc.exps[k] = t.Exps
		}
	}

	if acc.bigs == nil && acc.addWords(residues, f) {
		return
	}

	acc.addBig(residues, f)
}

// addWords reports false, leaving the accumulator untouched, when the combined
// modulus overflows a word.
func (acc *crtAccumulator) addWords(residues map[string]uint64, f *field.PrimeField) bool {
	combined := make(map[string]uint64, len(acc.exps))

	var m uint64
	for k := range acc.exps {
		x, mod, err := field.CRTWord(acc.words[k], acc.modWord, residues[k], f)
		if errors.Is(err, field.ErrWordOverflow) {
			return false
		}

		combined[k], m = x, mod
	}

	acc.words, acc.modWord = combined, m

	return true
}

func (acc *crtAccumulator) addBig(residues map[string]uint64, f *field.PrimeField) {
	if acc.bigs == nil {
		acc.bigs = make(map[string]*big.Int, len(acc.words))
		for k, w := range acc.words {
			acc.bigs[k] = new(big.Int).SetUint64(w)
		}

		acc.modBig = new(big.Int).SetUint64(acc.modWord)
		acc.words = nil
	}

	p := new(big.Int).SetUint64(f.Modulus())
	for k := range acc.exps {
		r1, ok := acc.bigs[k]
		if !ok {
			r1 = new(big.Int)
		}

		acc.bigs[k] = field.ChineseRemainders(r1, acc.modBig, new(big.Int).SetUint64(residues[k]), p)
	}

	acc.modBig = new(big.Int).Mul(acc.modBig, p)
}

// modulus is the product of the primes added so far.
func (acc *crtAccumulator) modulus() *big.Int {
	if acc.bigs != nil {
		return acc.modBig
	}

	return new(big.Int).SetUint64(acc.modWord)
}

// residue is the accumulated residue of the monomial with key k.
func (acc *crtAccumulator) residue(k string) *big.Int {
	if acc.bigs != nil {
		if r, ok := acc.bigs[k]; ok {
			return r
		}

		return new(big.Int)
	}

	return new(big.Int).SetUint64(acc.words[k])
}

// symmetricLift maps every residue to (-m/2, m/2].
func (acc *crtAccumulator) symmetricLift() *mpoly.Poly[*big.Int] {
	terms := make([]mpoly.Monomial[*big.Int], 0, len(acc.exps))
	m := acc.modulus()

	for k, exps := range acc.exps {
		var c *big.Int
		if acc.bigs == nil {
			c = big.NewInt(field.SymmetricModWord(acc.words[k], acc.modWord))
		} else {
			c = field.SymmetricMod(acc.bigs[k], m)
		}

		terms = append(terms, mpoly.NewMonomial(exps, c))
	}

	return mpoly.New[*big.Int](field.Z, acc.nvars, terms...)
}

// rationalLift reconstructs every residue as a fraction and clears denominators.
// ok is false while some residue has no reconstruction yet.
func (acc *crtAccumulator) rationalLift() (*mpoly.Poly[*big.Int], bool) {
	m := acc.modulus()

	nums := make(map[string]*big.Int, len(acc.exps))
	dens := make(map[string]*big.Int, len(acc.exps))
	lcm := big.NewInt(1)

	for k := range acc.exps {
		n, d, ok := field.RationalReconstruction(acc.residue(k), m)
		if !ok {
			return nil, false
		}

		nums[k], dens[k] = n, d
		lcm = field.Lcm[*big.Int](field.Z, lcm, d)
	}

	terms := make([]mpoly.Monomial[*big.Int], 0, len(acc.exps))
	for k, exps := range acc.exps {
		c := new(big.Int).Quo(lcm, dens[k])
		terms = append(terms, mpoly.NewMonomial(exps, c.Mul(c, nums[k])))
	}

	return mpoly.New[*big.Int](field.Z, acc.nvars, terms...), true
}
