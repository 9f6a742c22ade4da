package mgcd

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

const mersenne19 = 524287

func testConfig(seed uint64) *Config {
	return NewConfig(field.NewRandomFromUint64(seed))
}

func xyz[E any](r field.Ring[E]) (x, y, z *mpoly.Poly[E]) {
	return mpoly.Variable(r, 3, 0), mpoly.Variable(r, 3, 1), mpoly.Variable(r, 3, 2)
}

// paperExample returns a*g, b*g and g for a = x^2 - xy + z^5, b = x^2 + xy^7 + xyz^2
// and g = x + y + z.
func paperExample[E any](r field.Ring[E]) (ag, bg, g *mpoly.Poly[E]) {
	x, y, z := xyz(r)

	a := x.Pow(2).Sub(x.Mul(y)).Add(z.Pow(5))
	b := x.Pow(2).Add(x.Mul(y.Pow(7))).Add(x.Mul(y).Mul(z.Pow(2)))
	g = x.Add(y).Add(z)

	return a.Mul(g), b.Mul(g), g
}

var fieldAlgorithms = []Algorithm{Brown, Zippel, EZ, EEZ}

func TestGCDOverPrimeField(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)
	ag, bg, g := paperExample[uint64](f)

	for _, alg := range fieldAlgorithms {
		t.Run(alg.String(), func(t *testing.T) {
			res, err := gcdWith[uint64](alg)(testConfig(1), ag, bg)
			a.NoError(err)
			a.True(res.Equal(g), "%s: got %s", alg, res)
		})
	}

	t.Run("PolynomialGCD", func(t *testing.T) {
		res, err := PolynomialGCD(testConfig(1), ag, bg)
		a.NoError(err)
		a.True(res.Equal(g))
	})
}

func TestGCDTrivialCases(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)
	ag, bg, g := paperExample[uint64](f)
	x, y, z := xyz[uint64](f)
	zero := mpoly.Zero[uint64](f, 3)
	one := mpoly.Constant[uint64](f, 3, 1)

	for _, alg := range fieldAlgorithms {
		gcd := gcdWith[uint64](alg)
		cfg := testConfig(7)

		t.Run(alg.String()+"/zero", func(t *testing.T) {
			res, err := gcd(cfg, ag.MulScalar(5), zero)
			a.NoError(err)
			a.True(res.Equal(ag))

			res, err = gcd(cfg, zero, zero)
			a.NoError(err)
			a.True(res.IsZero())
		})

		t.Run(alg.String()+"/same", func(t *testing.T) {
			res, err := gcd(cfg, ag, ag.MulScalar(3))
			a.NoError(err)
			a.True(res.Equal(ag))
		})

		t.Run(alg.String()+"/constant", func(t *testing.T) {
			res, err := gcd(cfg, ag, one.MulScalar(12))
			a.NoError(err)
			a.True(res.IsOne())
		})

		t.Run(alg.String()+"/monomialContent", func(t *testing.T) {
			q := y.Add(z.Pow(2)).Add(one)
			res, err := gcd(cfg, ag.Mul(x.Pow(2).Mul(y)), g.Mul(q).Mul(x.Mul(y.Pow(3))))
			a.NoError(err)
			a.True(res.Equal(g.Mul(x).Mul(y)), "got %s", res)
		})

		t.Run(alg.String()+"/oneSidedVariable", func(t *testing.T) {
			// z only occurs in the first operand.
			p := x.Add(y).Mul(z.Pow(2).Add(x))
			q := x.Add(y).Mul(x.Sub(y))
			res, err := gcd(cfg, p, q)
			a.NoError(err)
			a.True(res.Equal(x.Add(y)), "got %s", res)
		})

		t.Run(alg.String()+"/coprime", func(t *testing.T) {
			p, _ := ag.DivExact(g)
			q, _ := bg.DivExact(g)
			res, err := gcd(cfg, p, q)
			a.NoError(err)
			a.True(res.IsOne())
		})
	}
}

func TestGCDKeepsOrder(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)
	ag, bg, g := paperExample[uint64](f)

	res, err := ZippelGCD(testConfig(3), ag.WithOrder(mpoly.GrevLex), bg.WithOrder(mpoly.GrevLex))
	a.NoError(err)
	a.Equal(mpoly.GrevLex, res.Order())
	a.True(res.Equal(g))
}

func TestGCDIndependentOfSeed(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)
	ag, bg, _ := paperExample[uint64](f)

	for _, alg := range fieldAlgorithms {
		gcd := gcdWith[uint64](alg)

		first, err := gcd(testConfig(1), ag, bg)
		a.NoError(err)

		for seed := uint64(2); seed < 8; seed++ {
			res, err := gcd(testConfig(seed), ag, bg)
			a.NoError(err)
			a.True(res.Equal(first), "%s seed %d: %s != %s", alg, seed, res, first)
		}
	}

	t.Run("integers", func(t *testing.T) {
		p, q, _ := integerExample()

		first, err := ModularGCD(testConfig(1), p, q)
		a.NoError(err)

		for seed := uint64(2); seed < 6; seed++ {
			res, err := ModularGCD(testConfig(seed), p, q)
			a.NoError(err)
			a.True(res.Equal(first), "seed %d: %s != %s", seed, res, first)
		}
	})
}

func TestGCDAlgorithmsAgree(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)

	for seed := uint64(1); seed <= 4; seed++ {
		rnd := field.NewRandomFromUint64(seed)

		g := mpoly.Random[uint64](f, 3, 2, 3, rnd)
		p := mpoly.Random[uint64](f, 3, 2, 4, rnd).Mul(g)
		q := mpoly.Random[uint64](f, 3, 2, 4, rnd).Mul(g)

		want, err := BrownGCD(testConfig(seed), p, q)
		a.NoError(err)
		a.True(g.Divides(want))

		for _, alg := range fieldAlgorithms[1:] {
			res, err := gcdWith[uint64](alg)(testConfig(seed), p, q)
			a.NoError(err)
			a.True(res.Equal(want), "seed %d, %s: %s != %s", seed, alg, res, want)
		}
	}
}

func TestGCDOverFr(t *testing.T) {
	a := assert.New(t)

	x, y, z := xyz[fr.Element](field.Fr)
	one := mpoly.Constant(field.Fr, 3, field.Fr.One())

	g := x.Mul(y).Add(z.Pow(3)).Add(one)
	p := x.Pow(3).Add(y.Mul(z)).Mul(g)
	q := y.Pow(2).Sub(x.Mul(z)).Add(one).Mul(g)

	for _, alg := range fieldAlgorithms {
		res, err := gcdWith[fr.Element](alg)(testConfig(11), p, q)
		a.NoError(err)
		a.True(res.Equal(g), "%s: got %s", alg, res)
	}
}

func TestGCDOverSmallField(t *testing.T) {
	a := assert.New(t)

	f2 := field.MustPrimeField(2)
	x, y, _ := xyz[uint64](f2)
	one := mpoly.Constant[uint64](f2, 3, 1)

	g := x.Add(y).Add(one)
	p := x.Mul(y).Add(one).Mul(g)
	q := x.Add(y.Pow(2)).Mul(g)

	t.Run("ModularGCDInGF", func(t *testing.T) {
		res, err := ModularGCDInGF(testConfig(5), p, q)
		a.NoError(err)
		a.True(res.Equal(g), "got %s", res)
	})

	t.Run("PolynomialGCD", func(t *testing.T) {
		res, err := PolynomialGCD(testConfig(5), p, q)
		a.NoError(err)
		a.True(res.Equal(g))
	})

	for _, alg := range fieldAlgorithms {
		t.Run(alg.String(), func(t *testing.T) {
			res, err := gcdWith[uint64](alg)(testConfig(5), p, q)
			a.NoError(err)
			a.True(res.Equal(g), "got %s", res)
		})
	}

	t.Run("paperExample", func(t *testing.T) {
		ag, bg, g := paperExample[uint64](f2)

		res, err := ModularGCDInGF(testConfig(6), ag, bg)
		a.NoError(err)
		a.True(res.Equal(g), "got %s", res)

		res, err = PolynomialGCD(testConfig(6), ag, bg)
		a.NoError(err)
		a.True(res.Equal(g), "got %s", res)

		for _, alg := range fieldAlgorithms {
			res, err := gcdWith[uint64](alg)(testConfig(6), ag, bg)
			a.NoError(err)
			a.True(res.Equal(g), "%s: got %s", alg, res)
		}
	})

	t.Run("variableMismatch", func(t *testing.T) {
		_, err := ModularGCDInGF(testConfig(5), mpoly.Zero[uint64](f2, 2), mpoly.Zero[uint64](f2, 3))
		a.ErrorIs(err, ErrVariableMismatch)
	})
}

func integerExample() (p, q, g *mpoly.Poly[*big.Int]) {
	x, y, z := xyz[*big.Int](field.Z)
	one := mpoly.Constant[*big.Int](field.Z, 3, big.NewInt(1))

	g = x.Add(y.MulScalar(big.NewInt(2))).Sub(z.MulScalar(big.NewInt(3)))
	p1 := x.Pow(2).Sub(y.Mul(z)).Add(one)
	q1 := y.Pow(2).Add(x.Mul(z)).Sub(one.MulScalar(big.NewInt(2)))

	return g.Mul(p1).MulScalar(big.NewInt(6)), g.Mul(q1).MulScalar(big.NewInt(-4)), g
}

func TestGCDOverIntegers(t *testing.T) {
	a := assert.New(t)

	p, q, g := integerExample()
	want := g.MulScalar(big.NewInt(2))

	algorithms := map[string]gcdFunc[*big.Int]{
		"ModularGCD":    ModularGCD,
		"ZippelGCDInZ":  ZippelGCDInZ,
		"PolynomialGCD": PolynomialGCD[*big.Int],
	}

	for name, gcd := range algorithms {
		t.Run(name, func(t *testing.T) {
			res, err := gcd(testConfig(2), p, q)
			a.NoError(err)
			a.True(res.Equal(want), "got %s", res)
		})
	}

	t.Run("largeCoefficients", func(t *testing.T) {
		// coefficients beyond two 31-bit primes force the big.Int CRT phase.
		c, _ := new(big.Int).SetString("123456789012345678901234567", 10)
		x, y, _ := xyz[*big.Int](field.Z)

		h := x.MulScalar(c).Add(y)
		res, err := ModularGCD(testConfig(2), p.Mul(h), q.Mul(h))
		a.NoError(err)
		a.True(res.Equal(want.Mul(h)), "got %s", res)

		res, err = ZippelGCDInZ(testConfig(2), p.Mul(h), q.Mul(h))
		a.NoError(err)
		a.True(res.Equal(want.Mul(h)), "got %s", res)
	})

	t.Run("contentOnly", func(t *testing.T) {
		x, y, _ := xyz[*big.Int](field.Z)

		res, err := ModularGCD(testConfig(2), x.MulScalar(big.NewInt(6)), y.MulScalar(big.NewInt(-9)))
		a.NoError(err)
		a.True(res.Equal(mpoly.Constant[*big.Int](field.Z, 3, big.NewInt(3))))
	})

	t.Run("signInLexOrder", func(t *testing.T) {
		x, y, z := xyz[*big.Int](field.Z)
		one := mpoly.Constant[*big.Int](field.Z, 3, big.NewInt(1))

		// 3yz - 21x + 15 leads with 3yz in GrevLex and with -21x in Lex.
		h := y.Mul(z).Sub(x.MulScalar(big.NewInt(7))).Add(one.MulScalar(big.NewInt(5)))
		p := h.Mul(x.Add(one)).MulScalar(big.NewInt(6))
		q := h.Mul(y.Add(one.MulScalar(big.NewInt(2)))).MulScalar(big.NewInt(9))
		want := h.MulScalar(big.NewInt(-3))

		for _, o := range []mpoly.Order{mpoly.Lex, mpoly.GrevLex} {
			for _, gcd := range []gcdFunc[*big.Int]{ModularGCD, ZippelGCDInZ, PolynomialGCD[*big.Int]} {
				res, err := gcd(testConfig(7), p.WithOrder(o), q.WithOrder(o))
				a.NoError(err)
				a.Equal(o, res.Order())
				a.True(res.Equal(want), "got %s", res)
			}
		}

		res, err := ModularGCD(testConfig(7), p.WithOrder(mpoly.GrevLex), q.WithOrder(mpoly.GrevLex))
		a.NoError(err)
		a.Equal(-1, res.Lc().Sign())
		a.Equal(1, res.WithOrder(mpoly.Lex).Lc().Sign())
	})
}

func TestGCDOverRationals(t *testing.T) {
	a := assert.New(t)

	p, q, g := integerExample()
	toQ := func(p *mpoly.Poly[*big.Int]) *mpoly.Poly[*big.Rat] {
		return mpoly.MapCoefficients[*big.Int, *big.Rat](p, field.Q, func(c *big.Int) *big.Rat {
			return new(big.Rat).SetInt(c)
		})
	}

	res, err := PolynomialGCD(testConfig(4), toQ(p).MulScalar(big.NewRat(1, 2)), toQ(q).MulScalar(big.NewRat(3, 7)))
	a.NoError(err)
	a.True(res.Equal(toQ(g)), "got %s", res)
}

func TestGCDErrors(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)
	f2 := field.MustPrimeField(65537)
	cfg := testConfig(1)

	x := mpoly.Variable[uint64](f, 3, 0)

	_, err := ZippelGCD(cfg, x, mpoly.Variable[uint64](f2, 3, 0))
	a.ErrorIs(err, ErrRingMismatch)

	_, err = BrownGCD(cfg, x, mpoly.Variable[uint64](f, 2, 0))
	a.ErrorIs(err, ErrVariableMismatch)

	_, err = PolynomialGCDArray[uint64](cfg, []*mpoly.Poly[uint64]{x, mpoly.Variable[uint64](f, 2, 0)})
	a.ErrorIs(err, ErrVariableMismatch)

	_, err = PolynomialGCDArray[uint64](cfg, nil)
	a.Error(err)

	zx := mpoly.Variable[*big.Int](field.Z, 3, 0)
	for _, alg := range fieldAlgorithms {
		_, err = gcdWith[*big.Int](alg)(cfg, zx, zx)
		a.ErrorIs(err, ErrNotAField)
	}
}

func TestGCDArray(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(mersenne19)
	ag, bg, g := paperExample[uint64](f)
	x, y, z := xyz[uint64](f)
	one := mpoly.Constant[uint64](f, 3, 1)

	polys := []*mpoly.Poly[uint64]{
		ag,
		bg,
		g.Mul(y.Add(z.Pow(2)).Add(one)),
		g.Mul(z),
		g.Mul(x.Pow(3).Sub(y)),
	}

	leftFold := func(cfg *Config, polys []*mpoly.Poly[uint64]) *mpoly.Poly[uint64] {
		acc := polys[0]
		for _, p := range polys[1:] {
			var err error
			acc, err = ZippelGCD(cfg, acc, p)
			a.NoError(err)
		}

		return acc
	}

	t.Run("matchesLeftFold", func(t *testing.T) {
		res, err := PolynomialGCDArray(testConfig(9), polys)
		a.NoError(err)
		a.True(res.Equal(g))
		a.True(res.Equal(leftFold(testConfig(9), polys)))
	})

	t.Run("splitsBySize", func(t *testing.T) {
		dense := ag.Mul(bg).Mul(x.Add(one).Pow(3))
		res, err := gcdArrayWith(testConfig(9), []*mpoly.Poly[uint64]{dense, g.Mul(z), g.Mul(y), g.Mul(x), dense.Add(g)}, ZippelGCD[uint64])
		a.NoError(err)
		a.True(res.Equal(g))
	})

	t.Run("zeros", func(t *testing.T) {
		zero := mpoly.Zero[uint64](f, 3)

		res, err := PolynomialGCDArray(testConfig(9), []*mpoly.Poly[uint64]{zero, ag.MulScalar(4), zero})
		a.NoError(err)
		a.True(res.Equal(ag))

		res, err = PolynomialGCDArray(testConfig(9), []*mpoly.Poly[uint64]{zero, zero})
		a.NoError(err)
		a.True(res.IsZero())
	})

	t.Run("integers", func(t *testing.T) {
		p, q, g := integerExample()
		res, err := PolynomialGCDArray(testConfig(9), []*mpoly.Poly[*big.Int]{p, q, g.MulScalar(big.NewInt(10))})
		a.NoError(err)
		a.True(res.Equal(g.MulScalar(big.NewInt(2))), "got %s", res)
	})
}

func TestParseAlgorithm(t *testing.T) {
	a := assert.New(t)

	for _, alg := range fieldAlgorithms {
		got, err := ParseAlgorithm(alg.String())
		a.NoError(err)
		a.Equal(alg, got)
	}

	got, err := ParseAlgorithm("EEZ")
	a.NoError(err)
	a.Equal(EEZ, got)

	_, err = ParseAlgorithm("gauss")
	a.Error(err)
}

func FuzzZippelGCD(f *testing.F) {
	for _, seed := range []uint64{0, 1, 42, 1 << 40} {
		f.Add(seed)
	}

	fld := field.MustPrimeField(mersenne19)

	f.Fuzz(func(t *testing.T, seed uint64) {
		rnd := field.NewRandomFromUint64(seed)

		g := mpoly.Random[uint64](fld, 3, 2, 3, rnd)
		p := mpoly.Random[uint64](fld, 3, 2, 3, rnd).Mul(g)
		q := mpoly.Random[uint64](fld, 3, 2, 3, rnd).Mul(g)

		res, err := ZippelGCD(testConfig(seed), p, q)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		if !res.Divides(p) || !res.Divides(q) || !g.Divides(res) {
			t.Fatalf("seed %d: %s is not the gcd of %s and %s", seed, res, p, q)
		}
	})
}

func BenchmarkGCD(b *testing.B) {
	f := field.MustPrimeField(mersenne19)
	rnd := field.NewRandomFromUint64(1)

	g := mpoly.Random[uint64](f, 4, 4, 10, rnd)
	p := mpoly.Random[uint64](f, 4, 4, 10, rnd).Mul(g)
	q := mpoly.Random[uint64](f, 4, 4, 10, rnd).Mul(g)

	for _, alg := range fieldAlgorithms {
		gcd := gcdWith[uint64](alg)

		b.Run(alg.String(), func(b *testing.B) {
			cfg := testConfig(1)
			for i := 0; i < b.N; i++ {
				if _, err := gcd(cfg, p, q); err != nil {
					b.Fatal(err)
				}
			}
		})
	}

	zp := mpoly.MapCoefficients[uint64, *big.Int](p, field.Z, func(c uint64) *big.Int { return big.NewInt(int64(c)) })
	zq := mpoly.MapCoefficients[uint64, *big.Int](q, field.Z, func(c uint64) *big.Int { return big.NewInt(int64(c)) })

	b.Run("ModularGCD", func(b *testing.B) {
		cfg := testConfig(1)
		for i := 0; i < b.N; i++ {
			if _, err := ModularGCD(cfg, zp, zq); err != nil {
				b.Fatal(err)
			}
		}
	})
}
