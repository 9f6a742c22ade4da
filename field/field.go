package field

import (
	"errors"
	"math/big"
	"math/bits"
	"strconv"
	"sync"

	"github.com/tuneinsight/lattigo/v6/ring"
)

// PrimeField is Z/pZ for a prime p < 2^63, with elements kept reduced in [0, p).
// It is the machine-word coefficient ring of this module.
type PrimeField struct {
	prime uint64

	genOnce   sync.Once
	generator uint64
	factors   []uint64
	genErr    error

	mu           sync.RWMutex
	twiddleCache map[int]*twiddleSet
}

var (
	errPrimeTooLarge = errors.New("supporting up to 63-bit prime")
	errNotPrime      = errors.New("this package only support prime fields. please use a prime order")
)

const maxBitUsage = 63

var _ Ring[uint64] = (*PrimeField)(nil)

// NewPrimeField checks primality with a Miller-Rabin + Baillie-PSW test, which is
// exact for 64-bit numbers.
func NewPrimeField(prime uint64) (*PrimeField, error) {
	if prime >= (1 << maxBitUsage) {
		return nil, errPrimeTooLarge
	}

	b := (&big.Int{}).SetUint64(prime)
	if !b.ProbablyPrime(1) {
		return nil, errNotPrime
	}

	return &PrimeField{
		prime:        prime,
		twiddleCache: make(map[int]*twiddleSet),
	}, nil
}

// MustPrimeField is NewPrimeField for constants known to be prime.
func MustPrimeField(prime uint64) *PrimeField {
	f, err := NewPrimeField(prime)
	if err != nil {
		panic(err)
	}

	return f
}

var (
	errNotPowerOfTwo = errors.New("n must be a power of 2")
	errNotDivisible  = errors.New("n must divide p-1")
	errNSTooSmall    = errors.New("n must be >= 2")
)

// Modulus returns p.
func (f *PrimeField) Modulus() uint64 {
	return f.prime
}

func (f *PrimeField) GetRootOfUnity(n uint64) (uint64, error) {
	if n == 0 || n == 1 {
		return 0, errNSTooSmall
	}

	if !IsPowerOfTwo(n) {
		return 0, errNotPowerOfTwo
	}

	if (f.prime-1)%n != 0 {
		return 0, errNotDivisible
	}

	g, err := f.Generator()
	if err != nil {
		return 0, err
	}

	// The nth root of unity is the generator raised to the power of (prime-1)/n
	// since g^(x) == 1 (mod p) iff x=p-1, then w=g^((p-1)/n) is not 1, and the following n powers of w != 1 too.
	// proof is by contradiction to g being the generator of the field.
	return f.Pow(g, (f.prime-1)/n), nil
}

// Generator returns a primitive root modulo p. It is computed on first use since
// factoring p-1 is only needed by the NTT.
func (f *PrimeField) Generator() (uint64, error) {
	f.genOnce.Do(func() {
		f.generator, f.factors, f.genErr = ring.PrimitiveRoot(f.prime, nil)
	})

	return f.generator, f.genErr
}

func IsPowerOfTwo(n uint64) bool {
	// https://graphics.stanford.edu/~seander/bithacks.html#DetermineIfPowerOf2
	return n != 0 && (n&(n-1)) == 0
}

func (f *PrimeField) Reduce(val uint64) uint64 {
	return val % f.prime
}

func (f *PrimeField) Zero() uint64 { return 0 }

func (f *PrimeField) One() uint64 { return 1 % f.prime }

func (f *PrimeField) FromInt64(v int64) uint64 {
	if v >= 0 {
		return uint64(v) % f.prime
	}

	return f.Neg(uint64(-(v + 1))%f.prime + 1%f.prime)
}

func (f *PrimeField) Add(a, b uint64) uint64 {
	tmp := a + b // can't overflow since adding two integers smaller than 2^63.
	if tmp >= f.prime {
		tmp -= f.prime
	}

	return tmp
}

// Mul returns e * b (mod field prime).
func (f *PrimeField) Mul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}

	return fieldMul(a, b, f.prime)
}

func fieldMul(a, b uint64, mod uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, mod)

	return rem
}

// https://en.wikipedia.org/wiki/Exponentiation_by_squaring
func (f *PrimeField) Pow(base, exp uint64) uint64 {
	mod := f.prime

	x := uint64(1)
	for exp > 0 {
		if exp%2 == 1 { // If exponent is odd, multiply base with x
			x = fieldMul(x, base, mod)
		}

		base = fieldMul(base, base, mod) // Square the base
		exp /= 2                         // Halve the exponent
	}

	return x % mod
}

func (f *PrimeField) Inverse(e uint64) uint64 {
	// Fermat's little theorem: a^(p) = a (mod p)
	// thus:
	// a^(p-2)*a^p = a^(2p-2) = a^(p-1)^2 = 1*1=1 (mod p)
	// a^(p-2) is the inverse of a
	if e == 0 {
		panic("zero has no inverse")
	}

	return f.Pow(e, f.prime-2)
}

func (f *PrimeField) Neg(e uint64) uint64 {
	if e == 0 {
		return 0
	}

	return (f.prime - e)
}

func (f *PrimeField) Sub(a, b uint64) uint64 {
	if a < b {
		return f.prime - (b - a)
	}

	return a - b
}

func (f *PrimeField) Equal(a, b uint64) bool {
	return a == b
}

func (f *PrimeField) DivExact(a, b uint64) (uint64, bool) {
	if b == 0 {
		return 0, false
	}

	return f.Mul(a, f.Inverse(b)), true
}

func (f *PrimeField) Gcd(a, b uint64) uint64 {
	if a == 0 && b == 0 {
		return 0
	}

	return 1
}

func (f *PrimeField) Reciprocal(a uint64) uint64 { return f.Inverse(a) }

func (f *PrimeField) IsZero(a uint64) bool { return a == 0 }

func (f *PrimeField) IsOne(a uint64) bool { return a == 1 }

func (f *PrimeField) IsUnit(a uint64) bool { return a != 0 }

func (f *PrimeField) IsField() bool { return true }

func (f *PrimeField) Characteristic() *big.Int {
	return new(big.Int).SetUint64(f.prime)
}

func (f *PrimeField) Cardinality() *big.Int {
	return new(big.Int).SetUint64(f.prime)
}

func (f *PrimeField) RandomElement(rnd *Random) uint64 {
	return rnd.Uint64n(f.prime)
}

func (f *PrimeField) Format(a uint64) string {
	return strconv.FormatUint(a, 10)
}

// Symmetric maps a to the representative in (-p/2, p/2].
func (f *PrimeField) Symmetric(a uint64) int64 {
	if a > f.prime/2 {
		return -int64(f.prime - a)
	}

	return int64(a)
}

// FromBig reduces an arbitrary integer into the field.
func (f *PrimeField) FromBig(v *big.Int) uint64 {
	m := new(big.Int).SetUint64(f.prime)

	return new(big.Int).Mod(v, m).Uint64()
}
