package field

import (
	"encoding/binary"
	"math/bits"

	"github.com/tuneinsight/lattigo/v6/utils/sampling"
	"golang.org/x/crypto/sha3"
)

// Random is the randomness source threaded through every algorithm of this module.
// It is deterministic for a given seed, so retries and evaluation points can be
// reproduced. A Random is not safe for concurrent use.
type Random struct {
	prng *sampling.KeyedPRNG
	buf  [8]byte
}

// NewRandom keys a PRNG with SHA3-256(seed).
func NewRandom(seed []byte) (*Random, error) {
	key := sha3.Sum256(seed)

	prng, err := sampling.NewKeyedPRNG(key[:])
	if err != nil {
		return nil, err
	}

	return &Random{prng: prng}, nil
}

// NewRandomFromUint64 is a convenience wrapper around NewRandom, mostly for tests.
func NewRandomFromUint64(seed uint64) *Random {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)

	rnd, err := NewRandom(b[:])
	if err != nil {
		panic(err)
	}

	return rnd
}

// Read fills p with pseudo-random bytes.
func (r *Random) Read(p []byte) (int, error) {
	return r.prng.Read(p)
}

func (r *Random) Uint64() uint64 {
	if _, err := r.prng.Read(r.buf[:]); err != nil {
		panic(err)
	}

	return binary.LittleEndian.Uint64(r.buf[:])
}

// Uint64n returns a uniform value in [0, n). n must be positive.
func (r *Random) Uint64n(n uint64) uint64 {
	if n == 0 {
		panic("Uint64n: zero bound")
	}

	if n&(n-1) == 0 {
		return r.Uint64() & (n - 1)
	}

	// Lemire's rejection method.
	hi, lo := bits.Mul64(r.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(r.Uint64(), n)
		}
	}

	return hi
}

// Intn returns a uniform value in [0, n). n must be positive.
func (r *Random) Intn(n int) int {
	return int(r.Uint64n(uint64(n)))
}

// Int64Range returns a uniform value in [lo, hi].
func (r *Random) Int64Range(lo, hi int64) int64 {
	return lo + int64(r.Uint64n(uint64(hi-lo)+1))
}
