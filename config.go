package mgcd

import (
	"github.com/jonathanmweiss/go-mgcd/field"
)

// Limits bounds every retry loop of the package. The values only trade running
// time against the chance of giving up on a pathological input; results never
// depend on them.
type Limits struct {
	// MaxFailedSubstitutions is the number of random points tried by a sparse
	// interpolation before the current evaluation is declared unlucky.
	MaxFailedSubstitutions int
	// MaxSparseFailures caps the skeleton mismatches of one Zippel interpolation.
	MaxSparseFailures int
	// MaxUnderDetermined caps the extra images added to an under-determined LinZip system.
	MaxUnderDetermined int
	// MaxUnluckyResets caps the restarts of one dense interpolation.
	MaxUnluckyResets int
	// MaxEZAttempts is the number of evaluation schemes tried by EZ / EEZ.
	MaxEZAttempts int
	// MaxPrimes caps the primes used by the integer algorithms.
	MaxPrimes int

	// SumTrickFails is the number of random scalars tried before a polynomial is
	// left out of the running sum of the array reducer.
	SumTrickFails int
	// ArraySplitRatio is the densest/sparsest term count ratio above which the
	// array reducer first reduces the sparser half.
	ArraySplitRatio int

	// EvaluationFactor * (largest degree bound) is the number of ring elements an
	// interpolation needs. Smaller rings are replaced by an extension field.
	EvaluationFactor int
}

// DefaultLimits returns the retry and size limits used by NewConfig.
func DefaultLimits() Limits {
	return Limits{
		MaxFailedSubstitutions: 32,
		MaxSparseFailures:      1000,
		MaxUnderDetermined:     24,
		MaxUnluckyResets:       8,
		MaxEZAttempts:          64,
		MaxPrimes:              1024,
		SumTrickFails:          2,
		ArraySplitRatio:        4,
		EvaluationFactor:       9,
	}
}

// Config is passed to every GCD entry point. All randomness used by the algorithms
// is drawn from Random, so a run is reproducible from its seed.
type Config struct {
	Random *field.Random
	Limits Limits
}

// NewConfig returns a Config drawing from rnd with the default limits.
func NewConfig(rnd *field.Random) *Config {
	return &Config{Random: rnd, Limits: DefaultLimits()}
}
