package mgcd

import (
	"errors"

	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

var (
	ErrRingMismatch     = mpoly.ErrRingMismatch
	ErrVariableMismatch = mpoly.ErrVariableMismatch

	ErrNotAField       = errors.New("algorithm requires a coefficient field")
	ErrUnsupportedRing = errors.New("unsupported coefficient ring")

	// ErrEvaluationsExhausted is returned when every element of a finite ring was
	// used as an evaluation point without reaching a result.
	ErrEvaluationsExhausted = errors.New("evaluation points exhausted")
	ErrRetriesExceeded      = errors.New("retry limit exceeded")

	// errUnlucky marks an evaluation point, prime or skeleton that lost information.
	// It is consumed by the caller that chose the point and never returned to users.
	errUnlucky = errors.New("unlucky evaluation")
	// errSkeleton is returned by sparse interpolation when the skeleton is wrong.
	errSkeleton = errors.New("skeleton does not match the images")
	// errDegenerateSkeleton: the skeleton cannot be solved sparsely, use a dense image.
	errDegenerateSkeleton = errors.New("degenerate skeleton")
)
