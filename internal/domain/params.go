package domain

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

// Default solver parameter values.
const (
	DefaultPyramidLevels = 3
	DefaultIterations    = 20
	DefaultLambda        = 0.05
	DefaultEpsilon       = 1e-6
)

// SolverParameters configures one interpolation request. A copy is taken when
// the request starts, so mutating a SolverParameters value never affects an
// in-flight request.
type SolverParameters struct {
	// PyramidLevels is the requested pyramid depth. The effective depth may be
	// smaller for tiny frames; that is not an error.
	PyramidLevels int

	// Iterations is the number of relaxation iterations run at each level.
	Iterations int

	// Lambda is the smoothness weight in the relaxation denominator. Larger
	// values favor the neighbor average over the data term.
	Lambda float32

	// Epsilon guards the relaxation denominator so flat (zero-gradient)
	// regions never divide by zero.
	Epsilon float32

	// UpsampleRescale multiplies flow vectors by the level-to-level resolution
	// ratio when promoting a coarse field to a finer level. Disabling it
	// reproduces the unscaled reference behavior, which silently halves the
	// effective motion at every promotion.
	UpsampleRescale bool

	// SmoothFlow applies a 3x3 box filter to the finest-level field before
	// synthesis.
	SmoothFlow bool
}

// DefaultSolverParameters returns the parameter set used when the caller does
// not supply one.
func DefaultSolverParameters() SolverParameters {
	return SolverParameters{
		PyramidLevels:   DefaultPyramidLevels,
		Iterations:      DefaultIterations,
		Lambda:          DefaultLambda,
		Epsilon:         DefaultEpsilon,
		UpsampleRescale: true,
		SmoothFlow:      true,
	}
}

// Validate checks the parameter set. All violations are reported together.
func (p SolverParameters) Validate() error {
	var errs *multierror.Error
	if p.PyramidLevels < 1 {
		errs = multierror.Append(errs, fmt.Errorf("pyramid levels must be >= 1, got %d", p.PyramidLevels))
	}
	if p.Iterations < 1 {
		errs = multierror.Append(errs, fmt.Errorf("iterations must be >= 1, got %d", p.Iterations))
	}
	// The negated comparisons also reject NaN.
	if !(p.Lambda >= 0) || math.IsInf(float64(p.Lambda), 0) {
		errs = multierror.Append(errs, fmt.Errorf("lambda must be finite and >= 0, got %g", p.Lambda))
	}
	if !(p.Epsilon > 0) || math.IsInf(float64(p.Epsilon), 0) {
		errs = multierror.Append(errs, fmt.Errorf("epsilon must be finite and > 0, got %g", p.Epsilon))
	}
	return errs.ErrorOrNil()
}
