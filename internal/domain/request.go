package domain

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// InterpolationRequest is one unit of work: synthesize a frame between FrameA
// and FrameB at temporal position T. A request is created per output frame and
// holds no state once the output is produced.
type InterpolationRequest struct {
	// FrameA and FrameB are the bracketing frames, caller-owned and borrowed
	// for the duration of the request. Both must have identical dimensions.
	FrameA *Frame
	FrameB *Frame

	// T is the temporal position of the output frame, in [0, 1].
	// T=0 reproduces FrameA, T=1 reproduces FrameB.
	T float32

	// Params configures the solver for this request.
	Params SolverParameters

	// Seed, if non-nil, is a finest-level flow field from a previous request
	// over the same content, used to warm-start the coarsest level. It must
	// match the frame dimensions. Purely a caller-controlled optimization.
	Seed *FlowField
}

// Validate rejects the request before any kernel dispatch. Every violation is
// reported, wrapped in ErrInvalidInput.
func (r *InterpolationRequest) Validate() error {
	var errs *multierror.Error

	switch {
	case r.FrameA.ZeroArea():
		errs = multierror.Append(errs, fmt.Errorf("frame A is nil or zero-area"))
	case r.FrameB.ZeroArea():
		errs = multierror.Append(errs, fmt.Errorf("frame B is nil or zero-area"))
	case !r.FrameA.SameDims(r.FrameB):
		errs = multierror.Append(errs, fmt.Errorf("frame dimensions differ: %dx%d vs %dx%d",
			r.FrameA.Width, r.FrameA.Height, r.FrameB.Width, r.FrameB.Height))
	}

	// Written so that NaN fails: every comparison against NaN is false.
	if !(r.T >= 0 && r.T <= 1) {
		errs = multierror.Append(errs, fmt.Errorf("t must be in [0,1], got %g", r.T))
	}

	if err := r.Params.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}

	if r.Seed != nil {
		if !r.FrameA.ZeroArea() && !r.Seed.MatchesFrame(r.FrameA) {
			errs = multierror.Append(errs, fmt.Errorf("seed flow field is %dx%d, frames are %dx%d",
				r.Seed.Width, r.Seed.Height, r.FrameA.Width, r.FrameA.Height))
		}
		if !r.Seed.Finite() {
			errs = multierror.Append(errs, fmt.Errorf("seed flow field contains non-finite values"))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
