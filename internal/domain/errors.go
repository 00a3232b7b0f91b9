package domain

import "errors"

// Domain errors are the only error conditions the pipeline surfaces to callers.
// They can be checked with errors.Is.
var (
	// ErrInvalidInput is returned when a request is rejected before any kernel
	// dispatch: mismatched frame dimensions, mismatched pyramid depths, a
	// zero-area frame, t outside [0, 1], or invalid solver parameters.
	ErrInvalidInput = errors.New("frameweave: invalid input")

	// ErrResourceExhaustion is returned when a request would exceed the
	// configured buffer budget. The in-flight request is aborted and all of its
	// intermediate buffers released; other requests are unaffected.
	ErrResourceExhaustion = errors.New("frameweave: resource exhaustion")
)
