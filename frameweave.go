// Package frameweave provides real-time motion-compensated frame
// interpolation: dense optical flow between two video frames via a
// coarse-to-fine Horn-Schunck solver, then synthesis of an intermediate frame
// at an arbitrary temporal position.
//
// Example usage:
//
//	cfg := frameweave.DefaultConfig()
//	interp, err := frameweave.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := interp.Interpolate(context.Background(), frameA, frameB, 0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = res.Output
//
// This file re-exports the embeddable API from pkg/frameweave; import that
// package directly for the full surface.
package frameweave

import (
	"context"

	api "github.com/lumen-labs/frameweave/pkg/frameweave"
)

// Frame is a 2D grid of float32 pixel samples.
type Frame = api.Frame

// Config holds the configuration for an Interpolator.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = api.Config

// Interpolator runs interpolation requests.
type Interpolator = api.Interpolator

// Result is the outcome of one request.
type Result = api.Result

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return api.DefaultConfig()
}

// New creates an Interpolator with the given configuration.
func New(cfg Config, opts ...api.Option) (*Interpolator, error) {
	return api.New(cfg, opts...)
}

// Interpolate is a one-shot convenience: it builds a default Interpolator and
// synthesizes the frame between a and b at temporal position t.
func Interpolate(ctx context.Context, a, b *Frame, t float64) (*Frame, error) {
	interp, err := api.New(api.DefaultConfig())
	if err != nil {
		return nil, err
	}
	res, err := interp.Interpolate(ctx, a, b, t)
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}
