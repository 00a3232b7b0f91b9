// Package kernels holds the per-pixel compute passes of the interpolation
// pipeline: grayscale conversion, separable binomial blur, 2x2 downsample,
// flow resampling, the Horn-Schunck relaxation step, flow smoothing, and the
// final warp/blend synthesis.
//
// Each function returns a ports.Kernel closed over its input and output
// buffers. Kernels read only buffers written by fully-completed earlier passes
// and write only pixels inside their tile, so any Dispatcher may run them over
// tiles in any order. All out-of-range reads clamp to the nearest valid edge
// pixel; there is no wraparound and no zero padding.
package kernels
