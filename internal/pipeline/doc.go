// Package pipeline orchestrates the interpolation kernels into one request:
// building the two image pyramids, driving the coarse-to-fine Horn-Schunck
// solve, and synthesizing the output frame.
//
// Inter-stage ordering is modeled as an explicit dependency graph rather than
// implicit call chaining: each stage runs only after every stage it depends on
// has fully completed, and each kernel dispatch inside a stage is itself a
// full barrier. All intermediate buffers are owned by the request that
// allocated them, so independent requests can run concurrently with no shared
// mutable state.
package pipeline
