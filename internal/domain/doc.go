// Package domain contains the core entities and value objects for frameweave.
//
// This package is the innermost layer: it has no dependencies on dispatch,
// logging, or any host-application concern, and holds only the data types the
// interpolation pipeline operates on plus their invariants.
//
// # Entities
//
//   - [Frame]: a 2D grid of float32 pixel samples with explicit dimensions
//   - [FlowField]: a dense grid of per-pixel 2D motion vectors
//   - [Pyramid]: a coarse-to-fine sequence of progressively halved Frames
//   - [SolverParameters]: per-request solver configuration
//   - [InterpolationRequest]: one unit of work handed to the pipeline
//
// # Design principles
//
// Domain entities are:
//   - Plain data with explicit dimensions, no hidden state
//   - Free of infrastructure dependencies
//   - Validated up front so kernels never see degenerate inputs
package domain
