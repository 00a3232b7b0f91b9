// Package ports defines the interfaces that connect the pipeline to compute
// infrastructure.
//
// The pipeline core depends only on these interfaces. Adapters under
// internal/adapters provide concrete implementations; the default is a
// CPU-backed tile dispatcher. A host application embedding the library can
// substitute its own executor without touching the pipeline.
//
// # Ports
//
//   - [Dispatcher]: runs a data-parallel kernel over a 2D grid
package ports
