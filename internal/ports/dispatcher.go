package ports

import "context"

// Kernel is one data-parallel pass over a tile. It is invoked with half-open
// pixel bounds [x0, x1) x [y0, y1) and must only write pixels inside them.
// Per-pixel work within a pass is independent; a Kernel must not assume any
// ordering relative to other tiles of the same pass.
type Kernel func(x0, y0, x1, y1 int)

// Dispatcher executes a Kernel over a width x height grid. Dispatch returns
// only after every pixel of the pass has been processed, so a return acts as a
// full barrier: a subsequent Dispatch may safely read everything the previous
// one wrote.
type Dispatcher interface {
	Dispatch(ctx context.Context, width, height int, k Kernel) error
}
