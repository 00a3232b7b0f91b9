// Package cpu provides the CPU-backed implementation of the dispatcher port.
// Kernels are fanned out over square tiles on a bounded worker group; Dispatch
// returns once every tile has completed, giving the caller a full barrier
// between dependent passes.
package cpu

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lumen-labs/frameweave/internal/ports"
)

// DefaultTileSize is the tile edge length used when none is configured.
const DefaultTileSize = 64

// Dispatcher runs kernels over 2D tiles on a pool of goroutines.
type Dispatcher struct {
	tileSize int
	workers  int
}

// NewDispatcher creates a dispatcher. tileSize <= 0 selects DefaultTileSize;
// workers <= 0 selects GOMAXPROCS.
func NewDispatcher(tileSize, workers int) *Dispatcher {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Dispatcher{tileSize: tileSize, workers: workers}
}

// Dispatch implements ports.Dispatcher.
func (d *Dispatcher) Dispatch(ctx context.Context, width, height int, k ports.Kernel) error {
	if width < 1 || height < 1 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for y0 := 0; y0 < height; y0 += d.tileSize {
		y0, y1 := y0, min(y0+d.tileSize, height)
		for x0 := 0; x0 < width; x0 += d.tileSize {
			x0, x1 := x0, min(x0+d.tileSize, width)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				k(x0, y0, x1, y1)
				return nil
			})
		}
	}
	return g.Wait()
}

// Serial is a single-goroutine Dispatcher. It runs the kernel over the whole
// grid in one call and exists for tests and deterministic profiling.
type Serial struct{}

// Dispatch implements ports.Dispatcher.
func (Serial) Dispatch(ctx context.Context, width, height int, k ports.Kernel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if width < 1 || height < 1 {
		return nil
	}
	k(0, 0, width, height)
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
