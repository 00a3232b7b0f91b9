package pipeline

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/lumen-labs/frameweave/internal/ports"
)

// Stats aggregates counters across all requests served by one Pipeline.
// All fields are updated atomically; a Pipeline shared by concurrent requests
// needs no further synchronization.
type Stats struct {
	requests    atomic.Int64
	failures    atomic.Int64
	dispatches  atomic.Int64
	pixels      atomic.Int64
	lastElapsed atomic.Duration
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	// Requests is the number of interpolation requests accepted.
	Requests int64

	// Failures is the number of requests that returned an error.
	Failures int64

	// KernelDispatches counts every data-parallel pass issued.
	KernelDispatches int64

	// PixelsProcessed sums width*height over all dispatched passes.
	PixelsProcessed int64

	// LastElapsed is the wall time of the most recent completed request.
	LastElapsed time.Duration
}

// Snapshot returns a consistent-enough copy of the counters for reporting.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Requests:         s.requests.Load(),
		Failures:         s.failures.Load(),
		KernelDispatches: s.dispatches.Load(),
		PixelsProcessed:  s.pixels.Load(),
		LastElapsed:      s.lastElapsed.Load(),
	}
}

// countingDispatcher wraps a Dispatcher and records every pass in Stats.
type countingDispatcher struct {
	inner ports.Dispatcher
	stats *Stats
}

func (c *countingDispatcher) Dispatch(ctx context.Context, width, height int, k ports.Kernel) error {
	c.stats.dispatches.Inc()
	c.stats.pixels.Add(int64(width) * int64(height))
	return c.inner.Dispatch(ctx, width, height, k)
}
