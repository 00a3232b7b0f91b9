package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumen-labs/frameweave/internal/domain"
	"github.com/lumen-labs/frameweave/internal/kernels"
	"github.com/lumen-labs/frameweave/internal/ports"
	"github.com/lumen-labs/frameweave/pkg/log"
)

// Pipeline runs interpolation requests. It is safe for concurrent use: every
// request allocates its own intermediate buffers and only the stats counters
// are shared.
type Pipeline struct {
	disp      ports.Dispatcher
	logger    log.Logger
	stats     *Stats
	maxPixels int64
}

// Result is the outcome of one interpolation request.
type Result struct {
	// Output is the synthesized frame, same dimensions and channel count as
	// the inputs.
	Output *domain.Frame

	// Flow is the finest-level flow field. Callers may hand it back as the
	// Seed of a subsequent request over the same content.
	Flow *domain.FlowField

	// Depth is the pyramid depth actually built, which may be smaller than
	// requested for small frames.
	Depth int

	// RequestID correlates log lines belonging to this request.
	RequestID string

	// Elapsed is the wall time spent inside the pipeline.
	Elapsed time.Duration
}

// New creates a Pipeline on the given dispatcher. maxPixels bounds the input
// frame area per request; zero means unbounded. A nil logger is replaced with
// a no-op logger.
func New(disp ports.Dispatcher, logger log.Logger, maxPixels int64) *Pipeline {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	stats := &Stats{}
	return &Pipeline{
		disp:      &countingDispatcher{inner: disp, stats: stats},
		logger:    logger,
		stats:     stats,
		maxPixels: maxPixels,
	}
}

// Stats returns the pipeline's shared counters.
func (p *Pipeline) Stats() *Stats {
	return p.stats
}

// Interpolate validates the request and, if it is acceptable, runs the full
// stage graph: the two pyramids build independently, the coarse-to-fine solve
// runs after both, synthesis runs last. Validation failures reject the request
// before any kernel dispatch.
func (p *Pipeline) Interpolate(ctx context.Context, req domain.InterpolationRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		p.stats.failures.Inc()
		return nil, err
	}

	width := req.FrameA.Width
	height := req.FrameA.Height
	if p.maxPixels > 0 && int64(width)*int64(height) > p.maxPixels {
		p.stats.failures.Inc()
		return nil, fmt.Errorf("%w: frame is %dx%d, budget is %d pixels",
			domain.ErrResourceExhaustion, width, height, p.maxPixels)
	}

	p.stats.requests.Inc()
	start := time.Now()
	reqID := uuid.NewString()

	p.logger.Debug("request accepted",
		log.String("request_id", reqID),
		log.Int("width", width),
		log.Int("height", height),
		log.Float64("t", float64(req.T)),
		log.Int("levels", req.Params.PyramidLevels),
		log.Int("iterations", req.Params.Iterations))

	var (
		pyrA, pyrB *domain.Pyramid
		flow       *domain.FlowField
		output     = domain.NewFrame(width, height, req.FrameA.Channels)
	)

	var g graph
	g.add("pyramid-a", nil, func(ctx context.Context) error {
		var err error
		pyrA, err = BuildGrayPyramid(ctx, p.disp, req.FrameA, req.Params.PyramidLevels)
		return err
	})
	g.add("pyramid-b", nil, func(ctx context.Context) error {
		var err error
		pyrB, err = BuildGrayPyramid(ctx, p.disp, req.FrameB, req.Params.PyramidLevels)
		return err
	})
	g.add("estimate-flow", []string{"pyramid-a", "pyramid-b"}, func(ctx context.Context) error {
		var err error
		flow, err = EstimateFlow(ctx, p.disp, pyrA, pyrB, req.Params, req.Seed, p.logger)
		return err
	})
	g.add("synthesize", []string{"estimate-flow"}, func(ctx context.Context) error {
		warp := kernels.WarpBlend(output, req.FrameA, req.FrameB, flow, req.T)
		return p.disp.Dispatch(ctx, width, height, warp)
	})

	if err := g.runAll(ctx); err != nil {
		p.stats.failures.Inc()
		return nil, err
	}

	elapsed := time.Since(start)
	p.stats.lastElapsed.Store(elapsed)

	p.logger.Debug("request complete",
		log.String("request_id", reqID),
		log.Int("depth", pyrA.Depth()),
		log.Duration("elapsed", elapsed))

	return &Result{
		Output:    output,
		Flow:      flow,
		Depth:     pyrA.Depth(),
		RequestID: reqID,
		Elapsed:   elapsed,
	}, nil
}
