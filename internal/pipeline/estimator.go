package pipeline

import (
	"context"
	"fmt"

	"github.com/lumen-labs/frameweave/internal/domain"
	"github.com/lumen-labs/frameweave/internal/kernels"
	"github.com/lumen-labs/frameweave/internal/ports"
	"github.com/lumen-labs/frameweave/pkg/log"
)

// EstimateFlow runs the coarse-to-fine Horn-Schunck solve over two pyramids of
// equal depth and returns the finest-level flow field.
//
// The coarsest level starts from a zero field, or from seed (a finest-level
// field from an earlier request) shrunk onto the coarsest grid. Each level
// runs the full iteration budget with double-buffered fields, swapping read
// and write buffers after every fully-synchronized pass; the refined field is
// then promoted to the next finer level. Levels are strictly sequential.
func EstimateFlow(ctx context.Context, disp ports.Dispatcher, pyrA, pyrB *domain.Pyramid,
	p domain.SolverParameters, seed *domain.FlowField, logger log.Logger) (*domain.FlowField, error) {

	if pyrA.Depth() != pyrB.Depth() {
		return nil, fmt.Errorf("%w: pyramid depths differ: %d vs %d",
			domain.ErrInvalidInput, pyrA.Depth(), pyrB.Depth())
	}

	coarsest := pyrA.Coarsest()
	cur := domain.NewFlowField(coarsest.Width, coarsest.Height)
	if seed != nil {
		// Shrinking a fine field always rescales magnitude; the vectors are
		// re-expressed in coarsest-level pixels.
		if err := disp.Dispatch(ctx, cur.Width, cur.Height, kernels.ResampleFlow(cur, seed, true)); err != nil {
			return nil, err
		}
	}

	for level := pyrA.Depth() - 1; level >= 0; level-- {
		lumA := pyrA.Level(level)
		lumB := pyrB.Level(level)

		other := domain.NewFlowField(lumA.Width, lumA.Height)
		for it := 0; it < p.Iterations; it++ {
			step := kernels.SolveStep(other, cur, lumA, lumB, p.Lambda, p.Epsilon)
			if err := disp.Dispatch(ctx, lumA.Width, lumA.Height, step); err != nil {
				return nil, err
			}
			cur, other = other, cur
		}

		logger.Debug("level solved",
			log.Int("level", level),
			log.Int("width", lumA.Width),
			log.Int("height", lumA.Height),
			log.Int("iterations", p.Iterations))

		if level > 0 {
			finer := pyrA.Level(level - 1)
			promoted := domain.NewFlowField(finer.Width, finer.Height)
			if err := disp.Dispatch(ctx, promoted.Width, promoted.Height,
				kernels.ResampleFlow(promoted, cur, p.UpsampleRescale)); err != nil {
				return nil, err
			}
			cur = promoted
		}
	}

	if p.SmoothFlow {
		smoothed := domain.NewFlowField(cur.Width, cur.Height)
		if err := disp.Dispatch(ctx, cur.Width, cur.Height, kernels.SmoothFlow(smoothed, cur)); err != nil {
			return nil, err
		}
		cur = smoothed
	}

	return cur, nil
}
