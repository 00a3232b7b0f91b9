package pipeline

import (
	"context"
	"fmt"

	"github.com/lumen-labs/frameweave/internal/domain"
	"github.com/lumen-labs/frameweave/internal/kernels"
	"github.com/lumen-labs/frameweave/internal/ports"
)

// BuildGrayPyramid converts src to luminance and builds a pyramid of up to
// depth levels. Each deeper level is the previous one blurred with the
// separable binomial filter and then 2x2 block-averaged down to ceil-halved
// dimensions. Depth is silently capped once a level reaches 1x1; the returned
// pyramid reports the depth actually built.
//
// The two blur sub-passes are strictly sequential: the vertical pass reads
// rows the horizontal pass produced, so it only starts after the horizontal
// dispatch has returned.
func BuildGrayPyramid(ctx context.Context, disp ports.Dispatcher, src *domain.Frame, depth int) (*domain.Pyramid, error) {
	if src.ZeroArea() {
		return nil, fmt.Errorf("%w: zero-area frame", domain.ErrInvalidInput)
	}

	base := domain.NewGrayFrame(src.Width, src.Height)
	if src.Channels == domain.GrayChannels {
		copy(base.Pix, src.Pix)
	} else {
		if err := disp.Dispatch(ctx, src.Width, src.Height, kernels.Grayscale(base, src)); err != nil {
			return nil, err
		}
	}

	levels := []*domain.Frame{base}
	for len(levels) < depth {
		cur := levels[len(levels)-1]
		if cur.Width == 1 && cur.Height == 1 {
			break // depth capped, not an error
		}

		blurX := domain.NewGrayFrame(cur.Width, cur.Height)
		if err := disp.Dispatch(ctx, cur.Width, cur.Height, kernels.BlurHorizontal(blurX, cur)); err != nil {
			return nil, err
		}
		blurred := domain.NewGrayFrame(cur.Width, cur.Height)
		if err := disp.Dispatch(ctx, cur.Width, cur.Height, kernels.BlurVertical(blurred, blurX)); err != nil {
			return nil, err
		}

		down := domain.NewGrayFrame(domain.HalvedDim(cur.Width), domain.HalvedDim(cur.Height))
		if err := disp.Dispatch(ctx, down.Width, down.Height, kernels.Downsample2x2(down, blurred)); err != nil {
			return nil, err
		}
		levels = append(levels, down)
	}

	return domain.NewPyramid(levels), nil
}
