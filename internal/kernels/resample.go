package kernels

import "github.com/lumen-labs/frameweave/internal/domain"

// ResampleFlow maps the src flow field onto the dst grid by sampling src at
// each dst pixel's normalized position with bilinear filtering.
//
// Flow magnitude is expressed in pixels of the field's own level, so when
// rescale is true each component is multiplied by the per-axis resolution
// ratio (dst/src, ~2 when promoting one pyramid level). Skipping the rescale
// silently halves the effective motion at every promotion; the unscaled mode
// exists only to reproduce the reference behavior.
//
// The same kernel also shrinks a finest-level field down to a coarse grid when
// seeding a new request, where the ratio drops below 1.
func ResampleFlow(dst, src *domain.FlowField, rescale bool) func(x0, y0, x1, y1 int) {
	scaleX := float32(src.Width) / float32(dst.Width)
	scaleY := float32(src.Height) / float32(dst.Height)

	gainX, gainY := float32(1), float32(1)
	if rescale {
		gainX = float32(dst.Width) / float32(src.Width)
		gainY = float32(dst.Height) / float32(src.Height)
	}

	return func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				// Pixel-center mapping between the two grids.
				sx := (float32(x)+0.5)*scaleX - 0.5
				sy := (float32(y)+0.5)*scaleY - 0.5
				u, v := BilinearFlow(src, sx, sy)
				dst.SetUV(x, y, u*gainX, v*gainY)
			}
		}
	}
}

// SmoothFlow applies a 3x3 box filter to the flow field, matching the
// reference pipeline's post-solve smoothing pass. Neighbors past the edge
// clamp. dst must not alias src.
func SmoothFlow(dst, src *domain.FlowField) func(x0, y0, x1, y1 int) {
	return func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				var au, av float32
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						u, v := src.UV(clampIndex(x+dx, src.Width), clampIndex(y+dy, src.Height))
						au += u
						av += v
					}
				}
				dst.SetUV(x, y, au/9, av/9)
			}
		}
	}
}
