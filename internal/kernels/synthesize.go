package kernels

import "github.com/lumen-labs/frameweave/internal/domain"

// WarpBlend synthesizes the output frame at temporal position t from the two
// source frames and the finest-level flow field. Per output pixel, the flow
// vector displaces a backward sample into a (center - t*flow) and a forward
// sample into b (center + (1-t)*flow); both samples are bilinear with edge
// clamping, and the result is the linear blend (1-t)*a + t*b.
//
// At t=0 the backward displacement is zero and the pass reduces to a direct
// resample of a; at t=1 it reduces to b. A single pass, no feedback.
func WarpBlend(dst, a, b *domain.Frame, flow *domain.FlowField, t float32) func(x0, y0, x1, y1 int) {
	return func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				u, v := flow.UV(x, y)

				// Sampling in pixel-index space; the half-pixel center offset
				// cancels when converting back.
				ax := float32(x) - t*u
				ay := float32(y) - t*v
				bx := float32(x) + (1-t)*u
				by := float32(y) + (1-t)*v

				for c := 0; c < dst.Channels; c++ {
					sa := BilinearChannel(a, ax, ay, c)
					sb := BilinearChannel(b, bx, by, c)
					dst.Set(x, y, c, sanitize((1-t)*sa+t*sb))
				}
			}
		}
	}
}
