package kernels

import "github.com/lumen-labs/frameweave/internal/domain"

// SolveStep performs one Horn-Schunck relaxation iteration, reading the flow
// estimate from prev and writing the refined estimate to next. prev and next
// must be distinct buffers of identical dimensions; the caller swaps them
// between iterations and must not start iteration k+1 until every pixel of
// iteration k has been written.
//
// lumA and lumB are the single-channel luminance planes of the two frames at
// this pyramid level.
//
// Per pixel:
//
//	Ix, Iy    central-difference gradient of lumA, edge-clamped
//	avg       4-neighbor average of prev, edge-clamped
//	It        lumB sampled at pixel + prev(pixel) minus lumA at pixel
//	residual  Ix*(avg.x - prev.x) + Iy*(avg.y - prev.y) + It
//	next      avg - residual / (lambda + Ix^2 + Iy^2 + eps) * (Ix, Iy)
//
// The temporal term is measured at the warped position, so the gradient term
// carries only the increment between the neighbor average and the estimate the
// warp was taken at. At the true motion the residual vanishes and the field is
// a fixed point; on flat or identical frames the update reduces to the plain
// neighbor average and a zero-seeded field stays zero.
func SolveStep(next, prev *domain.FlowField, lumA, lumB *domain.Frame, lambda, eps float32) func(x0, y0, x1, y1 int) {
	w := lumA.Width
	h := lumA.Height

	return func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				ix := 0.5 * (LumaClamped(lumA, x+1, y) - LumaClamped(lumA, x-1, y))
				iy := 0.5 * (LumaClamped(lumA, x, y+1) - LumaClamped(lumA, x, y-1))

				pu, pv := prev.UV(x, y)

				lu, lv := prev.UV(clampIndex(x-1, w), y)
				ru, rv := prev.UV(clampIndex(x+1, w), y)
				tu, tv := prev.UV(x, clampIndex(y-1, h))
				bu, bv := prev.UV(x, clampIndex(y+1, h))
				avgU := (lu + ru + tu + bu) * 0.25
				avgV := (lv + rv + tv + bv) * 0.25

				it := BilinearLuma(lumB, float32(x)+pu, float32(y)+pv) - lumA.Pix[y*w+x]

				residual := ix*(avgU-pu) + iy*(avgV-pv) + it
				denom := lambda + ix*ix + iy*iy + eps
				gain := residual / denom

				next.SetUV(x, y, sanitize(avgU-gain*ix), sanitize(avgV-gain*iy))
			}
		}
	}
}
