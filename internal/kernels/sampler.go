package kernels

import (
	"math"

	"github.com/lumen-labs/frameweave/internal/domain"
)

// clampIndex clamps i to [0, n-1].
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// clampFloat clamps v to [lo, hi]. NaN maps to lo so a degenerate coordinate
// can never index out of range downstream.
func clampFloat(v, lo, hi float32) float32 {
	if v != v {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SampleClamped returns channel c of the pixel at (x, y), clamping coordinates
// to the nearest valid edge pixel.
func SampleClamped(f *domain.Frame, x, y, c int) float32 {
	return f.At(clampIndex(x, f.Width), clampIndex(y, f.Height), c)
}

// LumaClamped returns the luminance at (x, y) with edge clamping.
func LumaClamped(f *domain.Frame, x, y int) float32 {
	return f.Luma(clampIndex(x, f.Width), clampIndex(y, f.Height))
}

// BilinearChannel samples channel c at the continuous position (fx, fy) in
// pixel-index space with bilinear filtering. Positions outside the image clamp
// to the edge.
func BilinearChannel(f *domain.Frame, fx, fy float32, c int) float32 {
	fx = clampFloat(fx, 0, float32(f.Width-1))
	fy = clampFloat(fy, 0, float32(f.Height-1))

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	x1 := clampIndex(x0+1, f.Width)
	y1 := clampIndex(y0+1, f.Height)
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	top := f.At(x0, y0, c)*(1-ax) + f.At(x1, y0, c)*ax
	bot := f.At(x0, y1, c)*(1-ax) + f.At(x1, y1, c)*ax
	return top*(1-ay) + bot*ay
}

// BilinearLuma samples luminance at the continuous position (fx, fy) with
// bilinear filtering and edge clamping.
func BilinearLuma(f *domain.Frame, fx, fy float32) float32 {
	fx = clampFloat(fx, 0, float32(f.Width-1))
	fy = clampFloat(fy, 0, float32(f.Height-1))

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	x1 := clampIndex(x0+1, f.Width)
	y1 := clampIndex(y0+1, f.Height)
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	top := f.Luma(x0, y0)*(1-ax) + f.Luma(x1, y0)*ax
	bot := f.Luma(x0, y1)*(1-ax) + f.Luma(x1, y1)*ax
	return top*(1-ay) + bot*ay
}

// BilinearFlow samples the flow field at the continuous position (fx, fy) with
// bilinear filtering and edge clamping.
func BilinearFlow(ff *domain.FlowField, fx, fy float32) (u, v float32) {
	fx = clampFloat(fx, 0, float32(ff.Width-1))
	fy = clampFloat(fy, 0, float32(ff.Height-1))

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	x1 := clampIndex(x0+1, ff.Width)
	y1 := clampIndex(y0+1, ff.Height)
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	u00, v00 := ff.UV(x0, y0)
	u10, v10 := ff.UV(x1, y0)
	u01, v01 := ff.UV(x0, y1)
	u11, v11 := ff.UV(x1, y1)

	u = (u00*(1-ax)+u10*ax)*(1-ay) + (u01*(1-ax)+u11*ax)*ay
	v = (v00*(1-ax)+v10*ax)*(1-ay) + (v01*(1-ax)+v11*ax)*ay
	return u, v
}

// sanitize replaces non-finite values with zero so numeric degeneracy never
// propagates into an output buffer.
func sanitize(v float32) float32 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0
	}
	return v
}
