package kernels

import "github.com/lumen-labs/frameweave/internal/domain"

// Binomial 5-tap blur weights 1-4-6-4-1. The sum is exactly 16, so the filter
// has unit gain and cannot drift brightness.
var blurTaps = [5]float32{1.0 / 16, 4.0 / 16, 6.0 / 16, 4.0 / 16, 1.0 / 16}

// Grayscale converts src into the single-channel dst using Rec.601 weights.
// dst must match src dimensions.
func Grayscale(dst, src *domain.Frame) func(x0, y0, x1, y1 int) {
	return func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				dst.Pix[y*dst.Width+x] = src.Luma(x, y)
			}
		}
	}
}

// BlurHorizontal applies the 5-tap binomial blur along rows. Taps past the
// image edge clamp to the edge pixel. dst must match src dimensions and
// channel count, and must not alias src.
func BlurHorizontal(dst, src *domain.Frame) func(x0, y0, x1, y1 int) {
	return func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				for c := 0; c < src.Channels; c++ {
					var acc float32
					for t := -2; t <= 2; t++ {
						acc += blurTaps[t+2] * src.At(clampIndex(x+t, src.Width), y, c)
					}
					dst.Set(x, y, c, acc)
				}
			}
		}
	}
}

// BlurVertical applies the 5-tap binomial blur along columns. It must only run
// after the horizontal pass has written the entire intermediate buffer.
func BlurVertical(dst, src *domain.Frame) func(x0, y0, x1, y1 int) {
	return func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				for c := 0; c < src.Channels; c++ {
					var acc float32
					for t := -2; t <= 2; t++ {
						acc += blurTaps[t+2] * src.At(x, clampIndex(y+t, src.Height), c)
					}
					dst.Set(x, y, c, acc)
				}
			}
		}
	}
}

// Downsample2x2 halves resolution by averaging non-overlapping 2x2 blocks of
// src into dst. dst dimensions must be ceil(src/2); block reads past an odd
// edge clamp to the last row or column.
func Downsample2x2(dst, src *domain.Frame) func(x0, y0, x1, y1 int) {
	return func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				sx := 2 * x
				sy := 2 * y
				for c := 0; c < src.Channels; c++ {
					acc := SampleClamped(src, sx, sy, c) +
						SampleClamped(src, sx+1, sy, c) +
						SampleClamped(src, sx, sy+1, c) +
						SampleClamped(src, sx+1, sy+1, c)
					dst.Set(x, y, c, acc*0.25)
				}
			}
		}
	}
}
