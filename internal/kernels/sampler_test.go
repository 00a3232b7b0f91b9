package kernels

import (
	"math"
	"testing"

	"github.com/lumen-labs/frameweave/internal/domain"
)

func gradientFrame(w, h int) *domain.Frame {
	f := domain.NewGrayFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Set(x, y, 0, float32(y*w+x))
		}
	}
	return f
}

func TestSampleClampedEdges(t *testing.T) {
	f := gradientFrame(4, 3)

	tests := []struct {
		x, y int
		want float32
	}{
		{-1, 0, 0},    // left edge clamps to column 0
		{-5, -5, 0},   // top-left corner
		{4, 0, 3},     // right edge clamps to column 3
		{0, 3, 8},     // bottom edge clamps to row 2
		{10, 10, 11},  // bottom-right corner
		{2, 1, 6},     // interior untouched
		{-1, 10, 8},   // mixed: left column, bottom row
	}
	for _, tt := range tests {
		if got := SampleClamped(f, tt.x, tt.y, 0); got != tt.want {
			t.Errorf("SampleClamped(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBilinearChannelInterior(t *testing.T) {
	f := gradientFrame(4, 4)

	// Midpoint of a 2x2 neighborhood is the average of its four samples.
	got := BilinearChannel(f, 1.5, 1.5, 0)
	want := float32(5+6+9+10) / 4
	if math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("BilinearChannel(1.5,1.5) = %v, want %v", got, want)
	}

	// Integer positions return the exact sample.
	if got := BilinearChannel(f, 2, 1, 0); got != 6 {
		t.Errorf("BilinearChannel(2,1) = %v, want 6", got)
	}
}

func TestBilinearChannelClampsOutside(t *testing.T) {
	f := gradientFrame(4, 4)

	tests := []struct {
		fx, fy float32
		want   float32
	}{
		{-2, -2, 0},     // beyond top-left corner
		{10, -1, 3},     // beyond top-right corner
		{-0.5, 1, 4},    // left of row 1
		{5, 5, 15},      // beyond bottom-right corner
		{1.5, -3, 1.5},  // above row 0, interpolates along x only
	}
	for _, tt := range tests {
		if got := BilinearChannel(f, tt.fx, tt.fy, 0); math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("BilinearChannel(%v,%v) = %v, want %v", tt.fx, tt.fy, got, tt.want)
		}
	}
}

func TestBilinearNaNCoordinatesClampToOrigin(t *testing.T) {
	f := gradientFrame(4, 4)
	nan := float32(math.NaN())

	// A NaN coordinate must behave like an out-of-range one, never panic or
	// produce a NaN sample.
	if got := BilinearChannel(f, nan, nan, 0); got != 0 {
		t.Errorf("BilinearChannel(NaN,NaN) = %v, want clamped origin sample 0", got)
	}
	if got := BilinearLuma(f, nan, 1); got != f.Luma(0, 1) {
		t.Errorf("BilinearLuma(NaN,1) = %v, want row-1 origin luma %v", got, f.Luma(0, 1))
	}

	ff := domain.NewFlowField(2, 2)
	ff.SetUV(0, 0, 5, -7)
	u, v := BilinearFlow(ff, nan, nan)
	if u != 5 || v != -7 {
		t.Errorf("BilinearFlow(NaN,NaN) = (%v,%v), want origin vector (5,-7)", u, v)
	}
}

func TestBilinearFlow(t *testing.T) {
	ff := domain.NewFlowField(2, 2)
	ff.SetUV(0, 0, 1, 10)
	ff.SetUV(1, 0, 3, 10)
	ff.SetUV(0, 1, 1, 30)
	ff.SetUV(1, 1, 3, 30)

	u, v := BilinearFlow(ff, 0.5, 0.5)
	if math.Abs(float64(u)-2) > 1e-6 || math.Abs(float64(v)-20) > 1e-6 {
		t.Errorf("BilinearFlow(0.5,0.5) = (%v,%v), want (2,20)", u, v)
	}

	u, v = BilinearFlow(ff, -1, -1)
	if u != 1 || v != 10 {
		t.Errorf("BilinearFlow(-1,-1) = (%v,%v), want clamped corner (1,10)", u, v)
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize(float32(math.NaN())); got != 0 {
		t.Errorf("sanitize(NaN) = %v, want 0", got)
	}
	if got := sanitize(float32(math.Inf(1))); got != 0 {
		t.Errorf("sanitize(+Inf) = %v, want 0", got)
	}
	if got := sanitize(float32(math.Inf(-1))); got != 0 {
		t.Errorf("sanitize(-Inf) = %v, want 0", got)
	}
	if got := sanitize(-3.5); got != -3.5 {
		t.Errorf("sanitize(-3.5) = %v, want -3.5", got)
	}
}
