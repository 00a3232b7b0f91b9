package domain

import "math"

// FlowField is a dense grid of 2D motion vectors, one per pixel of the pyramid
// level it was computed for. Vector components are expressed in pixels of that
// level's resolution: a vector (4, 0) at pixel p means the content at p in
// frame A appears 4 pixels to the right in frame B.
//
// Components are stored interleaved (u then v) in row-major order.
type FlowField struct {
	Width  int
	Height int

	// Vec holds Width*Height*2 components.
	Vec []float32
}

// NewFlowField allocates a zero (no motion) flow field.
func NewFlowField(width, height int) *FlowField {
	return &FlowField{
		Width:  width,
		Height: height,
		Vec:    make([]float32, width*height*2),
	}
}

// Clone returns a deep copy of the field.
func (ff *FlowField) Clone() *FlowField {
	c := NewFlowField(ff.Width, ff.Height)
	copy(c.Vec, ff.Vec)
	return c
}

// UV returns the vector at pixel (x, y).
func (ff *FlowField) UV(x, y int) (u, v float32) {
	i := (y*ff.Width + x) * 2
	return ff.Vec[i], ff.Vec[i+1]
}

// SetUV stores the vector at pixel (x, y).
func (ff *FlowField) SetUV(x, y int, u, v float32) {
	i := (y*ff.Width + x) * 2
	ff.Vec[i] = u
	ff.Vec[i+1] = v
}

// Zero resets every vector to (0, 0).
func (ff *FlowField) Zero() {
	for i := range ff.Vec {
		ff.Vec[i] = 0
	}
}

// MatchesFrame reports whether the field covers the same grid as f.
func (ff *FlowField) MatchesFrame(f *Frame) bool {
	return ff.Width == f.Width && ff.Height == f.Height
}

// Finite reports whether every component is a finite number.
func (ff *FlowField) Finite() bool {
	for _, v := range ff.Vec {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}
