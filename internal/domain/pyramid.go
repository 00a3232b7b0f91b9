package domain

// Pyramid is an ordered sequence of Frames. Level 0 is the original resolution;
// each deeper level halves both dimensions (rounded up). Level 0 holds a copy of
// the source Frame, not a re-blurred version.
//
// Invariants maintained by the builder:
//   - dims(level k) == ceil(dims(level k-1) / 2) for every k >= 1
//   - every level is at least 1x1
//   - depth is silently capped once a level reaches 1x1
type Pyramid struct {
	levels []*Frame
}

// NewPyramid wraps pre-built levels, finest first.
func NewPyramid(levels []*Frame) *Pyramid {
	return &Pyramid{levels: levels}
}

// Depth returns the number of levels actually built, which may be less than
// the requested depth for small frames.
func (p *Pyramid) Depth() int {
	return len(p.levels)
}

// Level returns the Frame at level k (0 = finest).
func (p *Pyramid) Level(k int) *Frame {
	return p.levels[k]
}

// Coarsest returns the deepest level.
func (p *Pyramid) Coarsest() *Frame {
	return p.levels[len(p.levels)-1]
}

// HalvedDim returns the next coarser size for a dimension: ceil(d / 2).
func HalvedDim(d int) int {
	return (d + 1) / 2
}
