package domain

// Channel counts supported by Frame.
const (
	// GrayChannels is a single luminance plane.
	GrayChannels = 1

	// RGBAChannels is interleaved red, green, blue, alpha.
	RGBAChannels = 4
)

// Rec.601 luma weights, the convention used for all grayscale conversion.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Frame is a 2D grid of float32 pixel samples in row-major, channel-interleaved
// order. Sample values are nominally in [0, 1] but the pipeline never assumes
// that range. The pipeline treats caller-supplied Frames as read-only and never
// retains a reference past the request that borrowed them.
type Frame struct {
	// Width and Height are the pixel dimensions. Both are >= 1 for a valid Frame.
	Width  int
	Height int

	// Channels is the number of interleaved samples per pixel (1 or 4).
	Channels int

	// Pix holds Width*Height*Channels samples.
	Pix []float32
}

// NewFrame allocates a zeroed Frame with the given dimensions.
func NewFrame(width, height, channels int) *Frame {
	return &Frame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// NewGrayFrame allocates a zeroed single-channel Frame.
func NewGrayFrame(width, height int) *Frame {
	return NewFrame(width, height, GrayChannels)
}

// Clone returns a deep copy of the Frame.
func (f *Frame) Clone() *Frame {
	c := NewFrame(f.Width, f.Height, f.Channels)
	copy(c.Pix, f.Pix)
	return c
}

// Index returns the offset of channel c of pixel (x, y) in Pix.
// The caller is responsible for passing in-bounds coordinates.
func (f *Frame) Index(x, y, c int) int {
	return (y*f.Width+x)*f.Channels + c
}

// At returns channel c of pixel (x, y).
func (f *Frame) At(x, y, c int) float32 {
	return f.Pix[(y*f.Width+x)*f.Channels+c]
}

// Set stores v into channel c of pixel (x, y).
func (f *Frame) Set(x, y, c int, v float32) {
	f.Pix[(y*f.Width+x)*f.Channels+c] = v
}

// Luma returns the Rec.601 luminance of pixel (x, y). For single-channel
// frames it returns the sample directly.
func (f *Frame) Luma(x, y int) float32 {
	i := (y*f.Width + x) * f.Channels
	if f.Channels == GrayChannels {
		return f.Pix[i]
	}
	return lumaR*f.Pix[i] + lumaG*f.Pix[i+1] + lumaB*f.Pix[i+2]
}

// ZeroArea reports whether the Frame has no pixels.
func (f *Frame) ZeroArea() bool {
	return f == nil || f.Width < 1 || f.Height < 1
}

// SameDims reports whether two frames have identical pixel dimensions.
func (f *Frame) SameDims(o *Frame) bool {
	return f.Width == o.Width && f.Height == o.Height
}
