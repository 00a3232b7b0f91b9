// Package imageio converts between image files and float frames.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/lumen-labs/frameweave/internal/domain"
)

// LoadPNG decodes a PNG file into an RGBA frame with samples scaled to [0,1].
func LoadPNG(path string) (*domain.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	b := img.Bounds()
	fr := domain.NewFrame(b.Dx(), b.Dy(), domain.RGBAChannels)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bb, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			base := fr.Index(x, y, 0)
			fr.Pix[base+0] = float32(r) / 65535
			fr.Pix[base+1] = float32(g) / 65535
			fr.Pix[base+2] = float32(bb) / 65535
			fr.Pix[base+3] = float32(a) / 65535
		}
	}
	return fr, nil
}

// SavePNG encodes a frame to an 8-bit PNG file. Samples are clamped to [0,1]
// before quantization. Grayscale frames produce grayscale files.
func SavePNG(path string, fr *domain.Frame) error {
	if fr == nil || fr.ZeroArea() {
		return fmt.Errorf("save %s: empty frame", path)
	}

	var img image.Image
	switch fr.Channels {
	case domain.GrayChannels:
		g := image.NewGray(image.Rect(0, 0, fr.Width, fr.Height))
		for y := 0; y < fr.Height; y++ {
			for x := 0; x < fr.Width; x++ {
				g.SetGray(x, y, color.Gray{Y: quantize(fr.Pix[fr.Index(x, y, 0)])})
			}
		}
		img = g
	case domain.RGBAChannels:
		rgba := image.NewNRGBA(image.Rect(0, 0, fr.Width, fr.Height))
		for y := 0; y < fr.Height; y++ {
			for x := 0; x < fr.Width; x++ {
				base := fr.Index(x, y, 0)
				rgba.SetNRGBA(x, y, color.NRGBA{
					R: quantize(fr.Pix[base+0]),
					G: quantize(fr.Pix[base+1]),
					B: quantize(fr.Pix[base+2]),
					A: quantize(fr.Pix[base+3]),
				})
			}
		}
		img = rgba
	default:
		return fmt.Errorf("save %s: unsupported channel count %d", path, fr.Channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
