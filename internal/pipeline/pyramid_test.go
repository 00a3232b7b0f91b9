package pipeline

import (
	"context"
	"math"
	"testing"

	"github.com/lumen-labs/frameweave/internal/adapters/cpu"
	"github.com/lumen-labs/frameweave/internal/domain"
)

func TestBuildGrayPyramidDimensions(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		depth     int
		wantDims  [][2]int
	}{
		{
			name:     "power of two",
			w:        64, h: 64, depth: 3,
			wantDims: [][2]int{{64, 64}, {32, 32}, {16, 16}},
		},
		{
			name:     "odd dimensions ceil-halve",
			w:        5, h: 3, depth: 3,
			wantDims: [][2]int{{5, 3}, {3, 2}, {2, 1}},
		},
		{
			name:     "non-square",
			w:        100, h: 7, depth: 4,
			wantDims: [][2]int{{100, 7}, {50, 4}, {25, 2}, {13, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := domain.NewGrayFrame(tt.w, tt.h)
			pyr, err := BuildGrayPyramid(context.Background(), cpu.Serial{}, src, tt.depth)
			if err != nil {
				t.Fatalf("BuildGrayPyramid failed: %v", err)
			}
			if pyr.Depth() != len(tt.wantDims) {
				t.Fatalf("depth = %d, want %d", pyr.Depth(), len(tt.wantDims))
			}
			for k, want := range tt.wantDims {
				lvl := pyr.Level(k)
				if lvl.Width != want[0] || lvl.Height != want[1] {
					t.Errorf("level %d = %dx%d, want %dx%d", k, lvl.Width, lvl.Height, want[0], want[1])
				}
			}
		})
	}
}

func TestBuildGrayPyramidCapsAtOnePixel(t *testing.T) {
	src := domain.NewGrayFrame(4, 4)
	pyr, err := BuildGrayPyramid(context.Background(), cpu.Serial{}, src, 10)
	if err != nil {
		t.Fatalf("BuildGrayPyramid failed: %v", err)
	}
	// 4 -> 2 -> 1, then capped.
	if pyr.Depth() != 3 {
		t.Fatalf("depth = %d, want 3", pyr.Depth())
	}
	if c := pyr.Coarsest(); c.Width != 1 || c.Height != 1 {
		t.Errorf("coarsest = %dx%d, want 1x1", c.Width, c.Height)
	}
}

func TestBuildGrayPyramidOnePixelInput(t *testing.T) {
	src := domain.NewGrayFrame(1, 1)
	src.Pix[0] = 0.6
	pyr, err := BuildGrayPyramid(context.Background(), cpu.Serial{}, src, 5)
	if err != nil {
		t.Fatalf("BuildGrayPyramid failed: %v", err)
	}
	if pyr.Depth() != 1 {
		t.Errorf("depth = %d, want 1", pyr.Depth())
	}
	if pyr.Level(0).Pix[0] != 0.6 {
		t.Errorf("level 0 sample = %v, want 0.6", pyr.Level(0).Pix[0])
	}
}

func TestBuildGrayPyramidZeroArea(t *testing.T) {
	src := &domain.Frame{Width: 0, Height: 4}
	if _, err := BuildGrayPyramid(context.Background(), cpu.Serial{}, src, 3); err == nil {
		t.Fatal("expected error for zero-area frame")
	}
}

func TestBuildGrayPyramidBaseIsUnblurredCopy(t *testing.T) {
	src := domain.NewGrayFrame(8, 8)
	src.Set(3, 3, 0, 1) // sharp impulse

	pyr, err := BuildGrayPyramid(context.Background(), cpu.Serial{}, src, 2)
	if err != nil {
		t.Fatalf("BuildGrayPyramid failed: %v", err)
	}

	// Level 0 keeps the impulse intact; blur applies only between levels.
	if got := pyr.Level(0).At(3, 3, 0); got != 1 {
		t.Errorf("level 0 impulse = %v, want 1 (base must not be blurred)", got)
	}
	if got := pyr.Level(0).At(4, 3, 0); got != 0 {
		t.Errorf("level 0 neighbor = %v, want 0", got)
	}
}

func TestBuildGrayPyramidConvertsRGBA(t *testing.T) {
	src := domain.NewFrame(8, 8, domain.RGBAChannels)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, 1, 1) // pure green
			src.Set(x, y, 3, 1)
		}
	}

	pyr, err := BuildGrayPyramid(context.Background(), cpu.Serial{}, src, 2)
	if err != nil {
		t.Fatalf("BuildGrayPyramid failed: %v", err)
	}
	for k := 0; k < pyr.Depth(); k++ {
		lvl := pyr.Level(k)
		if lvl.Channels != domain.GrayChannels {
			t.Fatalf("level %d has %d channels, want 1", k, lvl.Channels)
		}
		// Constant pure green stays 0.587 through blur and downsample.
		for i, v := range lvl.Pix {
			if math.Abs(float64(v)-0.587) > 1e-5 {
				t.Fatalf("level %d pixel %d = %v, want 0.587", k, i, v)
			}
		}
	}
}

func TestBuildGrayPyramidPreservesMeanBrightness(t *testing.T) {
	src := domain.NewGrayFrame(32, 32)
	for i := range src.Pix {
		src.Pix[i] = 0.3
	}

	pyr, err := BuildGrayPyramid(context.Background(), cpu.Serial{}, src, 4)
	if err != nil {
		t.Fatalf("BuildGrayPyramid failed: %v", err)
	}
	for k := 0; k < pyr.Depth(); k++ {
		for i, v := range pyr.Level(k).Pix {
			if math.Abs(float64(v)-0.3) > 1e-6 {
				t.Fatalf("level %d pixel %d = %v, want 0.3 (unit-gain filter)", k, i, v)
			}
		}
	}
}
