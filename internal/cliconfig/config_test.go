package cliconfig

import (
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Out != "out.png" {
		t.Errorf("Out = %v, want out.png", cfg.Out)
	}
	if cfg.T != 0.5 {
		t.Errorf("T = %v, want 0.5", cfg.T)
	}
	if cfg.Steps != 1 {
		t.Errorf("Steps = %v, want 1", cfg.Steps)
	}
	if cfg.PyramidLevels != 3 || cfg.Iterations != 20 {
		t.Errorf("solver defaults = %d levels / %d iterations, want 3/20", cfg.PyramidLevels, cfg.Iterations)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.FrameA = "a.png"
		cfg.FrameB = "b.png"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing frame a", func(c *Config) { c.FrameA = "" }, true},
		{"missing frame b", func(c *Config) { c.FrameB = "" }, true},
		{"t at zero", func(c *Config) { c.T = 0 }, true},
		{"t at one", func(c *Config) { c.T = 1 }, true},
		{"t NaN", func(c *Config) { c.T = math.NaN() }, true},
		{"zero steps", func(c *Config) { c.Steps = 0 }, true},
		{"known preset", func(c *Config) { c.Preset = "high" }, false},
		{"unknown preset", func(c *Config) { c.Preset = "turbo" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LibraryPresetPrecedence(t *testing.T) {
	// No preset: the merged CLI values carry through.
	cfg := DefaultConfig()
	cfg.PyramidLevels = 5
	cfg.Iterations = 40
	lib, err := cfg.Library(map[string]bool{})
	if err != nil {
		t.Fatalf("Library failed: %v", err)
	}
	if lib.PyramidLevels != 5 || lib.Iterations != 40 {
		t.Errorf("without preset: levels=%d iterations=%d, want 5/40", lib.PyramidLevels, lib.Iterations)
	}

	// Preset set, no explicit flags: preset wins over merged values.
	cfg = DefaultConfig()
	cfg.Preset = "low"
	lib, err = cfg.Library(map[string]bool{})
	if err != nil {
		t.Fatalf("Library failed: %v", err)
	}
	if lib.PyramidLevels != 2 || lib.Iterations != 8 {
		t.Errorf("preset low: levels=%d iterations=%d, want 2/8", lib.PyramidLevels, lib.Iterations)
	}

	// Explicit flag beats the preset.
	cfg = DefaultConfig()
	cfg.Preset = "low"
	cfg.Iterations = 50
	lib, err = cfg.Library(map[string]bool{"iterations": true})
	if err != nil {
		t.Fatalf("Library failed: %v", err)
	}
	if lib.Iterations != 50 {
		t.Errorf("explicit iterations = %d, want 50", lib.Iterations)
	}
	if lib.PyramidLevels != 2 {
		t.Errorf("levels = %d, want preset value 2", lib.PyramidLevels)
	}
}

func TestConfig_LibraryCopiesBudgetFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TileSize = 32
	cfg.Workers = 2
	cfg.MaxPixels = 1 << 20
	cfg.SmoothFlow = false

	lib, err := cfg.Library(nil)
	if err != nil {
		t.Fatalf("Library failed: %v", err)
	}
	if lib.TileSize != 32 || lib.Workers != 2 || lib.MaxPixels != 1<<20 {
		t.Errorf("budget fields not copied: %+v", lib)
	}
	if lib.SmoothFlow {
		t.Error("SmoothFlow = true, want false")
	}
}

func TestConfig_LibraryUnknownPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preset = "nope"
	if _, err := cfg.Library(nil); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
