package cliconfig

import (
	"testing"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("FRAMEWEAVE_FRAME_A", "env-a.png")
	t.Setenv("FRAMEWEAVE_T", "0.75")
	t.Setenv("FRAMEWEAVE_ITERATIONS", "12")
	t.Setenv("FRAMEWEAVE_MAX_PIXELS", "2073600")
	t.Setenv("FRAMEWEAVE_SMOOTH_FLOW", "false")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.FrameA != "env-a.png" {
		t.Errorf("FrameA = %v, want env-a.png", cfg.FrameA)
	}
	if cfg.T != 0.75 {
		t.Errorf("T = %v, want 0.75", cfg.T)
	}
	if cfg.Iterations != 12 {
		t.Errorf("Iterations = %v, want 12", cfg.Iterations)
	}
	if cfg.MaxPixels != 2073600 {
		t.Errorf("MaxPixels = %v, want 2073600", cfg.MaxPixels)
	}
	if cfg.SmoothFlow {
		t.Error("SmoothFlow = true, want false from env")
	}
}

func TestApplyEnvConfigFlagPrecedence(t *testing.T) {
	t.Setenv("FRAMEWEAVE_ITERATIONS", "12")

	cfg := DefaultConfig()
	cfg.Iterations = 99
	changed := map[string]bool{"iterations": true}

	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}
	if cfg.Iterations != 99 {
		t.Errorf("Iterations = %d, want flag value 99 to survive env", cfg.Iterations)
	}
}

func TestApplyEnvConfigParseErrors(t *testing.T) {
	t.Setenv("FRAMEWEAVE_ITERATIONS", "twelve")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Fatal("expected parse error for non-numeric iterations")
	}
}

func TestApplyEnvConfigMalformedBoolIgnored(t *testing.T) {
	t.Setenv("FRAMEWEAVE_SMOOTH_FLOW", "maybe")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}
	if !cfg.SmoothFlow {
		t.Error("malformed bool should leave the default untouched")
	}
}
