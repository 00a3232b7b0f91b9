package frameweave

import "fmt"

// Preset names a quality/speed trade-off mapped onto solver parameters.
type Preset string

// Supported presets, fastest first.
const (
	PresetLow    Preset = "low"
	PresetMedium Preset = "medium"
	PresetHigh   Preset = "high"
)

// PresetByName resolves a case-sensitive preset name.
func PresetByName(name string) (Preset, error) {
	switch p := Preset(name); p {
	case PresetLow, PresetMedium, PresetHigh:
		return p, nil
	default:
		return "", fmt.Errorf("unknown preset %q", name)
	}
}

// Apply overwrites the solver fields of cfg with the preset's values.
// Dispatcher and budget fields are left untouched.
func (p Preset) Apply(cfg *Config) error {
	switch p {
	case PresetLow:
		cfg.PyramidLevels = 2
		cfg.Iterations = 8
	case PresetMedium:
		cfg.PyramidLevels = 3
		cfg.Iterations = 20
	case PresetHigh:
		cfg.PyramidLevels = 4
		cfg.Iterations = 32
	default:
		return fmt.Errorf("unknown preset %q", string(p))
	}
	return nil
}
