package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/lumen-labs/frameweave/pkg/frameweave"
)

// Config holds CLI configuration for the frameweave command.
type Config struct {
	FrameA string
	FrameB string
	Out    string

	T     float64
	Steps int

	Preset     string
	ParamsFile string

	PyramidLevels int
	Iterations    int
	Lambda        float64
	Epsilon       float64

	TileSize  int
	Workers   int
	MaxPixels int64

	UpsampleRescale bool
	SmoothFlow      bool

	LogLevel string
	Quiet    bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	lib := frameweave.DefaultConfig()
	return Config{
		Out:             "out.png",
		T:               0.5,
		Steps:           1,
		PyramidLevels:   lib.PyramidLevels,
		Iterations:      lib.Iterations,
		Lambda:          lib.Lambda,
		Epsilon:         lib.Epsilon,
		TileSize:        lib.TileSize,
		UpsampleRescale: lib.UpsampleRescale,
		SmoothFlow:      lib.SmoothFlow,
		LogLevel:        "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.FrameA == "" {
		return fmt.Errorf("frame-a is required")
	}
	if c.FrameB == "" {
		return fmt.Errorf("frame-b is required")
	}
	// NaN fails both comparisons below, so it is rejected along with the
	// out-of-range values.
	if !(c.T > 0 && c.T < 1) {
		return fmt.Errorf("t must be strictly between 0 and 1, got %g", c.T)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	if c.Preset != "" {
		if _, err := frameweave.PresetByName(c.Preset); err != nil {
			return err
		}
	}
	return nil
}

// Library converts the CLI configuration into a library Config. The preset
// is applied first; individual solver values from c win only when the
// corresponding flag was explicitly set (changed map), so a preset does not
// get clobbered by flag defaults.
func (c *Config) Library(changed map[string]bool) (frameweave.Config, error) {
	cfg := frameweave.DefaultConfig()
	if c.Preset != "" {
		p, err := frameweave.PresetByName(c.Preset)
		if err != nil {
			return cfg, err
		}
		if err := p.Apply(&cfg); err != nil {
			return cfg, err
		}
	}
	preset := c.Preset != ""
	if !preset || changed["levels"] {
		cfg.PyramidLevels = c.PyramidLevels
	}
	if !preset || changed["iterations"] {
		cfg.Iterations = c.Iterations
	}
	if c.Lambda > 0 {
		cfg.Lambda = c.Lambda
	}
	if c.Epsilon > 0 {
		cfg.Epsilon = c.Epsilon
	}
	if c.TileSize > 0 {
		cfg.TileSize = c.TileSize
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.MaxPixels > 0 {
		cfg.MaxPixels = c.MaxPixels
	}
	cfg.UpsampleRescale = c.UpsampleRescale
	cfg.SmoothFlow = c.SmoothFlow
	return cfg, cfg.Validate()
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt64 sets an int64 value if positive and flag not changed.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setInt64FromString parses a string to int64 and sets the destination if valid.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination if valid.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return
	}
	*dst = b
}
