package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly field tags. Booleans are
// pointers so an absent key can be told apart from an explicit false.
type FileConfig struct {
	FrameA string `toml:"frame_a"`
	FrameB string `toml:"frame_b"`
	Out    string `toml:"out"`

	T     float64 `toml:"t"`
	Steps int     `toml:"steps"`

	Preset     string `toml:"preset"`
	ParamsFile string `toml:"params_file"`

	PyramidLevels int     `toml:"pyramid_levels"`
	Iterations    int     `toml:"iterations"`
	Lambda        float64 `toml:"lambda"`
	Epsilon       float64 `toml:"epsilon"`

	TileSize  int   `toml:"tile_size"`
	Workers   int   `toml:"workers"`
	MaxPixels int64 `toml:"max_pixels"`

	UpsampleRescale *bool `toml:"upsample_rescale"`
	SmoothFlow      *bool `toml:"smooth_flow"`

	LogLevel string `toml:"log_level"`
	Quiet    *bool  `toml:"quiet"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.frameweave/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".frameweave", "config.toml")
	}
	return ""
}

// FileExists reports whether the path exists.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("frame-a", fc.FrameA, &cfg.FrameA)
	s.setString("frame-b", fc.FrameB, &cfg.FrameB)
	s.setString("out", fc.Out, &cfg.Out)
	s.setString("preset", fc.Preset, &cfg.Preset)
	s.setString("params-file", fc.ParamsFile, &cfg.ParamsFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setFloat("t", fc.T, &cfg.T)
	s.setFloat("lambda", fc.Lambda, &cfg.Lambda)
	s.setFloat("epsilon", fc.Epsilon, &cfg.Epsilon)

	s.setInt("steps", fc.Steps, &cfg.Steps)
	s.setInt("levels", fc.PyramidLevels, &cfg.PyramidLevels)
	s.setInt("iterations", fc.Iterations, &cfg.Iterations)
	s.setInt("tile-size", fc.TileSize, &cfg.TileSize)
	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setInt64("max-pixels", fc.MaxPixels, &cfg.MaxPixels)

	s.setBool("upsample-rescale", fc.UpsampleRescale, &cfg.UpsampleRescale)
	s.setBool("smooth-flow", fc.SmoothFlow, &cfg.SmoothFlow)
	s.setBool("quiet", fc.Quiet, &cfg.Quiet)

	return nil
}
