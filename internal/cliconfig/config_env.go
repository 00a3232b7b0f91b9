package cliconfig

import "os"

// ApplyEnvConfig applies FRAMEWEAVE_* environment variables to the Config.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("frame-a", os.Getenv("FRAMEWEAVE_FRAME_A"), &cfg.FrameA)
	s.setString("frame-b", os.Getenv("FRAMEWEAVE_FRAME_B"), &cfg.FrameB)
	s.setString("out", os.Getenv("FRAMEWEAVE_OUT"), &cfg.Out)
	s.setString("preset", os.Getenv("FRAMEWEAVE_PRESET"), &cfg.Preset)
	s.setString("params-file", os.Getenv("FRAMEWEAVE_PARAMS_FILE"), &cfg.ParamsFile)
	s.setString("log-level", os.Getenv("FRAMEWEAVE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setFloatFromString("t", os.Getenv("FRAMEWEAVE_T"), &cfg.T); err != nil {
		return err
	}
	if err := s.setFloatFromString("lambda", os.Getenv("FRAMEWEAVE_LAMBDA"), &cfg.Lambda); err != nil {
		return err
	}
	if err := s.setFloatFromString("epsilon", os.Getenv("FRAMEWEAVE_EPSILON"), &cfg.Epsilon); err != nil {
		return err
	}

	if err := s.setIntFromString("steps", os.Getenv("FRAMEWEAVE_STEPS"), &cfg.Steps); err != nil {
		return err
	}
	if err := s.setIntFromString("levels", os.Getenv("FRAMEWEAVE_PYRAMID_LEVELS"), &cfg.PyramidLevels); err != nil {
		return err
	}
	if err := s.setIntFromString("iterations", os.Getenv("FRAMEWEAVE_ITERATIONS"), &cfg.Iterations); err != nil {
		return err
	}
	if err := s.setIntFromString("tile-size", os.Getenv("FRAMEWEAVE_TILE_SIZE"), &cfg.TileSize); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", os.Getenv("FRAMEWEAVE_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setInt64FromString("max-pixels", os.Getenv("FRAMEWEAVE_MAX_PIXELS"), &cfg.MaxPixels); err != nil {
		return err
	}

	s.setBoolFromString("upsample-rescale", os.Getenv("FRAMEWEAVE_UPSAMPLE_RESCALE"), &cfg.UpsampleRescale)
	s.setBoolFromString("smooth-flow", os.Getenv("FRAMEWEAVE_SMOOTH_FLOW"), &cfg.SmoothFlow)
	s.setBoolFromString("quiet", os.Getenv("FRAMEWEAVE_QUIET"), &cfg.Quiet)

	return nil
}
