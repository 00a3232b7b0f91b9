package frameweave

import (
	"fmt"

	"github.com/lumen-labs/frameweave/internal/adapters/cpu"
	"github.com/lumen-labs/frameweave/internal/domain"
)

// Config holds the configuration for an Interpolator.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// PyramidLevels is the requested pyramid depth. Deeper pyramids recover
	// larger motion at higher cost. The effective depth is capped for tiny
	// frames.
	PyramidLevels int

	// Iterations is the relaxation iteration count per pyramid level.
	Iterations int

	// Lambda is the smoothness weight of the solver. Larger values produce
	// smoother, less detailed flow.
	Lambda float64

	// Epsilon guards solver divisions on flat image regions.
	Epsilon float64

	// UpsampleRescale scales flow magnitude by the resolution ratio when
	// promoting between pyramid levels. Leave it on unless byte-level
	// comparison with the unscaled reference behavior is required.
	UpsampleRescale bool

	// SmoothFlow box-filters the finest flow field before synthesis.
	SmoothFlow bool

	// TileSize is the dispatcher tile edge length. Zero selects the default.
	TileSize int

	// Workers bounds dispatcher parallelism. Zero selects GOMAXPROCS.
	Workers int

	// MaxPixels rejects requests whose frame area exceeds this budget with a
	// resource-exhaustion error. Zero means unbounded.
	MaxPixels int64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		PyramidLevels:   domain.DefaultPyramidLevels,
		Iterations:      domain.DefaultIterations,
		Lambda:          domain.DefaultLambda,
		Epsilon:         domain.DefaultEpsilon,
		UpsampleRescale: true,
		SmoothFlow:      true,
		TileSize:        cpu.DefaultTileSize,
	}
}

// SetDefaults fills unset numeric fields with their default values.
// Boolean fields are left as provided.
func (c *Config) SetDefaults() {
	if c.PyramidLevels == 0 {
		c.PyramidLevels = domain.DefaultPyramidLevels
	}
	if c.Iterations == 0 {
		c.Iterations = domain.DefaultIterations
	}
	if c.Lambda == 0 {
		c.Lambda = domain.DefaultLambda
	}
	if c.Epsilon == 0 {
		c.Epsilon = domain.DefaultEpsilon
	}
	if c.TileSize == 0 {
		c.TileSize = cpu.DefaultTileSize
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.TileSize < 0 || c.Workers < 0 || c.MaxPixels < 0 {
		return fmt.Errorf("%w: tile size, workers and max pixels must be >= 0", domain.ErrInvalidInput)
	}
	if err := c.parameters().Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// parameters converts the Config into the solver parameter set.
func (c Config) parameters() domain.SolverParameters {
	return domain.SolverParameters{
		PyramidLevels:   c.PyramidLevels,
		Iterations:      c.Iterations,
		Lambda:          float32(c.Lambda),
		Epsilon:         float32(c.Epsilon),
		UpsampleRescale: c.UpsampleRescale,
		SmoothFlow:      c.SmoothFlow,
	}
}
