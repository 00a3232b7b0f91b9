package frameweave

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumen-labs/frameweave/internal/adapters/cpu"
	"github.com/lumen-labs/frameweave/internal/domain"
	"github.com/lumen-labs/frameweave/internal/pipeline"
	"github.com/lumen-labs/frameweave/pkg/log"
)

// Frame is a 2D grid of float32 pixel samples. See the domain package for
// layout details.
type Frame = domain.Frame

// FlowField is a dense grid of per-pixel motion vectors.
type FlowField = domain.FlowField

// Parameters is the per-request solver parameter set.
type Parameters = domain.SolverParameters

// Request is one interpolation work unit.
type Request = domain.InterpolationRequest

// Result is the outcome of one request.
type Result = pipeline.Result

// Snapshot is a point-in-time copy of pipeline counters.
type Snapshot = pipeline.Snapshot

// Errors surfaced by the pipeline, re-exported for errors.Is checks.
var (
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrResourceExhaustion = domain.ErrResourceExhaustion
)

// NewFrame allocates a zeroed Frame.
func NewFrame(width, height, channels int) *Frame {
	return domain.NewFrame(width, height, channels)
}

// Interpolator runs interpolation requests with a configured parameter set.
// It is safe for concurrent use; SetParameters applies only to requests
// started after the call.
type Interpolator struct {
	pipe    *pipeline.Pipeline
	logger  log.Logger
	plugins []Plugin
	cancel  context.CancelFunc

	mu       sync.RWMutex
	params   domain.SolverParameters
	lastFlow *domain.FlowField
	reuse    bool
	started  bool
}

// New creates an Interpolator. The configuration is validated up front;
// nothing is dispatched until the first request.
func New(cfg Config, opts ...Option) (*Interpolator, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	disp := o.dispatcher
	if disp == nil {
		disp = cpu.NewDispatcher(cfg.TileSize, cfg.Workers)
	}
	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	return &Interpolator{
		pipe:    pipeline.New(disp, logger, cfg.MaxPixels),
		logger:  logger,
		plugins: o.plugins,
		params:  cfg.parameters(),
		reuse:   o.reuseSeed,
	}, nil
}

// Start initializes registered plugins. It is a no-op when no plugins are
// registered; interpolation itself never requires Start.
func (it *Interpolator) Start(ctx context.Context) error {
	it.mu.Lock()
	if it.started {
		it.mu.Unlock()
		return fmt.Errorf("%w: already started", domain.ErrInvalidInput)
	}
	it.started = true
	it.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	it.cancel = cancel

	cfg := PluginConfig{Target: it, Logger: it.logger}
	for i, p := range it.plugins {
		if err := p.Initialize(runCtx, cfg); err != nil {
			// Roll back the plugins that did come up.
			for j := i - 1; j >= 0; j-- {
				_ = it.plugins[j].Shutdown(ctx)
			}
			cancel()
			it.mu.Lock()
			it.started = false
			it.mu.Unlock()
			return fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
		it.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}
	return nil
}

// Close shuts down plugins in reverse registration order. It does not wait
// for in-flight interpolation requests.
func (it *Interpolator) Close(ctx context.Context) error {
	if it.cancel != nil {
		it.cancel()
	}
	var firstErr error
	for i := len(it.plugins) - 1; i >= 0; i-- {
		if err := it.plugins[i].Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	it.mu.Lock()
	it.started = false
	it.mu.Unlock()
	return firstErr
}

// Interpolate synthesizes the frame between a and b at temporal position t
// using the Interpolator's current parameters.
func (it *Interpolator) Interpolate(ctx context.Context, a, b *Frame, t float64) (*Result, error) {
	it.mu.RLock()
	req := domain.InterpolationRequest{
		FrameA: a,
		FrameB: b,
		T:      float32(t),
		Params: it.params,
		Seed:   it.seedFor(a),
	}
	it.mu.RUnlock()

	res, err := it.pipe.Interpolate(ctx, req)
	if err != nil {
		return nil, err
	}

	if it.reuse {
		it.mu.Lock()
		it.lastFlow = res.Flow
		it.mu.Unlock()
	}
	return res, nil
}

// Do runs a fully caller-specified request, bypassing the Interpolator's
// parameter set and seed handling.
func (it *Interpolator) Do(ctx context.Context, req Request) (*Result, error) {
	return it.pipe.Interpolate(ctx, req)
}

// SetParameters replaces the solver parameters used by subsequent requests.
// In-flight requests are unaffected.
func (it *Interpolator) SetParameters(p Parameters) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	it.mu.Lock()
	it.params = p
	it.mu.Unlock()
	return nil
}

// Parameters returns the solver parameters currently in effect.
func (it *Interpolator) Parameters() Parameters {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.params
}

// Stats returns a snapshot of the pipeline counters.
func (it *Interpolator) Stats() Snapshot {
	return it.pipe.Stats().Snapshot()
}

// seedFor returns the retained flow field if seed reuse is enabled and the
// field still matches the frame dimensions. Callers must hold mu.
func (it *Interpolator) seedFor(a *Frame) *domain.FlowField {
	if !it.reuse || it.lastFlow == nil || a == nil {
		return nil
	}
	if !it.lastFlow.MatchesFrame(a) {
		return nil
	}
	return it.lastFlow
}
