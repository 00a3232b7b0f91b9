// Package paramwatcher provides live solver parameter reloading.
// When enabled, it watches a TOML parameter file and applies changes to a
// running Interpolator without restarting it.
package paramwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/lumen-labs/frameweave/pkg/frameweave"
	"github.com/lumen-labs/frameweave/pkg/log"
)

// Plugin implements parameter file watching. It monitors a single TOML file
// and pushes parsed updates to the interpolator when the file changes.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	path          string
	debounceDelay time.Duration

	// Runtime state
	target   frameweave.ParameterTarget
	logger   log.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	stopped  bool
}

// Config holds configuration options for the parameter watcher plugin.
type Config struct {
	// Path is the TOML parameter file to watch. Required.
	Path string

	// DebounceDelay is the delay to wait after a file change before
	// reloading. Editors often produce several events per save.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// fileParams mirrors the solver parameter set with TOML-friendly tags.
// Absent keys keep the current value.
type fileParams struct {
	PyramidLevels   *int     `toml:"pyramid_levels"`
	Iterations      *int     `toml:"iterations"`
	Lambda          *float64 `toml:"lambda"`
	Epsilon         *float64 `toml:"epsilon"`
	UpsampleRescale *bool    `toml:"upsample_rescale"`
	SmoothFlow      *bool    `toml:"smooth_flow"`
}

// New creates a parameter watcher plugin for the given file.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "paramwatcher"
}

// Initialize validates the watched path and starts the watch loop.
func (p *Plugin) Initialize(ctx context.Context, cfg frameweave.PluginConfig) error {
	p.target = cfg.Target
	p.logger = cfg.Logger

	if p.path == "" {
		return fmt.Errorf("paramwatcher: path not configured")
	}

	// Watch the parent directory rather than the file itself: editors that
	// rename-and-replace would otherwise detach the watch on first save.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("paramwatcher: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("paramwatcher: watch %s: %w", filepath.Dir(p.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Lock()
	p.stopped = false
	p.mu.Unlock()

	// Apply the file's current contents before watching, so a file written
	// ahead of startup is not silently ignored.
	if _, err := os.Stat(p.path); err == nil {
		p.reload()
	}

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the watcher and waits for the watch loop to exit. A pending
// debounced reload is cancelled so no apply fires after Shutdown returns.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Lock()
	p.stopped = true
	if p.debounce != nil {
		p.debounce.Stop()
		p.debounce = nil
	}
	p.mu.Unlock()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	base := filepath.Base(p.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("param watcher: watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, p.reload)
}

// reload reads the parameter file and applies it on top of the target's
// current parameters. A malformed or rejected file leaves the target
// untouched.
func (p *Plugin) reload() {
	b, err := os.ReadFile(p.path)
	if err != nil {
		p.logger.Error("param watcher: read failed", log.String("path", p.path), log.Err(err))
		return
	}

	var fp fileParams
	if err := toml.Unmarshal(b, &fp); err != nil {
		p.logger.Error("param watcher: parse failed", log.String("path", p.path), log.Err(err))
		return
	}

	params := p.target.Parameters()
	if fp.PyramidLevels != nil {
		params.PyramidLevels = *fp.PyramidLevels
	}
	if fp.Iterations != nil {
		params.Iterations = *fp.Iterations
	}
	if fp.Lambda != nil {
		params.Lambda = float32(*fp.Lambda)
	}
	if fp.Epsilon != nil {
		params.Epsilon = float32(*fp.Epsilon)
	}
	if fp.UpsampleRescale != nil {
		params.UpsampleRescale = *fp.UpsampleRescale
	}
	if fp.SmoothFlow != nil {
		params.SmoothFlow = *fp.SmoothFlow
	}

	if err := p.target.SetParameters(params); err != nil {
		p.logger.Error("param watcher: rejected parameters", log.Err(err))
		return
	}

	p.logger.Info("param watcher: parameters reloaded",
		log.Int("pyramid_levels", params.PyramidLevels),
		log.Int("iterations", params.Iterations),
		log.Float64("lambda", float64(params.Lambda)))
}

// Ensure Plugin implements frameweave.Plugin.
var _ frameweave.Plugin = (*Plugin)(nil)
