package paramwatcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lumen-labs/frameweave/pkg/frameweave"
	"github.com/lumen-labs/frameweave/pkg/log"
)

// fakeTarget records parameter updates pushed by the plugin.
type fakeTarget struct {
	mu     sync.Mutex
	params frameweave.Parameters
	sets   int
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{params: defaultParams()}
}

func defaultParams() frameweave.Parameters {
	var p frameweave.Parameters
	p.PyramidLevels = 3
	p.Iterations = 20
	p.Lambda = 0.05
	p.Epsilon = 1e-6
	p.UpsampleRescale = true
	p.SmoothFlow = true
	return p
}

func (f *fakeTarget) SetParameters(p frameweave.Parameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	f.params = p
	f.sets++
	f.mu.Unlock()
	return nil
}

func (f *fakeTarget) Parameters() frameweave.Parameters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.params
}

func (f *fakeTarget) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestPluginAppliesExistingFileOnStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")
	if err := os.WriteFile(path, []byte("iterations = 7\nlambda = 0.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := newFakeTarget()
	plugin := New(Config{Path: path, DebounceDelay: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := plugin.Initialize(ctx, frameweave.PluginConfig{
		Target: target,
		Logger: log.NewNoopLogger(),
	}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plugin.Shutdown(context.Background())

	waitFor(t, 2*time.Second, func() bool { return target.setCount() >= 1 })

	got := target.Parameters()
	if got.Iterations != 7 {
		t.Errorf("Iterations = %d, want 7", got.Iterations)
	}
	if got.Lambda != 0.1 {
		t.Errorf("Lambda = %v, want 0.1", got.Lambda)
	}
	// Keys absent from the file keep their current values.
	if got.PyramidLevels != 3 {
		t.Errorf("PyramidLevels = %d, want untouched 3", got.PyramidLevels)
	}
}

func TestPluginReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")

	target := newFakeTarget()
	plugin := New(Config{Path: path, DebounceDelay: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := plugin.Initialize(ctx, frameweave.PluginConfig{
		Target: target,
		Logger: log.NewNoopLogger(),
	}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plugin.Shutdown(context.Background())

	if err := os.WriteFile(path, []byte("pyramid_levels = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, 2*time.Second, func() bool { return target.Parameters().PyramidLevels == 4 })
}

func TestPluginRejectsInvalidParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")
	if err := os.WriteFile(path, []byte("iterations = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := newFakeTarget()
	plugin := New(Config{Path: path, DebounceDelay: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := plugin.Initialize(ctx, frameweave.PluginConfig{
		Target: target,
		Logger: log.NewNoopLogger(),
	}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plugin.Shutdown(context.Background())

	// Give the startup reload a moment, then confirm nothing was applied.
	time.Sleep(200 * time.Millisecond)
	if target.setCount() != 0 {
		t.Errorf("invalid parameter file was applied %d times, want 0", target.setCount())
	}
	if got := target.Parameters().Iterations; got != 20 {
		t.Errorf("Iterations = %d, want untouched 20", got)
	}
}

func TestPluginRequiresPath(t *testing.T) {
	plugin := New(Config{})
	err := plugin.Initialize(context.Background(), frameweave.PluginConfig{
		Target: newFakeTarget(),
		Logger: log.NewNoopLogger(),
	})
	if err == nil {
		t.Fatal("expected error when no path is configured")
	}
}

func TestPluginShutdownStopsWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")

	target := newFakeTarget()
	plugin := New(Config{Path: path, DebounceDelay: 10 * time.Millisecond})

	ctx := context.Background()
	if err := plugin.Initialize(ctx, frameweave.PluginConfig{
		Target: target,
		Logger: log.NewNoopLogger(),
	}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := plugin.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	// Writes after shutdown must not be applied.
	if err := os.WriteFile(path, []byte("iterations = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if got := target.Parameters().Iterations; got != 20 {
		t.Errorf("Iterations = %d, want untouched 20 after shutdown", got)
	}
}

func TestPluginShutdownCancelsPendingReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")

	target := newFakeTarget()
	// Long debounce so the reload is still pending when Shutdown runs.
	plugin := New(Config{Path: path, DebounceDelay: 500 * time.Millisecond})

	ctx := context.Background()
	if err := plugin.Initialize(ctx, frameweave.PluginConfig{
		Target: target,
		Logger: log.NewNoopLogger(),
	}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("iterations = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Let the watch loop see the event and arm the debounce timer.
	time.Sleep(100 * time.Millisecond)

	if err := plugin.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	// Past the debounce delay; the armed timer must have been stopped.
	time.Sleep(700 * time.Millisecond)
	if got := target.setCount(); got != 0 {
		t.Errorf("reload fired %d times after shutdown, want 0", got)
	}
	if got := target.Parameters().Iterations; got != 20 {
		t.Errorf("Iterations = %d, want untouched 20", got)
	}
}
