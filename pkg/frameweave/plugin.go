package frameweave

import "context"

// ParameterTarget is the surface a plugin may use to read and replace the
// solver parameters of a running Interpolator.
type ParameterTarget interface {
	SetParameters(Parameters) error
	Parameters() Parameters
}

// PluginConfig carries the runtime handles passed to each plugin when the
// Interpolator starts.
type PluginConfig struct {
	Target ParameterTarget
	Logger Logger
}

// Plugin extends an Interpolator with background behavior, such as watching
// a parameter file for live updates. Plugins are initialized in registration
// order when Start is called and shut down in reverse order on Close.
type Plugin interface {
	// Name returns the plugin identifier, used in log output.
	Name() string

	// Initialize starts the plugin. The context is cancelled when the
	// Interpolator is closed; long-running work must watch it.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and waits for its goroutines to exit.
	Shutdown(ctx context.Context) error
}
