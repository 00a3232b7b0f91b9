package paramwatcher

import "github.com/lumen-labs/frameweave/pkg/frameweave"

// WithParamWatcher returns a frameweave Option that enables live parameter
// reloading from a TOML file.
//
// Usage:
//
//	it, err := frameweave.New(cfg,
//	    paramwatcher.WithParamWatcher(paramwatcher.Config{
//	        Path: "params.toml",
//	    }),
//	)
//	err = it.Start(ctx)
func WithParamWatcher(cfg Config) frameweave.Option {
	plugin := New(cfg)
	return frameweave.WithPlugin(plugin)
}

// WithParamFile returns a frameweave Option that watches the given file with
// default settings (debounce 100ms).
func WithParamFile(path string) frameweave.Option {
	return WithParamWatcher(Config{Path: path})
}
