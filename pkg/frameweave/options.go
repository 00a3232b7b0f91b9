package frameweave

import (
	"github.com/lumen-labs/frameweave/internal/ports"
	"github.com/lumen-labs/frameweave/pkg/log"
)

// Dispatcher executes data-parallel kernels over a 2D grid. The default is a
// CPU tile dispatcher; a host application may substitute its own executor.
type Dispatcher = ports.Dispatcher

// Logger is the structured logging interface from pkg/log.
type Logger = log.Logger

// Option configures optional behavior of an Interpolator.
type Option func(*options)

type options struct {
	dispatcher Dispatcher
	logger     Logger
	reuseSeed  bool
	plugins    []Plugin
}

// WithPlugin registers a plugin to be initialized when the Interpolator
// starts. Plugins are initialized in registration order and shut down in
// reverse order.
func WithPlugin(p Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, p)
	}
}

// WithDispatcher sets a custom kernel dispatcher. If not provided, a CPU tile
// dispatcher built from the Config's TileSize and Workers is used.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = d
	}
}

// WithLogger sets a custom logger. If not provided, logs are discarded.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSeedReuse keeps the finest-level flow field of each request and uses it
// to warm-start the next one. Only useful when successive requests cover a
// continuous stream of same-sized frames; the retained field is dropped
// whenever frame dimensions change.
func WithSeedReuse() Option {
	return func(o *options) {
		o.reuseSeed = true
	}
}
