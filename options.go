package nullcfg

import (
	"io"

	"github.com/0xalexb/hjarta-nullcfg/listener"
	"github.com/0xalexb/hjarta-nullcfg/store"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	LogOutput io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithStore adds a file-backed configuration store to the application.
// The *store.Store is loaded during construction and, with AutoSave, saved
// when the application stops. An application holds at most one store.
func WithStore(cfg store.Config, opts ...store.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, store.NewModule(cfg, opts...))
	}
}

// WithHTTPListener adds a named HTTP listener serving the application's store.
// When options are provided (e.g., WithAddress), Config is supplied to DI
// automatically; otherwise a Config tagged with name must be provided.
// Call multiple times with different names to create multiple listeners.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput sets where logs are written. Defaults to os.Stderr.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}
