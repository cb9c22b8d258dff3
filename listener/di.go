package listener

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-nullcfg/store"

	"go.uber.org/fx"
)

// NewModule creates an Fx module serving the application's *store.Store over
// HTTP under the given name. The name is used as both the module name and the
// DI named tag for Config. If any options are passed, the module supplies
// Config from those options. Otherwise a named Config must be provided
// externally (e.g., via store.Provide).
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	tag := fmt.Sprintf(`name:"%s"`, name)

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(tag))))
	}

	moduleOpts = append(moduleOpts, fx.Invoke(
		fx.Annotate(
			func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, st *store.Store, listenerCfg Config) error {
				srv, err := NewServer(name, st, listenerCfg, func() {
					shutdownErr := shutdowner.Shutdown()
					if shutdownErr != nil {
						slog.Error("failed to trigger shutdown", "name", name, "error", shutdownErr)
					}
				})
				if err != nil {
					return err
				}

				lifecycle.Append(fx.Hook{
					OnStart: srv.Start,
					OnStop:  srv.Stop,
				})

				return nil
			},
			fx.ParamTags("", "", "", tag),
		),
	))

	return fx.Module(name, moduleOpts...)
}
