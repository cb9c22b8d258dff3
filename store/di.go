package store

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

// NewModule creates an Fx module providing a *Store for cfg.
// The file is loaded when the Store is constructed, so other constructors can
// read configuration from it. With AutoSave enabled the tree is saved when the
// application stops.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(cfg Config, opts ...Option) fx.Option {
	return fx.Module("store",
		fx.Provide(func(lifecycle fx.Lifecycle) (*Store, error) {
			st, err := New(cfg, opts...)
			if err != nil {
				return nil, err
			}

			err = st.Load()
			if err != nil {
				return nil, err
			}

			lifecycle.Append(fx.Hook{
				OnStart: nil,
				OnStop: func(context.Context) error {
					if !st.cfg.AutoSave {
						return nil
					}

					err := st.Save()
					if err != nil {
						slog.Error("failed to save config on stop", "path", st.cfg.Path, "error", err)
					}

					return err
				},
			})

			return st, nil
		}),
	)
}
