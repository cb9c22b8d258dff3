package nullcfg_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"

	nullcfg "github.com/0xalexb/hjarta-nullcfg"
	"github.com/0xalexb/hjarta-nullcfg/config"
	"github.com/0xalexb/hjarta-nullcfg/listener"
	"github.com/0xalexb/hjarta-nullcfg/logging"
	"github.com/0xalexb/hjarta-nullcfg/store"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestNewApp_CreatesAppWithDefaultLogLevel(t *testing.T) {
	t.Parallel()

	app := nullcfg.NewApp()
	require.NotNil(t, app)
}

func TestNewApp_WithLogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := nullcfg.NewApp(nullcfg.WithLogLevel(tc.level))
			require.NotNil(t, app)
		})
	}
}

func TestNewApp_WithModules(t *testing.T) {
	t.Parallel()

	var invoked bool

	module := fx.Module("test",
		fx.Invoke(func() {
			invoked = true
		}),
	)

	app := nullcfg.NewApp(nullcfg.WithModules(module))
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.True(t, invoked)
}

func TestNewApp_LoggerIsAvailableInFxContainer(t *testing.T) {
	t.Parallel()

	var capturedLogger *slog.Logger

	module := fx.Module("test",
		fx.Invoke(func(logger *slog.Logger) {
			capturedLogger = logger
		}),
	)

	app := nullcfg.NewApp(
		nullcfg.WithLogLevel("debug"),
		nullcfg.WithModules(module),
	)
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.NotNil(t, capturedLogger)
}

func TestNewApp_LoggerConfigIsSupplied(t *testing.T) {
	t.Parallel()

	var capturedConfig logging.LoggerConfig

	module := fx.Module("test",
		fx.Invoke(func(config logging.LoggerConfig) {
			capturedConfig = config
		}),
	)

	app := nullcfg.NewApp(
		nullcfg.WithLogLevel("warn"),
		nullcfg.WithLogFormat("text"),
		nullcfg.WithModules(module),
	)
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.Equal(t, "warn", capturedConfig.Level)
	require.Equal(t, "text", capturedConfig.Format)
}

func TestNewApp_WithLogOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	module := fx.Module("test",
		fx.Invoke(func(logger *slog.Logger) {
			logger.Info("store ready", slog.Any("motd", config.Null))
		}),
	)

	app := nullcfg.NewApp(
		nullcfg.WithLogFormat("text"),
		nullcfg.WithLogOutput(&buf),
		nullcfg.WithModules(module),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	assert.Contains(t, buf.String(), `msg="store ready" motd=null`)
}

func TestApp_Stop(t *testing.T) {
	t.Parallel()

	var stopCalled bool

	module := fx.Module("test",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					stopCalled = true

					return nil
				},
			})
		}),
	)

	app := nullcfg.NewApp(nullcfg.WithModules(module))
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)

	err = app.Stop()
	require.NoError(t, err)
	require.True(t, stopCalled, "OnStop hook should be called")
}

func TestApp_StopOnNilApp(t *testing.T) {
	t.Parallel()

	var app *nullcfg.App

	err := app.Stop()
	require.Error(t, err)
}

func TestApp_StartOnNilApp(t *testing.T) {
	t.Parallel()

	var app *nullcfg.App

	err := app.Start()
	require.Error(t, err)
}

func TestApp_RunOnNilApp(t *testing.T) {
	t.Parallel()

	var app *nullcfg.App

	require.NotPanics(t, func() {
		app.Run()
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	module := fx.Module("test",
		fx.Invoke(func(shutdowner fx.Shutdowner) {
			go func() {
				_ = shutdowner.Shutdown()
			}()
		}),
	)

	app := nullcfg.NewApp(nullcfg.WithModules(module))
	require.NotNil(t, app)

	require.NotPanics(t, func() {
		app.Run()
	})
}

func freePort(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func TestNewApp_StoreOverHTTP(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/config.yml", []byte("server:\n  motd: null\n"), 0o600))

	addr := freePort(t)

	var st *store.Store

	app := nullcfg.NewApp(
		nullcfg.WithLogLevel("error"),
		nullcfg.WithStore(store.Config{Path: "/srv/config.yml", AutoSave: false}, store.WithFs(fs)),
		nullcfg.WithHTTPListener("api", listener.WithAddress(addr)),
		nullcfg.WithModules(fx.Populate(&st)),
	)
	require.NoError(t, app.Err())
	require.NoError(t, app.Start())

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut,
		"http://"+addr+"/config/server.port", strings.NewReader("25565"))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
	require.NoError(t, err)

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.NoError(t, app.Stop())

	err = st.View(func(cfg *config.Configuration) error {
		port, ok := cfg.GetInt("server.port")
		assert.True(t, ok)
		assert.Equal(t, 25565, port)
		assert.True(t, cfg.IsNull("server.motd"))

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, st.Save())

	data, err := afero.ReadFile(fs, "/srv/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "server:\n  motd: null\n  port: 25565\n", string(data))
}

func TestNewApp_StoreAutoSavesOnStop(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	var st *store.Store

	app := nullcfg.NewApp(
		nullcfg.WithLogLevel("error"),
		nullcfg.WithStore(store.Config{Path: "/srv/config.yml", AutoSave: true}, store.WithFs(fs)),
		nullcfg.WithModules(fx.Populate(&st)),
	)
	require.NoError(t, app.Start())

	// AutoSave writes on every Update; remove the file to observe the save on stop.
	require.NoError(t, st.Update(func(cfg *config.Configuration) error {
		return cfg.Set("debug", nil)
	}))
	require.NoError(t, fs.Remove("/srv/config.yml"))

	require.NoError(t, app.Stop())

	data, err := afero.ReadFile(fs, "/srv/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "debug: null\n", string(data))
}

func TestNewApp_InvalidStoreConfig(t *testing.T) {
	t.Parallel()

	app := nullcfg.NewApp(
		nullcfg.WithLogLevel("error"),
		nullcfg.WithStore(store.Config{Path: ""}),
		nullcfg.WithModules(fx.Invoke(func(*store.Store) {})),
	)

	require.ErrorIs(t, app.Err(), store.ErrNoFile)
	require.Error(t, app.Start())
}

func TestApp_ErrOnNilApp(t *testing.T) {
	t.Parallel()

	var app *nullcfg.App

	require.Error(t, app.Err())
}
