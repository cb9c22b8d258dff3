// nullcfg reads and edits YAML or JSONC configuration files without losing
// explicit nulls, and can serve a file over HTTP.
//
//	nullcfg [flags] get <path>
//	nullcfg [flags] kind <path>
//	nullcfg [flags] set <path> <yaml-value>
//	nullcfg [flags] unset <path>
//	nullcfg [flags] create <path>
//	nullcfg [flags] dump
//	nullcfg [flags] serve
//
// Flags must precede the command; everything after it is taken literally, so
// negative numbers and values starting with a dash need no quoting.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	nullcfg "github.com/0xalexb/hjarta-nullcfg"
	"github.com/0xalexb/hjarta-nullcfg/config"
	yamlparser "github.com/0xalexb/hjarta-nullcfg/config/parser/yaml"
	"github.com/0xalexb/hjarta-nullcfg/listener"
	"github.com/0xalexb/hjarta-nullcfg/logging"
	"github.com/0xalexb/hjarta-nullcfg/store"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

var (
	errUsage    = errors.New("usage")
	errNotFound = errors.New("not found")
)

type options struct {
	file      string
	format    string
	separator string
	logLevel  string
	logFormat string
	addr      string
	readOnly  bool
	version   bool
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr, afero.NewOsFs())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		if errors.Is(err, errUsage) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer, fs afero.Fs) error {
	var opts options

	flagSet := pflag.NewFlagSet("nullcfg", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVarP(&opts.file, "file", "f", "config.yml", "configuration file")
	flagSet.StringVar(&opts.format, "format", "", "file format: yaml, yamlv3 or jsonc (default: from extension)")
	flagSet.StringVar(&opts.separator, "separator", store.DefaultPathSeparator, "path separator")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flagSet.StringVar(&opts.logFormat, "log-format", logging.FormatText, "log format: text or json")
	flagSet.StringVar(&opts.addr, "addr", listener.DefaultAddress, "listen address for serve")
	flagSet.BoolVar(&opts.readOnly, "read-only", false, "serve without mutation routes")
	flagSet.BoolVar(&opts.version, "version", false, "print version and exit")

	err := flagSet.Parse(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if opts.version {
		_, _ = fmt.Fprintln(stdout, "nullcfg", nullcfg.BuildInfo())

		return nil
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	slog.SetDefault(logging.NewLogger(logging.LoggerConfig{
		Level:     opts.logLevel,
		Format:    opts.logFormat,
		AddSource: false,
	}, stderr))

	storeCfg := store.Config{
		Path:          opts.file,
		Format:        store.Format(opts.format),
		PathSeparator: opts.separator,
		AutoSave:      false,
	}

	command, params := rest[0], rest[1:]

	if command == "serve" {
		return serve(storeCfg, opts, stderr, fs, params)
	}

	st, err := store.New(storeCfg, store.WithFs(fs))
	if err != nil {
		return err
	}

	err = st.Load()
	if err != nil {
		return err
	}

	switch command {
	case "get":
		return get(st, stdout, params)
	case "kind":
		return kind(st, stdout, params)
	case "dump":
		return dump(st, stdout, params)
	case "set", "unset", "create":
		return mutate(st, command, params)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func wantArgs(command string, params []string, n int) error {
	if len(params) != n {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", errUsage, command, n, len(params))
	}

	return nil
}

// valueCodec renders single values in the store's output flavor.
func valueCodec(st *store.Store) *yamlparser.Parser {
	if st.Config().Format == store.FormatJSONC {
		return yamlparser.NewParser(yamlparser.WithJSONOutput())
	}

	return yamlparser.NewParser()
}

func get(st *store.Store, stdout io.Writer, params []string) error {
	err := wantArgs("get", params, 1)
	if err != nil {
		return err
	}

	path := params[0]

	return st.View(func(cfg *config.Configuration) error {
		value, found := cfg.Get(path)
		if !found {
			return fmt.Errorf("%w: %q", errNotFound, path)
		}

		if section, ok := value.(*config.Section); ok {
			value = section.Raw()
		}

		out, err := valueCodec(st).EmitValue(value)
		if err != nil {
			return err
		}

		_, err = stdout.Write(out)

		return err //nolint:wrapcheck
	})
}

func kind(st *store.Store, stdout io.Writer, params []string) error {
	err := wantArgs("kind", params, 1)
	if err != nil {
		return err
	}

	return st.View(func(cfg *config.Configuration) error {
		_, k := cfg.Lookup(params[0])
		_, err := fmt.Fprintln(stdout, k)

		return err //nolint:wrapcheck
	})
}

func dump(st *store.Store, stdout io.Writer, params []string) error {
	err := wantArgs("dump", params, 0)
	if err != nil {
		return err
	}

	return st.View(func(cfg *config.Configuration) error {
		out, err := cfg.Marshal(st.Codec())
		if err != nil {
			return err
		}

		_, err = stdout.Write(out)

		return err //nolint:wrapcheck
	})
}

func mutate(st *store.Store, command string, params []string) error {
	want := 1
	if command == "set" {
		want = 2
	}

	err := wantArgs(command, params, want)
	if err != nil {
		return err
	}

	path := params[0]

	var value any

	if command == "set" {
		value, err = yamlparser.NewParser().ParseValue([]byte(params[1]))
		if err != nil {
			return fmt.Errorf("parsing value: %w", err)
		}
	}

	err = st.Update(func(cfg *config.Configuration) error {
		switch command {
		case "set":
			return cfg.Set(path, value)
		case "unset":
			return cfg.Unset(path)
		default:
			_, err := cfg.CreateSection(path)

			return err
		}
	})
	if err != nil {
		return err
	}

	return st.Save()
}

func serve(storeCfg store.Config, opts options, stderr io.Writer, fs afero.Fs, params []string) error {
	err := wantArgs("serve", params, 0)
	if err != nil {
		return err
	}

	storeCfg.AutoSave = !opts.readOnly

	listenerOpts := []listener.Option{listener.WithAddress(opts.addr)}
	if opts.readOnly {
		listenerOpts = append(listenerOpts, listener.WithReadOnly())
	}

	app := nullcfg.NewApp(
		nullcfg.WithLogLevel(opts.logLevel),
		nullcfg.WithLogFormat(opts.logFormat),
		nullcfg.WithLogOutput(stderr),
		nullcfg.WithStore(storeCfg, store.WithFs(fs)),
		nullcfg.WithHTTPListener("api", listenerOpts...),
	)

	err = app.Err()
	if err != nil {
		return err
	}

	app.Run()

	return nil
}
