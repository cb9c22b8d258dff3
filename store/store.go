package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/0xalexb/hjarta-nullcfg/config"
	filefetcher "github.com/0xalexb/hjarta-nullcfg/config/fetcher/file"

	"github.com/spf13/afero"
)

// Store binds a configuration tree to a file. All access to the tree goes
// through View and Update, which serialize readers and writers.
type Store struct {
	mu    sync.RWMutex
	cfg   Config
	fs    afero.Fs
	codec config.Codec
	tree  *config.Configuration
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem holding the file. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// New creates a Store. It sets config defaults and validates the config; the
// file is not read until Load is called.
func New(cfg Config, opts ...Option) (*Store, error) {
	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	codec, err := NewCodec(cfg.Format)
	if err != nil {
		return nil, err
	}

	s := &Store{
		mu:    sync.RWMutex{},
		cfg:   cfg,
		fs:    nil,
		codec: codec,
		tree:  config.New(config.WithPathSeparator(cfg.separator())),
	}

	for _, apply := range opts {
		apply(s)
	}

	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}

	return s, nil
}

// Config returns the store configuration with defaults applied.
func (s *Store) Config() Config {
	return s.cfg
}

// Codec returns the codec used for the file.
//
//nolint:ireturn // the codec is chosen at runtime.
func (s *Store) Codec() config.Codec {
	return s.codec
}

// Load replaces the tree with the content of the file. A missing file yields
// an empty tree.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fetcher, err := filefetcher.NewFetcher(s.cfg.Path, filefetcher.WithFs(s.fs))()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("config file not found, starting empty", slog.String("path", s.cfg.Path))
			s.tree.LoadRaw(nil)

			return nil
		}

		return fmt.Errorf("loading %q: %w", s.cfg.Path, err)
	}

	err = s.tree.Load(s.codec, fetcher)
	if err != nil {
		return fmt.Errorf("loading %q: %w", s.cfg.Path, err)
	}

	slog.Debug("config loaded", slog.String("path", s.cfg.Path), slog.Int("keys", s.tree.Len()))

	return nil
}

// Reload is Load, logged at info level.
func (s *Store) Reload() error {
	err := s.Load()
	if err != nil {
		return err
	}

	slog.Info("config reloaded", slog.String("path", s.cfg.Path))

	return nil
}

// Save writes the tree to the file.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.save()
}

func (s *Store) save() error {
	writer, err := filefetcher.NewWriter(s.cfg.Path, filefetcher.WithFs(s.fs))()
	if err != nil {
		return fmt.Errorf("saving %q: %w", s.cfg.Path, err)
	}

	err = s.tree.Save(s.codec, writer)
	if err != nil {
		return fmt.Errorf("saving %q: %w", s.cfg.Path, err)
	}

	slog.Debug("config saved", slog.String("path", s.cfg.Path))

	return nil
}

// View calls fn with the tree under a read lock. fn must not mutate the tree
// or retain it after returning.
func (s *Store) View(fn func(cfg *config.Configuration) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.tree)
}

// Update calls fn with the tree under a write lock. When fn succeeds and
// AutoSave is enabled the tree is written to the file before returning.
// If fn or the save fails the tree is restored to its state before the call.
func (s *Store) Update(fn func(cfg *config.Configuration) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.tree.Raw()

	err := fn(s.tree)
	if err == nil && s.cfg.AutoSave {
		err = s.save()
	}

	if err != nil {
		s.tree.LoadRaw(snapshot)

		return err
	}

	return nil
}

// Provide returns a function that decodes the section at path into target
// using the store codec. See config.Provider.
func Provide[T any](target *T, path string) func(*Store) (*T, error) {
	return func(s *Store) (*T, error) {
		var result *T

		err := s.View(func(cfg *config.Configuration) error {
			var err error

			result, err = config.Provider(target, path)(cfg, s.codec)

			return err
		})
		if err != nil {
			return nil, fmt.Errorf("providing %q: %w", path, err)
		}

		return result, nil
	}
}
