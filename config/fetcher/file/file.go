package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// DefaultPerm is the permission of files created by a Writer.
const DefaultPerm os.FileMode = 0o644

const dirPerm os.FileMode = 0o755

type options struct {
	fs   afero.Fs
	perm os.FileMode
}

// Option configures a Fetcher or a Writer.
type Option func(*options)

// WithFs sets the filesystem used to access the file. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithPerm sets the permission of files written by a Writer.
func WithPerm(perm os.FileMode) Option {
	return func(o *options) {
		o.perm = perm
	}
}

func buildOptions(opts []Option) options {
	o := options{fs: nil, perm: DefaultPerm}

	for _, apply := range opts {
		apply(&o)
	}

	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}

	return o
}

// Fetcher implements config.DataFetcher interface for file-based configuration.
// It reads configuration data from a file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// with the specified filepath. The file is read at construction time and cached.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
// Returns an error if the file cannot be read or if the path points to a directory.
func NewFetcher(fpath string, opts ...Option) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		o := buildOptions(opts)
		cleanPath := filepath.Clean(fpath)

		err := checkNotDir(o.fs, cleanPath)
		if err != nil {
			return nil, err
		}

		data, err := afero.ReadFile(o.fs, cleanPath)
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

// Fetch returns a copy of the cached configuration data that was read at construction time.
// A copy is returned to prevent callers from mutating the cached data.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Writer implements config.DataWriter interface for file-based configuration.
// Data is written to a temporary file in the target directory and renamed
// over the target, so readers never observe a partially written file.
type Writer struct {
	filepath string
	fs       afero.Fs
	perm     os.FileMode
}

// NewWriter returns a constructor function that creates a new file-based Writer.
// The target may not exist yet; it is an error for it to be a directory.
func NewWriter(fpath string, opts ...Option) func() (*Writer, error) {
	return func() (*Writer, error) {
		o := buildOptions(opts)
		cleanPath := filepath.Clean(fpath)

		err := checkNotDir(o.fs, cleanPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		return &Writer{
			filepath: cleanPath,
			fs:       o.fs,
			perm:     o.perm,
		}, nil
	}
}

// Path returns the cleaned path data is written to.
func (w *Writer) Path() string {
	return w.filepath
}

// Write replaces the content of the target file with data, creating missing
// parent directories.
func (w *Writer) Write(data []byte) (err error) {
	dir := filepath.Dir(w.filepath)

	err = w.fs.MkdirAll(dir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(w.filepath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %q: %w", dir, err)
	}

	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			err = multierr.Append(err, ignoreNotExist(w.fs.Remove(tmpName)))
		}
	}()

	_, writeErr := tmp.Write(data)
	err = multierr.Combine(writeErr, tmp.Close())

	if err != nil {
		return fmt.Errorf("writing temp file %q: %w", tmpName, err)
	}

	err = w.fs.Chmod(tmpName, w.perm)
	if err != nil {
		return fmt.Errorf("chmod temp file %q: %w", tmpName, err)
	}

	err = w.fs.Rename(tmpName, w.filepath)
	if err != nil {
		return fmt.Errorf("renaming %q to %q: %w", tmpName, w.filepath, err)
	}

	return nil
}

func checkNotDir(fs afero.Fs, cleanPath string) error {
	stat, err := fs.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	return nil
}

func ignoreNotExist(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
