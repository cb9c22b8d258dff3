// Package file provides file-based DataFetcher and DataWriter implementations
// for the config package.
//
// Files are accessed through github.com/spf13/afero, so tests and tools can
// swap the OS filesystem for an in-memory one with WithFs.
//
// The Fetcher reads the file at construction time and caches it, meaning
// subsequent calls to Fetch() return the same data without re-reading the
// filesystem. Construct a new Fetcher to pick up changes.
//
// The Writer replaces the target atomically: data goes to a temporary file in
// the same directory which is then renamed over the target. Missing parent
// directories are created.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/config.yaml")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	err = cfg.Load(yamlparser.NewParser(), fetcher)
//
//	writer, err := file.NewWriter("/path/to/config.yaml")()
//	err = cfg.Save(yamlparser.NewParser(), writer)
//
// Error Handling:
//   - Construction returns error if file cannot be read or path is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
//   - Use errors.Is(err, os.ErrNotExist) to detect a missing file
package file
