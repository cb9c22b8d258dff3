package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/0xalexb/hjarta-nullcfg/config"
	"github.com/0xalexb/hjarta-nullcfg/config/parser/jsonc"
	yamlparser "github.com/0xalexb/hjarta-nullcfg/config/parser/yaml"
	"github.com/0xalexb/hjarta-nullcfg/config/parser/yamlv3"
)

// Format names a codec.
type Format string

const (
	// FormatYAML uses the goccy/go-yaml codec.
	FormatYAML Format = "yaml"
	// FormatYAMLv3 uses the gopkg.in/yaml.v3 codec.
	FormatYAMLv3 Format = "yamlv3"
	// FormatJSONC uses the JSON-with-comments codec.
	FormatJSONC Format = "jsonc"
)

// DefaultPathSeparator is the separator used when Config.PathSeparator is empty.
const DefaultPathSeparator = "."

// ErrNoFile is returned when the file path is empty.
var ErrNoFile = errors.New("file path must not be empty")

// ErrUnknownFormat is returned for an unsupported Format.
var ErrUnknownFormat = errors.New("unknown format")

// ErrInvalidSeparator is returned when the path separator is not a single rune.
var ErrInvalidSeparator = errors.New("path separator must be a single character")

// Config holds the configuration for a Store.
type Config struct {
	Path          string `yaml:"path"`
	Format        Format `yaml:"format"`
	PathSeparator string `yaml:"path_separator"`
	AutoSave      bool   `yaml:"auto_save"`
}

// SetDefaults sets default values for the Config. The format is derived from
// the file extension when not set.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Format == "" {
		c.Format = FormatFromPath(c.Path)
		changed = true
	}

	if c.PathSeparator == "" {
		c.PathSeparator = DefaultPathSeparator
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Path == "" {
		return ErrNoFile
	}

	_, err := NewCodec(c.Format)
	if err != nil {
		return err
	}

	if utf8.RuneCountInString(c.PathSeparator) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidSeparator, c.PathSeparator)
	}

	return nil
}

func (c *Config) separator() rune {
	sep, _ := utf8.DecodeRuneInString(c.PathSeparator)

	return sep
}

// FormatFromPath guesses the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSONC
	default:
		return FormatYAML
	}
}

// NewCodec returns the codec for format.
//
//nolint:ireturn // callers only need the interface.
func NewCodec(format Format) (config.Codec, error) {
	switch format {
	case FormatYAML:
		return yamlparser.NewParser(), nil
	case FormatYAMLv3:
		return yamlv3.NewParser(), nil
	case FormatJSONC:
		return jsonc.NewParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
