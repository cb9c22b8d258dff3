package config

import (
	"fmt"
	"unicode/utf8"
)

// DefaultPathSeparator delimits path segments unless configured otherwise.
const DefaultPathSeparator = '.'

// Configuration is the root of a configuration tree. It embeds the root
// Section and owns the tree-wide path separator.
type Configuration struct {
	Section

	separator rune
}

// Option configures a Configuration.
type Option func(*Configuration)

// WithPathSeparator sets the rune delimiting path segments.
func WithPathSeparator(sep rune) Option {
	return func(c *Configuration) {
		c.SetPathSeparator(sep)
	}
}

// New creates an empty configuration tree.
func New(opts ...Option) *Configuration {
	cfg := &Configuration{separator: DefaultPathSeparator}
	cfg.init(cfg, nil, "")

	for _, apply := range opts {
		apply(cfg)
	}

	return cfg
}

// PathSeparator returns the rune delimiting path segments.
func (c *Configuration) PathSeparator() rune {
	return c.separator
}

// SetPathSeparator changes the separator for every path of the tree.
// The zero rune and invalid runes are ignored.
func (c *Configuration) SetPathSeparator(sep rune) {
	if sep == 0 || sep == utf8.RuneError || !utf8.ValidRune(sep) {
		return
	}

	c.separator = sep
}

// LoadRaw replaces the whole tree with the content of tree.
func (c *Configuration) LoadRaw(tree MapSlice) {
	c.init(c, nil, "")
	c.fill(tree)
}

// LoadBytes parses data and replaces the tree with the result.
// On error the current tree is left untouched.
func (c *Configuration) LoadBytes(parser Parser, data []byte) error {
	tree, err := parser.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing error: %w", err)
	}

	c.LoadRaw(tree)

	return nil
}

// Load reads data from fetcher and replaces the tree with its parsed content.
func (c *Configuration) Load(parser Parser, fetcher DataFetcher) error {
	data, err := fetcher.Fetch()
	if err != nil {
		return fmt.Errorf("reading data error: %w", err)
	}

	return c.LoadBytes(parser, data)
}

// Marshal renders the tree with emitter.
func (c *Configuration) Marshal(emitter Emitter) ([]byte, error) {
	data, err := emitter.Emit(c.Raw())
	if err != nil {
		return nil, fmt.Errorf("emitting error: %w", err)
	}

	return data, nil
}

// Save renders the tree with emitter and hands the result to writer.
func (c *Configuration) Save(emitter Emitter, writer DataWriter) error {
	data, err := c.Marshal(emitter)
	if err != nil {
		return err
	}

	err = writer.Write(data)
	if err != nil {
		return fmt.Errorf("writing data error: %w", err)
	}

	return nil
}
