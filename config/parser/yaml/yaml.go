package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/0xalexb/hjarta-nullcfg/config"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// ErrNotMapping is returned when the document root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// Parser implements config.Codec for YAML data using goccy/go-yaml.
type Parser struct {
	json bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithJSONOutput makes Emit produce JSON, which is also valid YAML.
func WithJSONOutput() Option {
	return func(p *Parser) {
		p.json = true
	}
}

// NewParser creates a new YAML parser instance.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{json: false}

	for _, apply := range opts {
		apply(parser)
	}

	return parser
}

// Parse decodes a YAML document into an ordered raw tree. An empty document
// yields an empty tree. Explicit nulls are kept as nil values.
func (p *Parser) Parse(data []byte) (config.MapSlice, error) {
	var doc any

	err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	switch root := doc.(type) {
	case nil:
		return config.MapSlice{}, nil
	case yaml.MapSlice:
		return fromMapSlice(root), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, doc)
	}
}

// ParseValue decodes a YAML document of any kind. Mappings come back as
// config.MapSlice; an empty or null document yields nil.
func (p *Parser) ParseValue(data []byte) (any, error) {
	var doc any

	err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return fromValue(doc), nil
}

// Emit renders tree as a YAML document with sibling order preserved and nil
// values written as null.
func (p *Parser) Emit(tree config.MapSlice) ([]byte, error) {
	return p.EmitValue(tree)
}

// EmitValue renders a single value, scalar, sequence or raw tree, as a YAML
// document.
func (p *Parser) EmitValue(value any) ([]byte, error) {
	opts := []yaml.EncodeOption{yaml.IndentSequence(true)}
	if p.json {
		opts = []yaml.EncodeOption{yaml.JSON()}
	}

	data, err := yaml.MarshalWithOptions(toValue(value), opts...)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// Decode maps tree onto target through its YAML representation.
func (p *Parser) Decode(tree config.MapSlice, target any) error {
	data, err := p.Emit(tree)
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

// Extract unmarshals the node at path straight from a YAML document into
// target, without building a tree. Segments of path are delimited by sep.
// An empty path unmarshals the entire document.
func (p *Parser) Extract(data []byte, path string, sep rune, target any) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	yamlPath := convertToYAMLPath(path, sep)

	pathObj, err := yaml.PathString(yamlPath)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// convertToYAMLPath converts a separated path to goccy/go-yaml PathString format.
// Examples with '.' as separator:
//   - "key" -> "$.key"
//   - "api.permissions" -> "$.api.permissions"
func convertToYAMLPath(path string, sep rune) string {
	parts := strings.Split(path, string(sep))

	return "$." + strings.Join(parts, ".")
}

func fromMapSlice(in yaml.MapSlice) config.MapSlice {
	out := make(config.MapSlice, 0, len(in))

	for _, item := range in {
		out = append(out, config.MapItem{
			Key:   fmt.Sprint(item.Key),
			Value: fromValue(item.Value),
		})
	}

	return out
}

func fromValue(value any) any {
	switch v := value.(type) {
	case yaml.MapSlice:
		return fromMapSlice(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = fromValue(elem)
		}

		return out
	case uint64:
		if v <= math.MaxInt {
			return int(v)
		}

		return v
	case int64:
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}

		return v
	default:
		return value
	}
}

func toMapSlice(in config.MapSlice) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(in))

	for _, item := range in {
		out = append(out, yaml.MapItem{Key: item.Key, Value: toValue(item.Value)})
	}

	return out
}

func toValue(value any) any {
	switch v := value.(type) {
	case config.MapSlice:
		return toMapSlice(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = toValue(elem)
		}

		return out
	default:
		return value
	}
}
