// Package yamlv3 provides a YAML codec for the config package built on the
// node API of gopkg.in/yaml.v3.
//
// It follows the same contract as config/parser/yaml: mapping order is
// preserved, explicit nulls are written as null and an empty document is an
// empty tree. Aliases are expanded on parse.
package yamlv3

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-nullcfg/config"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotMapping is returned when the document root is not a mapping.
	ErrNotMapping = errors.New("document root is not a mapping")
	// ErrNonScalarKey is returned for a mapping key that is a sequence or mapping.
	ErrNonScalarKey = errors.New("mapping key is not a scalar")
)

const (
	nullTag = "!!null"
	indent  = 2
)

// Parser implements config.Codec using gopkg.in/yaml.v3.
type Parser struct{}

// NewParser creates a new yaml.v3 codec instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML document into an ordered raw tree.
func (p *Parser) Parse(data []byte) (config.MapSlice, error) {
	var doc yaml.Node

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return config.MapSlice{}, nil
		}

		root = root.Content[0]
	}

	switch {
	case root.Kind == 0:
		return config.MapSlice{}, nil
	case root.Kind == yaml.ScalarNode && root.Tag == nullTag:
		return config.MapSlice{}, nil
	case root.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: line %d", ErrNotMapping, root.Line)
	}

	return fromMapping(root)
}

// Emit renders tree as a YAML document.
func (p *Parser) Emit(tree config.MapSlice) ([]byte, error) {
	node, err := toMapping(tree)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)

	err = enc.Encode(node)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode maps tree onto target through its node representation.
func (p *Parser) Decode(tree config.MapSlice, target any) error {
	node, err := toMapping(tree)
	if err != nil {
		return err
	}

	err = node.Decode(target)
	if err != nil {
		return fmt.Errorf("decode error: %w", err)
	}

	return nil
}

func fromMapping(node *yaml.Node) (config.MapSlice, error) {
	out := make(config.MapSlice, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Kind == yaml.AliasNode && key.Alias != nil {
			key = key.Alias
		}

		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d", ErrNonScalarKey, key.Line)
		}

		value, err := fromNode(node.Content[i+1])
		if err != nil {
			return nil, err
		}

		out = append(out, config.MapItem{Key: key.Value, Value: value})
	}

	return out, nil
}

func fromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return fromMapping(node)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))

		for _, elem := range node.Content {
			value, err := fromNode(elem)
			if err != nil {
				return nil, err
			}

			out = append(out, value)
		}

		return out, nil
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.ScalarNode:
		if node.Tag == nullTag {
			return nil, nil
		}

		var value any

		err := node.Decode(&value)
		if err != nil {
			return nil, fmt.Errorf("decode line %d: %w", node.Line, err)
		}

		return value, nil
	default:
		return nil, fmt.Errorf("unsupported node kind %d at line %d", node.Kind, node.Line)
	}
}

func toMapping(tree config.MapSlice) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, item := range tree {
		value, err := toNode(item.Value)
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item.Key},
			value,
		)
	}

	return node, nil
}

func toNode(value any) (*yaml.Node, error) {
	switch v := value.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: nullTag, Value: "null"}, nil
	case config.MapSlice:
		return toMapping(v)
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}

		for _, elem := range v {
			child, err := toNode(elem)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, child)
		}

		return node, nil
	default:
		node := &yaml.Node{}

		err := node.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("encode %T: %w", v, err)
		}

		return node, nil
	}
}
