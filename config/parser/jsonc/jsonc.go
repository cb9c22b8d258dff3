// Package jsonc provides a JSON codec for the config package that accepts
// comments and trailing commas on input.
//
// Input is normalised to plain JSON with github.com/tidwall/jsonc and then
// decoded by the YAML codec, JSON being a subset of YAML. Output is compact
// JSON with key order and explicit nulls preserved.
package jsonc

import (
	"github.com/0xalexb/hjarta-nullcfg/config"
	yamlparser "github.com/0xalexb/hjarta-nullcfg/config/parser/yaml"

	"github.com/tidwall/jsonc"
)

// Parser implements config.Codec for JSON with comments.
type Parser struct {
	yaml *yamlparser.Parser
}

// NewParser creates a new JSONC parser instance.
func NewParser() *Parser {
	return &Parser{yaml: yamlparser.NewParser(yamlparser.WithJSONOutput())}
}

// Parse strips comments and trailing commas from data and decodes the result.
func (p *Parser) Parse(data []byte) (config.MapSlice, error) {
	return p.yaml.Parse(jsonc.ToJSON(data)) //nolint:wrapcheck // already wrapped by the YAML codec.
}

// Emit renders tree as JSON.
func (p *Parser) Emit(tree config.MapSlice) ([]byte, error) {
	return p.yaml.Emit(tree) //nolint:wrapcheck // already wrapped by the YAML codec.
}

// Decode maps tree onto target. Targets use `yaml` struct tags.
func (p *Parser) Decode(tree config.MapSlice, target any) error {
	return p.yaml.Decode(tree, target) //nolint:wrapcheck // already wrapped by the YAML codec.
}
