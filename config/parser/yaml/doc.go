// Package yaml provides the YAML codec for the config package.
//
// This package uses github.com/goccy/go-yaml. Documents are decoded with
// ordered mappings so sibling order survives a load/save cycle, and explicit
// nulls are written back as null literals instead of being dropped.
//
// Usage:
//
//	parser := yaml.NewParser()
//	cfg := config.New()
//	err := cfg.LoadBytes(parser, data)
//	out, err := cfg.Marshal(parser)
//
// Integers are normalised to int when they fit, so a value written as
// cfg.Set("port", 25565) reads back as the same int after a round trip.
//
// Extract reads a single node of a document with goccy/go-yaml PathString,
// converting separated paths (e.g., "api.permissions") to YAML path format
// (e.g., "$.api.permissions") internally.
package yaml
