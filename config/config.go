package config

import (
	"fmt"
	"log/slog"
)

// MapItem is a single key/value pair of a MapSlice.
type MapItem struct {
	Key   string
	Value any
}

// MapSlice is the ordered raw form of a section exchanged with serializers.
// Nested mappings are MapSlice values, sequences are []any and an explicit
// null is a nil Value.
type MapSlice []MapItem

// Parser turns serialized data into a raw tree.
type Parser interface {
	Parse(data []byte) (MapSlice, error)
}

// Emitter renders a raw tree. A nil Value must be written as an explicit null
// literal, never omitted.
type Emitter interface {
	Emit(tree MapSlice) ([]byte, error)
}

// Decoder maps a raw tree onto a typed target structure.
type Decoder interface {
	Decode(tree MapSlice, target any) error
}

// Codec is implemented by the packages under config/parser.
type Codec interface {
	Parser
	Emitter
	Decoder
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// DataWriter defines an interface for persisting configuration data.
type DataWriter interface {
	Write(data []byte) error
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that decodes the section at path into target,
// then sets defaults and validates it. An empty path decodes the whole tree.
func Provider[T any](target *T, path string) func(*Configuration, Decoder) (*T, error) {
	return func(cfg *Configuration, decoder Decoder) (*T, error) {
		section, found := cfg.GetSection(path)
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, path)
		}

		err := decoder.Decode(section.Raw(), target)
		if err != nil {
			return nil, fmt.Errorf("decoding error: %w", err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}
