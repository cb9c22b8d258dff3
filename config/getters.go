package config

import "math"

// Get returns the value stored at path and whether the key is present.
// An explicit null is reported as (nil, true); a section as *Section.
func (s *Section) Get(path string) (any, bool) {
	value, kind := s.Lookup(path)

	return value, kind != KindAbsent
}

// Contains reports whether path is present, explicit nulls included.
func (s *Section) Contains(path string) bool {
	_, kind := s.Lookup(path)

	return kind != KindAbsent
}

// IsNull reports whether path is present and explicitly null.
func (s *Section) IsNull(path string) bool {
	_, kind := s.Lookup(path)

	return kind == KindNull
}

// IsSection reports whether path holds a section.
func (s *Section) IsSection(path string) bool {
	_, kind := s.Lookup(path)

	return kind == KindSection
}

// GetString returns the string at path. No conversion is attempted.
func (s *Section) GetString(path string) (string, bool) {
	value, kind := s.Lookup(path)
	if kind != KindValue {
		return "", false
	}

	str, ok := value.(string)

	return str, ok
}

// GetBool returns the bool at path.
func (s *Section) GetBool(path string) (bool, bool) {
	value, kind := s.Lookup(path)
	if kind != KindValue {
		return false, false
	}

	b, ok := value.(bool)

	return b, ok
}

// GetInt returns the integer at path when it fits into an int.
func (s *Section) GetInt(path string) (int, bool) {
	value, kind := s.Lookup(path)
	if kind != KindValue {
		return 0, false
	}

	return toInt(value)
}

// GetFloat returns the number at path as float64. Integers are accepted.
func (s *Section) GetFloat(path string) (float64, bool) {
	value, kind := s.Lookup(path)
	if kind != KindValue {
		return 0, false
	}

	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}

	i, ok := toInt(value)
	if !ok {
		return 0, false
	}

	return float64(i), true
}

// GetSlice returns the sequence at path.
func (s *Section) GetSlice(path string) ([]any, bool) {
	value, kind := s.Lookup(path)
	if kind != KindValue {
		return nil, false
	}

	seq, ok := value.([]any)

	return seq, ok
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}

		return int(v), true
	case uint:
		if v > math.MaxInt {
			return 0, false
		}

		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}

		return int(v), true
	default:
		return 0, false
	}
}
