package config

import (
	"fmt"
	"strings"
)

type resolveMode int

const (
	modeRead resolveMode = iota
	modeWrite
	modeCreate
)

// resolve walks every segment of path but the last, starting at start, and
// returns the section holding the final key together with that key.
// In modeRead a missing intermediate section yields ok == false and nothing
// is mutated; the other modes replace whatever is missing or not a section
// with a new literal child section.
func resolve(start *Section, path string, mode resolveMode) (*Section, string, bool) {
	sep := string(start.PathSeparator())
	section := start

	for {
		node, rest, found := strings.Cut(path, sep)
		if !found {
			return section, path, true
		}

		next, ok := section.child(node)
		if !ok {
			if mode == modeRead {
				return nil, "", false
			}

			next = section.newChild(node)
		}

		section = next
		path = rest
	}
}

// Set stores value at path, creating intermediate sections as needed.
// A nil value is stored as an explicit null. MapSlice, map[string]any and
// *Section values are copied into a new section at path.
func (s *Section) Set(path string, value any) error {
	if path == "" {
		return fmt.Errorf("%w: cannot set to an empty path", ErrInvalidArgument)
	}

	section, key, _ := resolve(s, path, modeWrite)
	section.putLocal(key, value)

	return nil
}

// Unset removes the key at path. Unlike Set(path, nil) the key becomes absent.
func (s *Section) Unset(path string) error {
	if path == "" {
		return fmt.Errorf("%w: cannot unset an empty path", ErrInvalidArgument)
	}

	section, key, _ := resolve(s, path, modeWrite)
	section.removeLocal(key)

	return nil
}

// CreateSection creates an empty section at path, along with every missing
// ancestor. Whatever was stored at path before is replaced.
func (s *Section) CreateSection(path string) (*Section, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: cannot create section at empty path", ErrInvalidArgument)
	}

	section, key, _ := resolve(s, path, modeCreate)

	return section.newChild(key), nil
}

// GetSection returns the existing section at path. The empty path addresses the
// receiver itself.
func (s *Section) GetSection(path string) (*Section, bool) {
	if path == "" {
		return s, true
	}

	section, key, ok := resolve(s, path, modeRead)
	if !ok {
		return nil, false
	}

	return section.child(key)
}

// Lookup reports the state of the key at path. The empty path addresses the
// receiver itself.
func (s *Section) Lookup(path string) (any, Kind) {
	if path == "" {
		return s, KindSection
	}

	section, key, ok := resolve(s, path, modeRead)
	if !ok {
		return nil, KindAbsent
	}

	return section.Local(key)
}
