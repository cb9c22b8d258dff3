package config

import "errors"

// ErrInvalidArgument is returned by mutations called with an empty path.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrSectionNotFound is returned when a path does not address an existing section.
var ErrSectionNotFound = errors.New("section not found")
