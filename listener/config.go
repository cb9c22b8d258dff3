// Package listener serves a configuration store over HTTP as an Fx module.
package listener

import (
	"errors"

	"github.com/0xalexb/hjarta-nullcfg/listener/middleware"
)

// DefaultAddress is the default address for the HTTP listener.
const DefaultAddress = ":8080"

// DefaultMaxBodyBytes is the default request body limit.
const DefaultMaxBodyBytes = middleware.DefaultMaxRequestSize

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrEmptyName is returned when the listener name is empty.
var ErrEmptyName = errors.New("listener name must not be empty")

// ErrNilStore is returned when no store is given.
var ErrNilStore = errors.New("store must not be nil")

// ErrInvalidBodyLimit is returned for a negative body limit.
var ErrInvalidBodyLimit = errors.New("max body bytes must not be negative")

// Config holds the configuration for an HTTP listener.
type Config struct {
	Address      string `yaml:"address"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	// ReadOnly rejects PUT, POST and DELETE with 405.
	ReadOnly bool `yaml:"read_only"`
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.MaxBodyBytes < 0 {
		return ErrInvalidBodyLimit
	}

	return nil
}
