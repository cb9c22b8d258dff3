// Package logging builds the slog.Logger used across the application.
// Output is JSON by default, or text, and configuration values from package
// config (explicit nulls, sections) are rendered readably.
package logging
