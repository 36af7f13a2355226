package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation indicates a source table failed its load-time checks.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration indicates a query against a mode that was never built.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotLoaded indicates no dataset snapshot is available yet.
	ErrNotLoaded = errors.New("dataset not loaded")

	// ErrUnknownMetric indicates a metric label outside the catalog.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrUnknownMode indicates a mode name that matches no attribution mode.
	ErrUnknownMode = errors.New("unknown attribution mode")
)

// ValidationError describes why a table was rejected at load time.
type ValidationError struct {
	Table      string
	Missing    []string
	Duplicates []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required columns %q", e.Missing))
	}
	if len(e.Duplicates) > 0 {
		parts = append(parts, fmt.Sprintf("duplicate keys %q", e.Duplicates))
	}
	return fmt.Sprintf("validation error in %s: %s", e.Table, strings.Join(parts, "; "))
}

// Unwrap returns ErrValidation for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConfigurationError reports a mode whose matrix or index is absent.
type ConfigurationError struct {
	Mode   Mode
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: mode %q: %s", e.Mode, e.Reason)
}

// Unwrap returns ErrConfiguration for use with errors.Is.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
