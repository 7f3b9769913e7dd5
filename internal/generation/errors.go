package generation

import "errors"

// Common errors returned by generator implementations.
var (
	// ErrUpstream is returned when a provider call fails after retry
	// exhaustion. The wrapped error carries the last observed failure.
	ErrUpstream = errors.New("upstream generation service failed")

	// ErrInvalidResponse is returned when a provider response is malformed
	// or missing the expected content field.
	ErrInvalidResponse = errors.New("invalid response from generation service")

	// ErrFilesystem is returned when a generated artifact cannot be written
	// to its output location.
	ErrFilesystem = errors.New("failed to write generated artifact")

	// ErrInvalidConfig is returned when a generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
