package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below; errors.Is(err, ErrNotFound) matches all of them.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrProfileNotFound indicates that the requested profile does not exist.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// ErrStoryNotFound indicates that the requested story does not exist.
	ErrStoryNotFound = fmt.Errorf("%w: story", ErrNotFound)

	// ErrStoryPageNotFound indicates that the requested story page does not exist.
	ErrStoryPageNotFound = fmt.Errorf("%w: story page", ErrNotFound)

	// ErrFavoriteNotFound indicates that the requested favorite does not exist.
	ErrFavoriteNotFound = fmt.Errorf("%w: favorite story", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
