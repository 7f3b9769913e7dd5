package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/generation"
	"github.com/dreamtale/dreamtale-api/internal/service"
	"github.com/dreamtale/dreamtale-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrProfileLimitReached),
		errors.Is(err, service.ErrFavoriteLimitReached):
		return http.StatusBadRequest

	// Upstream, filesystem, and assembly failures are all server errors
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. Provider and filesystem details are logged, not returned
// to the caller.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrProfileNotFound):
		return "User profile not found"

	case errors.Is(err, store.ErrStoryNotFound):
		return "Story not found"

	case errors.Is(err, store.ErrStoryPageNotFound):
		return "Story page not found"

	case errors.Is(err, store.ErrFavoriteNotFound):
		return "Favorite story not found"

	// Limit errors
	case errors.Is(err, service.ErrProfileLimitReached):
		return fmt.Sprintf("Maximum of %d profiles allowed", service.MaxProfiles)

	case errors.Is(err, service.ErrFavoriteLimitReached):
		return fmt.Sprintf("Maximum of %d favorite stories allowed per user", service.MaxFavoritesPerProfile)

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	// Generation failures
	case errors.Is(err, generation.ErrUpstream),
		errors.Is(err, generation.ErrInvalidResponse):
		return "Story generation failed"

	case errors.Is(err, generation.ErrFilesystem):
		return "Failed to store generated audio"

	case errors.Is(err, service.ErrStoryAssembly):
		return "Failed to retrieve complete story after generation"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'StoryGenerationRequest.WordCount' Error:Field
	// validation for 'WordCount' failed on the 'gte' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	case "gt":
		return "must be positive"
	default:
		return "validation failed"
	}
}
