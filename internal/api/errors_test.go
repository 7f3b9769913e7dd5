package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/generation"
	"github.com/dreamtale/dreamtale-api/internal/service"
	"github.com/dreamtale/dreamtale-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "profile not found", err: store.ErrProfileNotFound, want: http.StatusNotFound},
		{name: "story not found", err: store.ErrStoryNotFound, want: http.StatusNotFound},
		{name: "favorite not found", err: store.ErrFavoriteNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", store.ErrStoryNotFound), want: http.StatusNotFound},
		{name: "invalid entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "domain validation", err: domain.ErrValidation, want: http.StatusBadRequest},
		{name: "profile limit", err: service.ErrProfileLimitReached, want: http.StatusBadRequest},
		{name: "favorite limit", err: service.ErrFavoriteLimitReached, want: http.StatusBadRequest},
		{name: "upstream failure", err: generation.ErrUpstream, want: http.StatusInternalServerError},
		{name: "filesystem failure", err: generation.ErrFilesystem, want: http.StatusInternalServerError},
		{name: "assembly failure", err: service.ErrStoryAssembly, want: http.StatusInternalServerError},
		{name: "unknown error", err: errors.New("mystery"), want: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksDetail(t *testing.T) {
	detailed := fmt.Errorf("%w: api key sk-12345 rejected", generation.ErrUpstream)

	message := GetSafeErrorMessage(detailed)

	assert.Equal(t, "Story generation failed", message)
	assert.NotContains(t, message, "sk-12345")
}

func TestGetSafeErrorMessageNil(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New(
		"Key: 'StoryGenerationRequest.WordCount' Error:Field validation for 'WordCount' failed on the 'gte' tag")

	message := SanitizeValidationError(err)

	assert.Equal(t, "Invalid WordCount: too small", message)
}

func TestSanitizeValidationErrorFallback(t *testing.T) {
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
