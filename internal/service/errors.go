package service

import "errors"

// Account limits.
const (
	// MaxProfiles is the maximum number of child profiles per installation.
	MaxProfiles = 5

	// MaxFavoritesPerProfile is the maximum number of favorite stories each
	// profile can hold.
	MaxFavoritesPerProfile = 5
)

// Service-level errors.
var (
	// ErrProfileLimitReached is returned when creating a profile would exceed
	// MaxProfiles.
	ErrProfileLimitReached = errors.New("maximum number of profiles reached")

	// ErrFavoriteLimitReached is returned when creating a favorite would
	// exceed MaxFavoritesPerProfile.
	ErrFavoriteLimitReached = errors.New("maximum number of favorite stories reached")

	// ErrStoryAssembly is returned when the composed story view cannot be
	// built because a referenced record is missing. Under correct sequencing
	// this should be unreachable.
	ErrStoryAssembly = errors.New("story assembly incomplete")
)
