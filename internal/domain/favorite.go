package domain

import (
	"errors"
	"fmt"
	"time"
)

// Favorite-specific validation errors.
var (
	// ErrFavoriteStoryIDInvalid is returned when a favorite references an invalid story ID.
	ErrFavoriteStoryIDInvalid = errors.New("favorite story ID must be positive")

	// ErrFavoriteProfileIDInvalid is returned when a favorite references an invalid profile ID.
	ErrFavoriteProfileIDInvalid = errors.New("favorite profile ID must be positive")
)

// FavoriteStory bookmarks a generated story for a profile. The first page's
// illustration is snapshotted as a thumbnail at creation time so the favorites
// list can render without loading the full story.
type FavoriteStory struct {
	ID                 int       `json:"id"`
	StoryID            int       `json:"storyId"`
	UserProfileID      int       `json:"userProfileId"`
	Character          string    `json:"character"`
	Environment        string    `json:"environment"`
	Theme              string    `json:"theme"`
	Timestamp          time.Time `json:"timestamp"`
	FirstPageThumbnail *string   `json:"firstPageThumbnail"`
}

// InsertFavoriteStory holds the caller-supplied fields for creating a favorite.
type InsertFavoriteStory struct {
	StoryID            int     `json:"storyId"       validate:"required,gt=0"`
	UserProfileID      int     `json:"userProfileId" validate:"required,gt=0"`
	Character          string  `json:"character"     validate:"required,min=1"`
	Environment        string  `json:"environment"   validate:"required,min=1"`
	Theme              string  `json:"theme"         validate:"required,min=1"`
	FirstPageThumbnail *string `json:"firstPageThumbnail"`
}

// NewFavoriteStory creates a FavoriteStory from insert data, stamping the
// creation time. Returns an error if validation fails.
func NewFavoriteStory(insert InsertFavoriteStory) (*FavoriteStory, error) {
	favorite := &FavoriteStory{
		StoryID:            insert.StoryID,
		UserProfileID:      insert.UserProfileID,
		Character:          insert.Character,
		Environment:        insert.Environment,
		Theme:              insert.Theme,
		Timestamp:          time.Now().UTC(),
		FirstPageThumbnail: insert.FirstPageThumbnail,
	}

	if err := favorite.Validate(); err != nil {
		return nil, err
	}

	return favorite, nil
}

// Validate checks if the FavoriteStory has valid data.
func (f *FavoriteStory) Validate() error {
	if f.StoryID <= 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrFavoriteStoryIDInvalid)
	}

	if f.UserProfileID <= 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrFavoriteProfileIDInvalid)
	}

	return nil
}

// CompleteFavorite is the composed view of a favorite together with the full
// story it bookmarks.
type CompleteFavorite struct {
	FavoriteStory
	Story CompleteStory `json:"story"`
}
