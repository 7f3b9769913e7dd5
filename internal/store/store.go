package store

import (
	"context"

	"github.com/dreamtale/dreamtale-api/internal/domain"
)

// ProfileStore defines persistence operations for child profiles.
type ProfileStore interface {
	// List returns all profiles ordered by ID.
	List(ctx context.Context) ([]domain.Profile, error)

	// GetByID retrieves a profile by its ID.
	// Returns ErrProfileNotFound if no profile exists with the given ID.
	GetByID(ctx context.Context, id int) (*domain.Profile, error)

	// Create persists a new profile, assigning its ID.
	Create(ctx context.Context, insert domain.InsertProfile) (*domain.Profile, error)

	// Delete removes a profile by ID.
	// Returns ErrProfileNotFound if no profile exists with the given ID.
	Delete(ctx context.Context, id int) error
}

// StoryStore defines persistence operations for generated stories.
type StoryStore interface {
	// List returns stories ordered by ID. If profileID is non-nil, only
	// stories belonging to that profile are returned.
	List(ctx context.Context, profileID *int) ([]domain.Story, error)

	// GetByID retrieves a story by its ID.
	// Returns ErrStoryNotFound if no story exists with the given ID.
	GetByID(ctx context.Context, id int) (*domain.Story, error)

	// Create persists a new story, assigning its ID.
	Create(ctx context.Context, insert domain.InsertStory) (*domain.Story, error)
}

// StoryPageStore defines persistence operations for story pages. Page count
// and numbering are fixed when placeholders are created; only the image and
// audio URL fields mutate afterwards, each exactly once.
type StoryPageStore interface {
	// Create persists a new page, assigning its ID.
	Create(ctx context.Context, insert domain.InsertStoryPage) (*domain.StoryPage, error)

	// ListByStory returns a story's pages sorted by page number ascending.
	ListByStory(ctx context.Context, storyID int) ([]domain.StoryPage, error)

	// SetImageURL records the generated illustration URL for a page.
	// Returns ErrStoryPageNotFound if no page exists with the given ID.
	SetImageURL(ctx context.Context, id int, imageURL string) (*domain.StoryPage, error)

	// SetAudioURL records the generated narration URL for a page.
	// Returns ErrStoryPageNotFound if no page exists with the given ID.
	SetAudioURL(ctx context.Context, id int, audioURL string) (*domain.StoryPage, error)
}

// FavoriteStore defines persistence operations for favorite bookmarks.
type FavoriteStore interface {
	// List returns favorites ordered by ID. If profileID is non-nil, only
	// favorites belonging to that profile are returned.
	List(ctx context.Context, profileID *int) ([]domain.FavoriteStory, error)

	// CountByProfile returns the number of favorites owned by a profile.
	CountByProfile(ctx context.Context, profileID int) (int, error)

	// Create persists a new favorite, assigning its ID.
	Create(ctx context.Context, insert domain.InsertFavoriteStory) (*domain.FavoriteStory, error)

	// Delete removes a favorite by ID.
	// Returns ErrFavoriteNotFound if no favorite exists with the given ID.
	Delete(ctx context.Context, id int) error
}
