package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/store"
)

// StoryReader provides the composed story view the favorite service needs for
// assembly and thumbnail snapshots. *StoryService satisfies it.
type StoryReader interface {
	GetCompleteStory(ctx context.Context, id int) (*domain.CompleteStory, error)
}

// FavoriteService manages favorite story bookmarks, enforcing the per-profile
// limit and snapshotting the first page's illustration as a thumbnail at
// creation time.
type FavoriteService struct {
	logger    *slog.Logger
	favorites store.FavoriteStore
	reader    StoryReader
}

// NewFavoriteService creates a FavoriteService with the provided dependencies.
func NewFavoriteService(logger *slog.Logger, favorites store.FavoriteStore, reader StoryReader) (*FavoriteService, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if favorites == nil {
		return nil, errors.New("favorite store cannot be nil")
	}
	if reader == nil {
		return nil, errors.New("story reader cannot be nil")
	}

	return &FavoriteService{
		logger:    logger,
		favorites: favorites,
		reader:    reader,
	}, nil
}

// ListComplete returns favorites together with the full story each bookmarks,
// optionally filtered to one profile. Favorites whose story can no longer be
// assembled are skipped rather than failing the whole listing.
func (s *FavoriteService) ListComplete(ctx context.Context, profileID *int) ([]domain.CompleteFavorite, error) {
	favorites, err := s.favorites.List(ctx, profileID)
	if err != nil {
		return nil, err
	}

	complete := make([]domain.CompleteFavorite, 0, len(favorites))
	for _, favorite := range favorites {
		story, err := s.reader.GetCompleteStory(ctx, favorite.StoryID)
		if err != nil {
			if store.IsNotFoundError(err) || errors.Is(err, ErrStoryAssembly) {
				s.logger.WarnContext(ctx, "skipping favorite with unassemblable story",
					"favorite_id", favorite.ID,
					"story_id", favorite.StoryID,
					"error", err)
				continue
			}
			return nil, err
		}

		complete = append(complete, domain.CompleteFavorite{
			FavoriteStory: favorite,
			Story:         *story,
		})
	}

	return complete, nil
}

// Create bookmarks a story for a profile. The first page's illustration URL
// at creation time becomes the favorite's thumbnail; later changes to the
// page do not update it. Returns store.ErrStoryNotFound if the story is
// absent, or ErrFavoriteLimitReached if the profile already holds
// MaxFavoritesPerProfile favorites.
func (s *FavoriteService) Create(ctx context.Context, insert domain.InsertFavoriteStory) (*domain.FavoriteStory, error) {
	count, err := s.favorites.CountByProfile(ctx, insert.UserProfileID)
	if err != nil {
		return nil, err
	}
	if count >= MaxFavoritesPerProfile {
		return nil, ErrFavoriteLimitReached
	}

	story, err := s.reader.GetCompleteStory(ctx, insert.StoryID)
	if err != nil {
		return nil, err
	}

	if len(story.Pages) > 0 {
		insert.FirstPageThumbnail = story.Pages[0].ImageURL
	} else {
		insert.FirstPageThumbnail = nil
	}

	favorite, err := s.favorites.Create(ctx, insert)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "favorite created",
		"favorite_id", favorite.ID,
		"story_id", favorite.StoryID,
		"profile_id", favorite.UserProfileID)

	return favorite, nil
}

// Delete removes a favorite by ID. Returns store.ErrFavoriteNotFound if absent.
func (s *FavoriteService) Delete(ctx context.Context, id int) error {
	if err := s.favorites.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "favorite deleted", "favorite_id", id)
	return nil
}
