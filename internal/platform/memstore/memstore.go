package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/store"
)

// ProfileStore is an in-memory store.ProfileStore implementation.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[int]domain.Profile
	nextID   int
}

// NewProfileStore creates an empty in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[int]domain.Profile),
		nextID:   1,
	}
}

// List returns all profiles ordered by ID.
func (s *ProfileStore) List(ctx context.Context) ([]domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })

	return profiles, nil
}

// GetByID retrieves a profile by its ID.
func (s *ProfileStore) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}

	return &profile, nil
}

// Create persists a new profile, assigning the next ID.
func (s *ProfileStore) Create(ctx context.Context, insert domain.InsertProfile) (*domain.Profile, error) {
	profile, err := domain.NewProfile(insert)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile.ID = s.nextID
	s.nextID++
	s.profiles[profile.ID] = *profile

	return profile, nil
}

// Delete removes a profile by ID. Stories generated for the profile are
// intentionally left in place.
func (s *ProfileStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return store.ErrProfileNotFound
	}
	delete(s.profiles, id)

	return nil
}

// StoryStore is an in-memory store.StoryStore implementation.
type StoryStore struct {
	mu      sync.RWMutex
	stories map[int]domain.Story
	nextID  int
}

// NewStoryStore creates an empty in-memory story store.
func NewStoryStore() *StoryStore {
	return &StoryStore{
		stories: make(map[int]domain.Story),
		nextID:  1,
	}
}

// List returns stories ordered by ID, optionally filtered by profile.
func (s *StoryStore) List(ctx context.Context, profileID *int) ([]domain.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stories := make([]domain.Story, 0, len(s.stories))
	for _, st := range s.stories {
		if profileID != nil && st.UserProfileID != *profileID {
			continue
		}
		stories = append(stories, st)
	}
	sort.Slice(stories, func(i, j int) bool { return stories[i].ID < stories[j].ID })

	return stories, nil
}

// GetByID retrieves a story by its ID.
func (s *StoryStore) GetByID(ctx context.Context, id int) (*domain.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	story, ok := s.stories[id]
	if !ok {
		return nil, store.ErrStoryNotFound
	}

	return &story, nil
}

// Create persists a new story, assigning the next ID.
func (s *StoryStore) Create(ctx context.Context, insert domain.InsertStory) (*domain.Story, error) {
	story, err := domain.NewStory(insert)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	story.ID = s.nextID
	s.nextID++
	s.stories[story.ID] = *story

	return story, nil
}

// StoryPageStore is an in-memory store.StoryPageStore implementation.
type StoryPageStore struct {
	mu     sync.RWMutex
	pages  map[int]domain.StoryPage
	nextID int
}

// NewStoryPageStore creates an empty in-memory story page store.
func NewStoryPageStore() *StoryPageStore {
	return &StoryPageStore{
		pages:  make(map[int]domain.StoryPage),
		nextID: 1,
	}
}

// Create persists a new page, assigning the next ID.
func (s *StoryPageStore) Create(ctx context.Context, insert domain.InsertStoryPage) (*domain.StoryPage, error) {
	page, err := domain.NewStoryPage(insert)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page.ID = s.nextID
	s.nextID++
	s.pages[page.ID] = *page

	return page, nil
}

// ListByStory returns a story's pages sorted by page number ascending.
func (s *StoryPageStore) ListByStory(ctx context.Context, storyID int) ([]domain.StoryPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := make([]domain.StoryPage, 0)
	for _, p := range s.pages {
		if p.StoryID == storyID {
			pages = append(pages, p)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].PageNumber < pages[j].PageNumber })

	return pages, nil
}

// SetImageURL records the generated illustration URL for a page.
func (s *StoryPageStore) SetImageURL(ctx context.Context, id int, imageURL string) (*domain.StoryPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[id]
	if !ok {
		return nil, store.ErrStoryPageNotFound
	}

	page.ImageURL = &imageURL
	s.pages[id] = page

	return &page, nil
}

// SetAudioURL records the generated narration URL for a page.
func (s *StoryPageStore) SetAudioURL(ctx context.Context, id int, audioURL string) (*domain.StoryPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[id]
	if !ok {
		return nil, store.ErrStoryPageNotFound
	}

	page.AudioURL = &audioURL
	s.pages[id] = page

	return &page, nil
}

// FavoriteStore is an in-memory store.FavoriteStore implementation.
type FavoriteStore struct {
	mu        sync.RWMutex
	favorites map[int]domain.FavoriteStory
	nextID    int
}

// NewFavoriteStore creates an empty in-memory favorite store.
func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{
		favorites: make(map[int]domain.FavoriteStory),
		nextID:    1,
	}
}

// List returns favorites ordered by ID, optionally filtered by profile.
func (s *FavoriteStore) List(ctx context.Context, profileID *int) ([]domain.FavoriteStory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favorites := make([]domain.FavoriteStory, 0, len(s.favorites))
	for _, f := range s.favorites {
		if profileID != nil && f.UserProfileID != *profileID {
			continue
		}
		favorites = append(favorites, f)
	}
	sort.Slice(favorites, func(i, j int) bool { return favorites[i].ID < favorites[j].ID })

	return favorites, nil
}

// CountByProfile returns the number of favorites owned by a profile.
func (s *FavoriteStore) CountByProfile(ctx context.Context, profileID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, f := range s.favorites {
		if f.UserProfileID == profileID {
			count++
		}
	}

	return count, nil
}

// Create persists a new favorite, assigning the next ID.
func (s *FavoriteStore) Create(ctx context.Context, insert domain.InsertFavoriteStory) (*domain.FavoriteStory, error) {
	favorite, err := domain.NewFavoriteStory(insert)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favorite.ID = s.nextID
	s.nextID++
	s.favorites[favorite.ID] = *favorite

	return favorite, nil
}

// Delete removes a favorite by ID.
func (s *FavoriteStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favorites[id]; !ok {
		return store.ErrFavoriteNotFound
	}
	delete(s.favorites, id)

	return nil
}

// Compile-time interface checks.
var (
	_ store.ProfileStore   = (*ProfileStore)(nil)
	_ store.StoryStore     = (*StoryStore)(nil)
	_ store.StoryPageStore = (*StoryPageStore)(nil)
	_ store.FavoriteStore  = (*FavoriteStore)(nil)
)
