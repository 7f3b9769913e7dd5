package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/store"
)

// ProfileService manages child profiles, enforcing the account-level profile
// limit on creation.
type ProfileService struct {
	logger   *slog.Logger
	profiles store.ProfileStore
}

// NewProfileService creates a ProfileService with the provided dependencies.
func NewProfileService(logger *slog.Logger, profiles store.ProfileStore) (*ProfileService, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if profiles == nil {
		return nil, errors.New("profile store cannot be nil")
	}

	return &ProfileService{
		logger:   logger,
		profiles: profiles,
	}, nil
}

// List returns all profiles.
func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}

// Get retrieves a profile by ID. Returns store.ErrProfileNotFound if absent.
func (s *ProfileService) Get(ctx context.Context, id int) (*domain.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// Create persists a new profile. Returns ErrProfileLimitReached if MaxProfiles
// already exist.
func (s *ProfileService) Create(ctx context.Context, insert domain.InsertProfile) (*domain.Profile, error) {
	existing, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(existing) >= MaxProfiles {
		return nil, ErrProfileLimitReached
	}

	profile, err := s.profiles.Create(ctx, insert)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "profile created",
		"profile_id", profile.ID,
		"profile_count", len(existing)+1)

	return profile, nil
}

// Delete removes a profile by ID. The profile's stories are left in place.
// Returns store.ErrProfileNotFound if absent.
func (s *ProfileService) Delete(ctx context.Context, id int) error {
	if err := s.profiles.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "profile deleted", "profile_id", id)
	return nil
}
