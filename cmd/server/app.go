package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dreamtale/dreamtale-api/internal/config"
	"github.com/dreamtale/dreamtale-api/internal/platform/gemini"
	"github.com/dreamtale/dreamtale-api/internal/platform/memstore"
	"github.com/dreamtale/dreamtale-api/internal/platform/openai"
	"github.com/dreamtale/dreamtale-api/internal/platform/texttospeech"
	"github.com/dreamtale/dreamtale-api/internal/service"
)

// application holds the fully wired dependency graph: configuration, stores,
// generator adapters, and services.
type application struct {
	config *config.Config
	logger *slog.Logger

	profileService  *service.ProfileService
	storyService    *service.StoryService
	favoriteService *service.FavoriteService
}

// newApplication wires stores, generator adapters, and services into a ready
// application.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	logger := slog.Default()

	profileStore := memstore.NewProfileStore()
	storyStore := memstore.NewStoryStore()
	pageStore := memstore.NewStoryPageStore()
	favoriteStore := memstore.NewFavoriteStore()

	textGenerator, err := gemini.NewStoryGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create story generator: %w", err)
	}

	imageGenerator, err := openai.NewIllustrationGenerator(logger, cfg.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to create illustration generator: %w", err)
	}

	synthesizer, err := texttospeech.NewSynthesizer(ctx, logger, cfg.Speech)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech synthesizer: %w", err)
	}

	profileService, err := service.NewProfileService(logger, profileStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	storyService, err := service.NewStoryService(
		logger,
		profileStore, storyStore, pageStore,
		textGenerator, imageGenerator, synthesizer,
		cfg.Generation,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create story service: %w", err)
	}

	favoriteService, err := service.NewFavoriteService(logger, favoriteStore, storyService)
	if err != nil {
		return nil, fmt.Errorf("failed to create favorite service: %w", err)
	}

	return &application{
		config:          cfg,
		logger:          logger,
		profileService:  profileService,
		storyService:    storyService,
		favoriteService: favoriteService,
	}, nil
}

// cleanup releases application resources on shutdown.
func (app *application) cleanup() {
	app.logger.Info("application cleanup completed")
}
