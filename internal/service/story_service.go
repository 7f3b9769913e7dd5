package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dreamtale/dreamtale-api/internal/config"
	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/generation"
	"github.com/dreamtale/dreamtale-api/internal/pagination"
	"github.com/dreamtale/dreamtale-api/internal/store"
	"github.com/dreamtale/dreamtale-api/internal/task"
)

// StoryService runs the story generation pipeline and serves composed story
// views. A generation request moves through fixed phases: profile lookup,
// text generation, story persistence, pagination, placeholder page creation,
// then bounded-concurrency image and audio population. Failures abort the
// request but leave already-persisted records in place, so a partially
// populated story remains inspectable.
type StoryService struct {
	logger *slog.Logger

	profiles store.ProfileStore
	stories  store.StoryStore
	pages    store.StoryPageStore

	textGenerator  generation.TextGenerator
	imageGenerator generation.ImageGenerator
	synthesizer    generation.SpeechSynthesizer

	imageConcurrency int
	audioConcurrency int
}

// NewStoryService creates a StoryService with the provided dependencies.
func NewStoryService(
	logger *slog.Logger,
	profiles store.ProfileStore,
	stories store.StoryStore,
	pages store.StoryPageStore,
	textGenerator generation.TextGenerator,
	imageGenerator generation.ImageGenerator,
	synthesizer generation.SpeechSynthesizer,
	cfg config.GenerationConfig,
) (*StoryService, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if profiles == nil || stories == nil || pages == nil {
		return nil, errors.New("stores cannot be nil")
	}
	if textGenerator == nil || imageGenerator == nil || synthesizer == nil {
		return nil, errors.New("generators cannot be nil")
	}

	imageConcurrency := cfg.ImageConcurrency
	if imageConcurrency <= 0 {
		imageConcurrency = 2
	}
	audioConcurrency := cfg.AudioConcurrency
	if audioConcurrency <= 0 {
		audioConcurrency = 4
	}

	return &StoryService{
		logger:           logger,
		profiles:         profiles,
		stories:          stories,
		pages:            pages,
		textGenerator:    textGenerator,
		imageGenerator:   imageGenerator,
		synthesizer:      synthesizer,
		imageConcurrency: imageConcurrency,
		audioConcurrency: audioConcurrency,
	}, nil
}

// List returns stories, optionally filtered to one profile.
func (s *StoryService) List(ctx context.Context, profileID *int) ([]domain.Story, error) {
	return s.stories.List(ctx, profileID)
}

// GetCompleteStory returns the composed view of a story: the story record,
// its pages in page order, and the owning profile. Returns
// store.ErrStoryNotFound if the story is absent, or ErrStoryAssembly if the
// owning profile is missing.
func (s *StoryService) GetCompleteStory(ctx context.Context, id int) (*domain.CompleteStory, error) {
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pages, err := s.pages.ListByStory(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByID(ctx, story.UserProfileID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: story %d references missing profile %d",
				ErrStoryAssembly, id, story.UserProfileID)
		}
		return nil, err
	}

	return &domain.CompleteStory{
		Story:       *story,
		Pages:       pages,
		UserProfile: *profile,
	}, nil
}

// Generate runs the full story generation pipeline for the request and
// returns the completed story view. Returns store.ErrProfileNotFound without
// calling any provider if the profile is absent.
func (s *StoryService) Generate(ctx context.Context, req domain.StoryGenerationRequest) (*domain.CompleteStory, error) {
	generationStart := time.Now()

	language := req.Language
	if language == "" {
		language = domain.LanguageEnglish
	}

	logger := s.logger.With(
		"generation_id", uuid.New().String(),
		"profile_id", req.UserProfileID,
		"language", language)

	logger.InfoContext(ctx, "starting story generation",
		"word_count", req.WordCount,
		"tts_voice", req.TTSVoice)

	profile, err := s.profiles.GetByID(ctx, req.UserProfileID)
	if err != nil {
		return nil, err
	}

	// Phase 1: full story text.
	textStart := time.Now()
	fullText, err := s.textGenerator.GenerateStory(ctx, generation.TextRequest{
		Profile:     *profile,
		Character:   req.Character,
		Environment: req.Environment,
		Theme:       req.Theme,
		WordCount:   req.WordCount,
		Language:    language,
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "story text generated",
		"duration", time.Since(textStart),
		"text_length", len(fullText))

	story, err := s.stories.Create(ctx, domain.InsertStory{
		FullText:           fullText,
		UserProfileID:      req.UserProfileID,
		Character:          req.Character,
		Environment:        req.Environment,
		Theme:              req.Theme,
		RequestedWordCount: req.WordCount,
	})
	if err != nil {
		return nil, err
	}
	logger = logger.With("story_id", story.ID)

	// Phase 2: split into pages and persist placeholders so partial progress
	// is visible to callers while assets populate.
	pageTexts := pagination.Paginate(fullText)
	logger.InfoContext(ctx, "story paginated", "page_count", len(pageTexts))

	placeholders := make([]domain.StoryPage, len(pageTexts))
	for i, pageText := range pageTexts {
		page, err := s.pages.Create(ctx, domain.InsertStoryPage{
			Text:       pageText,
			PageNumber: i + 1,
			StoryID:    story.ID,
		})
		if err != nil {
			return nil, err
		}
		placeholders[i] = *page
	}

	// Phase 3: illustrations.
	imagesStart := time.Now()
	imageTasks := make([]task.Func[string], len(pageTexts))
	for i, pageText := range pageTexts {
		page := placeholders[i]
		imageTasks[i] = func(ctx context.Context) (string, error) {
			imageURL, err := s.imageGenerator.GenerateImage(ctx, generation.ImageRequest{
				Profile:     *profile,
				PageText:    pageText,
				Character:   req.Character,
				Environment: req.Environment,
				Theme:       req.Theme,
				PageNumber:  page.PageNumber,
			})
			if err != nil {
				return "", err
			}

			if _, err := s.pages.SetImageURL(ctx, page.ID, imageURL); err != nil {
				return "", err
			}
			return imageURL, nil
		}
	}

	if _, err := task.Run(ctx, logger, s.imageConcurrency, imageTasks); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "all illustrations generated",
		"duration", time.Since(imagesStart))

	// Phase 4: narration.
	audioStart := time.Now()
	audioTasks := make([]task.Func[string], len(pageTexts))
	for i, pageText := range pageTexts {
		page := placeholders[i]
		audioTasks[i] = func(ctx context.Context) (string, error) {
			audioURL, err := s.synthesizer.Synthesize(ctx, pageText, req.TTSVoice)
			if err != nil {
				return "", err
			}

			if _, err := s.pages.SetAudioURL(ctx, page.ID, audioURL); err != nil {
				return "", err
			}
			return audioURL, nil
		}
	}

	if _, err := task.Run(ctx, logger, s.audioConcurrency, audioTasks); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "all narration generated",
		"duration", time.Since(audioStart))

	complete, err := s.GetCompleteStory(ctx, story.ID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: story %d disappeared during generation", ErrStoryAssembly, story.ID)
		}
		return nil, err
	}

	logger.InfoContext(ctx, "story generation completed",
		"duration", time.Since(generationStart),
		"page_count", len(complete.Pages))

	return complete, nil
}
