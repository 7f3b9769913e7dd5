package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtale/dreamtale-api/internal/config"
	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/generation"
	"github.com/dreamtale/dreamtale-api/internal/platform/memstore"
	"github.com/dreamtale/dreamtale-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// storyText builds deterministic prose with the given number of words.
func storyText(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%d", i+1)
	}
	return strings.Join(parts, " ")
}

// stubTextGenerator returns fixed text or a scripted error.
type stubTextGenerator struct {
	calls atomic.Int32
	text  string
	err   error
}

func (s *stubTextGenerator) GenerateStory(ctx context.Context, req generation.TextRequest) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

// stubImageGenerator returns a URL per page, optionally failing one page.
type stubImageGenerator struct {
	calls    atomic.Int32
	failPage int
	err      error
}

func (s *stubImageGenerator) GenerateImage(ctx context.Context, req generation.ImageRequest) (string, error) {
	s.calls.Add(1)
	if s.failPage != 0 && req.PageNumber == s.failPage {
		return "", s.err
	}
	return fmt.Sprintf("https://images.example.com/page-%d.png", req.PageNumber), nil
}

// stubSynthesizer returns a deterministic public path per text.
type stubSynthesizer struct {
	calls atomic.Int32
	err   error
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text, voice string) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("/audio/%d-%s.mp3", len(text), voice), nil
}

// testEnv bundles the service under test with its in-memory stores and stubs.
type testEnv struct {
	service  *StoryService
	profiles *memstore.ProfileStore
	stories  *memstore.StoryStore
	pages    *memstore.StoryPageStore
	text     *stubTextGenerator
	images   *stubImageGenerator
	speech   *stubSynthesizer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		profiles: memstore.NewProfileStore(),
		stories:  memstore.NewStoryStore(),
		pages:    memstore.NewStoryPageStore(),
		text:     &stubTextGenerator{text: storyText(420)},
		images:   &stubImageGenerator{},
		speech:   &stubSynthesizer{},
	}

	svc, err := NewStoryService(
		testLogger(),
		env.profiles, env.stories, env.pages,
		env.text, env.images, env.speech,
		config.GenerationConfig{ImageConcurrency: 2, AudioConcurrency: 4},
	)
	require.NoError(t, err)
	env.service = svc
	return env
}

func createTestProfile(t *testing.T, profiles *memstore.ProfileStore) *domain.Profile {
	t.Helper()

	profile, err := profiles.Create(context.Background(), domain.InsertProfile{
		Name:      "Elif",
		Gender:    "Girl",
		Age:       6,
		HairColor: "Brown",
		HairType:  "Curly",
		SkinTone:  "Olive",
	})
	require.NoError(t, err)
	return profile
}

func testGenerationRequest(profileID int) domain.StoryGenerationRequest {
	return domain.StoryGenerationRequest{
		UserProfileID: profileID,
		Character:     "a brave astronaut",
		Environment:   "a moonlit space station",
		Theme:         "sharing",
		WordCount:     300,
		TTSVoice:      "en-US-Standard-C",
		Language:      domain.LanguageEnglish,
	}
}

func TestGenerateProducesCompleteStory(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env.profiles)

	complete, err := env.service.Generate(context.Background(), testGenerationRequest(profile.ID))

	require.NoError(t, err)
	require.NotNil(t, complete)

	assert.Equal(t, storyText(420), complete.FullText)
	assert.Equal(t, profile.ID, complete.UserProfileID)
	assert.Equal(t, 300, complete.RequestedWordCount)
	assert.Equal(t, *profile, complete.UserProfile)

	// 420 words paginate into 50-60 word pages.
	require.GreaterOrEqual(t, len(complete.Pages), 7)
	require.LessOrEqual(t, len(complete.Pages), 9)

	for i, page := range complete.Pages {
		assert.Equal(t, i+1, page.PageNumber)
		require.NotNil(t, page.ImageURL, "page %d image missing", page.PageNumber)
		assert.Equal(t, fmt.Sprintf("https://images.example.com/page-%d.png", page.PageNumber), *page.ImageURL)
		require.NotNil(t, page.AudioURL, "page %d audio missing", page.PageNumber)
		assert.Contains(t, *page.AudioURL, "en-US-Standard-C")
	}

	// Page texts reassemble to the full text.
	var texts []string
	for _, page := range complete.Pages {
		texts = append(texts, page.Text)
	}
	assert.Equal(t, complete.FullText, strings.Join(texts, " "))

	assert.Equal(t, int32(1), env.text.calls.Load())
	assert.Equal(t, int32(len(complete.Pages)), env.images.calls.Load())
	assert.Equal(t, int32(len(complete.Pages)), env.speech.calls.Load())
}

func TestGenerateMissingProfileFailsFast(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Generate(context.Background(), testGenerationRequest(42))

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	assert.Equal(t, int32(0), env.text.calls.Load(), "no provider call before profile lookup")
}

func TestGenerateTextFailureLeavesNoStory(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env.profiles)
	env.text.err = fmt.Errorf("%w: model overloaded", generation.ErrUpstream)

	_, err := env.service.Generate(context.Background(), testGenerationRequest(profile.ID))

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrUpstream)

	stories, listErr := env.stories.List(context.Background(), nil)
	require.NoError(t, listErr)
	assert.Empty(t, stories, "no story row before text generation succeeds")
}

func TestGenerateImageFailureKeepsPartialProgress(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env.profiles)
	env.images.failPage = 1
	env.images.err = fmt.Errorf("%w: content policy rejection", generation.ErrUpstream)

	_, err := env.service.Generate(context.Background(), testGenerationRequest(profile.ID))

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrUpstream)

	// The story and its placeholder pages survive the failed batch.
	stories, listErr := env.stories.List(context.Background(), nil)
	require.NoError(t, listErr)
	require.Len(t, stories, 1)

	pages, pagesErr := env.pages.ListByStory(context.Background(), stories[0].ID)
	require.NoError(t, pagesErr)
	assert.NotEmpty(t, pages)

	for _, page := range pages {
		assert.Nil(t, page.AudioURL, "audio must not start after the image batch fails")
	}

	assert.Equal(t, int32(0), env.speech.calls.Load())
}

func TestGenerateDefaultsLanguageToEnglish(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env.profiles)

	req := testGenerationRequest(profile.ID)
	req.Language = ""

	_, err := env.service.Generate(context.Background(), req)

	require.NoError(t, err)
}

func TestGetCompleteStoryNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.GetCompleteStory(context.Background(), 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStoryNotFound)
}

func TestGetCompleteStoryMissingProfileIsAssemblyError(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env.profiles)

	complete, err := env.service.Generate(context.Background(), testGenerationRequest(profile.ID))
	require.NoError(t, err)

	// Deleting the profile leaves the story orphaned.
	require.NoError(t, env.profiles.Delete(context.Background(), profile.ID))

	_, err = env.service.GetCompleteStory(context.Background(), complete.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoryAssembly)
}

func TestListFiltersByProfile(t *testing.T) {
	env := newTestEnv(t)
	first := createTestProfile(t, env.profiles)
	second := createTestProfile(t, env.profiles)

	_, err := env.service.Generate(context.Background(), testGenerationRequest(first.ID))
	require.NoError(t, err)
	_, err = env.service.Generate(context.Background(), testGenerationRequest(second.ID))
	require.NoError(t, err)

	all, err := env.service.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := env.service.List(context.Background(), &second.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, second.ID, filtered[0].UserProfileID)
}
