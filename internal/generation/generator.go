package generation

import (
	"context"

	"github.com/dreamtale/dreamtale-api/internal/domain"
)

// TextRequest carries everything the text generator needs to produce story
// prose: the child's profile for personalization, the story parameters, the
// requested word count (before safety inflation), and the target language.
type TextRequest struct {
	Profile     domain.Profile
	Character   string
	Environment string
	Theme       string
	WordCount   int
	Language    string
}

// TextGenerator produces full story prose from a structured request.
// Implementations apply the word-count safety inflation before calling the
// upstream model.
type TextGenerator interface {
	// GenerateStory returns the full story text, or an error wrapping
	// ErrUpstream if the provider fails after retries.
	GenerateStory(ctx context.Context, req TextRequest) (string, error)
}

// ImageRequest carries everything the image generator needs to illustrate one
// page: the child's appearance, the page text being depicted, the story
// parameters, and the 1-based page number.
type ImageRequest struct {
	Profile     domain.Profile
	PageText    string
	Character   string
	Environment string
	Theme       string
	PageNumber  int
}

// ImageGenerator produces one illustration per call.
type ImageGenerator interface {
	// GenerateImage returns a URL referencing the generated artifact, or an
	// error wrapping ErrUpstream if the provider fails after retries.
	GenerateImage(ctx context.Context, req ImageRequest) (string, error)
}

// SpeechSynthesizer converts page text into a narration audio artifact.
// Output is content-addressed by (text, voice), so repeated requests for the
// same pair are idempotent and served from cache.
type SpeechSynthesizer interface {
	// Synthesize returns the public path of the narration audio for the given
	// text and voice identifier (e.g. "tr-TR-Standard-A"). Returns an error
	// wrapping ErrUpstream on provider failure after retries, or ErrFilesystem
	// if the output location is not writable.
	Synthesize(ctx context.Context, text, voice string) (string, error)
}
