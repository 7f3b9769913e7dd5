package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"text/template"

	"google.golang.org/genai"

	"github.com/dreamtale/dreamtale-api/internal/config"
	"github.com/dreamtale/dreamtale-api/internal/generation"
)

// wordCountSafetyFactor inflates the requested word count before prompting;
// the model undershoots, so a 300-word request asks for 420.
const wordCountSafetyFactor = 1.4

// textModel is the slice of the genai client used to generate content.
// *genai.Models satisfies it; tests substitute a fake.
type textModel interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// StoryGenerator implements generation.TextGenerator using Google's Gemini API.
type StoryGenerator struct {
	logger *slog.Logger
	models textModel
	model  string
	retry  generation.RetryPolicy

	englishTemplate *template.Template
	turkishTemplate *template.Template
}

var _ generation.TextGenerator = (*StoryGenerator)(nil)

// NewStoryGenerator creates a StoryGenerator with the provided dependencies.
// It validates the configuration, parses the prompt templates, and initializes
// the Gemini client.
func NewStoryGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*StoryGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	english, turkish, err := parsePromptTemplates()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &StoryGenerator{
		logger:          logger,
		models:          client.Models,
		model:           cfg.ModelName,
		retry:           generation.DefaultRetryPolicy(),
		englishTemplate: english,
		turkishTemplate: turkish,
	}, nil
}

// generateContentConfig returns the model parameters used for every story call.
func generateContentConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](0.95),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 2048,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
		},
	}
}

// GenerateStory produces the full story text for the request. The requested
// word count is inflated by the safety factor before prompting, and the
// upstream call is retried with exponential backoff on any failure.
func (g *StoryGenerator) GenerateStory(ctx context.Context, req generation.TextRequest) (string, error) {
	adjustedWordCount := int(math.Round(float64(req.WordCount) * wordCountSafetyFactor))

	prompt, err := g.buildPrompt(req, adjustedWordCount)
	if err != nil {
		return "", err
	}

	g.logger.DebugContext(ctx, "generating story text",
		"model", g.model,
		"language", req.Language,
		"requested_word_count", req.WordCount,
		"adjusted_word_count", adjustedWordCount,
		"prompt_length", len(prompt))

	return generation.Retry(ctx, g.logger, g.retry, func(ctx context.Context) (string, error) {
		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), generateContentConfig())
		if err != nil {
			return "", fmt.Errorf("gemini API call failed: %w", err)
		}

		return extractStoryText(resp)
	})
}

// extractStoryText pulls the generated prose out of a Gemini response,
// concatenating text parts of the first candidate.
func extractStoryText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in gemini response", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content in gemini response", generation.ErrInvalidResponse)
	}

	var text string
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}

	if text == "" {
		return "", fmt.Errorf("%w: gemini response contained no text", generation.ErrInvalidResponse)
	}

	return text, nil
}
