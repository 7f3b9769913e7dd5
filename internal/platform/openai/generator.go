package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dreamtale/dreamtale-api/internal/config"
	"github.com/dreamtale/dreamtale-api/internal/generation"
)

// imageAPI is the slice of the OpenAI client used to generate images.
// *openai.Client satisfies it; tests substitute a fake.
type imageAPI interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

// IllustrationGenerator implements generation.ImageGenerator using DALL-E 3.
type IllustrationGenerator struct {
	logger *slog.Logger
	client imageAPI
	retry  generation.RetryPolicy

	promptTemplate *template.Template
}

var _ generation.ImageGenerator = (*IllustrationGenerator)(nil)

// NewIllustrationGenerator creates an IllustrationGenerator with the provided
// dependencies.
func NewIllustrationGenerator(logger *slog.Logger, cfg config.ImageConfig) (*IllustrationGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := parsePromptTemplate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	return &IllustrationGenerator{
		logger:         logger,
		client:         openai.NewClient(cfg.OpenAIAPIKey),
		retry:          generation.DefaultRetryPolicy(),
		promptTemplate: promptTemplate,
	}, nil
}

// GenerateImage produces one illustration for a story page and returns the
// upstream URL of the generated artifact. The call is retried with
// exponential backoff on any failure.
func (g *IllustrationGenerator) GenerateImage(ctx context.Context, req generation.ImageRequest) (string, error) {
	prompt, err := g.buildPrompt(req)
	if err != nil {
		return "", err
	}

	g.logger.DebugContext(ctx, "generating page illustration",
		"page_number", req.PageNumber,
		"prompt_length", len(prompt))

	return generation.Retry(ctx, g.logger, g.retry, func(ctx context.Context) (string, error) {
		resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
			Model:          openai.CreateImageModelDallE3,
			Prompt:         prompt,
			N:              1,
			Size:           openai.CreateImageSize1024x1024,
			Quality:        openai.CreateImageQualityStandard,
			Style:          openai.CreateImageStyleVivid,
			ResponseFormat: openai.CreateImageResponseFormatURL,
		})
		if err != nil {
			return "", fmt.Errorf("dall-e API call failed: %w", err)
		}

		if len(resp.Data) == 0 || resp.Data[0].URL == "" {
			return "", fmt.Errorf("%w: no image URL in dall-e response", generation.ErrInvalidResponse)
		}

		return resp.Data[0].URL, nil
	})
}
