package texttospeech

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"

	"github.com/dreamtale/dreamtale-api/internal/config"
	"github.com/dreamtale/dreamtale-api/internal/generation"
)

// writeProbeName is the throwaway file written to verify the output directory
// is writable before the real artifact is saved.
const writeProbeName = ".write-probe"

// speechAPI is the slice of the Cloud TTS client used for synthesis.
// *texttospeech.Client satisfies it; tests substitute a fake.
type speechAPI interface {
	SynthesizeSpeech(
		ctx context.Context,
		req *texttospeechpb.SynthesizeSpeechRequest,
		opts ...gax.CallOption,
	) (*texttospeechpb.SynthesizeSpeechResponse, error)
}

// Synthesizer implements generation.SpeechSynthesizer using Google Cloud
// Text-to-Speech, with a content-addressed mp3 cache on the local filesystem.
type Synthesizer struct {
	logger    *slog.Logger
	client    speechAPI
	outputDir string
	retry     generation.RetryPolicy
}

var _ generation.SpeechSynthesizer = (*Synthesizer)(nil)

// NewSynthesizer creates a Synthesizer with the provided dependencies. The
// Cloud TTS client authenticates through application default credentials. The
// output directory is created if it does not exist.
func NewSynthesizer(ctx context.Context, logger *slog.Logger, cfg config.SpeechConfig) (*Synthesizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("%w: speech output directory cannot be empty", generation.ErrInvalidConfig)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create output directory %s: %v",
			generation.ErrFilesystem, cfg.OutputDir, err)
	}

	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create text-to-speech client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Synthesizer{
		logger:    logger,
		client:    client,
		outputDir: cfg.OutputDir,
		retry:     generation.DefaultRetryPolicy(),
	}, nil
}

// Synthesize converts text to narration audio and returns the public path of
// the mp3 artifact, e.g. "/audio/3b1f....mp3". The artifact name is derived
// from the text and voice, so an existing non-empty file is a cache hit and
// skips the API entirely. Zero-byte files left by earlier failed writes are
// deleted and regenerated.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice string) (string, error) {
	hash := md5.Sum([]byte(text + "-" + voice))
	filename := hex.EncodeToString(hash[:]) + ".mp3"
	outputPath := filepath.Join(s.outputDir, filename)
	publicPath := "/audio/" + filename

	if info, err := os.Stat(outputPath); err == nil {
		if info.Size() > 0 {
			s.logger.DebugContext(ctx, "speech cache hit",
				"voice", voice,
				"path", outputPath,
				"size_bytes", info.Size())
			return publicPath, nil
		}

		s.logger.WarnContext(ctx, "found empty speech artifact, regenerating",
			"path", outputPath)
		if err := os.Remove(outputPath); err != nil {
			return "", fmt.Errorf("%w: failed to remove empty artifact %s: %v",
				generation.ErrFilesystem, outputPath, err)
		}
	}

	_, err := generation.Retry(ctx, s.logger, s.retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.synthesizeAndSave(ctx, text, voice, outputPath)
	})
	if err != nil {
		return "", err
	}

	return publicPath, nil
}

// synthesizeAndSave performs one synthesis attempt and writes the artifact.
func (s *Synthesizer) synthesizeAndSave(ctx context.Context, text, voice, outputPath string) error {
	languageCode := languageCodeFromVoice(voice)

	s.logger.DebugContext(ctx, "synthesizing narration",
		"voice", voice,
		"language_code", languageCode,
		"text_length", len(text))

	resp, err := s.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			Name:         voice,
			LanguageCode: languageCode,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return fmt.Errorf("text-to-speech API call failed: %w", err)
	}

	if len(resp.GetAudioContent()) == 0 {
		return fmt.Errorf("%w: no audio content in text-to-speech response", generation.ErrInvalidResponse)
	}

	// The directory may have been deleted since construction.
	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create output directory %s: %v",
			generation.ErrFilesystem, outputDir, err)
	}

	if err := s.probeWritable(ctx, outputDir); err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, resp.GetAudioContent(), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write audio artifact %s: %v",
			generation.ErrFilesystem, outputPath, err)
	}

	return nil
}

// probeWritable writes and removes a small test file to check the output
// directory is writable before the real artifact is saved.
func (s *Synthesizer) probeWritable(ctx context.Context, dir string) error {
	probePath := filepath.Join(dir, writeProbeName)
	if err := os.WriteFile(probePath, []byte("test"), 0o644); err != nil {
		return fmt.Errorf("%w: output directory %s is not writable: %v",
			generation.ErrFilesystem, dir, err)
	}
	if err := os.Remove(probePath); err != nil {
		s.logger.WarnContext(ctx, "failed to remove write probe",
			"path", probePath,
			"error", err)
	}
	return nil
}

// languageCodeFromVoice derives the BCP-47 language code from a voice name,
// e.g. "tr-TR-Standard-A" yields "tr-TR".
func languageCodeFromVoice(voice string) string {
	parts := strings.Split(voice, "-")
	if len(parts) < 2 {
		return voice
	}
	return strings.Join(parts[:2], "-")
}
