package texttospeech

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtale/dreamtale-api/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// fakeSpeechAPI records requests and replays scripted responses.
type fakeSpeechAPI struct {
	calls    int
	requests []*texttospeechpb.SynthesizeSpeechRequest
	audio    []byte
	errs     []error
}

func (f *fakeSpeechAPI) SynthesizeSpeech(
	ctx context.Context,
	req *texttospeechpb.SynthesizeSpeechRequest,
	opts ...gax.CallOption,
) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	idx := f.calls
	f.calls++
	f.requests = append(f.requests, req)

	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}

	audio := f.audio
	if audio == nil {
		audio = []byte("mp3-bytes")
	}
	return &texttospeechpb.SynthesizeSpeechResponse{AudioContent: audio}, nil
}

func newTestSynthesizer(t *testing.T, client speechAPI) *Synthesizer {
	t.Helper()

	return &Synthesizer{
		logger:    testLogger(),
		client:    client,
		outputDir: t.TempDir(),
		retry: generation.RetryPolicy{
			MaxAttempts: generation.DefaultMaxAttempts,
			BaseDelay:   time.Millisecond,
		},
	}
}

// artifactName returns the expected content-addressed filename for a
// text/voice pair.
func artifactName(text, voice string) string {
	hash := md5.Sum([]byte(text + "-" + voice))
	return hex.EncodeToString(hash[:]) + ".mp3"
}

func TestSynthesizeWritesArtifactAndReturnsPublicPath(t *testing.T) {
	client := &fakeSpeechAPI{audio: []byte("narration")}
	synthesizer := newTestSynthesizer(t, client)

	publicPath, err := synthesizer.Synthesize(context.Background(), "Once upon a time", "en-US-Standard-C")

	require.NoError(t, err)
	expectedName := artifactName("Once upon a time", "en-US-Standard-C")
	assert.Equal(t, "/audio/"+expectedName, publicPath)

	written, err := os.ReadFile(filepath.Join(synthesizer.outputDir, expectedName))
	require.NoError(t, err)
	assert.Equal(t, []byte("narration"), written)
}

func TestSynthesizeCacheHitSkipsAPI(t *testing.T) {
	client := &fakeSpeechAPI{}
	synthesizer := newTestSynthesizer(t, client)

	first, err := synthesizer.Synthesize(context.Background(), "sleepy stars", "en-US-Standard-C")
	require.NoError(t, err)
	require.Equal(t, 1, client.calls)

	second, err := synthesizer.Synthesize(context.Background(), "sleepy stars", "en-US-Standard-C")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls, "cache hit must not call the API again")
}

func TestSynthesizeDifferentVoiceMissesCache(t *testing.T) {
	client := &fakeSpeechAPI{}
	synthesizer := newTestSynthesizer(t, client)

	pathA, err := synthesizer.Synthesize(context.Background(), "sleepy stars", "en-US-Standard-C")
	require.NoError(t, err)

	pathB, err := synthesizer.Synthesize(context.Background(), "sleepy stars", "tr-TR-Standard-A")
	require.NoError(t, err)

	assert.NotEqual(t, pathA, pathB)
	assert.Equal(t, 2, client.calls)
}

func TestSynthesizeRegeneratesZeroByteArtifact(t *testing.T) {
	client := &fakeSpeechAPI{audio: []byte("fresh")}
	synthesizer := newTestSynthesizer(t, client)

	name := artifactName("interrupted story", "en-US-Standard-C")
	outputPath := filepath.Join(synthesizer.outputDir, name)
	require.NoError(t, os.WriteFile(outputPath, nil, 0o644))

	publicPath, err := synthesizer.Synthesize(context.Background(), "interrupted story", "en-US-Standard-C")

	require.NoError(t, err)
	assert.Equal(t, "/audio/"+name, publicPath)
	assert.Equal(t, 1, client.calls, "zero-byte artifact must be regenerated")

	written, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), written)
}

func TestSynthesizeLanguageCodeDerivation(t *testing.T) {
	client := &fakeSpeechAPI{}
	synthesizer := newTestSynthesizer(t, client)

	_, err := synthesizer.Synthesize(context.Background(), "merhaba", "tr-TR-Standard-A")

	require.NoError(t, err)
	require.Len(t, client.requests, 1)
	voice := client.requests[0].GetVoice()
	assert.Equal(t, "tr-TR-Standard-A", voice.GetName())
	assert.Equal(t, "tr-TR", voice.GetLanguageCode())
	assert.Equal(t, texttospeechpb.AudioEncoding_MP3, client.requests[0].GetAudioConfig().GetAudioEncoding())
}

func TestSynthesizeRetriesThenFails(t *testing.T) {
	boom := errors.New("quota exceeded")
	client := &fakeSpeechAPI{errs: []error{boom, boom, boom}}
	synthesizer := newTestSynthesizer(t, client)

	_, err := synthesizer.Synthesize(context.Background(), "hello", "en-US-Standard-C")

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrUpstream)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 3, client.calls)

	_, statErr := os.Stat(filepath.Join(synthesizer.outputDir, artifactName("hello", "en-US-Standard-C")))
	assert.True(t, os.IsNotExist(statErr), "no artifact should remain after a failed synthesis")
}

func TestSynthesizeEmptyAudioContent(t *testing.T) {
	client := &fakeSpeechAPI{audio: []byte{}}
	synthesizer := newTestSynthesizer(t, client)

	_, err := synthesizer.Synthesize(context.Background(), "hello", "en-US-Standard-C")

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrUpstream)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestSynthesizeRecreatesDeletedOutputDir(t *testing.T) {
	client := &fakeSpeechAPI{}
	synthesizer := newTestSynthesizer(t, client)

	require.NoError(t, os.RemoveAll(synthesizer.outputDir))

	publicPath, err := synthesizer.Synthesize(context.Background(), "hello again", "en-US-Standard-C")

	require.NoError(t, err)
	assert.NotEmpty(t, publicPath)
	_, statErr := os.Stat(filepath.Join(synthesizer.outputDir, artifactName("hello again", "en-US-Standard-C")))
	assert.NoError(t, statErr)
}

func TestLanguageCodeFromVoice(t *testing.T) {
	testCases := []struct {
		voice string
		want  string
	}{
		{voice: "tr-TR-Standard-A", want: "tr-TR"},
		{voice: "en-US-Wavenet-D", want: "en-US"},
		{voice: "en-GB", want: "en-GB"},
		{voice: "en", want: "en"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, languageCodeFromVoice(tc.voice), "voice %q", tc.voice)
	}
}
