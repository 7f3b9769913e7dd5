package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing and returns a cleanup
// function restoring the previous values.
func setupEnv(t *testing.T, envVars map[string]string) func() {
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	for name, value := range envVars {
		if value == "" {
			require.NoError(t, os.Unsetenv(name))
			continue
		}
		require.NoError(t, os.Setenv(name, value), "Failed to set environment variable %s", name)
	}

	return func() {
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// requiredEnv returns the minimal environment for a valid configuration.
func requiredEnv() map[string]string {
	return map[string]string{
		"DREAMTALE_LLM_GEMINI_API_KEY":   "test-gemini-key",
		"DREAMTALE_IMAGE_OPENAI_API_KEY": "test-openai-key",
	}
}

func TestLoadDefaults(t *testing.T) {
	env := requiredEnv()
	env["DREAMTALE_SERVER_PORT"] = ""
	env["DREAMTALE_SERVER_LOG_LEVEL"] = ""
	cleanup := setupEnv(t, env)
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.ModelName)
	assert.Equal(t, "public/audio", cfg.Speech.OutputDir)
	assert.Equal(t, 2, cfg.Generation.ImageConcurrency)
	assert.Equal(t, 4, cfg.Generation.AudioConcurrency)
}

func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"DREAMTALE_SERVER_PORT":                  "9090",
		"DREAMTALE_SERVER_LOG_LEVEL":             "debug",
		"DREAMTALE_LLM_GEMINI_API_KEY":           "gemini-key",
		"DREAMTALE_LLM_MODEL_NAME":               "gemini-1.5-pro",
		"DREAMTALE_IMAGE_OPENAI_API_KEY":         "openai-key",
		"DREAMTALE_SPEECH_OUTPUT_DIR":            "/var/lib/dreamtale/audio",
		"DREAMTALE_GENERATION_IMAGE_CONCURRENCY": "3",
		"DREAMTALE_GENERATION_AUDIO_CONCURRENCY": "6",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "gemini-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.LLM.ModelName)
	assert.Equal(t, "openai-key", cfg.Image.OpenAIAPIKey)
	assert.Equal(t, "/var/lib/dreamtale/audio", cfg.Speech.OutputDir)
	assert.Equal(t, 3, cfg.Generation.ImageConcurrency)
	assert.Equal(t, 6, cfg.Generation.AudioConcurrency)
}

func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "missing API keys",
			envVars: map[string]string{
				"DREAMTALE_LLM_GEMINI_API_KEY":   "",
				"DREAMTALE_IMAGE_OPENAI_API_KEY": "",
			},
		},
		{
			name: "invalid port number",
			envVars: func() map[string]string {
				env := requiredEnv()
				env["DREAMTALE_SERVER_PORT"] = "999999"
				return env
			}(),
		},
		{
			name: "invalid log level",
			envVars: func() map[string]string {
				env := requiredEnv()
				env["DREAMTALE_SERVER_LOG_LEVEL"] = "verbose"
				return env
			}(),
		},
		{
			name: "non-positive image concurrency",
			envVars: func() map[string]string {
				env := requiredEnv()
				env["DREAMTALE_GENERATION_IMAGE_CONCURRENCY"] = "0"
				return env
			}(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}
