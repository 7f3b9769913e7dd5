package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all configuration environment variables,
// e.g. DREAMTALE_SERVER_PORT maps to the server.port key.
const envPrefix = "DREAMTALE"

// Load configuration from environment variables and defaults.
// Environment variables take precedence over defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sensible one; API keys must come
	// from the environment.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("llm.model_name", "gemini-1.5-flash")
	v.SetDefault("speech.output_dir", "public/audio")
	v.SetDefault("generation.image_concurrency", 2)
	v.SetDefault("generation.audio_concurrency", 4)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys through Unmarshal;
	// binding each key explicitly makes them visible.
	keys := []string{
		"server.port",
		"server.log_level",
		"llm.gemini_api_key",
		"llm.model_name",
		"image.openai_api_key",
		"speech.output_dir",
		"generation.image_concurrency",
		"generation.audio_concurrency",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
