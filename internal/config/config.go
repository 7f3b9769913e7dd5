package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Image      ImageConfig      `mapstructure:"image"      validate:"required"`
	Speech     SpeechConfig     `mapstructure:"speech"     validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains the story text generation (Gemini) settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`
}

// ImageConfig contains the illustration generation (OpenAI) settings.
type ImageConfig struct {
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required"`
}

// SpeechConfig contains the narration synthesis (Cloud TTS) settings.
type SpeechConfig struct {
	// OutputDir is the directory generated mp3 files are written to and
	// served from under /audio/.
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

// GenerationConfig contains the pipeline concurrency ceilings. Image
// generation is upstream-cost-heavier than speech synthesis, hence the lower
// default.
type GenerationConfig struct {
	ImageConcurrency int `mapstructure:"image_concurrency" validate:"required,gt=0"`
	AudioConcurrency int `mapstructure:"audio_concurrency" validate:"required,gt=0"`
}
