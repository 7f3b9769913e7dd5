// Package main implements the entry point for the DreamTale API server,
// which generates personalized, illustrated, narrated bedtime stories for
// child profiles.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/dreamtale/dreamtale-api/internal/config"
	"github.com/dreamtale/dreamtale-api/internal/platform/logger"
)

func main() {
	// A missing .env file is fine; environment variables may be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := initializeConfig()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeConfig loads configuration and sets up structured logging.
func initializeConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"audio_output_dir", cfg.Speech.OutputDir,
		"image_concurrency", cfg.Generation.ImageConcurrency,
		"audio_concurrency", cfg.Generation.AudioConcurrency)

	return cfg, nil
}
