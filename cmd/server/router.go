package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dreamtale/dreamtale-api/internal/api"
	apiMiddleware "github.com/dreamtale/dreamtale-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	profileHandler := api.NewProfileHandler(app.profileService)
	storyHandler := api.NewStoryHandler(app.storyService)
	favoriteHandler := api.NewFavoriteHandler(app.favoriteService)

	r.Route("/api", func(r chi.Router) {
		// Profile endpoints
		r.Get("/profiles", profileHandler.ListProfiles)
		r.Get("/profiles/{id}", profileHandler.GetProfile)
		r.Post("/profiles", profileHandler.CreateProfile)
		r.Delete("/profiles/{id}", profileHandler.DeleteProfile)

		// Story endpoints
		r.Get("/stories", storyHandler.ListStories)
		r.Get("/stories/{id}", storyHandler.GetStory)
		r.Post("/stories/generate", storyHandler.GenerateStory)

		// Favorite endpoints
		r.Get("/favorites", favoriteHandler.ListFavorites)
		r.Post("/favorites", favoriteHandler.CreateFavorite)
		r.Delete("/favorites/{id}", favoriteHandler.DeleteFavorite)
	})

	// Generated narration artifacts are served as static files.
	audioDir := http.Dir(app.config.Speech.OutputDir)
	r.Handle("/audio/*", http.StripPrefix("/audio/", http.FileServer(audioDir)))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
