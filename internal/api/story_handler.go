package api

import (
	"net/http"
	"strconv"

	"github.com/dreamtale/dreamtale-api/internal/api/shared"
	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/service"
)

// StoryHandler handles story-related HTTP requests, including the generation
// pipeline endpoint.
type StoryHandler struct {
	storyService *service.StoryService
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(storyService *service.StoryService) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
	}
}

// ListStories handles GET /api/stories requests. An optional userProfileId
// query parameter filters the listing to one profile.
func (h *StoryHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	profileID, err := parseProfileIDQuery(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid userProfileId parameter")
		return
	}

	stories, err := h.storyService.List(r.Context(), profileID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stories)
}

// GetStory handles GET /api/stories/{id} requests, returning the composed
// story view with pages and profile. A story still mid-generation is returned
// with nil image or audio URLs on unfinished pages.
func (h *StoryHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid story ID")
		return
	}

	complete, err := h.storyService.GetCompleteStory(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, complete)
}

// GenerateStory handles POST /api/stories/generate requests, running the full
// generation pipeline and returning the completed story.
func (h *StoryHandler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	var req domain.StoryGenerationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	complete, err := h.storyService.Generate(r.Context(), req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, complete)
}

// parseProfileIDQuery extracts the optional userProfileId query parameter.
// Returns nil when the parameter is absent.
func parseProfileIDQuery(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("userProfileId")
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
