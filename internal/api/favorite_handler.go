package api

import (
	"net/http"

	"github.com/dreamtale/dreamtale-api/internal/api/shared"
	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/service"
)

// FavoriteHandler handles favorite-story HTTP requests.
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// ListFavorites handles GET /api/favorites requests, returning each favorite
// together with its full story. An optional userProfileId query parameter
// filters to one profile.
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	profileID, err := parseProfileIDQuery(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid userProfileId parameter")
		return
	}

	favorites, err := h.favoriteService.ListComplete(r.Context(), profileID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, favorites)
}

// CreateFavorite handles POST /api/favorites requests.
func (h *FavoriteHandler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	var insert domain.InsertFavoriteStory
	if err := shared.DecodeJSON(r, &insert); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(insert); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	favorite, err := h.favoriteService.Create(r.Context(), insert)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, favorite)
}

// DeleteFavorite handles DELETE /api/favorites/{id} requests.
func (h *FavoriteHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid favorite ID")
		return
	}

	if err := h.favoriteService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
