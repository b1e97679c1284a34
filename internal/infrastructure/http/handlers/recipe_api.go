package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/infrastructure/http/middleware"
	"github.com/craveapp/crave/internal/ports/inbound"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeHandlers handles resolution and variation API requests
type RecipeHandlers struct {
	resolverService inbound.ResolverService
	logger          *zap.Logger
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(resolverService inbound.ResolverService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		resolverService: resolverService,
		logger:          logger.Named("recipe-handlers"),
	}
}

// VariationRequest carries the free-text modifier for a variation
type VariationRequest struct {
	Modifier string `json:"modifier"`
}

// Resolve handles POST /api/v1/recipes/resolve
func (h *RecipeHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	var raw recipe.RawConstraints
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid JSON payload"))
		return
	}

	result, err := h.resolverService.Resolve(r.Context(), inbound.ResolveCommand{
		UserID:      userID,
		Constraints: raw,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("recipe resolved",
		zap.String("user_id", userID.String()),
		zap.String("origin", result.Recipe.Origin),
	)
	writeJSON(w, http.StatusOK, result)
}

// Vary handles POST /api/v1/recipes/{id}/variation
func (h *RecipeHandlers) Vary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.NewValidationError("Invalid recipe ID"))
		return
	}

	var req VariationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid JSON payload"))
		return
	}

	result, err := h.resolverService.Vary(r.Context(), inbound.VariationCommand{
		UserID:   userID,
		RecipeID: recipeID,
		Modifier: req.Modifier,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
