// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters). These are the interfaces the application exposes to the HTTP
// layer and other driving adapters.
package inbound

import (
	"context"
	"time"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/google/uuid"
)

// ResolverService defines the recipe resolution use cases: turning a
// preference set into a recipe, and deriving variations from prior recipes.
type ResolverService interface {
	// Resolve runs the full pipeline: validate, retrieve, score, and fall
	// back to synthesis when no retrieved candidate is acceptable. The
	// resulting recipe is recorded as an unsaved history entry for the user.
	Resolve(ctx context.Context, cmd ResolveCommand) (*ResolutionDTO, error)

	// Vary regenerates a prior recipe under a free-text modifier. The prior
	// recipe is never mutated; the result is a new, independent recipe.
	Vary(ctx context.Context, cmd VariationCommand) (*ResolutionDTO, error)
}

// HistoryService defines the per-user saved-recipe use cases
type HistoryService interface {
	Save(ctx context.Context, userID, entryID uuid.UUID) error
	Unsave(ctx context.Context, userID, entryID uuid.UUID) error
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params PaginationParams) (*HistoryList, error)
}

// ResolveCommand carries the raw preference input for one resolution
type ResolveCommand struct {
	UserID      uuid.UUID
	Constraints recipe.RawConstraints
}

// VariationCommand derives a new recipe from a prior one
type VariationCommand struct {
	UserID   uuid.UUID
	RecipeID uuid.UUID
	Modifier string
}

// PaginationParams for paginated queries
type PaginationParams struct {
	Page     int
	PageSize int
}

// ResolutionDTO is the pipeline's terminal payload: the normalized recipe
// plus the history entry that records it.
type ResolutionDTO struct {
	Entry  HistoryEntryDTO `json:"entry"`
	Recipe RecipeDTO       `json:"recipe"`
}

// RecipeDTO is the transport representation of a normalized recipe
type RecipeDTO struct {
	ID               uuid.UUID           `json:"id"`
	Title            string              `json:"title"`
	Ingredients      []string            `json:"ingredients"`
	Instructions     []string            `json:"instructions"`
	Nutrition        []NutritionFactDTO  `json:"nutrition"`
	IngredientsHTML  string              `json:"ingredients_html"`
	InstructionsHTML string              `json:"instructions_html"`
	NutritionHTML    string              `json:"nutrition_html"`
	Servings         int                 `json:"servings"`
	ReadyInMinutes   int                 `json:"ready_in_minutes"`
	SourceURL        string              `json:"source_url"`
	Image            string              `json:"image,omitempty"`
	Origin           string              `json:"origin"`
	OriginTag        string              `json:"origin_tag"`
}

// NutritionFactDTO is a single nutrition line
type NutritionFactDTO struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// HistoryEntryDTO is the transport representation of a history entry
type HistoryEntryDTO struct {
	ID        uuid.UUID `json:"id"`
	Saved     bool      `json:"saved"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryList is a paginated history page
type HistoryList struct {
	Entries    []HistoryItemDTO `json:"entries"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// HistoryItemDTO pairs an entry with its recipe for listing
type HistoryItemDTO struct {
	Entry  HistoryEntryDTO `json:"entry"`
	Recipe RecipeDTO       `json:"recipe"`
}

// NewRecipeDTO maps a domain recipe to its transport shape
func NewRecipeDTO(r *recipe.Recipe) RecipeDTO {
	nutrition := make([]NutritionFactDTO, 0, len(r.Nutrition()))
	for _, fact := range r.Nutrition() {
		nutrition = append(nutrition, NutritionFactDTO{Name: fact.Name, Amount: fact.Amount})
	}
	return RecipeDTO{
		ID:               r.ID(),
		Title:            r.Title(),
		Ingredients:      r.Ingredients(),
		Instructions:     r.Instructions(),
		Nutrition:        nutrition,
		IngredientsHTML:  r.IngredientsHTML(),
		InstructionsHTML: r.InstructionsHTML(),
		NutritionHTML:    r.NutritionHTML(),
		Servings:         r.Servings(),
		ReadyInMinutes:   r.ReadyInMinutes(),
		SourceURL:        r.SourceURL(),
		Image:            r.Image(),
		Origin:           string(r.Origin()),
		OriginTag:        r.OriginTag(),
	}
}

// NewHistoryEntryDTO maps a domain history entry to its transport shape
func NewHistoryEntryDTO(h *recipe.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:        h.ID(),
		Saved:     h.Saved(),
		CreatedAt: h.CreatedAt(),
	}
}
