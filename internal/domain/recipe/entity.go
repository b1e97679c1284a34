// Package recipe contains the core domain logic for preference-constrained
// recipe resolution: the canonical Recipe entity, the constraint model, and
// the raw candidate shape the external sources produce.
package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Origin is the provenance tag on a normalized Recipe
type Origin string

const (
	OriginRetrieved Origin = "retrieved"
	OriginGenerated Origin = "generated"
	OriginVariation Origin = "variation"
)

// ParseOrigin resolves a stored origin value
func ParseOrigin(s string) (Origin, error) {
	switch Origin(s) {
	case OriginRetrieved:
		return OriginRetrieved, nil
	case OriginGenerated:
		return OriginGenerated, nil
	case OriginVariation:
		return OriginVariation, nil
	}
	return "", ErrUnknownOrigin
}

// Recipe is the canonical, persisted recipe entity. It is immutable once
// normalized: producing a variation creates a new Recipe, never mutates
// the old one.
type Recipe struct {
	id uuid.UUID

	title        string
	ingredients  []string
	instructions []string
	nutrition    []NutritionFact

	// Pre-rendered, escaped markup fragments handed to the presentation
	// layer as-is.
	ingredientsHTML  string
	instructionsHTML string
	nutritionHTML    string

	servings       int
	readyInMinutes int
	sourceURL      string
	image          string

	origin    Origin
	originTag string

	createdAt time.Time
}

// Attributes carries the normalized field values a Recipe is built from
type Attributes struct {
	Title            string
	Ingredients      []string
	Instructions     []string
	Nutrition        []NutritionFact
	IngredientsHTML  string
	InstructionsHTML string
	NutritionHTML    string
	Servings         int
	ReadyInMinutes   int
	SourceURL        string
	Image            string
	Origin           Origin
	OriginTag        string
}

// NewRecipe creates a Recipe from normalized attributes
func NewRecipe(attrs Attributes) (*Recipe, error) {
	if attrs.Title == "" {
		return nil, ErrEmptyTitle
	}
	if len(attrs.Instructions) == 0 {
		return nil, ErrNoInstructions
	}
	if _, err := ParseOrigin(string(attrs.Origin)); err != nil {
		return nil, err
	}

	return &Recipe{
		id:               uuid.New(),
		title:            attrs.Title,
		ingredients:      copyStrings(attrs.Ingredients),
		instructions:     copyStrings(attrs.Instructions),
		nutrition:        copyFacts(attrs.Nutrition),
		ingredientsHTML:  attrs.IngredientsHTML,
		instructionsHTML: attrs.InstructionsHTML,
		nutritionHTML:    attrs.NutritionHTML,
		servings:         attrs.Servings,
		readyInMinutes:   attrs.ReadyInMinutes,
		sourceURL:        attrs.SourceURL,
		image:            attrs.Image,
		origin:           attrs.Origin,
		originTag:        attrs.OriginTag,
		createdAt:        time.Now(),
	}, nil
}

// Restore rebuilds a persisted Recipe without regenerating its identity.
// Used by repositories only.
func Restore(id uuid.UUID, attrs Attributes, createdAt time.Time) *Recipe {
	r, _ := NewRecipe(attrs)
	if r == nil {
		r = &Recipe{}
	}
	r.id = id
	r.createdAt = createdAt
	return r
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// Ingredients returns the ordered ingredient lines
func (r *Recipe) Ingredients() []string {
	return copyStrings(r.ingredients)
}

// Instructions returns the ordered instruction steps
func (r *Recipe) Instructions() []string {
	return copyStrings(r.instructions)
}

// Nutrition returns the ordered nutrition facts
func (r *Recipe) Nutrition() []NutritionFact {
	return copyFacts(r.nutrition)
}

// IngredientsHTML returns the escaped ingredients fragment
func (r *Recipe) IngredientsHTML() string {
	return r.ingredientsHTML
}

// InstructionsHTML returns the escaped instructions fragment
func (r *Recipe) InstructionsHTML() string {
	return r.instructionsHTML
}

// NutritionHTML returns the escaped nutrition fragment
func (r *Recipe) NutritionHTML() string {
	return r.nutritionHTML
}

// Servings returns the serving count, 0 meaning unspecified
func (r *Recipe) Servings() int {
	return r.servings
}

// ReadyInMinutes returns the total time, 0 meaning unspecified
func (r *Recipe) ReadyInMinutes() int {
	return r.readyInMinutes
}

// SourceURL returns the source link; empty for generated recipes
func (r *Recipe) SourceURL() string {
	return r.sourceURL
}

// Image returns the optional image URL
func (r *Recipe) Image() string {
	return r.image
}

// Origin returns the provenance tag
func (r *Recipe) Origin() Origin {
	return r.origin
}

// OriginTag returns the query or prompt that produced the recipe, kept
// for traceability and variation chaining.
func (r *Recipe) OriginTag() string {
	return r.originTag
}

// CreatedAt returns when the recipe was normalized
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyFacts(in []NutritionFact) []NutritionFact {
	if len(in) == 0 {
		return nil
	}
	out := make([]NutritionFact, len(in))
	copy(out, in)
	return out
}
