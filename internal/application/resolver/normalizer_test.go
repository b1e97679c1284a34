package resolver

import (
	"testing"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCandidate(t *testing.T) {
	candidate := recipe.CandidateRecipe{
		Title:           "  Veggie Stir Fry  ",
		IngredientLines: []string{" 1 cup rice ", "", "2 carrots"},
		Instructions:    []string{"Chop & fry the carrots.", "  ", "Serve over rice."},
		Nutrition: []recipe.NutritionFact{
			{Name: " Calories ", Amount: " 320 "},
			{Name: "", Amount: "ignored"},
		},
		Servings:         2,
		TotalTimeMinutes: 25,
		SourceURL:        " https://example.com/stir-fry ",
		ImageURL:         "https://example.com/stir-fry.jpg",
	}

	r, err := NormalizeCandidate(candidate, recipe.OriginRetrieved, "budget=low meal=dinner")
	require.NoError(t, err)

	assert.Equal(t, "Veggie Stir Fry", r.Title())
	assert.Equal(t, []string{"1 cup rice", "2 carrots"}, r.Ingredients())
	assert.Equal(t, []string{"Chop & fry the carrots.", "Serve over rice."}, r.Instructions())
	assert.Equal(t, []recipe.NutritionFact{{Name: "Calories", Amount: "320"}}, r.Nutrition())
	assert.Equal(t, "https://example.com/stir-fry", r.SourceURL())
	assert.Equal(t, recipe.OriginRetrieved, r.Origin())
	assert.Equal(t, "budget=low meal=dinner", r.OriginTag())

	// Free text is escaped in the rendered fragments.
	assert.Contains(t, r.InstructionsHTML(), "Chop &amp; fry the carrots.")
	assert.Equal(t, "<ul><li>1 cup rice</li><li>2 carrots</li></ul>", r.IngredientsHTML())
	assert.Equal(t, "<ul><li>Calories: 320</li></ul>", r.NutritionHTML())
}

func TestNormalizeCandidateDefaults(t *testing.T) {
	candidate := recipe.CandidateRecipe{
		Title:            "Sparse",
		IngredientLines:  nil,
		Instructions:     []string{"Do the thing."},
		Servings:         -1,
		TotalTimeMinutes: -10,
	}

	r, err := NormalizeCandidate(candidate, recipe.OriginGenerated, "prompt")
	require.NoError(t, err)

	assert.Equal(t, 0, r.Servings())
	assert.Equal(t, 0, r.ReadyInMinutes())
	assert.Empty(t, r.SourceURL())
	assert.Empty(t, r.Image())
	assert.Equal(t, "<ul><li>No ingredients listed.</li></ul>", r.IngredientsHTML())
	assert.Equal(t, "<ul><li>Nutritional information not available.</li></ul>", r.NutritionHTML())
}

func TestNormalizeCandidateRejectsUnusable(t *testing.T) {
	_, err := NormalizeCandidate(recipe.CandidateRecipe{Instructions: []string{"Cook."}}, recipe.OriginRetrieved, "")
	assert.ErrorIs(t, err, recipe.ErrEmptyTitle)

	_, err = NormalizeCandidate(recipe.CandidateRecipe{Title: "No Steps"}, recipe.OriginRetrieved, "")
	assert.ErrorIs(t, err, recipe.ErrNoInstructions)
}

// Normalization is deterministic: identical input yields identical content.
func TestNormalizeCandidateDeterminism(t *testing.T) {
	candidate := recipe.CandidateRecipe{
		Title:           "Repeatable",
		IngredientLines: []string{"1 egg"},
		Instructions:    []string{"Boil the egg."},
	}

	a, err := NormalizeCandidate(candidate, recipe.OriginGenerated, "prompt")
	require.NoError(t, err)
	b, err := NormalizeCandidate(candidate, recipe.OriginGenerated, "prompt")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.Title(), b.Title())
	assert.Equal(t, a.Ingredients(), b.Ingredients())
	assert.Equal(t, a.IngredientsHTML(), b.IngredientsHTML())
	assert.Equal(t, a.InstructionsHTML(), b.InstructionsHTML())
	assert.Equal(t, a.NutritionHTML(), b.NutritionHTML())
}
