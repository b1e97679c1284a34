package resolver

import (
	"testing"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dinnerConstraints(t *testing.T, raw recipe.RawConstraints) recipe.ConstraintSet {
	t.Helper()
	cs, err := recipe.ParseConstraintSet(raw)
	require.NoError(t, err)
	return cs
}

func TestFilterAndRankHardRejections(t *testing.T) {
	constraints := dinnerConstraints(t, recipe.RawConstraints{
		BudgetTier:         "low",
		MealType:           "dinner",
		Diets:              []string{"vegetarian"},
		Tools:              []string{"stovetop"},
		TimeCeilingMinutes: 30,
	})

	candidates := []recipe.CandidateRecipe{
		{Title: "", Instructions: []string{"Cook."}},
		{Title: "No Steps"},
		{Title: "Too Slow", Instructions: []string{"Cook."}, TotalTimeMinutes: 45},
		{Title: "Wrong Diet", Instructions: []string{"Cook."}, DietTags: []string{"paleo"}, TotalTimeMinutes: 20},
		{Title: "Keeper", Instructions: []string{"Cook on the stove."}, DietTags: []string{"vegetarian"}, TotalTimeMinutes: 20},
	}

	ranked := FilterAndRank(candidates, constraints)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Keeper", ranked[0].Title)
}

func TestFilterAndRankDietMetadataAbsent(t *testing.T) {
	constraints := dinnerConstraints(t, recipe.RawConstraints{
		BudgetTier: "low",
		MealType:   "dinner",
		Diets:      []string{"vegan"},
		Tools:      []string{"none"},
	})

	// No declared tags: survives as a soft-unknown but ranks below an
	// exact diet cover.
	unknown := recipe.CandidateRecipe{Title: "Unknown", Instructions: []string{"Cook."}}
	tagged := recipe.CandidateRecipe{Title: "Tagged", Instructions: []string{"Cook."}, DietTags: []string{"vegan"}}

	ranked := FilterAndRank([]recipe.CandidateRecipe{unknown, tagged}, constraints)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Tagged", ranked[0].Title)
	assert.Equal(t, "Unknown", ranked[1].Title)
}

func TestFilterAndRankDietTagNormalization(t *testing.T) {
	constraints := dinnerConstraints(t, recipe.RawConstraints{
		BudgetTier: "low",
		MealType:   "dinner",
		Diets:      []string{"gluten_free"},
		Tools:      []string{"none"},
	})

	candidate := recipe.CandidateRecipe{
		Title:        "Flexible Tags",
		Instructions: []string{"Cook."},
		DietTags:     []string{"Gluten-Free"},
	}

	ranked := FilterAndRank([]recipe.CandidateRecipe{candidate}, constraints)
	require.Len(t, ranked, 1)
}

func TestFilterAndRankToolBonus(t *testing.T) {
	constraints := dinnerConstraints(t, recipe.RawConstraints{
		BudgetTier: "low",
		MealType:   "dinner",
		Tools:      []string{"stovetop", "microwave"},
	})

	both := recipe.CandidateRecipe{
		Title:        "Both Tools",
		Instructions: []string{"Heat on the stove, then finish in the microwave."},
	}
	one := recipe.CandidateRecipe{
		Title:        "One Tool",
		Instructions: []string{"Heat on the stove."},
	}
	neither := recipe.CandidateRecipe{
		Title:        "No Tools",
		Instructions: []string{"Assemble and serve."},
	}

	ranked := FilterAndRank([]recipe.CandidateRecipe{neither, one, both}, constraints)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Both Tools", ranked[0].Title)
	assert.Equal(t, "One Tool", ranked[1].Title)
	assert.Equal(t, "No Tools", ranked[2].Title)
}

func TestFilterAndRankTieBreaking(t *testing.T) {
	constraints := dinnerConstraints(t, recipe.RawConstraints{
		BudgetTier: "low",
		MealType:   "dinner",
		Tools:      []string{"none"},
	})

	slow := recipe.CandidateRecipe{Title: "Slow", Instructions: []string{"Cook."}, TotalTimeMinutes: 40}
	fast := recipe.CandidateRecipe{Title: "Fast", Instructions: []string{"Cook."}, TotalTimeMinutes: 10}
	alsoFast := recipe.CandidateRecipe{Title: "Also Fast", Instructions: []string{"Cook."}, TotalTimeMinutes: 10}

	// Equal scores: shorter time wins, then original order holds.
	ranked := FilterAndRank([]recipe.CandidateRecipe{slow, fast, alsoFast}, constraints)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Fast", ranked[0].Title)
	assert.Equal(t, "Also Fast", ranked[1].Title)
	assert.Equal(t, "Slow", ranked[2].Title)
}

func TestFilterAndRankEmptyOutcome(t *testing.T) {
	constraints := dinnerConstraints(t, recipe.RawConstraints{
		BudgetTier:         "low",
		MealType:           "dinner",
		Tools:              []string{"none"},
		TimeCeilingMinutes: 10,
	})

	factory := testutils.NewCandidateFactory(7)
	over := factory.WithTime(60)

	ranked := FilterAndRank([]recipe.CandidateRecipe{over}, constraints)
	assert.Empty(t, ranked)

	assert.Empty(t, FilterAndRank(nil, constraints))
}
