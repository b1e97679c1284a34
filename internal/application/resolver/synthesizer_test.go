package resolver

import (
	"context"
	"testing"

	"github.com/craveapp/crave/internal/domain/recipe"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"github.com/craveapp/crave/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConstraints(t *testing.T) recipe.ConstraintSet {
	t.Helper()
	cs, err := recipe.ParseConstraintSet(recipe.RawConstraints{
		BudgetTier:         "low",
		MealType:           "dinner",
		Diets:              []string{"vegetarian", "nut_free"},
		Tools:              []string{"stovetop", "microwave"},
		TimeCeilingMinutes: 30,
	})
	require.NoError(t, err)
	return cs
}

func TestGeneratePromptCarriesAllConstraints(t *testing.T) {
	completer := new(testutils.MockTextCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return(testutils.GeneratedCompletion("Veggie Skillet"), nil)

	synth := NewFallbackSynthesizer(completer, zap.NewNop())
	candidate, prompt, err := synth.Generate(context.Background(), testConstraints(t))
	require.NoError(t, err)

	assert.Equal(t, "Veggie Skillet", candidate.Title)

	// Every constraint value must appear in the prompt.
	assert.Contains(t, prompt, "Budget: low")
	assert.Contains(t, prompt, "Type of meal: dinner")
	assert.Contains(t, prompt, "nut_free, vegetarian")
	assert.Contains(t, prompt, "microwave, stovetop")
	assert.Contains(t, prompt, "at most 30 minutes")
}

func TestGenerateUnboundedTimeAndNoDiets(t *testing.T) {
	cs, err := recipe.ParseConstraintSet(recipe.RawConstraints{
		BudgetTier: "high",
		MealType:   "breakfast",
		Tools:      []string{"none"},
	})
	require.NoError(t, err)

	completer := new(testutils.MockTextCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return(testutils.GeneratedCompletion("Fancy Toast"), nil)

	synth := NewFallbackSynthesizer(completer, zap.NewNop())
	_, prompt, err := synth.Generate(context.Background(), cs)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Dietary restrictions: None")
	assert.Contains(t, prompt, "Time: no limit")
}

func TestGenerateRetriesOnceOnMalformedOutput(t *testing.T) {
	completer := new(testutils.MockTextCompleter)
	// First attempt is malformed, second is valid and arrives under the
	// clarifying preamble.
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return !containsClarification(p)
	})).Return("Sure! Here is a tasty idea with no structure at all.", nil).Once()
	completer.On("Complete", mock.Anything, mock.MatchedBy(containsClarification)).
		Return(testutils.GeneratedCompletion("Second Try Curry"), nil).Once()

	synth := NewFallbackSynthesizer(completer, zap.NewNop())
	candidate, _, err := synth.Generate(context.Background(), testConstraints(t))
	require.NoError(t, err)

	assert.Equal(t, "Second Try Curry", candidate.Title)
	completer.AssertNumberOfCalls(t, "Complete", 2)
}

func TestGenerateFailsAfterTwoMalformedAttempts(t *testing.T) {
	completer := new(testutils.MockTextCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return("still not a recipe", nil)

	synth := NewFallbackSynthesizer(completer, zap.NewNop())
	_, _, err := synth.Generate(context.Background(), testConstraints(t))

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeGenerationFailed))
	completer.AssertNumberOfCalls(t, "Complete", 2)
}

func TestGenerateVariationRejectsEmptyModifier(t *testing.T) {
	completer := new(testutils.MockTextCompleter)
	synth := NewFallbackSynthesizer(completer, zap.NewNop())

	prior := mustRecipe(t)
	_, _, err := synth.GenerateVariation(context.Background(), prior, "   ")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	completer.AssertNotCalled(t, "Complete")
}

func TestGenerateVariationPromptCarriesPriorRecipe(t *testing.T) {
	completer := new(testutils.MockTextCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return(testutils.GeneratedCompletion("Spicy Mug Omelette"), nil)

	synth := NewFallbackSynthesizer(completer, zap.NewNop())
	prior := mustRecipe(t)

	candidate, prompt, err := synth.GenerateVariation(context.Background(), prior, "make it spicy")
	require.NoError(t, err)

	assert.Equal(t, "Spicy Mug Omelette", candidate.Title)
	assert.Contains(t, prompt, prior.Title())
	assert.Contains(t, prompt, "make it spicy")
	for _, line := range prior.Ingredients() {
		assert.Contains(t, prompt, line)
	}
}

func TestParseGeneratedRecipe(t *testing.T) {
	t.Run("WellFormed", func(t *testing.T) {
		candidate, err := parseGeneratedRecipe(testutils.GeneratedCompletion("Egg Fried Rice"))
		require.NoError(t, err)

		assert.Equal(t, "Egg Fried Rice", candidate.Title)
		assert.Equal(t, 25, candidate.TotalTimeMinutes)
		assert.Equal(t, 2, candidate.Servings)
		assert.Len(t, candidate.IngredientLines, 3)
		assert.Len(t, candidate.Instructions, 3)
		assert.Equal(t, "Cook the rice.", candidate.Instructions[0])
		assert.Equal(t, recipe.NutritionFact{Name: "Calories", Amount: "450"}, candidate.Nutrition[0])
	})

	t.Run("MarkdownDecorations_AreStripped", func(t *testing.T) {
		text := "**Recipe Title:** Oven Nachos\n" +
			"Cook Time: 15 minutes\n" +
			"Ingredients:\n" +
			"- tortilla chips\n" +
			"- shredded cheese\n" +
			"Instructions:\n" +
			"1. Spread chips on a tray.\n" +
			"2. Bake until the cheese melts.\n"

		candidate, err := parseGeneratedRecipe(text)
		require.NoError(t, err)
		assert.Equal(t, "Oven Nachos", candidate.Title)
		assert.Len(t, candidate.Instructions, 2)
	})

	t.Run("MissingSections_AreReported", func(t *testing.T) {
		_, err := parseGeneratedRecipe("Recipe Title: Only A Title")
		require.ErrorIs(t, err, ErrMalformedGeneration)
		assert.Contains(t, err.Error(), "ingredients")
		assert.Contains(t, err.Error(), "instructions")
	})

	t.Run("EmptyCompletion", func(t *testing.T) {
		_, err := parseGeneratedRecipe("")
		assert.ErrorIs(t, err, ErrMalformedGeneration)
	})
}

func containsClarification(prompt string) bool {
	return len(prompt) >= len(clarifyPrompt) && prompt[:len(clarifyPrompt)] == clarifyPrompt
}

func mustRecipe(t *testing.T) *recipe.Recipe {
	t.Helper()
	r, err := NormalizeCandidate(recipe.CandidateRecipe{
		Title:           "Mug Omelette",
		IngredientLines: []string{"2 eggs", "1 tbsp milk"},
		Instructions:    []string{"Whisk.", "Microwave for 90 seconds."},
	}, recipe.OriginGenerated, "prompt")
	require.NoError(t, err)
	return r
}
