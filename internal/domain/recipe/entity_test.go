package recipe

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for the Recipe entity
type RecipeTestSuite struct {
	suite.Suite
}

func validAttributes() Attributes {
	return Attributes{
		Title:        "Microwave Mug Omelette",
		Ingredients:  []string{"2 eggs", "1 tbsp milk", "salt"},
		Instructions: []string{"Whisk the eggs and milk.", "Microwave for 90 seconds."},
		Nutrition:    []NutritionFact{{Name: "Calories", Amount: "210"}},
		Servings:     1,
		ReadyInMinutes: 5,
		Origin:       OriginGenerated,
		OriginTag:    "budget=low meal=breakfast diets= tools=microwave time=10m",
	}
}

func (s *RecipeTestSuite) TestCreation() {
	s.Run("ValidAttributes_ShouldCreateSuccessfully", func() {
		r, err := NewRecipe(validAttributes())
		require.NoError(s.T(), err)
		require.NotNil(s.T(), r)

		assert.NotEqual(s.T(), uuid.Nil, r.ID())
		assert.Equal(s.T(), "Microwave Mug Omelette", r.Title())
		assert.Equal(s.T(), OriginGenerated, r.Origin())
		assert.NotZero(s.T(), r.CreatedAt())
	})

	s.Run("EmptyTitle_ShouldReturnError", func() {
		attrs := validAttributes()
		attrs.Title = ""
		r, err := NewRecipe(attrs)
		assert.ErrorIs(s.T(), err, ErrEmptyTitle)
		assert.Nil(s.T(), r)
	})

	s.Run("NoInstructions_ShouldReturnError", func() {
		attrs := validAttributes()
		attrs.Instructions = nil
		r, err := NewRecipe(attrs)
		assert.ErrorIs(s.T(), err, ErrNoInstructions)
		assert.Nil(s.T(), r)
	})

	s.Run("UnknownOrigin_ShouldReturnError", func() {
		attrs := validAttributes()
		attrs.Origin = "scraped"
		r, err := NewRecipe(attrs)
		assert.ErrorIs(s.T(), err, ErrUnknownOrigin)
		assert.Nil(s.T(), r)
	})
}

func (s *RecipeTestSuite) TestImmutability() {
	r, err := NewRecipe(validAttributes())
	require.NoError(s.T(), err)

	// Mutating returned slices must not touch the entity.
	ingredients := r.Ingredients()
	ingredients[0] = "tampered"
	assert.Equal(s.T(), "2 eggs", r.Ingredients()[0])

	instructions := r.Instructions()
	instructions[0] = "tampered"
	assert.Equal(s.T(), "Whisk the eggs and milk.", r.Instructions()[0])

	nutrition := r.Nutrition()
	nutrition[0].Amount = "0"
	assert.Equal(s.T(), "210", r.Nutrition()[0].Amount)
}

func (s *RecipeTestSuite) TestRestore() {
	id := uuid.New()
	createdAt := time.Now().Add(-24 * time.Hour)

	r := Restore(id, validAttributes(), createdAt)
	assert.Equal(s.T(), id, r.ID())
	assert.Equal(s.T(), createdAt, r.CreatedAt())
	assert.Equal(s.T(), "Microwave Mug Omelette", r.Title())
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}

func TestParseOrigin(t *testing.T) {
	for _, origin := range []Origin{OriginRetrieved, OriginGenerated, OriginVariation} {
		parsed, err := ParseOrigin(string(origin))
		require.NoError(t, err)
		assert.Equal(t, origin, parsed)
	}

	_, err := ParseOrigin("copied")
	assert.ErrorIs(t, err, ErrUnknownOrigin)
}

func TestHistoryEntry(t *testing.T) {
	userID := uuid.New()
	r, err := NewRecipe(validAttributes())
	require.NoError(t, err)

	t.Run("NewEntry_StartsUnsaved", func(t *testing.T) {
		entry, err := NewHistoryEntry(userID, r)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, entry.ID())
		assert.Equal(t, userID, entry.UserID())
		assert.False(t, entry.Saved())
	})

	t.Run("NilRecipe_ShouldReturnError", func(t *testing.T) {
		_, err := NewHistoryEntry(userID, nil)
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("SaveAndUnsave_AreIdempotent", func(t *testing.T) {
		entry, err := NewHistoryEntry(userID, r)
		require.NoError(t, err)

		entry.Save()
		entry.Save()
		assert.True(t, entry.Saved())

		entry.Unsave()
		entry.Unsave()
		assert.False(t, entry.Saved())
	})
}

func TestCandidateUsable(t *testing.T) {
	assert.True(t, CandidateRecipe{Title: "Soup", Instructions: []string{"Simmer."}}.Usable())
	assert.False(t, CandidateRecipe{Instructions: []string{"Simmer."}}.Usable())
	assert.False(t, CandidateRecipe{Title: "Soup"}.Usable())
}
