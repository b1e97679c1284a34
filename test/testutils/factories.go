package testutils

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/craveapp/crave/internal/domain/recipe"
)

// CandidateFactory provides methods to create test candidates
type CandidateFactory struct {
	faker *gofakeit.Faker
}

// NewCandidateFactory creates a new candidate factory with seeded faker
func NewCandidateFactory(seed int64) *CandidateFactory {
	return &CandidateFactory{
		faker: gofakeit.New(seed),
	}
}

// Candidate builds a fully populated, usable candidate
func (f *CandidateFactory) Candidate() recipe.CandidateRecipe {
	return recipe.CandidateRecipe{
		Title: f.faker.Dinner(),
		IngredientLines: []string{
			fmt.Sprintf("2 cups %s", f.faker.Vegetable()),
			fmt.Sprintf("1 lb %s", f.faker.Lunch()),
			"1 tbsp olive oil",
		},
		Instructions: []string{
			"Prepare the ingredients.",
			"Cook everything together on the stove.",
			"Serve warm.",
		},
		Nutrition: []recipe.NutritionFact{
			{Name: "Calories", Amount: fmt.Sprintf("%d", f.faker.Number(200, 900))},
			{Name: "Protein", Amount: fmt.Sprintf("%dg", f.faker.Number(5, 60))},
		},
		Servings:         f.faker.Number(1, 6),
		TotalTimeMinutes: f.faker.Number(10, 90),
		SourceURL:        f.faker.URL(),
		ImageURL:         f.faker.URL(),
	}
}

// WithDietTags returns a candidate declaring the given diet labels
func (f *CandidateFactory) WithDietTags(tags ...string) recipe.CandidateRecipe {
	c := f.Candidate()
	c.DietTags = tags
	return c
}

// WithTime returns a candidate with a fixed total time
func (f *CandidateFactory) WithTime(minutes int) recipe.CandidateRecipe {
	c := f.Candidate()
	c.TotalTimeMinutes = minutes
	return c
}

// ValidRawConstraints builds a raw constraint payload that parses cleanly
func ValidRawConstraints() recipe.RawConstraints {
	return recipe.RawConstraints{
		BudgetTier:         "low",
		MealType:           "dinner",
		Diets:              []string{"vegetarian"},
		Tools:              []string{"stovetop", "oven"},
		TimeCeilingMinutes: 45,
	}
}

// MustConstraints parses raw constraints, panicking on failure. For test
// fixtures only.
func MustConstraints(raw recipe.RawConstraints) recipe.ConstraintSet {
	cs, err := recipe.ParseConstraintSet(raw)
	if err != nil {
		panic(err)
	}
	return cs
}

// GeneratedCompletion renders a well-formed generative completion the
// section parser accepts.
func GeneratedCompletion(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe Title: %s\n", title)
	b.WriteString("Cook Time: 25 minutes\n")
	b.WriteString("Servings: 2\n")
	b.WriteString("Nutrition Facts:\n")
	b.WriteString("- Calories: 450\n")
	b.WriteString("- Protein: 18g\n")
	b.WriteString("Ingredients:\n")
	b.WriteString("- 1 cup rice\n")
	b.WriteString("- 2 eggs\n")
	b.WriteString("- 1 tbsp soy sauce\n")
	b.WriteString("Instructions:\n")
	b.WriteString("1. Cook the rice.\n")
	b.WriteString("2. Scramble the eggs in a pan.\n")
	b.WriteString("3. Combine and season with soy sauce.\n")
	return b.String()
}
