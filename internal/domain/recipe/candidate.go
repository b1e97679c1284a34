package recipe

// CandidateRecipe is the raw, source-specific shape returned by the
// retrieval service or assembled by the fallback synthesizer. Nothing
// about it is guaranteed complete; the normalizer decides what is usable.
type CandidateRecipe struct {
	Title            string
	IngredientLines  []string
	Instructions     []string
	Nutrition        []NutritionFact
	Servings         int
	TotalTimeMinutes int
	SourceURL        string
	ImageURL         string

	// DietTags are the source's declared diet labels. An empty slice means
	// the source published no diet metadata, which is not the same thing
	// as declaring a conflict.
	DietTags []string
}

// NutritionFact is a single nutrition key/value pair, kept ordered
type NutritionFact struct {
	Name   string
	Amount string
}

// Usable reports whether the candidate carries the minimum data the
// normalizer needs downstream.
func (c CandidateRecipe) Usable() bool {
	return c.Title != "" && len(c.Instructions) > 0
}
