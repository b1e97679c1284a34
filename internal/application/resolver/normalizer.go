package resolver

import (
	"fmt"
	"html"
	"strings"

	"github.com/craveapp/crave/internal/domain/recipe"
)

// NormalizeCandidate maps a raw candidate, retrieved or generated, into the
// canonical Recipe entity. Pure mapping: free text destined for markup is
// trimmed and escaped, absent numerics default to the unspecified sentinel,
// absent image and source URL default to empty. Same input always yields
// the same Recipe, aside from identity and timestamp.
func NormalizeCandidate(c recipe.CandidateRecipe, origin recipe.Origin, originTag string) (*recipe.Recipe, error) {
	ingredients := cleanLines(c.IngredientLines)
	instructions := cleanLines(c.Instructions)
	nutrition := cleanFacts(c.Nutrition)

	servings := c.Servings
	if servings < 0 {
		servings = 0
	}
	readyIn := c.TotalTimeMinutes
	if readyIn < 0 {
		readyIn = 0
	}

	return recipe.NewRecipe(recipe.Attributes{
		Title:            strings.TrimSpace(c.Title),
		Ingredients:      ingredients,
		Instructions:     instructions,
		Nutrition:        nutrition,
		IngredientsHTML:  renderList("ul", ingredients, "No ingredients listed."),
		InstructionsHTML: renderList("ol", instructions, "No instructions available."),
		NutritionHTML:    renderNutrition(nutrition),
		Servings:         servings,
		ReadyInMinutes:   readyIn,
		SourceURL:        strings.TrimSpace(c.SourceURL),
		Image:            strings.TrimSpace(c.ImageURL),
		Origin:           origin,
		OriginTag:        originTag,
	})
}

func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func cleanFacts(facts []recipe.NutritionFact) []recipe.NutritionFact {
	out := make([]recipe.NutritionFact, 0, len(facts))
	for _, f := range facts {
		name := strings.TrimSpace(f.Name)
		amount := strings.TrimSpace(f.Amount)
		if name != "" {
			out = append(out, recipe.NutritionFact{Name: name, Amount: amount})
		}
	}
	return out
}

func renderList(tag string, items []string, placeholder string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s>", tag)
	if len(items) == 0 {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(placeholder))
	}
	for _, item := range items {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(item))
	}
	fmt.Fprintf(&b, "</%s>", tag)
	return b.String()
}

func renderNutrition(facts []recipe.NutritionFact) string {
	var b strings.Builder
	b.WriteString("<ul>")
	if len(facts) == 0 {
		b.WriteString("<li>Nutritional information not available.</li>")
	}
	for _, f := range facts {
		fmt.Fprintf(&b, "<li>%s: %s</li>", html.EscapeString(f.Name), html.EscapeString(f.Amount))
	}
	b.WriteString("</ul>")
	return b.String()
}
