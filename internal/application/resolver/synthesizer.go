package resolver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/ports/outbound"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"go.uber.org/zap"
)

// maxGenerationAttempts bounds calls to the generative service per request.
// An exhausted budget surfaces as a terminal GenerationError, never as a
// silently degraded recipe.
const maxGenerationAttempts = 2

// ErrMalformedGeneration marks a completion missing required sections
var ErrMalformedGeneration = errors.New("generated recipe is missing required sections")

// FallbackSynthesizer produces a fully populated candidate from the
// generative text service when retrieval yields nothing acceptable. The
// completion is free text and is validated section by section before
// acceptance; malformed output is a distinguishable failure, not a
// partially filled recipe.
type FallbackSynthesizer struct {
	completer outbound.TextCompleter
	logger    *zap.Logger
}

// NewFallbackSynthesizer creates a fallback synthesizer
func NewFallbackSynthesizer(completer outbound.TextCompleter, logger *zap.Logger) *FallbackSynthesizer {
	return &FallbackSynthesizer{
		completer: completer,
		logger:    logger.Named("synthesizer"),
	}
}

// Generate builds a deterministic-structure prompt from the constraint set
// and asks the generative service for a self-contained recipe. On a
// malformed response it re-prompts once with a clarification; after that
// the failure is terminal.
func (s *FallbackSynthesizer) Generate(ctx context.Context, constraints recipe.ConstraintSet) (recipe.CandidateRecipe, string, error) {
	prompt := buildGenerationPrompt(constraints)
	candidate, err := s.completeAndParse(ctx, prompt)
	return candidate, prompt, err
}

// GenerateVariation regenerates a prior recipe under a free-text modifier.
// The prior recipe is only read, never mutated.
func (s *FallbackSynthesizer) GenerateVariation(ctx context.Context, prior *recipe.Recipe, modifier string) (recipe.CandidateRecipe, string, error) {
	modifier = strings.TrimSpace(modifier)
	if modifier == "" {
		return recipe.CandidateRecipe{}, "", apperrors.NewValidationError(recipe.ErrEmptyModifier.Error())
	}
	prompt := buildVariationPrompt(prior, modifier)
	candidate, err := s.completeAndParse(ctx, prompt)
	return candidate, prompt, err
}

func (s *FallbackSynthesizer) completeAndParse(ctx context.Context, prompt string) (recipe.CandidateRecipe, error) {
	var lastErr error

	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		attemptPrompt := prompt
		if attempt > 1 {
			attemptPrompt = clarifyPrompt + "\n\n" + prompt
		}

		completion, err := s.completer.Complete(ctx, attemptPrompt)
		if err != nil {
			s.logger.Warn("Generative service call failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		candidate, err := parseGeneratedRecipe(completion)
		if err != nil {
			s.logger.Warn("Generated recipe failed validation",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		return candidate, nil
	}

	return recipe.CandidateRecipe{}, apperrors.NewGenerationError(
		fmt.Sprintf("generative service produced no usable recipe in %d attempts", maxGenerationAttempts),
		lastErr,
	)
}

const clarifyPrompt = "Your previous answer was incomplete. Respond again with every " +
	"section present exactly as requested, including Ingredients and Instructions."

const promptFormat = `Provide the recipe in exactly this format:
Recipe Title: [name of meal]
Cook Time: [X] minutes
Servings: [Y]
Nutrition Facts:
- [Nutrient]: [Amount]
Ingredients:
- [Quantity] [Unit] [Ingredient]
Instructions:
1. [Step 1]
2. [Step 2]
Ensure all sections are present and follow the structure precisely.`

func buildGenerationPrompt(constraints recipe.ConstraintSet) string {
	diets := "None"
	if len(constraints.Diets) > 0 {
		diets = strings.Join(constraints.DietNames(), ", ")
	}
	timeLimit := "no limit"
	if constraints.TimeBounded() {
		timeLimit = fmt.Sprintf("at most %d minutes", constraints.TimeCeilingMinutes)
	}

	var b strings.Builder
	b.WriteString("As a culinary assistant for college students, create a complete, self-contained recipe considering the following:\n")
	fmt.Fprintf(&b, "- Budget: %s\n", constraints.Budget)
	fmt.Fprintf(&b, "- Type of meal: %s\n", constraints.Meal)
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", diets)
	fmt.Fprintf(&b, "- Kitchen tools available: %s\n", strings.Join(constraints.ToolNames(), ", "))
	fmt.Fprintf(&b, "- Time: %s\n\n", timeLimit)
	b.WriteString(promptFormat)
	return b.String()
}

func buildVariationPrompt(prior *recipe.Recipe, modifier string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As a culinary assistant for college students, take the recipe below and suggest a variation that is the same meal as %q but with the %q alteration.\n\n", prior.Title(), modifier)
	fmt.Fprintf(&b, "Original recipe: %s\n", prior.Title())
	b.WriteString("Original ingredients:\n")
	for _, line := range prior.Ingredients() {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("Original instructions:\n")
	for i, step := range prior.Instructions() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n")
	b.WriteString(promptFormat)
	return b.String()
}

// Section headings recognized in generated output
const (
	headingTitle        = "recipe title:"
	headingCookTime     = "cook time:"
	headingServings     = "servings:"
	headingNutrition    = "nutrition facts:"
	headingIngredients  = "ingredients:"
	headingInstructions = "instructions:"
)

type parseSection int

const (
	sectionNone parseSection = iota
	sectionNutrition
	sectionIngredients
	sectionInstructions
)

// parseGeneratedRecipe turns the free-text completion into a candidate,
// treating the expected headings as section markers. It is a parser with a
// typed result, not a best-effort scrape: absence of a required section is
// an error, never an empty-looking but accepted field.
func parseGeneratedRecipe(text string) (recipe.CandidateRecipe, error) {
	var candidate recipe.CandidateRecipe
	section := sectionNone

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.Trim(rawLine, " \t~*#`")
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, headingTitle):
			candidate.Title = strings.TrimSpace(line[len(headingTitle):])
			section = sectionNone
		case strings.HasPrefix(lower, headingCookTime):
			candidate.TotalTimeMinutes = parseLeadingInt(line[len(headingCookTime):])
			section = sectionNone
		case strings.HasPrefix(lower, headingServings):
			candidate.Servings = parseLeadingInt(line[len(headingServings):])
			section = sectionNone
		case strings.HasPrefix(lower, headingNutrition):
			section = sectionNutrition
		case strings.HasPrefix(lower, headingIngredients):
			section = sectionIngredients
		case strings.HasPrefix(lower, headingInstructions):
			section = sectionInstructions
		case isNumberedStep(line):
			section = sectionInstructions
			candidate.Instructions = append(candidate.Instructions, stripStepNumber(line))
		case strings.HasPrefix(line, "- "):
			item := strings.TrimSpace(line[2:])
			switch section {
			case sectionIngredients:
				candidate.IngredientLines = append(candidate.IngredientLines, item)
			case sectionNutrition:
				name, amount, found := strings.Cut(item, ":")
				if !found {
					amount = ""
				}
				candidate.Nutrition = append(candidate.Nutrition, recipe.NutritionFact{
					Name:   strings.TrimSpace(name),
					Amount: strings.TrimSpace(amount),
				})
			}
		case section == sectionInstructions:
			candidate.Instructions = append(candidate.Instructions, line)
		}
	}

	var missing []string
	if candidate.Title == "" {
		missing = append(missing, "title")
	}
	if len(candidate.IngredientLines) == 0 {
		missing = append(missing, "ingredients")
	}
	if len(candidate.Instructions) == 0 {
		missing = append(missing, "instructions")
	}
	if len(missing) > 0 {
		return recipe.CandidateRecipe{}, fmt.Errorf("%w: %s", ErrMalformedGeneration, strings.Join(missing, ", "))
	}

	return candidate, nil
}

func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func isNumberedStep(line string) bool {
	dot := strings.Index(line, ".")
	if dot <= 0 {
		return false
	}
	for _, r := range line[:dot] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripStepNumber(line string) string {
	dot := strings.Index(line, ".")
	return strings.TrimSpace(line[dot+1:])
}
