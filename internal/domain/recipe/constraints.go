package recipe

import (
	"fmt"
	"sort"
	"strings"
)

// BudgetTier bounds how much the user wants to spend
type BudgetTier string

const (
	BudgetTierLow  BudgetTier = "low"
	BudgetTierMed  BudgetTier = "med"
	BudgetTierHigh BudgetTier = "high"
)

// MealType categorizes the meal being resolved
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// Diet is a dietary restriction the recipe must honor
type Diet string

const (
	DietVegetarian Diet = "vegetarian"
	DietVegan      Diet = "vegan"
	DietGlutenFree Diet = "gluten_free"
	DietDairyFree  Diet = "dairy_free"
	DietNutFree    Diet = "nut_free"
)

// Tool is a piece of kitchen equipment available to the user
type Tool string

const (
	ToolStovetop   Tool = "stovetop"
	ToolMicrowave  Tool = "microwave"
	ToolOven       Tool = "oven"
	ToolFridgeOnly Tool = "fridge_only"
	ToolNone       Tool = "none"
)

// TimeUnbounded is the ceiling sentinel meaning "no limit"
const TimeUnbounded = 0

// ConstraintSet is the canonicalized preference set driving a resolution.
// It is an immutable value: construct it through ParseConstraintSet and
// treat it as read-only afterwards.
type ConstraintSet struct {
	Budget             BudgetTier
	Meal               MealType
	Diets              []Diet
	Tools              []Tool
	TimeCeilingMinutes int
}

// TimeBounded reports whether a time ceiling applies
func (c ConstraintSet) TimeBounded() bool {
	return c.TimeCeilingMinutes > TimeUnbounded
}

// DietNames returns the diets as plain strings
func (c ConstraintSet) DietNames() []string {
	names := make([]string, len(c.Diets))
	for i, d := range c.Diets {
		names[i] = string(d)
	}
	return names
}

// ToolNames returns the tools as plain strings
func (c ConstraintSet) ToolNames() []string {
	names := make([]string, len(c.Tools))
	for i, t := range c.Tools {
		names[i] = string(t)
	}
	return names
}

// String renders the canonical form used for cache keys and traceability
// tags. Diets and tools are sorted at parse time, so equal constraint sets
// render identically.
func (c ConstraintSet) String() string {
	time := "none"
	if c.TimeBounded() {
		time = fmt.Sprintf("%dm", c.TimeCeilingMinutes)
	}
	return fmt.Sprintf("budget=%s meal=%s diets=%s tools=%s time=%s",
		c.Budget, c.Meal,
		strings.Join(c.DietNames(), ","),
		strings.Join(c.ToolNames(), ","),
		time,
	)
}

// RawConstraints is the unvalidated preference input as it arrives at the
// service boundary.
type RawConstraints struct {
	BudgetTier         string   `json:"budget_tier"`
	MealType           string   `json:"meal_type"`
	Diets              []string `json:"diets"`
	Tools              []string `json:"tools"`
	TimeCeilingMinutes int      `json:"time_ceiling_minutes"`
}

// ParseConstraintSet validates and canonicalizes raw preference input.
// Every field must resolve to one of its enumerated values; unrecognized
// input is rejected here, never inside the pipeline.
func ParseConstraintSet(raw RawConstraints) (ConstraintSet, error) {
	budget, err := ParseBudgetTier(raw.BudgetTier)
	if err != nil {
		return ConstraintSet{}, err
	}

	meal, err := ParseMealType(raw.MealType)
	if err != nil {
		return ConstraintSet{}, err
	}

	diets, err := parseDiets(raw.Diets)
	if err != nil {
		return ConstraintSet{}, err
	}

	tools, err := parseTools(raw.Tools)
	if err != nil {
		return ConstraintSet{}, err
	}

	if raw.TimeCeilingMinutes < 0 {
		return ConstraintSet{}, fmt.Errorf("%w: %d", ErrInvalidTimeCeiling, raw.TimeCeilingMinutes)
	}

	return ConstraintSet{
		Budget:             budget,
		Meal:               meal,
		Diets:              diets,
		Tools:              tools,
		TimeCeilingMinutes: raw.TimeCeilingMinutes,
	}, nil
}

// ParseBudgetTier resolves a raw budget value to its enumerated tier
func ParseBudgetTier(s string) (BudgetTier, error) {
	switch BudgetTier(canon(s)) {
	case BudgetTierLow:
		return BudgetTierLow, nil
	case BudgetTierMed:
		return BudgetTierMed, nil
	case BudgetTierHigh:
		return BudgetTierHigh, nil
	}
	if s == "" {
		return "", fmt.Errorf("%w: budget_tier", ErrMissingField)
	}
	return "", fmt.Errorf("%w: budget_tier %q", ErrUnknownOption, s)
}

// ParseMealType resolves a raw meal type to its enumerated value
func ParseMealType(s string) (MealType, error) {
	switch MealType(canon(s)) {
	case MealTypeBreakfast:
		return MealTypeBreakfast, nil
	case MealTypeLunch:
		return MealTypeLunch, nil
	case MealTypeDinner:
		return MealTypeDinner, nil
	}
	if s == "" {
		return "", fmt.Errorf("%w: meal_type", ErrMissingField)
	}
	return "", fmt.Errorf("%w: meal_type %q", ErrUnknownOption, s)
}

// ParseDiet resolves a raw diet value to its enumerated restriction
func ParseDiet(s string) (Diet, error) {
	switch Diet(canon(s)) {
	case DietVegetarian:
		return DietVegetarian, nil
	case DietVegan:
		return DietVegan, nil
	case DietGlutenFree:
		return DietGlutenFree, nil
	case DietDairyFree:
		return DietDairyFree, nil
	case DietNutFree:
		return DietNutFree, nil
	}
	return "", fmt.Errorf("%w: diet %q", ErrUnknownOption, s)
}

// ParseTool resolves a raw tool value to its enumerated equipment
func ParseTool(s string) (Tool, error) {
	switch Tool(canon(s)) {
	case ToolStovetop:
		return ToolStovetop, nil
	case ToolMicrowave:
		return ToolMicrowave, nil
	case ToolOven:
		return ToolOven, nil
	case ToolFridgeOnly:
		return ToolFridgeOnly, nil
	case ToolNone:
		return ToolNone, nil
	}
	return "", fmt.Errorf("%w: tool %q", ErrUnknownOption, s)
}

func parseDiets(raw []string) ([]Diet, error) {
	seen := make(map[Diet]bool, len(raw))
	diets := make([]Diet, 0, len(raw))
	for _, s := range raw {
		d, err := ParseDiet(s)
		if err != nil {
			return nil, err
		}
		if !seen[d] {
			seen[d] = true
			diets = append(diets, d)
		}
	}
	sort.Slice(diets, func(i, j int) bool { return diets[i] < diets[j] })
	return diets, nil
}

func parseTools(raw []string) ([]Tool, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: tools", ErrMissingField)
	}
	seen := make(map[Tool]bool, len(raw))
	tools := make([]Tool, 0, len(raw))
	for _, s := range raw {
		t, err := ParseTool(s)
		if err != nil {
			return nil, err
		}
		if !seen[t] {
			seen[t] = true
			tools = append(tools, t)
		}
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i] < tools[j] })
	return tools, nil
}

func canon(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "-", "_")
}
