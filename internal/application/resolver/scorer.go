package resolver

import (
	"sort"
	"strings"

	"github.com/craveapp/crave/internal/domain/recipe"
)

// toolKeywords maps each kitchen tool to the word looked for in candidate
// instruction text. ToolNone has no footprint in instructions and never
// scores.
var toolKeywords = map[recipe.Tool]string{
	recipe.ToolStovetop:   "stove",
	recipe.ToolMicrowave:  "microwave",
	recipe.ToolOven:       "oven",
	recipe.ToolFridgeOnly: "fridge",
}

type scoredCandidate struct {
	candidate recipe.CandidateRecipe
	score     int
	order     int
}

// FilterAndRank filters raw candidates against the constraint set and
// returns the survivors ordered best-first. An empty result is a
// legitimate outcome, not an error: it triggers the synthesis fallback.
//
// Hard rejections: missing title or instructions, declared diet tags that
// fail to cover a requested diet, and total time over a bounded ceiling.
// Candidates without diet metadata are kept as soft-unknowns: absence of
// metadata is not a violation, but they never earn the diet bonus.
func FilterAndRank(candidates []recipe.CandidateRecipe, constraints recipe.ConstraintSet) []recipe.CandidateRecipe {
	scored := make([]scoredCandidate, 0, len(candidates))

	for i, c := range candidates {
		if !c.Usable() {
			continue
		}
		if dietConflict(c, constraints) {
			continue
		}
		if constraints.TimeBounded() && c.TotalTimeMinutes > constraints.TimeCeilingMinutes {
			continue
		}

		scored = append(scored, scoredCandidate{
			candidate: c,
			score:     scoreCandidate(c, constraints),
			order:     i,
		})
	}

	// Best score first; ties broken by shorter total time, then original
	// source order (stable).
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].candidate.TotalTimeMinutes != scored[j].candidate.TotalTimeMinutes {
			return scored[i].candidate.TotalTimeMinutes < scored[j].candidate.TotalTimeMinutes
		}
		return scored[i].order < scored[j].order
	})

	ranked := make([]recipe.CandidateRecipe, len(scored))
	for i, s := range scored {
		ranked[i] = s.candidate
	}
	return ranked
}

// dietConflict reports whether the candidate's declared diet tags rule it
// out. A candidate that declares tags must cover every requested diet; a
// candidate with no tags is unknown, not conflicting.
func dietConflict(c recipe.CandidateRecipe, constraints recipe.ConstraintSet) bool {
	if len(constraints.Diets) == 0 || len(c.DietTags) == 0 {
		return false
	}
	return !coversAllDiets(c.DietTags, constraints.Diets)
}

func coversAllDiets(declared []string, requested []recipe.Diet) bool {
	tags := make(map[string]bool, len(declared))
	for _, t := range declared {
		tags[normalizeTag(t)] = true
	}
	for _, d := range requested {
		if !tags[string(d)] {
			return false
		}
	}
	return true
}

func scoreCandidate(c recipe.CandidateRecipe, constraints recipe.ConstraintSet) int {
	score := 0

	instructions := strings.ToLower(strings.Join(c.Instructions, "\n"))
	for _, tool := range constraints.Tools {
		keyword, ok := toolKeywords[tool]
		if ok && strings.Contains(instructions, keyword) {
			score++
		}
	}

	if len(constraints.Diets) > 0 && len(c.DietTags) > 0 && coversAllDiets(c.DietTags, constraints.Diets) {
		score++
	}

	return score
}

func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	tag = strings.ReplaceAll(tag, " ", "_")
	return strings.ReplaceAll(tag, "-", "_")
}
