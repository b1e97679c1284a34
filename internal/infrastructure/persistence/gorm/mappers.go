// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
	}
}

// UserFromModel converts a GORM model back to a domain user
func UserFromModel(m *UserModel) *user.User {
	return user.Restore(m.ID, m.Username, m.Email, m.PasswordHash, m.CreatedAt)
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	facts := r.Nutrition()
	records := make(NutritionFacts, len(facts))
	for i, fact := range facts {
		records[i] = NutritionFactRecord{Name: fact.Name, Amount: fact.Amount}
	}

	return &RecipeModel{
		ID:               r.ID(),
		Title:            r.Title(),
		Ingredients:      StringSlice(r.Ingredients()),
		Instructions:     StringSlice(r.Instructions()),
		Nutrition:        records,
		IngredientsHTML:  r.IngredientsHTML(),
		InstructionsHTML: r.InstructionsHTML(),
		NutritionHTML:    r.NutritionHTML(),
		Servings:         r.Servings(),
		ReadyInMinutes:   r.ReadyInMinutes(),
		SourceURL:        r.SourceURL(),
		Image:            r.Image(),
		Origin:           string(r.Origin()),
		OriginTag:        r.OriginTag(),
		CreatedAt:        r.CreatedAt(),
	}
}

// RecipeFromModel converts a GORM model back to a domain recipe
func RecipeFromModel(m *RecipeModel) *recipe.Recipe {
	facts := make([]recipe.NutritionFact, len(m.Nutrition))
	for i, record := range m.Nutrition {
		facts[i] = recipe.NutritionFact{Name: record.Name, Amount: record.Amount}
	}

	attrs := recipe.Attributes{
		Title:            m.Title,
		Ingredients:      []string(m.Ingredients),
		Instructions:     []string(m.Instructions),
		Nutrition:        facts,
		IngredientsHTML:  m.IngredientsHTML,
		InstructionsHTML: m.InstructionsHTML,
		NutritionHTML:    m.NutritionHTML,
		Servings:         m.Servings,
		ReadyInMinutes:   m.ReadyInMinutes,
		SourceURL:        m.SourceURL,
		Image:            m.Image,
		Origin:           recipe.Origin(m.Origin),
		OriginTag:        m.OriginTag,
	}
	return recipe.Restore(m.ID, attrs, m.CreatedAt)
}

// HistoryToModel converts a domain history entry to a GORM model
func HistoryToModel(h *recipe.HistoryEntry) *HistoryEntryModel {
	return &HistoryEntryModel{
		ID:        h.ID(),
		UserID:    h.UserID(),
		RecipeID:  h.Recipe().ID(),
		Saved:     h.Saved(),
		CreatedAt: h.CreatedAt(),
	}
}

// HistoryFromModel converts a GORM model back to a domain history entry.
// The Recipe association must be preloaded.
func HistoryFromModel(m *HistoryEntryModel) *recipe.HistoryEntry {
	return recipe.RestoreHistoryEntry(m.ID, m.UserID, RecipeFromModel(&m.Recipe), m.Saved, m.CreatedAt)
}
