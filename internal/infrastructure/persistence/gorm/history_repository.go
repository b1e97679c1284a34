// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryRepository implements the history repository interface using GORM
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) outbound.HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create persists a new history entry together with its recipe
func (r *HistoryRepository) Create(ctx context.Context, entry *recipe.HistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipeModel := RecipeToModel(entry.Recipe())
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(recipeModel).Error; err != nil {
			return err
		}

		model := HistoryToModel(entry)
		return tx.Create(model).Error
	})
}

// Update persists the mutable state of an entry (its saved flag)
func (r *HistoryRepository) Update(ctx context.Context, entry *recipe.HistoryEntry) error {
	result := r.db.WithContext(ctx).
		Model(&HistoryEntryModel{}).
		Where("id = ? AND user_id = ?", entry.ID(), entry.UserID()).
		Update("saved", entry.Saved())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return recipe.ErrHistoryNotFound
	}
	return nil
}

// Delete removes an entry. The recipe row stays: other entries or
// variations may still reference it.
func (r *HistoryRepository) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&HistoryEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return recipe.ErrHistoryNotFound
	}
	return nil
}

// FindByID finds one entry scoped to its owner
func (r *HistoryRepository) FindByID(ctx context.Context, userID, entryID uuid.UUID) (*recipe.HistoryEntry, error) {
	var model HistoryEntryModel
	result := r.db.WithContext(ctx).
		Preload("Recipe").
		First(&model, "id = ? AND user_id = ?", entryID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrHistoryNotFound
		}
		return nil, result.Error
	}
	return HistoryFromModel(&model), nil
}

// FindByRecipe finds the entry wrapping a given recipe for one user
func (r *HistoryRepository) FindByRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*recipe.HistoryEntry, error) {
	var model HistoryEntryModel
	result := r.db.WithContext(ctx).
		Preload("Recipe").
		First(&model, "recipe_id = ? AND user_id = ?", recipeID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrHistoryNotFound
		}
		return nil, result.Error
	}
	return HistoryFromModel(&model), nil
}

// FindByUser lists a user's entries newest first with the total count
func (r *HistoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.HistoryEntry, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&HistoryEntryModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []HistoryEntryModel
	result := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	entries := make([]*recipe.HistoryEntry, len(models))
	for i := range models {
		entries[i] = HistoryFromModel(&models[i])
	}
	return entries, int(total), nil
}
