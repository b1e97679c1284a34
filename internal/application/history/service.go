// Package history provides the application layer for the per-user
// saved-recipe list. Entries are created by the resolver; this service only
// flips the saved flag, lists, and deletes on explicit user actions.
package history

import (
	"context"
	"errors"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/ports/inbound"
	"github.com/craveapp/crave/internal/ports/outbound"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultPageSize = 20

// HistoryService implements the history use cases
type HistoryService struct {
	historyRepo outbound.HistoryRepository
	logger      *zap.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo outbound.HistoryRepository, logger *zap.Logger) inbound.HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		logger:      logger.Named("history-service"),
	}
}

// Save marks an entry as kept. Saving an already saved entry is a no-op,
// so concurrent duplicate save calls cannot create duplicate entries.
func (s *HistoryService) Save(ctx context.Context, userID, entryID uuid.UUID) error {
	entry, err := s.find(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if entry.Saved() {
		return nil
	}

	entry.Save()
	if err := s.historyRepo.Update(ctx, entry); err != nil {
		return apperrors.NewPersistenceError("save history entry", err)
	}

	s.logger.Info("History entry saved",
		zap.String("entry_id", entryID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// Unsave clears the saved flag. Unsaving an already unsaved or removed
// entry is a no-op, not an error.
func (s *HistoryService) Unsave(ctx context.Context, userID, entryID uuid.UUID) error {
	entry, err := s.historyRepo.FindByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, recipe.ErrHistoryNotFound) {
			return nil
		}
		return apperrors.NewPersistenceError("find history entry", err)
	}
	if !entry.Saved() {
		return nil
	}

	entry.Unsave()
	if err := s.historyRepo.Update(ctx, entry); err != nil {
		return apperrors.NewPersistenceError("unsave history entry", err)
	}
	return nil
}

// Delete removes the caller's own entry. Another user's entry is reported
// as not found, never deleted.
func (s *HistoryService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if _, err := s.find(ctx, userID, entryID); err != nil {
		return err
	}

	if err := s.historyRepo.Delete(ctx, userID, entryID); err != nil {
		return apperrors.NewPersistenceError("delete history entry", err)
	}

	s.logger.Info("History entry deleted",
		zap.String("entry_id", entryID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// List returns the user's history, newest first
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID, params inbound.PaginationParams) (*inbound.HistoryList, error) {
	if params.PageSize <= 0 {
		params.PageSize = defaultPageSize
	}
	if params.Page < 0 {
		params.Page = 0
	}

	entries, total, err := s.historyRepo.FindByUser(ctx, userID, params.Page*params.PageSize, params.PageSize)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list history", err)
	}

	items := make([]inbound.HistoryItemDTO, len(entries))
	for i, entry := range entries {
		items[i] = inbound.HistoryItemDTO{
			Entry:  inbound.NewHistoryEntryDTO(entry),
			Recipe: inbound.NewRecipeDTO(entry.Recipe()),
		}
	}

	return &inbound.HistoryList{
		Entries:    items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: (total + params.PageSize - 1) / params.PageSize,
	}, nil
}

func (s *HistoryService) find(ctx context.Context, userID, entryID uuid.UUID) (*recipe.HistoryEntry, error) {
	entry, err := s.historyRepo.FindByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, recipe.ErrHistoryNotFound) {
			return nil, apperrors.NewNotFoundError("history entry")
		}
		return nil, apperrors.NewPersistenceError("find history entry", err)
	}
	return entry, nil
}
