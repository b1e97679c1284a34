package recipe

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry wraps a resolved Recipe for exactly one user account. It is
// created unsaved at resolution time, mutated only by explicit save and
// unsave actions, and deleted only by explicit user removal.
type HistoryEntry struct {
	id        uuid.UUID
	userID    uuid.UUID
	recipe    *Recipe
	saved     bool
	createdAt time.Time
}

// NewHistoryEntry records a resolved recipe for a user, unsaved by default
func NewHistoryEntry(userID uuid.UUID, r *Recipe) (*HistoryEntry, error) {
	if r == nil {
		return nil, ErrRecipeNotFound
	}
	return &HistoryEntry{
		id:        uuid.New(),
		userID:    userID,
		recipe:    r,
		createdAt: time.Now(),
	}, nil
}

// RestoreHistoryEntry rebuilds a persisted entry. Used by repositories only.
func RestoreHistoryEntry(id, userID uuid.UUID, r *Recipe, saved bool, createdAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:        id,
		userID:    userID,
		recipe:    r,
		saved:     saved,
		createdAt: createdAt,
	}
}

// ID returns the entry's unique identifier
func (h *HistoryEntry) ID() uuid.UUID {
	return h.id
}

// UserID returns the owning user's identifier
func (h *HistoryEntry) UserID() uuid.UUID {
	return h.userID
}

// Recipe returns the wrapped recipe
func (h *HistoryEntry) Recipe() *Recipe {
	return h.recipe
}

// Saved reports whether the user kept this entry
func (h *HistoryEntry) Saved() bool {
	return h.saved
}

// CreatedAt returns when the entry was recorded
func (h *HistoryEntry) CreatedAt() time.Time {
	return h.createdAt
}

// Save marks the entry as kept. Saving an already saved entry is a no-op.
func (h *HistoryEntry) Save() {
	h.saved = true
}

// Unsave clears the saved flag. Unsaving an unsaved entry is a no-op.
func (h *HistoryEntry) Unsave() {
	h.saved = false
}
