package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/craveapp/crave/internal/infrastructure/http/middleware"
	"github.com/craveapp/crave/internal/ports/inbound"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HistoryHandlers handles per-user history API requests
type HistoryHandlers struct {
	historyService inbound.HistoryService
	logger         *zap.Logger
}

// NewHistoryHandlers creates a new history handlers instance
func NewHistoryHandlers(historyService inbound.HistoryService, logger *zap.Logger) *HistoryHandlers {
	return &HistoryHandlers{
		historyService: historyService,
		logger:         logger.Named("history-handlers"),
	}
}

// List handles GET /api/v1/history
func (h *HistoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	list, err := h.historyService.List(r.Context(), userID, inbound.PaginationParams{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Save handles POST /api/v1/history/{id}/save
func (h *HistoryHandlers) Save(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.historyService.Save)
}

// Unsave handles POST /api/v1/history/{id}/unsave
func (h *HistoryHandlers) Unsave(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.historyService.Unsave)
}

// Delete handles DELETE /api/v1/history/{id}
func (h *HistoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.historyService.Delete)
}

func (h *HistoryHandlers) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, entryID uuid.UUID) error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperrors.NewUnauthorizedError("Authentication required"))
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.NewValidationError("Invalid history entry ID"))
		return
	}

	if err := op(r.Context(), userID, entryID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
