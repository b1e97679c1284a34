// Package outbound defines the interfaces for outbound ports (secondary/driven
// adapters). These are the interfaces the application uses to reach external
// systems: the recipe search corpus, the generative text service, persistence
// and cache.
package outbound

import (
	"context"
	"time"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/domain/user"
	"github.com/google/uuid"
)

// SearchFailureKind classifies why a retrieval attempt produced nothing.
// The pipeline decides per kind whether to retry once or fall straight
// through to synthesis.
type SearchFailureKind string

const (
	FailureTimeout       SearchFailureKind = "timeout"
	FailureRateLimited   SearchFailureKind = "rate_limited"
	FailureUpstreamError SearchFailureKind = "upstream_error"
)

// SearchFailure reports a failed retrieval attempt
type SearchFailure struct {
	Kind  SearchFailureKind
	Cause error
}

// SearchResult is the total outcome of one retrieval call: either a list of
// raw candidates (possibly empty) or a classified failure. External-service
// unreliability is modeled as a value, not a raised fault, so the
// orchestrator's branching stays total and testable.
type SearchResult struct {
	Candidates []recipe.CandidateRecipe
	Failure    *SearchFailure
}

// Failed reports whether the retrieval attempt failed in transport
func (r SearchResult) Failed() bool {
	return r.Failure != nil
}

// RecipeSearchService queries the external recipe corpus. One bounded
// network call per Search invocation, no internal retries: retry policy
// belongs to the resolution pipeline.
type RecipeSearchService interface {
	Search(ctx context.Context, constraints recipe.ConstraintSet) SearchResult
}

// TextCompleter is the generative text service. The returned completion is
// free text and must be validated by the caller before acceptance.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HistoryRepository persists per-user history entries and their recipes
type HistoryRepository interface {
	Create(ctx context.Context, entry *recipe.HistoryEntry) error
	Update(ctx context.Context, entry *recipe.HistoryEntry) error
	Delete(ctx context.Context, userID, entryID uuid.UUID) error

	FindByID(ctx context.Context, userID, entryID uuid.UUID) (*recipe.HistoryEntry, error)
	FindByRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*recipe.HistoryEntry, error)
	FindByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.HistoryEntry, int, error)
}

// UserRepository persists user accounts
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
