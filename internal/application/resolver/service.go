// Package resolver implements the preference-constrained recipe resolution
// pipeline: constraint validation, retrieval, scoring, fallback synthesis,
// normalization, and the variation engine.
package resolver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/ports/inbound"
	"github.com/craveapp/crave/internal/ports/outbound"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// rateLimitBackoff is the pause before the single retry a rate-limited
	// retrieval attempt earns. Timeouts and upstream errors are not
	// retried, to bound request latency.
	defaultRateLimitBackoff = 250 * time.Millisecond

	// searchCacheTTL bounds how long ranked-input candidates are reused
	// for an identical constraint set.
	searchCacheTTL = 5 * time.Minute
)

// ResolverService implements the resolution use cases
type ResolverService struct {
	search      outbound.RecipeSearchService
	synthesizer *FallbackSynthesizer
	historyRepo outbound.HistoryRepository
	userRepo    outbound.UserRepository
	cache       outbound.CacheRepository
	logger      *zap.Logger
	backoff     time.Duration
}

// NewResolverService creates a new resolver service
func NewResolverService(
	search outbound.RecipeSearchService,
	synthesizer *FallbackSynthesizer,
	historyRepo outbound.HistoryRepository,
	userRepo outbound.UserRepository,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.ResolverService {
	return &ResolverService{
		search:      search,
		synthesizer: synthesizer,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		cache:       cache,
		logger:      logger.Named("resolver-service"),
		backoff:     defaultRateLimitBackoff,
	}
}

// Resolve runs one execution of the pipeline state machine:
// VALIDATE -> RETRIEVE -> SCORE -> normalize the best hit, or fall back to
// synthesis on a miss or retrieval failure. Terminal states always carry an
// explicit reason: the normalized recipe, a validation error, or a
// generation error.
func (s *ResolverService) Resolve(ctx context.Context, cmd inbound.ResolveCommand) (*inbound.ResolutionDTO, error) {
	constraints, err := recipe.ParseConstraintSet(cmd.Constraints)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.checkUser(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	s.logger.Info("Resolving recipe",
		zap.String("user_id", cmd.UserID.String()),
		zap.String("constraints", constraints.String()),
	)

	candidates := s.retrieve(ctx, constraints)
	ranked := FilterAndRank(candidates, constraints)

	var normalized *recipe.Recipe
	if len(ranked) > 0 {
		normalized, err = NormalizeCandidate(ranked[0], recipe.OriginRetrieved, constraints.String())
		if err != nil {
			// A ranked candidate already passed the usability checks;
			// normalization failure here means the scorer and normalizer
			// disagree, which is a bug, not bad input.
			return nil, apperrors.Wrap(err, "failed to normalize retrieved candidate")
		}
	} else {
		candidate, prompt, genErr := s.synthesizer.Generate(ctx, constraints)
		if genErr != nil {
			return nil, genErr
		}
		normalized, err = NormalizeCandidate(candidate, recipe.OriginGenerated, prompt)
		if err != nil {
			return nil, apperrors.NewGenerationError("generated candidate failed normalization", err)
		}
	}

	entry, err := s.record(ctx, cmd.UserID, normalized)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Recipe resolved",
		zap.String("recipe_id", normalized.ID().String()),
		zap.String("origin", string(normalized.Origin())),
		zap.String("title", normalized.Title()),
	)

	return &inbound.ResolutionDTO{
		Entry:  inbound.NewHistoryEntryDTO(entry),
		Recipe: inbound.NewRecipeDTO(normalized),
	}, nil
}

// Vary regenerates a prior recipe under a free-text modifier through the
// same generative path as the fallback synthesizer. The prior recipe and
// its history entry are untouched; the variation is recorded as its own
// unsaved entry.
func (s *ResolverService) Vary(ctx context.Context, cmd inbound.VariationCommand) (*inbound.ResolutionDTO, error) {
	if err := s.checkUser(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	prior, err := s.historyRepo.FindByRecipe(ctx, cmd.UserID, cmd.RecipeID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("recipe")
	}

	s.logger.Info("Generating recipe variation",
		zap.String("user_id", cmd.UserID.String()),
		zap.String("base_recipe_id", cmd.RecipeID.String()),
		zap.String("modifier", cmd.Modifier),
	)

	candidate, prompt, err := s.synthesizer.GenerateVariation(ctx, prior.Recipe(), cmd.Modifier)
	if err != nil {
		return nil, err
	}

	normalized, err := NormalizeCandidate(candidate, recipe.OriginVariation, prompt)
	if err != nil {
		return nil, apperrors.NewGenerationError("generated variation failed normalization", err)
	}

	entry, err := s.record(ctx, cmd.UserID, normalized)
	if err != nil {
		return nil, err
	}

	return &inbound.ResolutionDTO{
		Entry:  inbound.NewHistoryEntryDTO(entry),
		Recipe: inbound.NewRecipeDTO(normalized),
	}, nil
}

// retrieve performs the bounded retrieval step. A rate-limited attempt is
// retried exactly once after a short backoff; timeouts and upstream errors
// convert directly to a miss so the fallback can take over. The caller
// never sees a retrieval failure.
func (s *ResolverService) retrieve(ctx context.Context, constraints recipe.ConstraintSet) []recipe.CandidateRecipe {
	if cached, ok := s.cachedCandidates(ctx, constraints); ok {
		return cached
	}

	result := s.search.Search(ctx, constraints)
	if result.Failed() && result.Failure.Kind == outbound.FailureRateLimited {
		s.logger.Warn("Retrieval rate limited, retrying once",
			zap.Error(result.Failure.Cause),
		)
		select {
		case <-time.After(s.backoff):
		case <-ctx.Done():
			return nil
		}
		result = s.search.Search(ctx, constraints)
	}

	if result.Failed() {
		// Absorbed locally: the miss routes the pipeline to synthesis.
		s.logger.Warn("Retrieval failed, proceeding to synthesis",
			zap.String("kind", string(result.Failure.Kind)),
			zap.Error(result.Failure.Cause),
		)
		return nil
	}

	s.cacheCandidates(ctx, constraints, result.Candidates)
	return result.Candidates
}

func (s *ResolverService) record(ctx context.Context, userID uuid.UUID, normalized *recipe.Recipe) (*recipe.HistoryEntry, error) {
	entry, err := recipe.NewHistoryEntry(userID, normalized)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build history entry")
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return nil, apperrors.NewPersistenceError("record resolution", err)
	}
	return entry, nil
}

func (s *ResolverService) checkUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return apperrors.NewPersistenceError("check user existence", err)
	}
	if !exists {
		return apperrors.NewNotFoundError("user")
	}
	return nil
}

// Cache operations

func (s *ResolverService) cachedCandidates(ctx context.Context, constraints recipe.ConstraintSet) ([]recipe.CandidateRecipe, bool) {
	data, err := s.cache.Get(ctx, searchCacheKey(constraints))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var candidates []recipe.CandidateRecipe
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, false
	}
	return candidates, true
}

func (s *ResolverService) cacheCandidates(ctx context.Context, constraints recipe.ConstraintSet, candidates []recipe.CandidateRecipe) {
	if len(candidates) == 0 {
		return
	}
	data, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, searchCacheKey(constraints), data, searchCacheTTL); err != nil {
		s.logger.Debug("Failed to cache search results", zap.Error(err))
	}
}

func searchCacheKey(constraints recipe.ConstraintSet) string {
	return "search:" + constraints.String()
}
