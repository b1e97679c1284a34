package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/ports/inbound"
	"github.com/craveapp/crave/internal/ports/outbound"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"github.com/craveapp/crave/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type resolverFixture struct {
	service   *ResolverService
	search    *testutils.MockSearchService
	completer *testutils.MockTextCompleter
	history   *testutils.MockHistoryRepository
	users     *testutils.MockUserRepository
	cache     *testutils.MockCacheRepository
	userID    uuid.UUID
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()

	search := new(testutils.MockSearchService)
	completer := new(testutils.MockTextCompleter)
	history := new(testutils.MockHistoryRepository)
	users := new(testutils.MockUserRepository)
	cache := new(testutils.MockCacheRepository)

	synth := NewFallbackSynthesizer(completer, zap.NewNop())
	service := NewResolverService(search, synth, history, users, cache, zap.NewNop()).(*ResolverService)
	service.backoff = 0

	userID := uuid.New()
	users.On("Exists", mock.Anything, userID).Return(true, nil).Maybe()
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("miss")).Maybe()
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return &resolverFixture{
		service:   service,
		search:    search,
		completer: completer,
		history:   history,
		users:     users,
		cache:     cache,
		userID:    userID,
	}
}

func (f *resolverFixture) resolve(t *testing.T) (*inbound.ResolutionDTO, error) {
	t.Helper()
	return f.service.Resolve(context.Background(), inbound.ResolveCommand{
		UserID:      f.userID,
		Constraints: testutils.ValidRawConstraints(),
	})
}

func hit(candidates ...recipe.CandidateRecipe) outbound.SearchResult {
	return outbound.SearchResult{Candidates: candidates}
}

func failed(kind outbound.SearchFailureKind) outbound.SearchResult {
	return outbound.SearchResult{Failure: &outbound.SearchFailure{Kind: kind, Cause: errors.New("upstream")}}
}

func TestResolveRetrievedHit(t *testing.T) {
	f := newResolverFixture(t)
	factory := testutils.NewCandidateFactory(1)
	candidate := factory.WithTime(20)

	f.search.On("Search", mock.Anything, mock.Anything).Return(hit(candidate)).Once()
	f.history.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := f.resolve(t)
	require.NoError(t, err)

	assert.Equal(t, string(recipe.OriginRetrieved), result.Recipe.Origin)
	assert.Equal(t, candidate.Title, result.Recipe.Title)
	assert.False(t, result.Entry.Saved)

	constraints := testutils.MustConstraints(testutils.ValidRawConstraints())
	assert.Equal(t, constraints.String(), result.Recipe.OriginTag)

	f.completer.AssertNotCalled(t, "Complete")
	f.history.AssertExpectations(t)
}

func TestResolveEmptyResultsFallsBackToGeneration(t *testing.T) {
	f := newResolverFixture(t)

	f.search.On("Search", mock.Anything, mock.Anything).Return(hit()).Once()
	f.completer.On("Complete", mock.Anything, mock.Anything).
		Return(testutils.GeneratedCompletion("Fallback Pasta"), nil).Once()
	f.history.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := f.resolve(t)
	require.NoError(t, err)

	assert.Equal(t, string(recipe.OriginGenerated), result.Recipe.Origin)
	assert.Equal(t, "Fallback Pasta", result.Recipe.Title)
	assert.Empty(t, result.Recipe.SourceURL)

	// The generation prompt is kept as the provenance tag.
	assert.Contains(t, result.Recipe.OriginTag, "Budget: low")
	assert.Contains(t, result.Recipe.OriginTag, "Type of meal: dinner")
}

func TestResolveTimeoutGoesStraightToGeneration(t *testing.T) {
	f := newResolverFixture(t)

	f.search.On("Search", mock.Anything, mock.Anything).Return(failed(outbound.FailureTimeout)).Once()
	f.completer.On("Complete", mock.Anything, mock.Anything).
		Return(testutils.GeneratedCompletion("Quick Quesadilla"), nil).Once()
	f.history.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := f.resolve(t)
	require.NoError(t, err)

	assert.Equal(t, string(recipe.OriginGenerated), result.Recipe.Origin)
	f.search.AssertNumberOfCalls(t, "Search", 1)
}

func TestResolveRateLimitedRetriesExactlyOnce(t *testing.T) {
	f := newResolverFixture(t)
	factory := testutils.NewCandidateFactory(2)

	f.search.On("Search", mock.Anything, mock.Anything).Return(failed(outbound.FailureRateLimited)).Once()
	f.search.On("Search", mock.Anything, mock.Anything).Return(hit(factory.WithTime(15))).Once()
	f.history.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := f.resolve(t)
	require.NoError(t, err)

	assert.Equal(t, string(recipe.OriginRetrieved), result.Recipe.Origin)
	f.search.AssertNumberOfCalls(t, "Search", 2)
	f.completer.AssertNotCalled(t, "Complete")
}

func TestResolveRateLimitedTwiceFallsBackToGeneration(t *testing.T) {
	f := newResolverFixture(t)

	f.search.On("Search", mock.Anything, mock.Anything).Return(failed(outbound.FailureRateLimited)).Twice()
	f.completer.On("Complete", mock.Anything, mock.Anything).
		Return(testutils.GeneratedCompletion("Backup Burrito"), nil).Once()
	f.history.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := f.resolve(t)
	require.NoError(t, err)

	assert.Equal(t, string(recipe.OriginGenerated), result.Recipe.Origin)
	f.search.AssertNumberOfCalls(t, "Search", 2)
}

func TestResolveGenerationExhaustionIsTerminal(t *testing.T) {
	f := newResolverFixture(t)

	f.search.On("Search", mock.Anything, mock.Anything).Return(hit()).Once()
	f.completer.On("Complete", mock.Anything, mock.Anything).Return("not a recipe", nil).Twice()

	_, err := f.resolve(t)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeGenerationFailed))

	// No history entry for a failed resolution.
	f.history.AssertNotCalled(t, "Create")
}

func TestResolveInvalidConstraintsNeverReachRetrieval(t *testing.T) {
	f := newResolverFixture(t)

	raw := testutils.ValidRawConstraints()
	raw.MealType = "brunch"

	_, err := f.service.Resolve(context.Background(), inbound.ResolveCommand{
		UserID:      f.userID,
		Constraints: raw,
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	f.search.AssertNotCalled(t, "Search")
}

func TestResolveUnknownUser(t *testing.T) {
	f := newResolverFixture(t)

	stranger := uuid.New()
	f.users.On("Exists", mock.Anything, stranger).Return(false, nil).Once()

	_, err := f.service.Resolve(context.Background(), inbound.ResolveCommand{
		UserID:      stranger,
		Constraints: testutils.ValidRawConstraints(),
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestResolvePersistenceFailureSurfaces(t *testing.T) {
	f := newResolverFixture(t)
	factory := testutils.NewCandidateFactory(3)

	f.search.On("Search", mock.Anything, mock.Anything).Return(hit(factory.WithTime(10))).Once()
	f.history.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := f.resolve(t)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePersistenceFailed))
}

func TestResolveUsesCachedCandidates(t *testing.T) {
	f := newResolverFixture(t)
	factory := testutils.NewCandidateFactory(4)
	candidate := factory.WithTime(20)

	f.search.On("Search", mock.Anything, mock.Anything).Return(hit(candidate)).Once()
	f.history.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	// Fresh cache fixture with a real in-memory behavior: first call
	// misses and fills, second call must not hit the search service.
	stored := make(map[string][]byte)
	f.cache.ExpectedCalls = nil
	f.cache.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("miss")).Maybe()
	f.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored[args.String(1)] = args.Get(2).([]byte)
		}).Return(nil).Maybe()

	_, err := f.resolve(t)
	require.NoError(t, err)
	require.NotEmpty(t, stored)

	// Second resolution is served from the cache.
	f.cache.ExpectedCalls = nil
	for key, value := range stored {
		f.cache.On("Get", mock.Anything, key).Return(value, nil)
	}

	result, err := f.resolve(t)
	require.NoError(t, err)
	assert.Equal(t, candidate.Title, result.Recipe.Title)
	f.search.AssertNumberOfCalls(t, "Search", 1)
}

func TestVary(t *testing.T) {
	f := newResolverFixture(t)

	prior := mustRecipe(t)
	entry, err := recipe.NewHistoryEntry(f.userID, prior)
	require.NoError(t, err)

	f.history.On("FindByRecipe", mock.Anything, f.userID, prior.ID()).Return(entry, nil).Once()
	f.completer.On("Complete", mock.Anything, mock.Anything).
		Return(testutils.GeneratedCompletion("Spicier Omelette"), nil).Once()
	f.history.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	priorInstructions := prior.Instructions()

	result, err := f.service.Vary(context.Background(), inbound.VariationCommand{
		UserID:   f.userID,
		RecipeID: prior.ID(),
		Modifier: "make it spicy",
	})
	require.NoError(t, err)

	assert.Equal(t, string(recipe.OriginVariation), result.Recipe.Origin)
	assert.Equal(t, "Spicier Omelette", result.Recipe.Title)
	assert.NotEqual(t, prior.ID(), result.Recipe.ID)

	// The prior recipe is untouched.
	assert.Equal(t, priorInstructions, prior.Instructions())
	assert.Equal(t, "Mug Omelette", prior.Title())
}

func TestVaryUnknownRecipe(t *testing.T) {
	f := newResolverFixture(t)

	recipeID := uuid.New()
	f.history.On("FindByRecipe", mock.Anything, f.userID, recipeID).
		Return(nil, recipe.ErrHistoryNotFound).Once()

	_, err := f.service.Vary(context.Background(), inbound.VariationCommand{
		UserID:   f.userID,
		RecipeID: recipeID,
		Modifier: "make it vegan",
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	f.completer.AssertNotCalled(t, "Complete")
}

func TestVaryEmptyModifier(t *testing.T) {
	f := newResolverFixture(t)

	prior := mustRecipe(t)
	entry, err := recipe.NewHistoryEntry(f.userID, prior)
	require.NoError(t, err)

	f.history.On("FindByRecipe", mock.Anything, f.userID, prior.ID()).Return(entry, nil).Once()

	_, err = f.service.Vary(context.Background(), inbound.VariationCommand{
		UserID:   f.userID,
		RecipeID: prior.ID(),
		Modifier: "",
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	f.history.AssertNotCalled(t, "Create")
}
