// Package testutils provides mock implementations and test data factories
package testutils

import (
	"context"
	"time"

	"github.com/craveapp/crave/internal/domain/recipe"
	"github.com/craveapp/crave/internal/domain/user"
	"github.com/craveapp/crave/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSearchService provides a mock implementation of RecipeSearchService
type MockSearchService struct {
	mock.Mock
}

// Search queries the mock corpus
func (m *MockSearchService) Search(ctx context.Context, constraints recipe.ConstraintSet) outbound.SearchResult {
	args := m.Called(ctx, constraints)
	return args.Get(0).(outbound.SearchResult)
}

// MockTextCompleter provides a mock implementation of TextCompleter
type MockTextCompleter struct {
	mock.Mock
}

// Complete returns the scripted completion
func (m *MockTextCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockHistoryRepository provides a mock implementation of HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

// Create persists a new entry
func (m *MockHistoryRepository) Create(ctx context.Context, entry *recipe.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Update persists entry mutations
func (m *MockHistoryRepository) Update(ctx context.Context, entry *recipe.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Delete removes an entry
func (m *MockHistoryRepository) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

// FindByID finds one entry scoped to its owner
func (m *MockHistoryRepository) FindByID(ctx context.Context, userID, entryID uuid.UUID) (*recipe.HistoryEntry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.HistoryEntry), args.Error(1)
}

// FindByRecipe finds the entry wrapping a recipe for one user
func (m *MockHistoryRepository) FindByRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*recipe.HistoryEntry, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.HistoryEntry), args.Error(1)
}

// FindByUser lists a user's entries
func (m *MockHistoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.HistoryEntry, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*recipe.HistoryEntry), args.Int(1), args.Error(2)
}

// MockUserRepository provides a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

// Create persists a new user
func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// FindByUsername finds a user by username
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// Exists reports whether a user exists
func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

// Get retrieves a cached value
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Set stores a value with TTL
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Delete removes a key
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Exists checks if a key exists
func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
