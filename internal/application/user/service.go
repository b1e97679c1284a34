// Package user provides account registration and authentication. This is
// thin plumbing around the account entity: the pipeline itself only ever
// consumes a user ID.
package user

import (
	"context"
	"time"

	"github.com/craveapp/crave/internal/domain/user"
	"github.com/craveapp/crave/internal/ports/outbound"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService implements account use cases
type UserService struct {
	userRepo  outbound.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo outbound.UserRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger.Named("user-service"),
	}
}

// Register creates a new account with a bcrypt-hashed password
func (s *UserService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("username already taken")
	}
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	account, err := user.NewUser(username, email, string(hash))
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, account); err != nil {
		return nil, apperrors.NewPersistenceError("create user", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", account.ID().String()),
		zap.String("username", account.Username()),
	)
	return account, nil
}

// Authenticate verifies credentials and issues a signed token
func (s *UserService) Authenticate(ctx context.Context, username, password string) (string, *user.User, error) {
	account, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil || account == nil {
		return "", nil, apperrors.NewUnauthorizedError("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash()), []byte(password)); err != nil {
		return "", nil, apperrors.NewUnauthorizedError("invalid username or password")
	}

	token, err := s.issueToken(account.ID())
	if err != nil {
		return "", nil, apperrors.Wrap(err, "failed to issue token")
	}
	return token, account, nil
}

// VerifyToken validates a bearer token and returns the user ID it carries
func (s *UserService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperrors.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apperrors.NewUnauthorizedError("invalid token claims")
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, apperrors.NewUnauthorizedError("invalid token subject")
	}
	id, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, apperrors.NewUnauthorizedError("invalid token subject")
	}
	return id, nil
}

func (s *UserService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
