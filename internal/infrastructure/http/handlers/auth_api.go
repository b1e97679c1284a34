package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/craveapp/crave/internal/application/user"
	domainuser "github.com/craveapp/crave/internal/domain/user"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"go.uber.org/zap"
)

// AuthHandlers handles authentication API requests
type AuthHandlers struct {
	userService *user.UserService
	logger      *zap.Logger
}

// NewAuthHandlers creates a new authentication handlers instance
func NewAuthHandlers(userService *user.UserService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		userService: userService,
		logger:      logger.Named("auth-handlers"),
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents an authentication response with token
type AuthResponse struct {
	AccessToken string        `json:"access_token,omitempty"`
	User        *UserResponse `json:"user"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid JSON payload"))
		return
	}

	u, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("user registered", zap.String("username", u.Username()))
	writeJSON(w, http.StatusCreated, AuthResponse{User: toUserResponse(u)})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid JSON payload"))
		return
	}

	token, u, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{AccessToken: token, User: toUserResponse(u)})
}

func toUserResponse(u *domainuser.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID().String(),
		Username:  u.Username(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
	}
}
