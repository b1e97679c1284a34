package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/craveapp/crave/internal/application/user"
	apperrors "github.com/craveapp/crave/pkg/errors"
	"github.com/google/uuid"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Authenticate validates the bearer token and injects the user ID into
// the request context
func Authenticate(userService *user.UserService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w, "Missing bearer token")
				return
			}

			userID, err := userService.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user ID
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	appErr := apperrors.NewUnauthorizedError(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	json.NewEncoder(w).Encode(apperrors.ToErrorResponse(appErr))
}
