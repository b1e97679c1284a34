// Package handlers provides HTTP handlers for the JSON API
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/craveapp/crave/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps application errors onto HTTP status codes. Unclassified
// errors surface as 500 without leaking their message.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("An unexpected error occurred")
	}
	writeJSON(w, appErr.StatusCode(), apperrors.ToErrorResponse(appErr))
}
