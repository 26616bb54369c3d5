// Package rest implements the HTTP surface of the backend emulator:
// bearer-token auth, the {success, data, message} response envelope and
// CRUD handlers for every collection.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/smallbooks/books-admin/internal/emulator/auth"
)

type contextKey string

const contextKeyUsername contextKey = "username"

// AuthMiddleware validates bearer tokens and stores the bound username
// in the request context.
func AuthMiddleware(tokenManager *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			username, valid, err := tokenManager.Validate(parts[1])
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to validate token")
				return
			}
			if !valid {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyUsername, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// usernameFrom returns the authenticated username stored by AuthMiddleware.
func usernameFrom(r *http.Request) string {
	username, _ := r.Context().Value(contextKeyUsername).(string)
	return username
}

// envelope is the standard response body.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: message})
}
