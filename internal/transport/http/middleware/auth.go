package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/domain"
	"github.com/ivanmarin/orbit/internal/repository"
)

type contextKey string

const userKey contextKey = "current_user"

// TokenVerifier resolves the subject user ID from a bearer token.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Auth authenticates every request: it parses the bearer credential,
// verifies it, resolves the embedded identifier to a live user record and
// stashes the user in the request context. The three failures are kept
// distinct: a missing credential, a bad/expired token, and a token whose
// subject no longer exists.
func Auth(tokens TokenVerifier, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeMessage(w, http.StatusUnauthorized, "Token is missing!")
				return
			}

			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Token is invalid!")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeMessage(w, http.StatusInternalServerError, "Something went wrong")
				return
			}
			if user == nil {
				writeMessage(w, http.StatusUnauthorized, "User not found!")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only operations behind the admin flag. It must
// run inside Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil || !user.IsAdmin {
			writeMessage(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser extracts the authenticated user from the request context.
func GetUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
