package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

// UserIDContextKey holds the authenticated caller's user id.
const UserIDContextKey contextKey = "user_id"

// Middleware authenticates API requests via the signed identity token in the
// Authorization header.
type Middleware struct {
	tokens *Tokens
}

func NewMiddleware(tokens *Tokens) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireUser extracts and verifies the identity token and injects the
// embedded user id into the request context. A "Bearer " prefix is accepted
// but not required. Missing header or a bad signature short-circuits with
// 401 before any handler logic runs. The id is not resolved to a user row
// here; handlers that need the record load it themselves.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" {
			writeUnauthorized(w)
			return
		}

		userID, err := m.tokens.Verify(raw)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext retrieves the authenticated caller's user id, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(UserIDContextKey).(string)
	return id
}

// writeUnauthorized writes a 401 JSON response.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
}
