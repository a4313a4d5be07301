package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/product-api/internal/auth"
	"github.com/rogerio-castellano/product-api/internal/http/respond"
)

type contextKey string

const userIDKey = contextKey("user_id")

// TokenParser validates bearer tokens.
type TokenParser interface {
	ParseToken(tokenStr string) (*auth.Claims, error)
}

// Auth rejects requests without a valid bearer token and stores the token
// subject in the request context.
func Auth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			claims, err := tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user ID, or 0 outside of Auth.
func UserID(r *http.Request) int {
	if val, ok := r.Context().Value(userIDKey).(int); ok {
		return val
	}
	return 0
}
