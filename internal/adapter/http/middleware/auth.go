package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sotopay/walletd/internal/domain"
	"github.com/sotopay/walletd/internal/infrastructure/auth"
)

// ContextKey is the type for context keys set by middleware.
type ContextKey string

// UserContextKey holds the authenticated *domain.User.
const UserContextKey ContextKey = "user"

// AuthMiddleware rejects requests without a valid bearer token and places
// the token's identity on the request context.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			user := &domain.User{
				ID:       claims.UserID,
				Email:    claims.Email,
				WalletID: claims.WalletID,
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated user from context.
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"status":"error","message":"` + message + `"}`))
}
