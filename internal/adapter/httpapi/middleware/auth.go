package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"go.uber.org/zap"
)

// ContextKey is a private type for context keys to avoid collisions.
type ContextKey string

// UserCtxKey holds the authenticated account resolved from the bearer token.
const UserCtxKey = ContextKey("authenticated_user")

// UserFromContext returns the account the authentication gate attached.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*domain.User)
	return user, ok
}

// Authenticate is the authentication gate: it extracts the bearer token from
// the Authorization header, resolves it to an account and attaches the
// account to the request context. Requests without a resolvable token are
// rejected with 401.
func Authenticate(users domain.UserRepository, log *logger.Logger) func(http.Handler) http.Handler {
	authLogger := log.Named("AuthGate")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w)
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				unauthorized(w)
				return
			}

			user, err := users.FindByToken(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					authLogger.Error("Token lookup failed", zap.Error(err))
				}
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": domain.ErrUnauthorized.Error()})
}
