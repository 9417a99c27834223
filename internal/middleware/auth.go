package middleware

import (
	"context"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/pageturners/api/internal/model"
)

// Identity requires the X-User-ID header set by the authenticating
// gateway in front of this service and puts it on the context.
// Authentication itself (sessions, tokens, OAuth) is owned upstream;
// this service only consumes the resolved identity.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			model.NewUnauthorizedError("missing user identity").WriteJSON(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// AdminKey returns a middleware that guards operational endpoints with
// a shared admin key. The configured value is a bcrypt hash; the
// cleartext key never lives in config or the environment.
func AdminKey(keyHash string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Admin-Key")
			if key == "" {
				model.NewUnauthorizedError("missing admin key").WriteJSON(w)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				model.NewForbiddenError("invalid admin key").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
