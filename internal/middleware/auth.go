package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/goaltrack/goaltrack/internal/ctxkeys"
	"github.com/goaltrack/goaltrack/internal/service"
)

// RequireAuth guards a handler behind bearer-token authentication. It
// extracts the Authorization header, verifies the token, resolves the
// subject to a live user, and attaches user and claims to the request
// context. Any failure is a 401 before the handler runs.
func RequireAuth(authService *service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "not authorized, no token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				unauthorized(w, "not authorized, no token")
				return
			}

			user, claims, err := authService.Authenticate(parts[1])
			if err != nil {
				unauthorized(w, "not authorized, token failed")
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
