package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"aidconnect/internal/core/ports"
)

type contextKeyAuthToken struct{}

// authTokenFrom retrieves the validated token claims from the context.
func authTokenFrom(ctx context.Context) *ports.AuthToken {
	token, _ := ctx.Value(contextKeyAuthToken{}).(*ports.AuthToken)
	return token
}

// requireAuth validates the Bearer token and stores its claims in the
// request context.
func requireAuth(validator ports.TokenValidator, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := validator.Validate(raw)
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected invalid token")
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyAuthToken{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireAdmin allows only tokens carrying the admin claim. Must run inside
// requireAuth.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := authTokenFrom(r.Context())
		if token == nil || !token.IsAdmin {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware adds Access-Control headers for allowed origins and
// short-circuits OPTIONS requests.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := false
	normalized := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
		normalized = append(normalized, strings.ToLower(origin))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || containsOrigin(normalized, origin)) {
				if allowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
				}
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func containsOrigin(allowed []string, origin string) bool {
	origin = strings.ToLower(origin)
	for _, candidate := range allowed {
		if candidate == origin {
			return true
		}
	}
	return false
}
