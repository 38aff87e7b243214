package middleware

import (
	"net/http"
	"strings"

	"lempek/internal/auth"
	"lempek/internal/httputil"
)

// publicPaths are reachable without an authenticated principal
var publicPaths = map[string]bool{
	"/health":       true,
	"/api/register": true,
	"/api/login":    true,
	"/api/refresh":  true,
	"/api/logout":   true,
}

// Auth resolves the Principal from the access-token cookie, falling back to
// an Authorization: Bearer header, and stores it in the request context.
// Requests without a valid token are rejected unless the path is public.
func Auth(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessToken(r)
			if token != "" {
				if principal, err := tokens.VerifyAccess(token); err == nil {
					next.ServeHTTP(w, httputil.WithPrincipal(r, principal))
					return
				}
			}

			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		})
	}
}

// accessToken extracts the raw access token from cookie or header
func accessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
