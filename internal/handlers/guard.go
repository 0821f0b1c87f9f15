package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/auth"
)

// Guard authenticates bearer tokens and enforces roles.
type Guard struct {
	tokens *auth.TokenManager
}

func NewGuard(tokens *auth.TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticated rejects requests without a valid bearer token and stores
// the caller's identity in the request context.
func (g *Guard) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Authentication token required")
			return
		}

		identity, err := g.tokens.Parse(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

// RequireRole authenticates the caller and then requires role.
func (g *Guard) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return g.Authenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := identityFromContext(r.Context())
			if identity.Role != role {
				writeError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
