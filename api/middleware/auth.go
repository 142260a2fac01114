// Package middleware holds the HTTP middleware of the API: bearer-token
// authentication, role checks, and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/festrack/festrack/app/shared/sharedtypes"
	"github.com/festrack/festrack/pkg/jwt"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the authenticated principal's claims, nil when the
// request was not authenticated.
func ClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey).(*jwt.Claims)
	return claims
}

// Authenticate validates the Bearer token and stores the claims on the request
// context. Requests without a valid token are rejected.
func Authenticate(tokens jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// RequireRole rejects authenticated requests whose principal holds none of the
// given roles.
func RequireRole(roles ...sharedtypes.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "insufficient role", http.StatusForbidden)
		})
	}
}

// CanActForTeam reports whether the principal may mutate the given team's
// data: admins always, team managers only for their own team.
func CanActForTeam(ctx context.Context, teamID int64) bool {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return false
	}
	switch claims.Role {
	case sharedtypes.RoleAdmin:
		return true
	case sharedtypes.RoleTeamManager:
		return claims.TeamID == teamID
	}
	return false
}
