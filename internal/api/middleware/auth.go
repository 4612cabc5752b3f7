package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/airscore/airscore/internal/api/models"
	"github.com/airscore/airscore/internal/auth"
)

// adminSubjectKey is the context key for the authenticated admin subject.
type adminSubjectKey struct{}

// AdminAuth creates authentication middleware that validates admin JWT
// bearer tokens.
func AdminAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if jwtService == nil {
				writeUnauthorized(w, r, "admin access is not configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, r, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if len(authHeader) < len(bearerPrefix) ||
				!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
				writeUnauthorized(w, r, "invalid authorization header format")
				return
			}

			tokenString := authHeader[len(bearerPrefix):]
			if tokenString == "" {
				writeUnauthorized(w, r, "missing bearer token")
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					writeUnauthorized(w, r, "admin token has expired")
				case errors.Is(err, auth.ErrNotAdmin):
					writeUnauthorized(w, r, "token does not carry the admin role")
				default:
					writeUnauthorized(w, r, "invalid admin token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), adminSubjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthorized writes a 401 Unauthorized response.
// This is implemented directly here to avoid import cycle with response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewUnauthorized(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// GetAdminSubject retrieves the authenticated admin subject from the
// context. Returns an empty string if not authenticated.
func GetAdminSubject(ctx context.Context) string {
	if sub, ok := ctx.Value(adminSubjectKey{}).(string); ok {
		return sub
	}
	return ""
}
