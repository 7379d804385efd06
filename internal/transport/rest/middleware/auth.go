package middleware

import (
	"context"
	"net/http"
	"strings"

	"holomeet/internal/model"
	"holomeet/internal/service"
)

type contextKey string

const SessionKey contextKey = "session"

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireSession validates a session JWT from the Authorization header
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSession returns the validated session claims, or nil.
func GetSession(ctx context.Context) *model.SessionClaims {
	claims, _ := ctx.Value(SessionKey).(*model.SessionClaims)
	return claims
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
