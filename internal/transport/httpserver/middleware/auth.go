package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"baby-tracker-go/internal/domain/identity"
	"baby-tracker-go/pkg/logger"
)

type contextKey int

const userKey contextKey = 0

type User struct {
	ID    string
	Email string
	Name  string
}

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (identity.Principal, error)
}

// BearerAuth resolves the Authorization header into the request user.
type BearerAuth struct {
	auth Authenticator
	log  logger.Logger
}

func NewBearerAuth(auth Authenticator, log logger.Logger) *BearerAuth {
	return &BearerAuth{auth: auth, log: log}
}

func (a *BearerAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
			return
		}

		principal, err := a.auth.Authenticate(r.Context(), token)
		if err != nil {
			logger.FromContext(r.Context(), a.log).BusinessError("auth: token rejected", err, "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "unauthenticated", "Invalid or expired token")
			return
		}

		ctx := WithUser(r.Context(), User{
			ID:    principal.ID,
			Email: principal.Email,
			Name:  principal.Name,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
