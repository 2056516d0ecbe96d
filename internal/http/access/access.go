// Package access authenticates bearer tokens and gates routes by role.
package access

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/auth"
	"github.com/agungalvian/wjg/internal/http/respond"
	"github.com/agungalvian/wjg/internal/user"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Authenticate requires a valid "Authorization: Bearer <token>" header.
func Authenticate(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, r, auth.ErrMissingToken)
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// Admin lets administrators and read-only viewers through.
func Admin(next http.Handler) http.Handler {
	return require(user.Role.CanRead, next)
}

// Write lets only administrators through.
func Write(next http.Handler) http.Handler {
	return require(user.Role.CanWrite, next)
}

func require(allowed func(user.Role) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			respond.Error(w, r, auth.ErrMissingToken)
			return
		}

		if !allowed(id.Role) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
