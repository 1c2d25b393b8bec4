package http

import (
	"context"
	"net/http"
	"strings"

	"portfolio/internal/domain"
	"portfolio/internal/service"
)

type ctxKey int

const userKey ctxKey = iota

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the user attached by the session middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok && u != nil
}

type gates struct {
	auth service.AuthService
	responder
}

// authenticate resolves the session cookie to a user or rejects the request.
func (g gates) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.auth.Authenticate(r.Context(), sessionToken(r))
		if err != nil {
			g.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (g gates) requireAdmin(next http.Handler) http.Handler {
	return g.gate(domain.ErrAdminOnly, func(r domain.Role) bool { return r.IsStaff() })(next)
}

func (g gates) requireSuperAdmin(next http.Handler) http.Handler {
	return g.gate(domain.ErrSuperAdminOnly, func(r domain.Role) bool { return r == domain.RoleSuperAdmin })(next)
}

// requireRole admits any of roles and answers 403 otherwise.
func (g gates) requireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	denied := domain.Forbidden("Akses ditolak. Peran Anda bukan " + strings.Join(names, " atau ") + ".")
	return g.gate(denied, func(role domain.Role) bool {
		for _, r := range roles {
			if r == role {
				return true
			}
		}
		return false
	})
}

func (g gates) gate(denied error, allow func(domain.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				g.writeError(w, r, domain.ErrNoToken)
				return
			}
			if !allow(user.Role) {
				g.writeError(w, r, denied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
