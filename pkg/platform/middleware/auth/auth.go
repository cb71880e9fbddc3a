// Package auth loads the gateway session for each request and guards routes
// by authentication state and role.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	id "jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/requestcontext"
)

const (
	LoginPath        = "/login"
	HomePath         = "/"
	UnauthorizedPath = "/unauthorized"
)

// Identity is what a loaded session contributes to the request context.
type Identity struct {
	SessionID id.SessionID
	UserID    id.UserID
	Role      id.Role
}

// SessionResolver turns a session cookie value into the signed-in identity.
// Unknown or expired sessions return a CodeUnauthorized error.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID id.SessionID) (Identity, error)
}

// CookieReader extracts the session id from a request.
type CookieReader func(r *http.Request) (id.SessionID, bool)

// LoadSession resolves the session cookie and stores the identity in the
// request context. Requests without a live session continue anonymously.
func LoadSession(resolver SessionResolver, cookie CookieReader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := cookie(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			identity, err := resolver.Resolve(ctx, sessionID)
			if err != nil {
				if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					logger.ErrorContext(ctx, "failed to load session",
						"error", err,
						"request_id", requestcontext.RequestID(ctx),
					)
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx = requestcontext.WithSessionID(ctx, identity.SessionID)
			ctx = requestcontext.WithUserID(ctx, identity.UserID)
			ctx = requestcontext.WithRole(ctx, identity.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PublicRoute sends signed-in users to their dashboard.
func PublicRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if requestcontext.IsAuthenticated(ctx) {
			http.Redirect(w, r, requestcontext.Role(ctx).DashboardPath(), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProtectedRoute requires a session. With roles given, other roles are sent
// home.
func ProtectedRoute(roles ...id.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !requestcontext.IsAuthenticated(ctx) {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}
			if len(roles) > 0 && !slices.Contains(roles, requestcontext.Role(ctx)) {
				http.Redirect(w, r, HomePath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminRoute requires an ADMIN session; other users get the unauthorized page.
func AdminRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if !requestcontext.IsAuthenticated(ctx) {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		if requestcontext.Role(ctx) != id.RoleAdmin {
			http.Redirect(w, r, UnauthorizedPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
