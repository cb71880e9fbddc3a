package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	id "jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/requestcontext"
)

type stubResolver struct {
	identity Identity
	err      error
	calls    int
}

func (s *stubResolver) Resolve(_ context.Context, sessionID id.SessionID) (Identity, error) {
	s.calls++
	if s.err != nil {
		return Identity{}, s.err
	}
	identity := s.identity
	identity.SessionID = sessionID
	return identity, nil
}

func cookieFrom(sessionID id.SessionID, present bool) CookieReader {
	return func(*http.Request) (id.SessionID, bool) { return sessionID, present }
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func withIdentity(r *http.Request, role id.Role) *http.Request {
	ctx := requestcontext.WithSessionID(r.Context(), id.NewSessionID())
	ctx = requestcontext.WithRole(ctx, role)
	return r.WithContext(ctx)
}

type AuthMiddlewareSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

func (s *AuthMiddlewareSuite) SetupSuite() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *AuthMiddlewareSuite) TestLoadSession() {
	sessionID := id.NewSessionID()

	s.Run("live session populates the context", func() {
		resolver := &stubResolver{identity: Identity{UserID: 42, Role: id.RoleLawyer}}
		var got Identity
		h := LoadSession(resolver, cookieFrom(sessionID, true), s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			got = Identity{
				SessionID: requestcontext.SessionID(ctx),
				UserID:    requestcontext.UserID(ctx),
				Role:      requestcontext.Role(ctx),
			}
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/me", nil))

		s.Equal(Identity{SessionID: sessionID, UserID: 42, Role: id.RoleLawyer}, got)
	})

	s.Run("missing cookie skips the resolver", func() {
		resolver := &stubResolver{}
		h := LoadSession(resolver, cookieFrom(id.SessionID{}, false), s.logger)(okHandler)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		s.Equal(0, resolver.calls)
		s.Equal(http.StatusOK, rec.Code)
	})

	for name, err := range map[string]error{
		"expired session": dErrors.New(dErrors.CodeUnauthorized, "Session expired"),
		"store failure":   errors.New("redis: connection refused"),
	} {
		s.Run(name+" continues anonymously", func() {
			resolver := &stubResolver{err: err}
			authenticated := true
			h := LoadSession(resolver, cookieFrom(sessionID, true), s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				authenticated = requestcontext.IsAuthenticated(r.Context())
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			s.False(authenticated)
		})
	}
}

func (s *AuthMiddlewareSuite) TestPublicRoute() {
	tests := []struct {
		role     id.Role
		location string
	}{
		{id.RoleCitizen, "/citizen/dashboard"},
		{id.RoleLawyer, "/lawyer/dashboard"},
		{id.RoleNGO, "/ngo/dashboard"},
		{id.RoleAdmin, "/admin/dashboard"},
		{id.Role("AUDITOR"), "/"},
	}
	for _, tt := range tests {
		s.Run(string(tt.role), func() {
			rec := httptest.NewRecorder()
			PublicRoute(okHandler).ServeHTTP(rec, withIdentity(httptest.NewRequest(http.MethodPost, "/auth/login", nil), tt.role))

			s.Equal(http.StatusFound, rec.Code)
			s.Equal(tt.location, rec.Header().Get("Location"))
		})
	}

	s.Run("anonymous passes through", func() {
		rec := httptest.NewRecorder()
		PublicRoute(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *AuthMiddlewareSuite) TestProtectedRoute() {
	guard := ProtectedRoute(id.RoleLawyer, id.RoleNGO)(okHandler)

	s.Run("anonymous goes to login", func() {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lawyer/dashboard", nil))
		s.Equal(http.StatusFound, rec.Code)
		s.Equal(LoginPath, rec.Header().Get("Location"))
	})

	s.Run("wrong role goes home", func() {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/lawyer/dashboard", nil), id.RoleCitizen))
		s.Equal(http.StatusFound, rec.Code)
		s.Equal(HomePath, rec.Header().Get("Location"))
	})

	s.Run("allowed role passes", func() {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/lawyer/dashboard", nil), id.RoleNGO))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("no roles means any signed-in user", func() {
		rec := httptest.NewRecorder()
		ProtectedRoute()(okHandler).ServeHTTP(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/me", nil), id.RoleCitizen))
		s.Equal(http.StatusOK, rec.Code)
	})
}

func TestAdminRoute(t *testing.T) {
	tests := []struct {
		name     string
		role     id.Role
		status   int
		location string
	}{
		{"anonymous", "", http.StatusFound, LoginPath},
		{"lawyer", id.RoleLawyer, http.StatusFound, UnauthorizedPath},
		{"admin", id.RoleAdmin, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			if tt.role != "" {
				req = withIdentity(req, tt.role)
			}
			rec := httptest.NewRecorder()
			AdminRoute(okHandler).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}
