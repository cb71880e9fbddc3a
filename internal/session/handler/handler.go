// Package handler exposes the session façade over HTTP: sign-in, registration,
// password flows, the profile and the role dashboards.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,PollStarter,Enricher

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"jurify/internal/geocoding"
	"jurify/internal/jurifyapi"
	"jurify/internal/registration"
	"jurify/internal/session"
	"jurify/internal/verification"
	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/httputil"
	authmw "jurify/pkg/platform/middleware/auth"
)

// Service is the session façade.
type Service interface {
	Login(ctx context.Context, email, password string) session.Result
	Register(ctx context.Context, form registration.Form) session.RegisterResult
	Logout(ctx context.Context, id domain.SessionID)
	ForgotPassword(ctx context.Context, email string) session.Result
	ResetPassword(ctx context.Context, token, newPassword string) session.Result
	VerifyEmail(ctx context.Context, token string) session.Result
	CompleteOAuth2(ctx context.Context, accessToken, refreshToken string) session.Result
	GetProfile(ctx context.Context, id domain.SessionID) session.Result
	UpdateProfile(ctx context.Context, id domain.SessionID, partial map[string]any) session.Result
	UpdateDirectoryStatus(ctx context.Context, id domain.SessionID, isActive bool) session.Result
	UpdateLocation(ctx context.Context, id domain.SessionID, loc jurifyapi.LocationUpdate) session.Result
	SearchDirectory(ctx context.Context, q jurifyapi.DirectoryQuery) (json.RawMessage, error)
	Dashboard(ctx context.Context, id domain.SessionID) (*session.DashboardView, error)
}

// PollStarter begins email-verification polling for a new registration.
type PollStarter interface {
	Start(pollingToken string) (verification.Status, error)
}

// Enricher attaches an address to a map position.
type Enricher interface {
	Apply(ctx context.Context, pos *geocoding.GeoPosition)
}

type Handler struct {
	logger        *slog.Logger
	sessions      Service
	validator     *registration.Validator
	polls         PollStarter
	enricher      Enricher
	cookies       session.CookieConfig
	publicBaseURL string
	now           func() time.Time
}

type Option func(*Handler)

func WithPollStarter(p PollStarter) Option {
	return func(h *Handler) { h.polls = p }
}

func WithEnricher(e Enricher) Option {
	return func(h *Handler) { h.enricher = e }
}

func WithValidator(v *registration.Validator) Option {
	return func(h *Handler) {
		if v != nil {
			h.validator = v
		}
	}
}

// WithPublicBaseURL prefixes browser redirects, for a UI served elsewhere.
func WithPublicBaseURL(u string) Option {
	return func(h *Handler) { h.publicBaseURL = strings.TrimRight(u, "/") }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func New(sessions Service, cookies session.CookieConfig, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		logger:    logger,
		sessions:  sessions,
		validator: registration.NewValidator(),
		cookies:   cookies,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the routes. Guards come from the session loader already in
// the chain.
func (h *Handler) Register(r chi.Router) {
	r.With(authmw.PublicRoute).Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
	r.With(authmw.PublicRoute).Post("/auth/forgot-password", h.handleForgotPassword)
	r.With(authmw.PublicRoute).Post("/auth/reset-password", h.handleResetPassword)
	r.Get("/auth/verify-email", h.handleVerifyEmail)
	r.With(authmw.PublicRoute).Get("/oauth2/redirect", h.handleOAuth2Redirect)

	r.With(authmw.PublicRoute).Post("/register/{role}", h.handleRegister)
	r.Post("/register/validate/{role}", h.handleValidateForm)
	r.Post("/register/validate/{role}/field", h.handleValidateField)
	r.Get("/password/strength", h.handlePasswordStrength)

	r.Group(func(r chi.Router) {
		r.Use(authmw.ProtectedRoute())
		r.Get("/me", h.handleGetProfile)
		r.Put("/me/profile", h.handleUpdateProfile)
		r.Put("/me/location", h.handleUpdateLocation)
		r.With(authmw.ProtectedRoute(domain.RoleLawyer, domain.RoleNGO)).Patch("/me/directory-status", h.handleDirectoryStatus)
	})

	r.With(authmw.ProtectedRoute(domain.RoleCitizen)).Get("/citizen/dashboard", h.handleDashboard)
	r.With(authmw.ProtectedRoute(domain.RoleLawyer)).Get("/lawyer/dashboard", h.handleDashboard)
	r.With(authmw.ProtectedRoute(domain.RoleNGO)).Get("/ngo/dashboard", h.handleDashboard)
	r.With(authmw.AdminRoute).Get("/admin/dashboard", h.handleDashboard)

	r.Get("/directory/search", h.handleDirectorySearch)
}

// writeResult renders a façade result and issues the cookie for a new session.
func (h *Handler) writeResult(w http.ResponseWriter, res session.Result, successStatus int) {
	if res.Session != nil {
		h.cookies.SetCookie(w, res.Session, h.now())
	}
	status := successStatus
	switch {
	case res.Success:
	case res.Code == dErrors.CodeValidation:
		status = http.StatusUnprocessableEntity
	default:
		status = httputil.StatusFor(res.Code)
		if res.Code == dErrors.CodeUnauthorized {
			h.cookies.ClearCookie(w)
		}
	}
	httputil.WriteJSON(w, status, res)
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, h.publicBaseURL+path, http.StatusFound)
}

func parseRole(r *http.Request) (domain.Role, error) {
	role, err := domain.ParseRole(chi.URLParam(r, "role"))
	if err != nil || !role.CanRegister() {
		return "", dErrors.New(dErrors.CodeBadRequest, "unsupported registration role")
	}
	return role, nil
}
