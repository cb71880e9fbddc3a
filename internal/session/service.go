package session

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks API,AuditPublisher

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	jwttoken "jurify/internal/jwt_token"
	"jurify/internal/jurifyapi"
	"jurify/internal/platform/metrics"
	"jurify/internal/registration"
	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/audit"
	authmw "jurify/pkg/platform/middleware/auth"
	"jurify/pkg/platform/sentinel"
	"jurify/pkg/requestcontext"
)

const (
	DefaultTTL = 7 * 24 * time.Hour

	sessionExpiredMessage = "Session expired. Please log in again."
	sessionStartMessage   = "Unable to start your session. Please try again."
	logoutTimeout         = 5 * time.Second
	accessTokenSkew       = 30 * time.Second
)

// API is the subset of the Jurify REST client the façade uses.
type API interface {
	Login(ctx context.Context, email, password string) (*jurifyapi.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*jurifyapi.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) (*jurifyapi.AuthResponse, error)
	Register(ctx context.Context, role domain.Role, req jurifyapi.RegisterRequest) (*jurifyapi.RegisterResponse, error)
	Me(ctx context.Context, accessToken string) (*jurifyapi.AuthResponse, error)
	UpdateProfile(ctx context.Context, accessToken string, fields map[string]any) error
	UpdateDirectoryStatus(ctx context.Context, accessToken string, isActive bool) error
	UpdateLocation(ctx context.Context, accessToken string, loc jurifyapi.LocationUpdate) error
	SearchDirectory(ctx context.Context, q jurifyapi.DirectoryQuery) (json.RawMessage, error)
}

// AuditPublisher records session lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// TokenInspector reads access token claims so expired tokens are refreshed
// before a call instead of after its 401.
type TokenInspector interface {
	ParseClaims(token string) (*jwttoken.Claims, error)
	Expired(claims *jwttoken.Claims, skew time.Duration) bool
}

// Service is the auth session façade. Every method returns a normalized
// Result and never panics on backend failures.
type Service struct {
	api       API
	sessions  Repository
	validator *registration.Validator
	logger    *slog.Logger
	metrics   *metrics.Metrics
	auditor   AuditPublisher
	tokens    TokenInspector
	ttl       time.Duration
	now       func() time.Time
	refreshes singleflight.Group
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

// WithTTL sets the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithTokenInspector(t TokenInspector) Option {
	return func(s *Service) { s.tokens = t }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithValidator(v *registration.Validator) Option {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

func New(api API, sessions Repository, opts ...Option) (*Service, error) {
	if api == nil {
		return nil, errors.New("api client is required")
	}
	if sessions == nil {
		return nil, errors.New("session repository is required")
	}
	s := &Service{
		api:       api,
		sessions:  sessions,
		validator: registration.NewValidator(),
		logger:    slog.Default(),
		ttl:       DefaultTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func failure(err error) Result {
	return Result{Error: jurifyapi.MessageOf(err), Code: jurifyapi.CodeOf(err)}
}

func failureMessage(code dErrors.Code, msg string) Result {
	return Result{Error: msg, Code: code}
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, sess *Session, mutate func(*audit.Event)) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Action:    string(action),
		IP:        requestcontext.ClientIP(ctx),
		RequestID: requestcontext.RequestID(ctx),
	}
	if sess != nil {
		event.SessionID = sess.ID.String()
		event.UserID = sess.User.ID
		event.Role = string(sess.User.Role)
	}
	if mutate != nil {
		mutate(&event)
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"request_id", event.RequestID,
			"error", err,
		)
	}
}

// start creates and stores a session for an authenticated backend response.
func (s *Service) start(ctx context.Context, accessToken, refreshToken string, profile Profile) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:           domain.NewSessionID(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         profile,
		DeviceLabel:  DeviceLabel(requestcontext.UserAgent(ctx)),
		ClientIP:     requestcontext.ClientIP(ctx),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.ErrorContext(ctx, "failed to save session",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, sessionStartMessage)
	}
	return sess, nil
}

// Session loads a live session. Unknown and expired sessions are
// CodeUnauthorized.
func (s *Service) Session(ctx context.Context, id domain.SessionID) (*Session, error) {
	sess, err := s.sessions.Find(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, sessionExpiredMessage)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if sess.Expired(s.now()) {
		s.destroy(ctx, sess, audit.EventSessionExpired, "expired")
		return nil, dErrors.New(dErrors.CodeUnauthorized, sessionExpiredMessage)
	}
	return sess, nil
}

// Resolve implements the session loader's lookup for request middleware.
func (s *Service) Resolve(ctx context.Context, id domain.SessionID) (authmw.Identity, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return authmw.Identity{}, err
	}
	return authmw.Identity{SessionID: sess.ID, UserID: sess.User.ID, Role: sess.User.Role}, nil
}

// destroy removes the session; repository failures are logged only.
func (s *Service) destroy(ctx context.Context, sess *Session, action audit.AuditEvent, reason string) {
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to delete session",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	s.emit(ctx, action, sess, func(e *audit.Event) { e.Reason = reason })
}

// authorized runs call with the session's access token. A backend 401 triggers
// one refresh and one retry; a failed refresh ends the session.
func (s *Service) authorized(ctx context.Context, id domain.SessionID, call func(token string) error) (*Session, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.accessExpired(sess.AccessToken) {
		if sess, err = s.refresh(ctx, sess); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, sessionExpiredMessage)
		}
		return sess, call(sess.AccessToken)
	}
	err = call(sess.AccessToken)
	if !jurifyapi.IsUnauthorized(err) {
		return sess, err
	}
	fresh, rerr := s.refresh(ctx, sess)
	if rerr != nil {
		return nil, dErrors.Wrap(rerr, dErrors.CodeUnauthorized, sessionExpiredMessage)
	}
	return fresh, call(fresh.AccessToken)
}

func (s *Service) accessExpired(token string) bool {
	if s.tokens == nil {
		return false
	}
	claims, err := s.tokens.ParseClaims(token)
	if err != nil {
		return false
	}
	return s.tokens.Expired(claims, accessTokenSkew)
}

// refresh rotates the session's tokens. Concurrent refreshes of one session
// share a single backend call.
func (s *Service) refresh(ctx context.Context, stale *Session) (*Session, error) {
	ctx = context.WithoutCancel(ctx)
	v, err, _ := s.refreshes.Do(stale.ID.String(), func() (any, error) {
		current, err := s.sessions.Find(ctx, stale.ID)
		if err != nil {
			return nil, err
		}
		if current.AccessToken != stale.AccessToken {
			return current, nil
		}
		pair, err := s.api.Refresh(ctx, current.RefreshToken)
		if err != nil {
			s.metrics.IncTokenRefresh("failure")
			s.logger.WarnContext(ctx, "token refresh failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			s.destroy(ctx, current, audit.EventSessionExpired, "refresh_failed")
			return nil, err
		}
		current.AccessToken = pair.AccessToken
		if pair.RefreshToken != "" {
			current.RefreshToken = pair.RefreshToken
		}
		if err := s.sessions.Save(ctx, current); err != nil {
			return nil, err
		}
		s.metrics.IncTokenRefresh("success")
		s.emit(ctx, audit.EventTokenRefreshed, current, nil)
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}
