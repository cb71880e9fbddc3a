package verification

//go:generate mockgen -source=registry.go -destination=mocks/mocks.go -package=mocks API,Completer,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"jurify/internal/jurifyapi"
	"jurify/internal/platform/metrics"
	"jurify/internal/session"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/audit"
)

const defaultRetention = 15 * time.Minute

// API polls the backend for verification.
type API interface {
	PollVerification(ctx context.Context, pollingToken string) (jurifyapi.PollResult, error)
}

// Completer turns a verified account into a gateway session.
type Completer interface {
	CompleteVerification(ctx context.Context, auth *jurifyapi.AuthResponse) (*session.Session, error)
	Discard(ctx context.Context, sess *session.Session)
}

// AuditPublisher records abandoned verifications.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type run struct {
	status  Status
	cancel  context.CancelFunc
	session *session.Session
	claimed bool
}

// Registry owns one poller per polling token. Pollers run on goroutines
// owned by the registry until they finish, are cancelled, or Close is called.
type Registry struct {
	api       API
	completer Completer
	policy    Policy
	logger    *slog.Logger
	metrics   *metrics.Metrics
	auditor   AuditPublisher
	retention time.Duration
	now       func() time.Time

	root       context.Context
	stop       context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	runs       map[string]*run
	generation uint64
	closed     bool
}

type Option func(*Registry)

func WithPolicy(p Policy) Option {
	return func(r *Registry) { r.policy = p.normalized() }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(r *Registry) { r.auditor = p }
}

// WithRetention sets how long finished pollers stay queryable.
func WithRetention(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.retention = d
		}
	}
}

func NewRegistry(api API, completer Completer, opts ...Option) (*Registry, error) {
	if api == nil {
		return nil, errors.New("api client is required")
	}
	if completer == nil {
		return nil, errors.New("completer is required")
	}
	root, stop := context.WithCancel(context.Background())
	r := &Registry{
		api:       api,
		completer: completer,
		policy:    DefaultPolicy(),
		logger:    slog.Default(),
		retention: defaultRetention,
		now:       time.Now,
		root:      root,
		stop:      stop,
		runs:      make(map[string]*run),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Start begins polling for token. Starting a token that is already polling or
// verified returns its current status; an abandoned token starts over with a
// new generation.
func (r *Registry) Start(token string) (Status, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Status{}, dErrors.New(dErrors.CodeBadRequest, "polling token is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Status{}, dErrors.New(dErrors.CodeUnavailable, "verification polling is shutting down")
	}
	r.pruneLocked()
	if existing, ok := r.runs[token]; ok && existing.status.State != StateAbandoned {
		return existing.status, nil
	}

	r.generation++
	now := r.now()
	ctx, cancel := context.WithCancel(r.root)
	rn := &run{
		cancel: cancel,
		status: Status{
			Token:      token,
			State:      StatePolling,
			Generation: r.generation,
			StartedAt:  now,
			NextPollAt: now.Add(r.policy.Interval),
		},
	}
	r.runs[token] = rn
	r.metrics.AddActivePollers(1)
	r.wg.Add(1)
	go r.poll(ctx, token, rn.status.Generation)
	return rn.status, nil
}

// Status returns the current status of token's poller; an unknown token is
// idle.
func (r *Registry) Status(token string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rn, ok := r.runs[token]; ok {
		return rn.status
	}
	return Status{Token: token, State: StateIdle}
}

// Claim hands out the session created by a verified poller. It succeeds once
// per token so the session cookie is issued to a single browser.
func (r *Registry) Claim(token string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rn, ok := r.runs[token]
	if !ok || rn.status.State != StateVerified || rn.session == nil || rn.claimed {
		return nil, false
	}
	rn.claimed = true
	return rn.session, true
}

// Cancel abandons token's poller. It reports whether a running poller was
// stopped.
func (r *Registry) Cancel(ctx context.Context, token string) bool {
	r.mu.Lock()
	rn, ok := r.runs[token]
	if !ok || rn.status.State != StatePolling {
		r.mu.Unlock()
		return false
	}
	st := r.finishLocked(rn, StateAbandoned, ReasonCancelled)
	r.mu.Unlock()

	r.reportAbandoned(ctx, st)
	return true
}

// Close cancels every running poller and waits for their goroutines.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()
	r.stop()
	r.wg.Wait()
}

func (r *Registry) poll(ctx context.Context, token string, gen uint64) {
	defer r.wg.Done()

	started := r.now()
	wait := r.policy.Interval
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			r.abandon(gen, token, ReasonCancelled)
			return
		case <-timer.C:
		}

		res, err := r.api.PollVerification(ctx, token)
		if ctx.Err() != nil {
			r.abandon(gen, token, ReasonCancelled)
			return
		}
		if err == nil && res.Verified {
			r.complete(ctx, gen, token, res.Auth, attempt)
			return
		}

		wait = r.policy.Next(wait)
		nextAt := r.now().Add(wait)
		if !r.recordAttempt(gen, token, attempt, err, nextAt) {
			return
		}
		if r.exhausted(attempt, started, nextAt) {
			r.abandon(gen, token, ReasonExpired)
			return
		}
		timer.Reset(wait)
	}
}

func (r *Registry) exhausted(attempt int, started, nextAt time.Time) bool {
	if r.policy.MaxAttempts > 0 && attempt >= r.policy.MaxAttempts {
		return true
	}
	return r.policy.MaxDuration > 0 && nextAt.Sub(started) > r.policy.MaxDuration
}

// current returns token's run when gen is still the live polling generation.
func (r *Registry) current(gen uint64, token string) (*run, bool) {
	rn, ok := r.runs[token]
	if !ok || rn.status.Generation != gen || rn.status.State != StatePolling {
		return nil, false
	}
	return rn, true
}

func (r *Registry) recordAttempt(gen uint64, token string, attempt int, err error, nextAt time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rn, ok := r.current(gen, token)
	if !ok {
		return false
	}
	rn.status.Attempts = attempt
	rn.status.NextPollAt = nextAt
	rn.status.LastError = ""
	if err != nil {
		rn.status.LastError = jurifyapi.MessageOf(err)
		r.logger.Warn("verification poll failed",
			"attempt", attempt,
			"generation", gen,
			"error", rn.status.LastError,
		)
	}
	return true
}

func (r *Registry) complete(ctx context.Context, gen uint64, token string, auth *jurifyapi.AuthResponse, attempt int) {
	r.mu.Lock()
	_, ok := r.current(gen, token)
	r.mu.Unlock()
	if !ok {
		return
	}

	sess, err := r.completer.CompleteVerification(context.WithoutCancel(ctx), auth)

	r.mu.Lock()
	rn, ok := r.current(gen, token)
	if !ok {
		r.mu.Unlock()
		r.logger.Info("discarding stale verification result", "generation", gen)
		if err == nil {
			r.completer.Discard(context.WithoutCancel(ctx), sess)
		}
		return
	}
	rn.status.Attempts = attempt
	if err != nil {
		rn.status.LastError = jurifyapi.MessageOf(err)
		st := r.finishLocked(rn, StateAbandoned, ReasonFailed)
		r.mu.Unlock()
		r.logger.Error("failed to start session after verification", "error", err)
		r.reportAbandoned(ctx, st)
		return
	}
	rn.session = sess
	rn.status.Redirect = sess.User.Role.DashboardPath()
	profile := sess.User
	rn.status.User = &profile
	r.finishLocked(rn, StateVerified, "")
	r.mu.Unlock()
}

func (r *Registry) abandon(gen uint64, token string, reason Reason) {
	r.mu.Lock()
	rn, ok := r.current(gen, token)
	if !ok {
		r.mu.Unlock()
		return
	}
	st := r.finishLocked(rn, StateAbandoned, reason)
	r.mu.Unlock()
	r.reportAbandoned(context.Background(), st)
}

// finishLocked moves rn to a terminal state. r.mu must be held.
func (r *Registry) finishLocked(rn *run, state State, reason Reason) Status {
	rn.status.State = state
	rn.status.Reason = reason
	rn.status.FinishedAt = r.now()
	rn.status.NextPollAt = time.Time{}
	rn.cancel()
	r.metrics.AddActivePollers(-1)
	r.metrics.IncPollOutcome(string(state), string(reason))
	return rn.status
}

func (r *Registry) reportAbandoned(ctx context.Context, st Status) {
	r.logger.InfoContext(ctx, "verification polling abandoned",
		"reason", st.Reason,
		"attempts", st.Attempts,
		"generation", st.Generation,
	)
	if r.auditor == nil {
		return
	}
	err := r.auditor.Emit(context.WithoutCancel(ctx), audit.Event{
		Action: string(audit.EventVerificationAbandoned),
		Reason: string(st.Reason),
	})
	if err != nil {
		r.logger.WarnContext(ctx, "failed to emit audit event", "error", err)
	}
}

// pruneLocked forgets finished pollers older than the retention window.
func (r *Registry) pruneLocked() {
	cutoff := r.now().Add(-r.retention)
	for token, rn := range r.runs {
		if rn.status.Terminal() && rn.status.FinishedAt.Before(cutoff) {
			delete(r.runs, token)
		}
	}
}
