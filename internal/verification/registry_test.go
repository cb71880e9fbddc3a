package verification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"jurify/internal/jurifyapi"
	"jurify/internal/session"
	"jurify/internal/verification/mocks"
	"jurify/pkg/domain"
	"jurify/pkg/platform/audit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fastPolicy = Policy{
	Interval:    2 * time.Millisecond,
	MaxInterval: 8 * time.Millisecond,
	Multiplier:  2,
	MaxAttempts: 50,
	MaxDuration: time.Minute,
}

type RegistrySuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	api       *mocks.MockAPI
	completer *mocks.MockCompleter
	auditor   *mocks.MockAuditPublisher

	mu     sync.Mutex
	events []audit.Event
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockAPI(s.ctrl)
	s.completer = mocks.NewMockCompleter(s.ctrl)
	s.auditor = mocks.NewMockAuditPublisher(s.ctrl)
	s.events = nil
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e audit.Event) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.events = append(s.events, e)
			return nil
		}).AnyTimes()
}

func (s *RegistrySuite) newRegistry(p Policy) *Registry {
	reg, err := NewRegistry(s.api, s.completer,
		WithPolicy(p),
		WithAuditPublisher(s.auditor),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)
	s.T().Cleanup(reg.Close)
	return reg
}

func (s *RegistrySuite) waitTerminal(reg *Registry, token string) Status {
	var st Status
	s.Require().Eventually(func() bool {
		st = reg.Status(token)
		return st.Terminal()
	}, 2*time.Second, time.Millisecond)
	return st
}

func (s *RegistrySuite) abandonReasons() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.events {
		if e.Action == string(audit.EventVerificationAbandoned) {
			out = append(out, e.Reason)
		}
	}
	return out
}

func verifiedSession() *session.Session {
	return &session.Session{
		ID:   domain.NewSessionID(),
		User: session.Profile{ID: 7, Email: "ravi@law.in", Role: domain.RoleLawyer},
	}
}

func (s *RegistrySuite) TestWaitingThenVerified() {
	auth := &jurifyapi.AuthResponse{AccessToken: "a", RefreshToken: "r", Role: "LAWYER"}
	sess := verifiedSession()
	gomock.InOrder(
		s.api.EXPECT().PollVerification(gomock.Any(), "poll-1").Return(jurifyapi.PollResult{}, nil).Times(2),
		s.api.EXPECT().PollVerification(gomock.Any(), "poll-1").Return(jurifyapi.PollResult{Verified: true, Auth: auth}, nil),
	)
	s.completer.EXPECT().CompleteVerification(gomock.Any(), auth).Return(sess, nil)
	reg := s.newRegistry(fastPolicy)

	st, err := reg.Start("poll-1")
	s.Require().NoError(err)
	s.Equal(StatePolling, st.State)

	st = s.waitTerminal(reg, "poll-1")
	s.Equal(StateVerified, st.State)
	s.Equal(3, st.Attempts)
	s.Equal("/lawyer/dashboard", st.Redirect)
	s.Require().NotNil(st.User)

	claimed, ok := reg.Claim("poll-1")
	s.Require().True(ok)
	s.Equal(sess.ID, claimed.ID)
	_, ok = reg.Claim("poll-1")
	s.False(ok, "a verified session is handed out once")
}

func (s *RegistrySuite) TestAttemptsAreBounded() {
	s.api.EXPECT().PollVerification(gomock.Any(), "poll-2").Return(jurifyapi.PollResult{}, nil).Times(3)
	p := fastPolicy
	p.MaxAttempts = 3
	reg := s.newRegistry(p)

	_, err := reg.Start("poll-2")
	s.Require().NoError(err)

	st := s.waitTerminal(reg, "poll-2")
	s.Equal(StateAbandoned, st.State)
	s.Equal(ReasonExpired, st.Reason)
	s.Equal(3, st.Attempts)
	s.Eventually(func() bool { return len(s.abandonReasons()) == 1 }, time.Second, time.Millisecond)
	s.Equal([]string{"expired"}, s.abandonReasons())
}

func (s *RegistrySuite) TestDurationIsBounded() {
	s.api.EXPECT().PollVerification(gomock.Any(), "poll-3").Return(jurifyapi.PollResult{}, nil).MinTimes(1)
	p := fastPolicy
	p.MaxAttempts = 0
	p.MaxDuration = 10 * time.Millisecond
	reg := s.newRegistry(p)

	_, err := reg.Start("poll-3")
	s.Require().NoError(err)

	st := s.waitTerminal(reg, "poll-3")
	s.Equal(ReasonExpired, st.Reason)
}

func (s *RegistrySuite) TestTransientErrorsCountAsAttempts() {
	s.api.EXPECT().PollVerification(gomock.Any(), "poll-4").
		Return(jurifyapi.PollResult{}, errors.New("connection reset")).Times(2)
	p := fastPolicy
	p.MaxAttempts = 2
	reg := s.newRegistry(p)

	_, err := reg.Start("poll-4")
	s.Require().NoError(err)

	st := s.waitTerminal(reg, "poll-4")
	s.Equal(ReasonExpired, st.Reason)
	s.Equal(2, st.Attempts)
	s.Equal("connection reset", st.LastError)
}

func (s *RegistrySuite) TestCancel() {
	p := fastPolicy
	p.Interval = time.Hour
	p.MaxInterval = time.Hour
	reg := s.newRegistry(p)

	_, err := reg.Start("poll-5")
	s.Require().NoError(err)

	s.True(reg.Cancel(context.Background(), "poll-5"))
	st := reg.Status("poll-5")
	s.Equal(StateAbandoned, st.State)
	s.Equal(ReasonCancelled, st.Reason)
	s.False(reg.Cancel(context.Background(), "poll-5"))
	s.False(reg.Cancel(context.Background(), "unknown"))
}

func (s *RegistrySuite) TestStartIsIdempotentWhilePolling() {
	p := fastPolicy
	p.Interval = time.Hour
	p.MaxInterval = time.Hour
	reg := s.newRegistry(p)

	first, err := reg.Start("poll-6")
	s.Require().NoError(err)
	again, err := reg.Start("poll-6")
	s.Require().NoError(err)
	s.Equal(first.Generation, again.Generation)

	s.True(reg.Cancel(context.Background(), "poll-6"))
	restarted, err := reg.Start("poll-6")
	s.Require().NoError(err)
	s.Greater(restarted.Generation, first.Generation)
	s.Equal(StatePolling, restarted.State)
}

func (s *RegistrySuite) TestCloseStopsPollers() {
	p := fastPolicy
	p.Interval = time.Hour
	p.MaxInterval = time.Hour
	reg := s.newRegistry(p)
	_, err := reg.Start("poll-7")
	s.Require().NoError(err)

	reg.Close()

	st := reg.Status("poll-7")
	s.Equal(StateAbandoned, st.State)
	s.Equal(ReasonCancelled, st.Reason)
	_, err = reg.Start("poll-8")
	s.Error(err)
}

func (s *RegistrySuite) TestFailedSessionStartAbandons() {
	auth := &jurifyapi.AuthResponse{AccessToken: "a", RefreshToken: "r"}
	s.api.EXPECT().PollVerification(gomock.Any(), "poll-9").Return(jurifyapi.PollResult{Verified: true, Auth: auth}, nil)
	s.completer.EXPECT().CompleteVerification(gomock.Any(), auth).Return(nil, errors.New("redis down"))
	reg := s.newRegistry(fastPolicy)

	_, err := reg.Start("poll-9")
	s.Require().NoError(err)

	st := s.waitTerminal(reg, "poll-9")
	s.Equal(StateAbandoned, st.State)
	s.Equal(ReasonFailed, st.Reason)
	_, ok := reg.Claim("poll-9")
	s.False(ok)
}

func (s *RegistrySuite) TestUnknownTokenIsIdle() {
	reg := s.newRegistry(fastPolicy)
	s.Equal(StateIdle, reg.Status("nope").State)
	_, err := reg.Start(" ")
	s.Error(err)
}

func TestPolicyBackoff(t *testing.T) {
	p := DefaultPolicy()
	wait := p.Interval
	var seen []time.Duration
	for range 8 {
		seen = append(seen, wait)
		wait = p.Next(wait)
	}
	want := []time.Duration{
		3 * time.Second,
		4500 * time.Millisecond,
		6750 * time.Millisecond,
		10125 * time.Millisecond,
		15187500 * time.Microsecond,
		22781250 * time.Microsecond,
		30 * time.Second,
		30 * time.Second,
	}
	if len(seen) != len(want) {
		t.Fatalf("got %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("step %d: got %v want %v", i, seen[i], want[i])
		}
	}
}

func (s *RegistrySuite) TestSessionStartedAfterCancelIsDiscarded() {
	auth := &jurifyapi.AuthResponse{AccessToken: "a", RefreshToken: "r", Role: "LAWYER"}
	sess := verifiedSession()
	entered := make(chan struct{})
	release := make(chan struct{})
	discarded := make(chan *session.Session, 1)

	s.api.EXPECT().PollVerification(gomock.Any(), "poll-9").Return(jurifyapi.PollResult{Verified: true, Auth: auth}, nil)
	s.completer.EXPECT().CompleteVerification(gomock.Any(), auth).DoAndReturn(
		func(context.Context, *jurifyapi.AuthResponse) (*session.Session, error) {
			close(entered)
			<-release
			return sess, nil
		})
	s.completer.EXPECT().Discard(gomock.Any(), sess).Do(
		func(_ context.Context, got *session.Session) { discarded <- got })
	reg := s.newRegistry(fastPolicy)

	_, err := reg.Start("poll-9")
	s.Require().NoError(err)
	<-entered

	s.True(reg.Cancel(context.Background(), "poll-9"))
	close(release)

	select {
	case got := <-discarded:
		s.Equal(sess.ID, got.ID)
	case <-time.After(2 * time.Second):
		s.Fail("session started after cancel was never discarded")
	}
	st := reg.Status("poll-9")
	s.Equal(StateAbandoned, st.State)
	s.Equal(ReasonCancelled, st.Reason)
	_, ok := reg.Claim("poll-9")
	s.False(ok)
}
