package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
	now time.Time
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.now = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)
}

func (s *BreakerSuite) breaker(opts ...Option) *Breaker {
	opts = append(opts, WithClock(func() time.Time { return s.now }))
	return New("nominatim", opts...)
}

// step is one recorded outcome; true is a success.
type step bool

func (s *BreakerSuite) replay(b *Breaker, steps ...step) {
	for _, ok := range steps {
		if ok {
			b.RecordSuccess()
		} else {
			b.RecordFailure()
		}
	}
}

func (s *BreakerSuite) TestTransitions() {
	const (
		ok   step = true
		fail step = false
	)
	cases := []struct {
		name     string
		failures int
		recovers int
		steps    []step
		open     bool
	}{
		{name: "new breaker is closed", failures: 3, recovers: 1},
		{name: "below threshold stays closed", failures: 3, recovers: 1, steps: []step{fail, fail}},
		{name: "threshold opens", failures: 3, recovers: 1, steps: []step{fail, fail, fail}, open: true},
		{name: "success while closed resets failures", failures: 3, recovers: 1, steps: []step{fail, fail, ok, fail, fail}},
		{name: "needs consecutive successes to close", failures: 1, recovers: 2, steps: []step{fail, ok}, open: true},
		{name: "closes after enough successes", failures: 1, recovers: 2, steps: []step{fail, ok, ok}},
		{name: "failure while open restarts recovery", failures: 1, recovers: 3, steps: []step{fail, ok, ok, fail, ok, ok}, open: true},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			b := s.breaker(WithFailureThreshold(tc.failures), WithSuccessThreshold(tc.recovers))
			s.replay(b, tc.steps...)
			s.Equal(tc.open, b.IsOpen())
		})
	}
}

func (s *BreakerSuite) TestStateChangesAreReportedOnce() {
	b := s.breaker(WithFailureThreshold(2), WithSuccessThreshold(1))

	fallback, change := b.RecordFailure()
	s.False(fallback)
	s.False(change.Opened)

	fallback, change = b.RecordFailure()
	s.True(fallback)
	s.True(change.Opened)

	fallback, change = b.RecordFailure()
	s.True(fallback, "open breaker keeps degrading")
	s.False(change.Opened, "already open")

	primary, change := b.RecordSuccess()
	s.True(primary)
	s.True(change.Closed)
	s.Equal(StateClosed, b.State())
}

func (s *BreakerSuite) TestCooldownGatesTrialCalls() {
	b := s.breaker(WithFailureThreshold(2), WithCooldown(30*time.Second))

	s.True(b.Allow())
	s.replay(b, false, false)
	s.False(b.Allow(), "open breaker rejects calls inside the cooldown")

	s.now = s.now.Add(31 * time.Second)
	s.True(b.Allow(), "trial call allowed once the cooldown elapsed")

	b.RecordFailure()
	s.False(b.Allow(), "failed trial call restarts the cooldown")
}

func (s *BreakerSuite) TestReset() {
	b := s.breaker(WithFailureThreshold(1), WithCooldown(time.Minute))
	b.RecordFailure()
	s.Require().True(b.IsOpen())

	b.Reset()
	s.False(b.IsOpen())
	s.True(b.Allow())
	s.Equal("nominatim", b.Name())
	s.Equal("closed", b.State().String())
	s.Equal("open", StateOpen.String())
}
