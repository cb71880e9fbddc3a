// Package verification waits for a newly registered account to confirm its
// email, then signs it in.
package verification

import (
	"time"

	"jurify/internal/session"
)

// State of a poller: idle → polling → verified | abandoned.
type State string

const (
	StateIdle      State = "idle"
	StatePolling   State = "polling"
	StateVerified  State = "verified"
	StateAbandoned State = "abandoned"
)

// Reason explains why a poller was abandoned.
type Reason string

const (
	ReasonExpired   Reason = "expired"
	ReasonCancelled Reason = "cancelled"
	ReasonFailed    Reason = "failed"
)

// Status is the externally visible state of one poller.
type Status struct {
	Token      string           `json:"-"`
	State      State            `json:"state"`
	Reason     Reason           `json:"reason,omitempty"`
	Attempts   int              `json:"attempts"`
	Generation uint64           `json:"generation"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt,omitzero"`
	NextPollAt time.Time        `json:"nextPollAt,omitzero"`
	LastError  string           `json:"lastError,omitempty"`
	Redirect   string           `json:"redirect,omitempty"`
	User       *session.Profile `json:"user,omitempty"`
}

// Terminal reports whether the poller has stopped.
func (s Status) Terminal() bool {
	return s.State == StateVerified || s.State == StateAbandoned
}

// Policy bounds polling with exponential backoff.
type Policy struct {
	Interval    time.Duration
	MaxInterval time.Duration
	Multiplier  float64
	MaxAttempts int
	MaxDuration time.Duration
}

// DefaultPolicy starts at 3s, grows by half each attempt up to 30s, and gives
// up after 200 attempts or 30 minutes.
func DefaultPolicy() Policy {
	return Policy{
		Interval:    3 * time.Second,
		MaxInterval: 30 * time.Second,
		Multiplier:  1.5,
		MaxAttempts: 200,
		MaxDuration: 30 * time.Minute,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.Interval <= 0 {
		p.Interval = d.Interval
	}
	if p.MaxInterval < p.Interval {
		p.MaxInterval = p.Interval
	}
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}
	return p
}

// Next returns the wait after current.
func (p Policy) Next(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * p.Multiplier)
	if next > p.MaxInterval {
		return p.MaxInterval
	}
	return next
}
