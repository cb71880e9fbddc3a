// Package ratelimit implements an in-process sliding-window limiter used to
// throttle login attempts and outbound geocoding calls.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result describes the outcome of a limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the time until the oldest counted request leaves the window.
func (r *Result) RetryAfter(now time.Time) time.Duration {
	if r.ResetAt.Before(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// sweepInterval is how often Allow drops buckets with no requests left in
// their window.
const sweepInterval = time.Minute

// Window is a keyed sliding-window counter. Safe for concurrent use.
type Window struct {
	mu        sync.Mutex
	buckets   map[string]*slidingWindow
	now       func() time.Time
	lastSweep time.Time
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// NewWindow creates an empty limiter.
func NewWindow() *Window {
	return &Window{
		buckets: make(map[string]*slidingWindow),
		now:     time.Now,
	}
}

// Allow records one request for key if fewer than limit requests were made in
// the trailing window.
func (s *Window) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	sw := s.getOrCreate(key, window)
	sw.cleanup(now)

	if len(sw.timestamps) < limit {
		sw.timestamps = append(sw.timestamps, now)
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - len(sw.timestamps),
			ResetAt:   sw.timestamps[0].Add(window),
		}, nil
	}

	resetAt := now.Add(window)
	if len(sw.timestamps) > 0 {
		resetAt = sw.timestamps[0].Add(window)
	}
	return &Result{
		Allowed:   false,
		Limit:     limit,
		Remaining: 0,
		ResetAt:   resetAt,
	}, nil
}

// Wait blocks until a request for key is allowed or ctx is done.
func (s *Window) Wait(ctx context.Context, key string, limit int, window time.Duration) error {
	for {
		res, err := s.Allow(ctx, key, limit, window)
		if err != nil {
			return err
		}
		if res.Allowed {
			return nil
		}
		timer := time.NewTimer(res.RetryAfter(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// getOrCreate must be called with s.mu held.
func (s *Window) getOrCreate(key string, window time.Duration) *slidingWindow {
	if sw := s.buckets[key]; sw != nil {
		return sw
	}
	sw := &slidingWindow{window: window}
	s.buckets[key] = sw
	return sw
}

// sweepLocked must be called with s.mu held.
func (s *Window) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for key, sw := range s.buckets {
		sw.cleanup(now)
		if len(sw.timestamps) == 0 {
			delete(s.buckets, key)
		}
	}
}
