package session

import (
	"context"
	"sync"
	"time"

	"jurify/pkg/domain"
	"jurify/pkg/platform/sentinel"
)

// InMemoryRepository keeps sessions in process. Expired entries are dropped
// on read.
type InMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]Session
	now      func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		sessions: make(map[domain.SessionID]Session),
		now:      time.Now,
	}
}

func (r *InMemoryRepository) Save(_ context.Context, sess *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID] = *sess
	return nil
}

func (r *InMemoryRepository) Find(_ context.Context, id domain.SessionID) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if sess.Expired(r.now()) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}
	return &sess, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
