package session

import (
	"context"

	"jurify/pkg/domain"
)

// Repository persists sessions. Find returns sentinel.ErrNotFound for unknown
// or expired sessions; Delete of an unknown id is not an error.
type Repository interface {
	Save(ctx context.Context, sess *Session) error
	Find(ctx context.Context, id domain.SessionID) (*Session, error)
	Delete(ctx context.Context, id domain.SessionID) error
}
