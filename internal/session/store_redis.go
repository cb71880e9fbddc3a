package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jurify/pkg/domain"
	"jurify/pkg/platform/sentinel"
)

const sessionKeyPrefix = "jurify:session:"

// RedisRepository stores each session as JSON under a key that expires with
// the session.
type RedisRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedisRepository(client redis.UniversalClient) *RedisRepository {
	return &RedisRepository{client: client, now: time.Now}
}

func sessionKey(id domain.SessionID) string {
	return sessionKeyPrefix + id.String()
}

func (r *RedisRepository) Save(ctx context.Context, sess *Session) error {
	ttl := sess.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("save session: %w", sentinel.ErrExpired)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisRepository) Find(ctx context.Context, id domain.SessionID) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if sess.Expired(r.now()) {
		return nil, sentinel.ErrNotFound
	}
	return &sess, nil
}

func (r *RedisRepository) Delete(ctx context.Context, id domain.SessionID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
