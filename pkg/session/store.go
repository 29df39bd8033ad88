package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/socialauth/pkg/cache"
)

// Store persists sessions.
type Store interface {
	Create(ctx context.Context, s *Session) error

	// Get returns ErrNotFound or ErrExpired when the session cannot be used.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session. Missing sessions are not an error.
	Delete(ctx context.Context, id string) error
}

// CacheStore keeps sessions in a cache backend until they expire.
type CacheStore struct {
	cache cache.Cache[Session]
}

// NewCacheStore wraps c. Use cache.NewRedis for sessions shared between instances.
func NewCacheStore(c cache.Cache[Session]) *CacheStore {
	return &CacheStore{cache: c}
}

func (s *CacheStore) Create(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}
	return s.cache.Set(ctx, sess.ID, *sess, ttl)
}

func (s *CacheStore) Get(ctx context.Context, id string) (*Session, error) {
	sess, err := s.cache.Get(ctx, id)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sess.IsExpired() {
		_ = s.cache.Delete(ctx, id)
		return nil, ErrExpired
	}
	return &sess, nil
}

func (s *CacheStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, id)
}

var _ Store = (*CacheStore)(nil)
