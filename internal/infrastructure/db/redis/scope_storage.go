package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/worksync/session-agent/internal/core/ports"
)

// ScopeStorage keeps one credential scope in Redis.
// Key format: worksync:<namespace>:<key>
//
// With a TTL every write refreshes the expiry, so an idle session-scope
// credential disappears on its own the way a closed browser tab drops its
// session storage.
type ScopeStorage struct {
	client    redis.Cmdable
	namespace string
	ttl       time.Duration
}

// NewScopeStorage wraps client. ttl <= 0 keeps keys until deleted.
func NewScopeStorage(client redis.Cmdable, namespace string, ttl time.Duration) *ScopeStorage {
	if ttl < 0 {
		ttl = 0
	}
	return &ScopeStorage{client: client, namespace: namespace, ttl: ttl}
}

func (s *ScopeStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *ScopeStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *ScopeStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *ScopeStorage) key(k string) string {
	return fmt.Sprintf("worksync:%s:%s", s.namespace, k)
}

var _ ports.ScopeStorage = (*ScopeStorage)(nil)
