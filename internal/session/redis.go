package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"jobboard/internal/common"
	"jobboard/internal/domain/session"
)

const keyPrefix = "session:"

// RedisStore keeps session records in Redis so they survive process
// restarts and are shared across instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "invalid redis url", err)
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to connect to redis", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Client() *redis.Client {
	return s.client
}

func (s *RedisStore) Get(ctx context.Context, tokenID string) (*session.Record, error) {
	raw, err := s.client.Get(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.NewError(common.CodeNotFound, "session not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load session", err)
	}
	var rec session.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode session", err)
	}
	return &rec, nil
}

func (s *RedisStore) Set(ctx context.Context, rec session.Record, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode session", err)
	}
	if err := s.client.Set(ctx, keyPrefix+rec.TokenID, raw, ttl).Err(); err != nil {
		return common.NewError(common.CodeInternal, "failed to store session", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, keyPrefix+tokenID).Err(); err != nil {
		return common.NewError(common.CodeInternal, "failed to clear session", err)
	}
	return nil
}
