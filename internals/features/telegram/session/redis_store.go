package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ievents:tg:session:"

// RedisStore: sesi bertahan melewati restart proses. TTL dipegang Redis.
type RedisStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisStore(rdb redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(chatID int64) string {
	return redisKeyPrefix + strconv.FormatInt(chatID, 10)
}

func (r *RedisStore) Get(ctx context.Context, chatID int64) (Session, bool, error) {
	v, err := r.rdb.Get(ctx, redisKey(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}
	return Session{State: State(v)}, true, nil
}

func (r *RedisStore) Set(ctx context.Context, chatID int64, s Session) error {
	return r.rdb.Set(ctx, redisKey(chatID), string(s.State), r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, chatID int64) error {
	return r.rdb.Del(ctx, redisKey(chatID)).Err()
}
