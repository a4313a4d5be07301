package ban

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	strikeKeyPrefix = "ratelimit:strikes:"
	banKeyPrefix    = "ratelimit:ban:"
	// BanLogKey holds a JSON line for every ban issued.
	BanLogKey = "ratelimit:banlog"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) IsBanned(ctx context.Context, target string) (bool, error) {
	n, err := s.rdb.Exists(ctx, banKeyPrefix+target).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) AddStrike(ctx context.Context, target string, window time.Duration) (int64, error) {
	key := strikeKeyPrefix + target

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (s *RedisStore) Ban(ctx context.Context, entry LogEntry, d time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, banKeyPrefix+entry.Target, entry.Route, d)
	pipe.Del(ctx, strikeKeyPrefix+entry.Target)
	pipe.RPush(ctx, BanLogKey, data)
	_, err = pipe.Exec(ctx)
	return err
}
