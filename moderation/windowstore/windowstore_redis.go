package windowstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisWindowPrefix string = "window/"

type RedisWindowStore struct {
	Client    *redis.Client
	retention time.Duration
}

func NewRedisWindowStore(redisURL string, retention time.Duration) (*RedisWindowStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	_, err = rdb.Ping(context.TODO()).Result()
	if err != nil {
		return nil, err
	}
	rws := RedisWindowStore{
		Client:    rdb,
		retention: retention,
	}
	return &rws, nil
}

func (s *RedisWindowStore) Push(ctx context.Context, sender string, at time.Time) (int, error) {
	key := redisWindowPrefix + sender
	horizon := at.Add(-s.retention).UnixNano()

	// prune, append, and measure in a single redis round-trip
	multi := s.Client.Pipeline()
	multi.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(horizon, 10))
	multi.ZAdd(ctx, key, redis.Z{
		Score:  float64(at.UnixNano()),
		Member: strconv.FormatInt(at.UnixNano(), 10),
	})
	card := multi.ZCard(ctx, key)
	multi.Expire(ctx, key, 2*s.retention)
	if _, err := multi.Exec(ctx); err != nil {
		return 0, err
	}
	return int(card.Val()), nil
}

func (s *RedisWindowStore) Clear(ctx context.Context, sender string) error {
	return s.Client.Del(ctx, redisWindowPrefix+sender).Err()
}
