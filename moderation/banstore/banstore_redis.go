package banstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisBanPrefix string = "ban/"

type RedisBanStore struct {
	Client *redis.Client
}

func NewRedisBanStore(redisURL string) (*RedisBanStore, error) {
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
	rbs := RedisBanStore{
		Client: rdb,
	}
	return &rbs, nil
}

func (s *RedisBanStore) Get(ctx context.Context, sender string) (time.Time, bool, error) {
	v, err := s.Client.Get(ctx, redisBanPrefix+sender).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	} else if err != nil {
		return time.Time{}, false, err
	}
	unix, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(unix, 0), true, nil
}

func (s *RedisBanStore) Set(ctx context.Context, sender string, until time.Time) error {
	key := redisBanPrefix + sender
	// keep the key around a bit past expiry so lazy removal still sees it
	multi := s.Client.Pipeline()
	multi.Set(ctx, key, strconv.FormatInt(until.Unix(), 10), 0)
	multi.ExpireAt(ctx, key, until.Add(24*time.Hour))
	_, err := multi.Exec(ctx)
	return err
}

func (s *RedisBanStore) Remove(ctx context.Context, sender string) error {
	return s.Client.Del(ctx, redisBanPrefix+sender).Err()
}
