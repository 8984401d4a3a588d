package dupestore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisDupePrefix string = "dupe/"

type RedisDupeStore struct {
	Client *redis.Client
	ttl    time.Duration
}

func NewRedisDupeStore(redisURL string, ttl time.Duration) (*RedisDupeStore, error) {
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
	rds := RedisDupeStore{
		Client: rdb,
		ttl:    ttl,
	}
	return &rds, nil
}

func (s *RedisDupeStore) Senders(ctx context.Context, text string) ([]string, error) {
	v, err := s.Client.SMembers(ctx, redisDupePrefix+textKey(text)).Result()
	if err == redis.Nil {
		return []string{}, nil
	} else if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *RedisDupeStore) Add(ctx context.Context, text, sender string) error {
	key := redisDupePrefix + textKey(text)
	multi := s.Client.Pipeline()
	multi.SAdd(ctx, key, sender)
	multi.Expire(ctx, key, s.ttl)
	_, err := multi.Exec(ctx)
	return err
}

func (s *RedisDupeStore) Clear(ctx context.Context, text string) error {
	return s.Client.Del(ctx, redisDupePrefix+textKey(text)).Err()
}
