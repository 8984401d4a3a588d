package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/groupguard/bouncer/moderation/banstore"
	"github.com/groupguard/bouncer/moderation/dupestore"
	"github.com/groupguard/bouncer/moderation/engine"
	"github.com/groupguard/bouncer/moderation/rules"
	"github.com/groupguard/bouncer/moderation/setstore"
	"github.com/groupguard/bouncer/moderation/windowstore"
	"github.com/groupguard/bouncer/telegram"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// retention horizon for burst-spam activity windows
var activityRetention = 2 * time.Minute

// idle TTL for duplicate-text tracking entries
var dupeTrackingTTL = 48 * time.Hour

type Server struct {
	logger *slog.Logger
	engine *engine.Engine
	poller *telegram.Poller
	rdb    *redis.Client
}

type Config struct {
	TelegramHost      string
	TelegramToken     string
	TelegramRateLimit int
	SetsFileJSON      string
	RedisURL          string
	Logger            *slog.Logger
}

func NewServer(config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	sets := setstore.NewMemSetStore()
	if config.SetsFileJSON != "" {
		if err := sets.LoadFromFileJSON(config.SetsFileJSON); err != nil {
			return nil, fmt.Errorf("initializing in-process setstore: %v", err)
		} else {
			logger.Info("loaded set config from JSON", "path", config.SetsFileJSON)
		}
	}

	var windows windowstore.WindowStore
	var bans banstore.BanStore
	var dupes dupestore.DupeStore
	var rdb *redis.Client
	if config.RedisURL != "" {
		// generic client, for cursor state
		opt, err := redis.ParseURL(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL: %v", err)
		}
		rdb = redis.NewClient(opt)
		// check redis connection
		_, err = rdb.Ping(context.TODO()).Result()
		if err != nil {
			return nil, fmt.Errorf("redis ping failed: %v", err)
		}

		wnd, err := windowstore.NewRedisWindowStore(config.RedisURL, activityRetention)
		if err != nil {
			return nil, fmt.Errorf("initializing redis windowstore: %v", err)
		}
		windows = wnd

		bns, err := banstore.NewRedisBanStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis banstore: %v", err)
		}
		bans = bns

		dps, err := dupestore.NewRedisDupeStore(config.RedisURL, dupeTrackingTTL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis dupestore: %v", err)
		}
		dupes = dps
	} else {
		windows = windowstore.NewMemWindowStore(activityRetention)
		bans = banstore.NewMemBanStore()
		dupes = dupestore.NewMemDupeStore(10_000, dupeTrackingTTL)
	}

	client := telegram.NewClient(config.TelegramToken, logger)
	if config.TelegramHost != "" {
		client.Host = config.TelegramHost
	}
	if config.TelegramRateLimit > 0 {
		client.Limiter = rate.NewLimiter(rate.Limit(config.TelegramRateLimit), 5)
	}

	eng := &engine.Engine{
		Logger:  logger,
		Rules:   rules.DefaultRules(),
		Gateway: client,
		Windows: windows,
		Bans:    bans,
		Dupes:   dupes,
		Sets:    sets,
	}

	s := &Server{
		logger: logger,
		engine: eng,
		rdb:    rdb,
	}
	s.poller = &telegram.Poller{
		Client:  client,
		Logger:  logger,
		Handler: s.handleMessage,
	}

	return s, nil
}

func (s *Server) handleMessage(ctx context.Context, msg engine.Message) {
	ctx, span := tracer.Start(ctx, "HandleMessage")
	defer span.End()

	messagesReceived.Inc()
	if err := s.engine.ProcessMessage(ctx, msg); err != nil {
		messagesFailed.Inc()
		s.logger.Error("failed to process message", "err", err, "chat", msg.ChatID, "message", msg.MessageID)
	}
}

func (s *Server) Run(ctx context.Context) error {
	cur, err := s.ReadLastOffset(ctx)
	if err != nil {
		return fmt.Errorf("get last offset: %w", err)
	}
	s.poller.SetOffset(cur)

	go func() {
		if err := s.RunPersistOffset(ctx); err != nil {
			s.logger.Error("offset persist loop failed", "err", err)
		}
	}()

	return s.poller.Run(ctx)
}

func (s *Server) RunMetrics(listen string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, nil)
}

var offsetKey = "bouncer/offset"

func (s *Server) ReadLastOffset(ctx context.Context) (int64, error) {
	// if redis isn't configured, just skip
	if s.rdb == nil {
		s.logger.Info("redis not configured, skipping offset read")
		return 0, nil
	}

	val, err := s.rdb.Get(ctx, offsetKey).Int64()
	if err == redis.Nil {
		s.logger.Info("no pre-existing update offset in redis")
		return 0, nil
	}
	s.logger.Info("successfully found prior update offset in redis", "offset", val)
	return val, err
}

func (s *Server) PersistOffset(ctx context.Context) error {
	// if redis isn't configured, just skip
	if s.rdb == nil {
		return nil
	}
	cur := s.poller.LastOffset()
	if cur <= 0 {
		return nil
	}
	currentOffset.Set(float64(cur))
	return s.rdb.Set(ctx, offsetKey, cur, 14*24*time.Hour).Err()
}

// this method runs in a loop, persisting the current offset every 5 seconds
func (s *Server) RunPersistOffset(ctx context.Context) error {

	// if redis isn't configured, just skip
	if s.rdb == nil {
		return nil
	}
	ticker := time.NewTicker(5 * time.Second)
	for {
		select {
		case <-ctx.Done():
			if s.poller.LastOffset() >= 1 {
				s.logger.Info("persisting final update offset", "offset", s.poller.LastOffset())
				if err := s.PersistOffset(context.Background()); err != nil {
					s.logger.Error("failed to persist offset", "err", err, "offset", s.poller.LastOffset())
				}
			}
			return nil
		case <-ticker.C:
			if err := s.PersistOffset(ctx); err != nil {
				s.logger.Error("failed to persist offset", "err", err, "offset", s.poller.LastOffset())
			}
		}
	}
}
