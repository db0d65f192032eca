package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedVideoRepository remembers positive existence checks in Redis.
// Misses are never cached so a freshly published video is visible at once.
type CachedVideoRepository struct {
	next   VideoRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedVideoRepository wraps next. A nil client turns the cache off.
func NewCachedVideoRepository(next VideoRepository, client *redis.Client, ttl time.Duration) *CachedVideoRepository {
	return &CachedVideoRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
}

// redisOptions parses a redis:// or rediss:// URL, keeping its credentials,
// DB index and TLS setting. A non-empty password overrides the URL's.
func redisOptions(rawURL, password string) (*redis.Options, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	return opts, nil
}

// NewRedisClient connects and pings, mirroring the TCP progress store setup.
func NewRedisClient(rawURL, password string) (*redis.Client, error) {
	opts, err := redisOptions(rawURL, password)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

func videoExistsKey(videoID string) string {
	return fmt.Sprintf("video:exists:%s", videoID)
}

func (r *CachedVideoRepository) Exists(ctx context.Context, videoID string) (bool, error) {
	if r.client == nil {
		return r.next.Exists(ctx, videoID)
	}

	key := videoExistsKey(videoID)
	hit, err := r.client.Exists(ctx, key).Result()
	if err == nil && hit > 0 {
		return true, nil
	}
	if err != nil {
		// Redis is an optimisation only; fall through to the database.
		r.logger.Warn("video_cache_read_failed", "video_id", videoID, "error", err)
	}

	exists, err := r.next.Exists(ctx, videoID)
	if err != nil || !exists {
		return exists, err
	}

	if err := r.client.Set(ctx, key, 1, r.ttl).Err(); err != nil {
		r.logger.Warn("video_cache_write_failed", "video_id", videoID, "error", err)
	}
	return true, nil
}
