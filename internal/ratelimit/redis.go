package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "store_rating:ratelimit:"

// Redis allows limit requests per key in each fixed window.
type Redis struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &Redis{
		client: client,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// NewRedisFromRate sizes the window so burst requests per window match the
// sustained rate of the in-process limiter.
func NewRedisFromRate(client *redis.Client, rps float64, burst int) *Redis {
	if rps <= 0 || burst < 1 {
		return NewRedis(client, burst, time.Second)
	}
	window := time.Duration(math.Ceil(float64(burst)/rps*1000)) * time.Millisecond
	return NewRedis(client, burst, window)
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	bucket := r.now().UnixNano() / int64(r.window)
	k := fmt.Sprintf("%s%s:%d", keyPrefix, key, bucket)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}

	return incr.Val() <= r.limit, nil
}

// Close releases the client's connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Connect parses url, pings the server and returns the client.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
