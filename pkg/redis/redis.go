package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vinimqsz/projeto-eng-software/config"
)

// ErrCacheMiss is returned when a cached value is absent.
var ErrCacheMiss = errors.New("cache miss")

// Client wraps go-redis for the token blacklist, login rate limiting and
// the current-term cache.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects and pings Redis.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// NewFromClient wraps an existing go-redis client.
func NewFromClient(rdb *goredis.Client, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// Ping reports whether Redis answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// ── Token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken stores the JWT ID until the token would have expired anyway.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether the JWT ID was revoked.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── Rate limiting ──

const rateLimitPrefix = "ratelimit:"

// CheckRateLimit records one hit for key inside a sliding window and reports
// whether the caller is still under limit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().UnixNano()
	k := rateLimitPrefix + key
	min := strconv.FormatInt(now-window.Nanoseconds(), 10)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "0", min)
	pipe.ZAdd(ctx, k, goredis.Z{Score: float64(now), Member: strconv.FormatInt(now, 10)})
	count := pipe.ZCard(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return count.Val() <= int64(limit), nil
}

// ── Current-term cache ──

const currentTermKey = "term:current"

// GetCurrentTerm returns the cached JSON of the active term.
func (c *Client) GetCurrentTerm(ctx context.Context) ([]byte, error) {
	b, err := c.rdb.Get(ctx, currentTermKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

// SetCurrentTerm caches the JSON of the active term.
func (c *Client) SetCurrentTerm(ctx context.Context, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, currentTermKey, payload, ttl).Err()
}

// InvalidateCurrentTerm drops the cached active term.
func (c *Client) InvalidateCurrentTerm(ctx context.Context) error {
	return c.rdb.Del(ctx, currentTermKey).Err()
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
