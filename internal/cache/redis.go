package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cached page payloads. Mutations invalidate these so the next render
// re-fetches fresh data.
const (
	PageHome  = "page:home"
	PageAdmin = "page:admin"
)

const pageTTL = 5 * time.Minute

type Client struct {
	rdb *redis.Client
}

type Config struct {
	Addr     string
	Password string
}

func New(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetPageRaw returns the cached JSON payload for a page, or an error on miss.
// Raw bytes are served directly to avoid an unmarshal/marshal round trip.
func (c *Client) GetPageRaw(ctx context.Context, page string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, page).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("cache miss for %s", page)
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

// SetPage stores a page payload. Failures are logged, never surfaced.
func (c *Client) SetPage(ctx context.Context, page string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal page payload for cache", "page", page, "error", err)
		return
	}

	if err := c.rdb.Set(ctx, page, data, pageTTL).Err(); err != nil {
		slog.Error("Failed to cache page payload", "page", page, "error", err)
	}
}

// Invalidate marks pages stale after a mutation. Fire-and-forget.
func (c *Client) Invalidate(ctx context.Context, pages ...string) {
	if err := c.rdb.Del(ctx, pages...).Err(); err != nil {
		slog.Error("Failed to invalidate cached pages", "pages", pages, "error", err)
	}
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
