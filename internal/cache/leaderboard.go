// Package cache provides a Redis read cache for leaderboard queries. The
// cache is an optimization only: every error degrades to a store read.
package cache

import (
	"context"
	"fmt"
	"time"

	"treasure_hunter_bot/internal/model"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	TTL      time.Duration
}

type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(cfg Config) (*LeaderboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &LeaderboardCache{client: client, ttl: ttl}, nil
}

func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}

func key(period model.LeaderboardPeriod, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d", period, limit)
}

// Get returns the cached entries, or (nil, nil) on a miss.
func (c *LeaderboardCache) Get(ctx context.Context, period model.LeaderboardPeriod, limit int) ([]model.LeaderboardEntry, error) {
	raw, err := c.client.Get(ctx, key(period, limit)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, period model.LeaderboardPeriod, limit int, entries []model.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key(period, limit), raw, c.ttl).Err()
}
