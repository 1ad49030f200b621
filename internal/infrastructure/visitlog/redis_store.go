package visitlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopfront/backend/internal/domain/shop"
)

const defaultRedisKey = "shop:visits"

// RedisStore is a Redis-backed visit log for deployments where
// multiple instances share one log. Entries live in a list trimmed to
// the bound on every append.
type RedisStore struct {
	client     *redis.Client
	key        string
	maxEntries int
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisStore creates a new Redis-backed visit log store.
func NewRedisStore(cfg RedisConfig, maxEntries int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, defaultRedisKey, maxEntries), nil
}

// NewRedisStoreWithClient creates a store with an existing Redis
// client. Useful for testing or when sharing a client.
func NewRedisStoreWithClient(client *redis.Client, key string, maxEntries int) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &RedisStore{
		client:     client,
		key:        key,
		maxEntries: maxEntries,
	}
}

// Append records a visit with LPUSH and trims the list to the bound.
func (s *RedisStore) Append(ctx context.Context, entry shop.VisitEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal visit entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, data)
	pipe.LTrim(ctx, s.key, 0, int64(s.maxEntries-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append visit entry: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *RedisStore) Recent(ctx context.Context, n int) ([]shop.VisitEntry, error) {
	stop := int64(n - 1)
	if n <= 0 {
		stop = int64(s.maxEntries - 1)
	}

	raw, err := s.client.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read visit entries: %w", err)
	}

	entries := make([]shop.VisitEntry, 0, len(raw))
	for _, item := range raw {
		var entry shop.VisitEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// Skip entries written by incompatible versions.
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Len returns the number of retained entries.
func (s *RedisStore) Len(ctx context.Context) (int, error) {
	count, err := s.client.LLen(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("count visit entries: %w", err)
	}
	return int(count), nil
}
