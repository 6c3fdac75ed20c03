// Package redis provides a core.Storage backed by a Redis server, for notes
// shared by several processes or hosts.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aretw0/scribe/pkg/core"
)

// Storage implements core.Storage on Redis string keys.
type Storage struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// Config holds the configuration for the Redis storage.
type Config struct {
	URL         string // redis://[:password@]host:port/db
	Prefix      string // Prepended to every key, e.g. "scribe:".
	DialTimeout time.Duration
	Logger      *slog.Logger
}

// Open connects to the server described by config.URL and pings it.
func Open(ctx context.Context, config Config) (*Storage, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if config.DialTimeout > 0 {
		opts.DialTimeout = config.DialTimeout
	}

	s := New(redis.NewClient(opts), config.Prefix, config.Logger)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		_ = s.client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return s, nil
}

// New wraps an existing client.
func New(client *redis.Client, prefix string, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Storage{client: client, prefix: prefix, logger: logger}
}

// Get implements core.Storage.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

// Set implements core.Storage. Values never expire.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	s.logger.Debug("writing key to redis", "key", s.prefix+key, "bytes", len(value))
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Close releases the client.
func (s *Storage) Close() error {
	return s.client.Close()
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "redis"
}

var _ core.Storage = (*Storage)(nil)
