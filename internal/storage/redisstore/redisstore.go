// Package redisstore implements storage.Store on top of Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jacksmith/trips/internal/storage"
)

// Store keeps each key as a plain Redis string.
type Store struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// New creates a Store. Every key is stored as prefix+key.
func New(client *redis.Client, prefix string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, prefix: prefix, logger: logger}
}

// Dial connects to Redis using cfg and verifies the connection.
func Dial(ctx context.Context, cfg storage.RedisConfig, logger *slog.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return New(client, cfg.Prefix, logger), nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Shutdown closes the client. It lets the store be released by a DI container.
func (s *Store) Shutdown() error {
	return s.Close()
}

// Read implements storage.Store.
func (s *Store) Read(ctx context.Context, key string) (string, bool) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("failed to read key", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

// Write implements storage.Store. Values never expire.
func (s *Store) Write(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete implements storage.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
