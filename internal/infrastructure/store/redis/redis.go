// Package redis provides a Redis-backed ports.KeyValueStore for headless or
// multi-process deployments where the session must outlive any one process.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 5 * time.Second
	keyPrefix      = "session:"
)

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Store holds session slots under "session:<slot>" keys. Per the
// ports.KeyValueStore contract all Redis failures are logged and absorbed:
// reads report absent, writes are dropped.
type Store struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewStore(client *redis.Client, log zerolog.Logger) *Store {
	return &Store{client: client, log: log}
}

func (s *Store) Get(key string) (string, bool) {
	ctx, cancel := opContext()
	defer cancel()
	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		s.log.Warn().Err(err).Str("slot", key).Msg("redis read failed, treating as absent")
		return "", false
	}
	return val, true
}

func (s *Store) Set(key, value string) {
	ctx, cancel := opContext()
	defer cancel()
	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("slot", key).Msg("redis write failed, value dropped")
	}
}

func (s *Store) Delete(key string) {
	ctx, cancel := opContext()
	defer cancel()
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		s.log.Warn().Err(err).Str("slot", key).Msg("redis delete failed")
	}
}

func (s *Store) Clear() {
	ctx, cancel := opContext()
	defer cancel()
	keys, err := s.client.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("redis key scan failed, clear skipped")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Msg("redis clear failed")
	}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultTimeout)
}
