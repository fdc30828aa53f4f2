package redis

import (
	"context"
	"time"

	"github.com/readbacklabs/readback-web/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Service wraps the Redis client used for third-party session persistence.
type Service struct {
	client *redis.Client
}

// NewService connects to Redis. Returns nil when no URL is configured or the
// connection cannot be established; callers fall back to in-memory storage.
func NewService(cfg config.RedisConfig) *Service {
	if cfg.URL == "" {
		log.Warn().Msg("Redis URL not configured - session storage will be in-memory")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Error().
			Err(err).
			Str("addr", cfg.URL).
			Msg("Failed to establish Redis connection")
		return nil
	}

	return &Service{client: client}
}

// Set stores a value with an expiration
func (s *Service) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := s.client.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Dur("expiration", expiration).
			Msg("Redis SET operation failed")
		return err
	}
	return nil
}

// Get retrieves a value; returns an empty string with a nil error when the
// key does not exist.
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Msg("Redis GET operation failed")
		return "", err
	}
	return val, nil
}

// Delete removes a key
func (s *Service) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Ping checks if Redis is accessible
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Service) Close() error {
	return s.client.Close()
}
