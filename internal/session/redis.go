package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/daoleviethoang/friendly-frontend/internal/config"
)

// Fixed keys, kept stable so credentials survive process restarts.
const (
	accessTokenKey  = "doran-access-token"
	refreshTokenKey = "doran-refresh-token"
)

type RedisStore struct {
	client *redis.Client
}

func InitRedis(ctx context.Context, cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("session: redis ping failed: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Credentials(ctx context.Context) (Credentials, error) {
	values, err := s.client.MGet(ctx, accessTokenKey, refreshTokenKey).Result()
	if err != nil {
		return Credentials{}, fmt.Errorf("session: mget failed: %w", err)
	}

	creds := Credentials{}
	if access, ok := values[0].(string); ok {
		creds.AccessToken = access
	}
	if refresh, ok := values[1].(string); ok {
		creds.RefreshToken = refresh
	}

	if creds.AccessToken == "" {
		return Credentials{}, ErrNoSession
	}
	return creds, nil
}

func (s *RedisStore) SetCredentials(ctx context.Context, creds Credentials) error {
	if err := s.client.MSet(ctx,
		accessTokenKey, creds.AccessToken,
		refreshTokenKey, creds.RefreshToken,
	).Err(); err != nil {
		return fmt.Errorf("session: mset failed: %w", err)
	}
	return nil
}

func (s *RedisStore) UpdateAccessToken(ctx context.Context, accessToken string) error {
	if err := s.client.Set(ctx, accessTokenKey, accessToken, 0).Err(); err != nil {
		return fmt.Errorf("session: set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, accessTokenKey, refreshTokenKey).Err(); err != nil {
		return fmt.Errorf("session: del failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
