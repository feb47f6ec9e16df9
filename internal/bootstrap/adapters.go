package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/caseworks/user-portal/config"
	"github.com/caseworks/user-portal/internal/adapters/userapi"
)

const redisPingTimeout = 5 * time.Second

// ConnectRedis connects the Redis client used by the session store and
// verifies the connection with a bounded ping.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil && logger != nil {
			logger.ErrorContext(ctx, "close redis after ping failure", "error", cerr)
		}
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "connected to redis", "addr", cfg.Addr, "db", cfg.DB)
	}
	return client, nil
}

// NewUserAPIClient constructs the HTTP client for the remote user service.
func NewUserAPIClient(cfg config.UserServiceConfig, logger *slog.Logger) (*userapi.Client, error) {
	client, err := userapi.NewClient(userapi.ClientOptions{
		BaseURL: cfg.BaseURL,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create user service client: %w", err)
	}
	return client, nil
}
