package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/caseworks/user-portal/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting user portal",
		"addr", cfg.HTTP.Addr,
		"user_service", cfg.UserService.BaseURL,
		"dev", cfg.IsDev)

	directory, err := bootstrap.NewUserAPIClient(cfg.UserService, logger)
	if err != nil {
		return err
	}

	redisClient, err := bootstrap.ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	services := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		Directory:   directory,
		RedisClient: redisClient,
		Logger:      logger,
	})

	return bootstrap.Run(ctx, &bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}
