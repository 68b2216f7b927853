package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	shopcli "github.com/namanpradyumn/Online-Shopping-Cart/internal/cli"
	"github.com/namanpradyumn/Online-Shopping-Cart/internal/repository"
	"github.com/namanpradyumn/Online-Shopping-Cart/internal/service"
	"github.com/namanpradyumn/Online-Shopping-Cart/pkg/config"
	"github.com/namanpradyumn/Online-Shopping-Cart/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	cmd := &cli.Command{
		Name:   "shopcart",
		Usage:  "interactive shopping cart with persistent catalog and cart",
		Flags:  config.Flags(),
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return err
	}

	lg, err := logger.New(logger.Options{Service: "shopcart", Level: cfg.LogLevel, Output: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer lg.Sync()

	repo, err := openRepository(ctx, cfg, lg)
	if err != nil {
		lg.Error("open repository failed", zap.String("store", cfg.Store), zap.Error(err))
		return err
	}
	defer repo.Close()

	svc := service.NewCartService(repo, lg)
	if err := svc.Load(ctx); err != nil {
		lg.Error("load state failed", zap.Error(err))
		return err
	}

	menu := shopcli.NewMenu(svc, os.Stdin, os.Stdout, cfg.Currency)

	done := make(chan error, 1)
	go func() {
		done <- menu.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// stdin read cannot be interrupted; state is already persisted
		fmt.Println("\nExiting due to user interruption. Goodbye!")
		lg.Info("interrupted")
		return nil
	}
}

func openRepository(ctx context.Context, cfg config.Config, lg *zap.Logger) (repository.Repository, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		repo, err := repository.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := repo.RunMigrations(); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		lg.Info("using sqlite store", zap.String("path", cfg.SQLitePath))
		return repo, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		lg.Info("using redis store", zap.String("addr", cfg.RedisAddr), zap.String("prefix", cfg.RedisPrefix))
		return repository.NewRedisRepository(client, cfg.RedisPrefix), nil

	default:
		repo, err := repository.NewFileRepository(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		lg.Info("using file store", zap.String("dir", cfg.DataDir))
		return repo, nil
	}
}
