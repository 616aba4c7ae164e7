package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/shellgame-go/internal/api"
	"github.com/mcoot/shellgame-go/internal/config"
	"github.com/mcoot/shellgame-go/internal/factory"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, envFile string

	cmd := &cobra.Command{
		Use:   "shellgame-server",
		Short: "Serve the shell game API",
		Long: `shellgame-server hosts shell game sessions over a JSON API.

Settings come from an optional YAML file and .env file, and are overridden by
environment variables such as SHELLGAME_PORT, STORAGE_TYPE and SHELLGAME_SEED.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&configPath, "config", os.Getenv("SHELLGAME_CONFIG"), "Path to YAML config file (env: SHELLGAME_CONFIG)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to .env file, ignored if missing")

	return cmd
}

// serve runs the API until ctx is cancelled, then shuts down gracefully
func serve(ctx context.Context, cfg config.Config) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	// Logging is JSON to stdout at the configured level
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
		AuthConfig:  cfg.Auth(),
		Seed:        cfg.Game.Seed,
	}
	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := cfg.RedisStorage()
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		GameController:   app.GameController,
		Events:           app.Events,
		Health:           app.Storage,
		DefaultMaxRounds: cfg.Game.DefaultMaxRounds,
	})

	server := api.NewServer(router, cfg.APIServer(), logger)
	if err := server.Listen(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type),
		slog.Int("default_max_rounds", cfg.Game.DefaultMaxRounds),
		slog.Bool("seeded", cfg.Game.Seed != nil),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	if err := server.Shutdown(context.Background()); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
