package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/app"
	"github.com/Freeeeeet/availability_api/internal/config"
)

func newServeCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := app.NewLogger(cfg.Environment, cfg.LogFile)
			defer logger.Sync()

			logger.Info("Starting availability API",
				zap.String("environment", cfg.Environment),
				zap.String("timezone", cfg.Timezone),
				zap.Bool("cache", cfg.CacheEnabled()),
				zap.Bool("notifications", cfg.NotificationsEnabled()),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server, err := app.NewServer(ctx, cfg, logger)
			if err != nil {
				logger.Error("Failed to start", zap.Error(err))
				return err
			}
			defer server.Close()

			return server.Run(ctx, shutdownTimeout)
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "Maximum time to wait for graceful shutdown")

	return cmd
}
