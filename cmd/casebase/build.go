package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/casebase/internal/builder"
	"github.com/MikeSquared-Agency/casebase/internal/hermes"
	"github.com/MikeSquared-Agency/casebase/internal/slack"
	"github.com/MikeSquared-Agency/casebase/internal/store"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the knowledge base from the extracted corpus",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.Default()
	b := builder.New(cfg.CorpusPath, cfg.KnowledgePath, logger)

	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("snapshot archive unavailable", "error", err)
		} else {
			defer db.Close()
			if err := db.EnsureSchema(ctx); err != nil {
				logger.Warn("snapshot archive unavailable", "error", err)
			} else {
				b.WithStore(db)
			}
		}
	}

	if cfg.NatsURL != "" {
		hc, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			logger.Warn("event publishing unavailable", "error", err)
		} else {
			defer hc.Close()
			defer func() {
				if err := hc.Flush(); err != nil {
					logger.Warn("failed to flush events", "error", err)
				}
			}()
			b.WithPublisher(hc)
		}
	}

	if cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
		b.WithNotifier(slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, logger))
	} else {
		logger.Debug("slack not configured, build report disabled")
	}

	_, err := b.Run(ctx)
	return err
}
