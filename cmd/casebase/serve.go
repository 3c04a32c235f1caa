package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/casebase/internal/anthropic"
	"github.com/MikeSquared-Agency/casebase/internal/api"
	"github.com/MikeSquared-Agency/casebase/internal/generator"
	"github.com/MikeSquared-Agency/casebase/internal/hermes"
	"github.com/MikeSquared-Agency/casebase/internal/library"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the case library and knowledge base over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.Default()
	logger.Info("casebase starting", "port", cfg.Port, "library_dir", cfg.LibraryDir)

	opts := api.Options{
		Port:          cfg.Port,
		APIToken:      cfg.APIToken,
		Library:       library.New(cfg.LibraryDir, logger),
		KnowledgePath: cfg.KnowledgePath,
		Logger:        logger,
	}

	if cfg.AnthropicAPIKey != "" {
		llm := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		opts.Generator = generator.New(llm, cfg.GeneratedDir, logger)
		logger.Info("anthropic client ready", "model", cfg.AnthropicModel)
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set, case generation disabled")
	}

	var hc *hermes.Client
	if cfg.NatsURL != "" {
		var err error
		hc, err = hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			logger.Warn("NATS unavailable, running without events", "error", err)
			hc = nil
		} else {
			defer hc.Close()
			opts.Publisher = hc
			logger.Info("NATS connected", "url", cfg.NatsURL)
		}
	}

	srv := api.NewServer(opts)

	if hc != nil {
		if err := hc.Subscribe(hermes.SubjectLibraryUpdated, srv.HandleLibraryUpdated); err != nil {
			return err
		}
		if err := hc.Subscribe(hermes.SubjectKnowledgeRebuilt, srv.HandleKnowledgeRebuilt); err != nil {
			return err
		}
	}

	err := srv.Start(ctx)
	logger.Info("casebase stopped")
	return err
}
