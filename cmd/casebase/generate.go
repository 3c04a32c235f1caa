package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/casebase/internal/anthropic"
	"github.com/MikeSquared-Agency/casebase/internal/generator"
	"github.com/MikeSquared-Agency/casebase/internal/knowledge"
)

var genRequest generator.Request

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new case from the knowledge base",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genRequest.CaseType, "type", "profitability", "case type")
	generateCmd.Flags().StringVar(&genRequest.Difficulty, "difficulty", generator.DifficultyMedium, "easy, medium or hard")
	generateCmd.Flags().StringVar(&genRequest.Industry, "industry", "", "industry (default random from the knowledge base)")
	generateCmd.Flags().StringVar(&genRequest.FirmStyle, "firm", "", "firm style, e.g. McKinsey, BCG, Bain")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if cfg.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required for generation")
	}
	kb, err := knowledge.Load(cfg.KnowledgePath)
	if err != nil {
		return err
	}

	gen := generator.New(anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), cfg.GeneratedDir, slog.Default())
	c, err := gen.Generate(cmd.Context(), kb, genRequest)
	if err != nil {
		return err
	}
	path, err := gen.Save(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s to %s\n", c.ID(), path)
	return nil
}
