package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/casebase/internal/knowledge"
	"github.com/MikeSquared-Agency/casebase/internal/library"
	"github.com/MikeSquared-Agency/casebase/internal/store"
)

var (
	queryCaseType   string
	queryDifficulty string
	queryIndustry   string
	queryTags       []string
	queryMinQuality float64
	queryLimit      int
	queryJSON       bool
	querySnapshotID string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the case library and knowledge snapshots",
}

var queryFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Pick a random case matching the filters",
	Args:  cobra.NoArgs,
	RunE:  runQueryFind,
}

var queryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases matching the filters, best first",
	Args:  cobra.NoArgs,
	RunE:  runQueryList,
}

var querySearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search case titles, tags and industries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuerySearch,
}

var queryCaseCmd = &cobra.Command{
	Use:   "case <case-id>",
	Short: "Print one case with resolved asset paths",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryCase,
}

var queryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print library and knowledge base statistics",
	Args:  cobra.NoArgs,
	RunE:  runQueryStats,
}

var querySnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print an archived knowledge base build",
	Args:  cobra.NoArgs,
	RunE:  runQuerySnapshot,
}

func init() {
	for _, c := range []*cobra.Command{queryFindCmd, queryListCmd} {
		c.Flags().StringVar(&queryCaseType, "type", "", "case type")
		c.Flags().StringVar(&queryDifficulty, "difficulty", "", "difficulty")
		c.Flags().StringVar(&queryIndustry, "industry", "", "industry")
		c.Flags().Float64Var(&queryMinQuality, "min-quality", 0, "minimum quality score")
	}
	queryFindCmd.Flags().StringSliceVar(&queryTags, "tags", nil, "tags that must all be present")
	queryListCmd.Flags().IntVar(&queryLimit, "limit", 0, "maximum results (default 100)")
	queryListCmd.Flags().BoolVar(&queryJSON, "json", false, "print JSON")
	querySearchCmd.Flags().IntVar(&queryLimit, "limit", 0, "maximum results (default 10)")
	querySearchCmd.Flags().BoolVar(&queryJSON, "json", false, "print JSON")
	querySnapshotCmd.Flags().StringVar(&querySnapshotID, "id", "", "build id (default latest)")

	queryCmd.AddCommand(queryFindCmd, queryListCmd, querySearchCmd, queryCaseCmd, queryStatsCmd, querySnapshotCmd)
}

func criteriaFromFlags() library.Criteria {
	return library.Criteria{
		CaseType:   queryCaseType,
		Difficulty: queryDifficulty,
		Industry:   queryIndustry,
		Tags:       queryTags,
		MinQuality: queryMinQuality,
	}
}

func openLibrary() *library.CaseLibrary {
	return library.New(cfg.LibraryDir, slog.Default())
}

func runQueryFind(cmd *cobra.Command, args []string) error {
	c, err := openLibrary().FindCase(criteriaFromFlags())
	if err != nil {
		return fmt.Errorf("find case: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), c)
}

func runQueryList(cmd *cobra.Command, args []string) error {
	c := criteriaFromFlags()
	c.Tags = nil
	return printListings(cmd, openLibrary().ListCases(c, queryLimit))
}

func runQuerySearch(cmd *cobra.Command, args []string) error {
	return printListings(cmd, openLibrary().SearchCases(strings.Join(args, " "), queryLimit))
}

func runQueryCase(cmd *cobra.Command, args []string) error {
	c, err := openLibrary().LoadCase(args[0])
	if err != nil {
		return fmt.Errorf("load case: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), c)
}

func runQueryStats(cmd *cobra.Command, args []string) error {
	out := map[string]any{
		"library":   openLibrary().Statistics(),
		"knowledge": nil,
	}
	kb, err := knowledge.Load(cfg.KnowledgePath)
	if err == nil {
		out["knowledge"] = knowledge.Summarize(kb)
	} else {
		slog.Warn("knowledge base unavailable", "error", err)
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func runQuerySnapshot(cmd *cobra.Command, args []string) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for snapshots")
	}
	ctx := context.Background()

	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	var kb *knowledge.KnowledgeBase
	if querySnapshotID != "" {
		id, perr := uuid.Parse(querySnapshotID)
		if perr != nil {
			return fmt.Errorf("parse build id: %w", perr)
		}
		kb, err = db.GetSnapshot(ctx, id)
	} else {
		kb, err = db.LatestSnapshot(ctx)
	}
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), knowledge.Summarize(kb))
}

func printListings(cmd *cobra.Command, listings []library.Listing) error {
	if queryJSON {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"cases": listings,
			"total": len(listings),
		})
	}

	if len(listings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cases found.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tTYPE\tDIFFICULTY\tINDUSTRY\tQUALITY\tTITLE")
	for _, l := range listings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%s\n", l.CaseID, l.CaseType, l.Difficulty, l.Industry, l.QualityScore, l.Title)
	}
	return w.Flush()
}
