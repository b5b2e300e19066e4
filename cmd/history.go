package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent lyrics fetches",
	Long: `Show the local log of lyrics fetch attempts, newest first.

The log only records what was fetched and whether it worked. It is kept
in history.db next to the config file unless history.db is set.`,
	RunE: runHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old history entries",
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of entries (0 for all)")
	historyCmd.Flags().Bool("failed", false, "Only show failed fetches")

	historyPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete entries older than this")
}

func openHistoryStrict() (*history.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled (history.enabled: false)")
	}
	store, err := history.Open(cfg.History.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openHistoryStrict()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	limit, _ := cmd.Flags().GetInt("limit")
	onlyFailed, _ := cmd.Flags().GetBool("failed")

	entries, err := store.Recent(ctx, limit, onlyFailed)
	if err != nil {
		return err
	}
	counts, err := store.Count(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	t := &table{w: out, widths: []int{16, 9, 36, 0}}
	t.row("WHEN", "STATUS", "SONG", "URL")
	for _, e := range entries {
		t.row(e.FetchedAt.Local().Format("2006-01-02 15:04"), string(e.Status), entryTitle(e), e.URL)
	}

	fmt.Fprintf(out, "\n%s\n", summarizeCounts(counts))
	return nil
}

func entryTitle(e history.Entry) string {
	switch {
	case e.Title != "" && e.Artist != "":
		return e.Artist + " - " + e.Title
	case e.Title != "":
		return e.Title
	default:
		return "-"
	}
}

// summarizeCounts renders per-status totals in a fixed order
func summarizeCounts(counts map[history.Status]int) string {
	total := 0
	var parts []string
	for _, s := range []history.Status{
		history.StatusOK,
		history.StatusNoResult,
		history.StatusDenied,
		history.StatusInvalid,
		history.StatusFailed,
	} {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", s, n))
			total += n
		}
	}
	if total == 0 {
		return "No fetches recorded"
	}
	return fmt.Sprintf("%d fetches: %s", total, strings.Join(parts, ", "))
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStrict()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	olderThan, _ := cmd.Flags().GetDuration("older-than")
	deleted, err := store.Prune(context.Background(), olderThan)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries older than %s\n", deleted, olderThan)
	return nil
}
