package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/pkg/genius"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search Genius for songs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "n", 10, "Maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := requireToken(cfg); err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	songs, err := client.Search().Songs(context.Background(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(songs) > limit {
		songs = songs[:limit]
	}

	if len(songs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No songs found")
		return nil
	}

	printSongTable(&table{w: cmd.OutOrStdout(), widths: []int{9, 40, 24, 0}}, songs)
	return nil
}

// printSongTable writes one row per song with a header
func printSongTable(t *table, songs []genius.Song) {
	t.row("ID", "TITLE", "ARTIST", "URL")
	for _, s := range songs {
		t.row(strconv.Itoa(s.ID), s.Title, s.ArtistName(), s.URL)
	}
}
