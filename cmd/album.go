package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
)

var albumCmd = &cobra.Command{
	Use:   "album <album-id>",
	Short: "Show an album and its track listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbum,
}

func init() {
	rootCmd.AddCommand(albumCmd)

	albumCmd.Flags().Bool("tracks", false, "List the album's tracks")
}

func runAlbum(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid album id %q", args[0])
	}

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

	album, err := client.Albums().Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get album: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, album.FullTitle)
	if album.ReleaseDateForDisplay != "" {
		fmt.Fprintf(out, "Released: %s\n", album.ReleaseDateForDisplay)
	}
	fmt.Fprintf(out, "URL: %s\n", album.URL)

	if listTracks, _ := cmd.Flags().GetBool("tracks"); !listTracks {
		return nil
	}

	tracks, err := client.Albums().Tracks(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	fmt.Fprintln(out)
	t := &table{w: out, widths: []int{3, 9, 0}}
	for _, tr := range tracks {
		number := ""
		if tr.Number > 0 {
			number = strconv.Itoa(tr.Number)
		}
		t.row(number, strconv.Itoa(tr.Song.ID), tr.Song.Title)
	}
	return nil
}
