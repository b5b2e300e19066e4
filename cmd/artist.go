package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/pkg/genius"
)

var artistCmd = &cobra.Command{
	Use:   "artist <artist-id>",
	Short: "Show an artist and their songs",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtist,
}

func init() {
	rootCmd.AddCommand(artistCmd)

	artistCmd.Flags().Bool("songs", false, "List the artist's songs")
	artistCmd.Flags().String("sort", genius.SortPopularity, "Song order (title or popularity)")
	artistCmd.Flags().Int("page", 1, "Song page to show")
	artistCmd.Flags().Int("per-page", 20, fmt.Sprintf("Songs per page (max %d)", genius.MaxPerPage))
}

func runArtist(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid artist id %q", args[0])
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

	artist, err := client.Artists().Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get artist: %w", err)
	}
	printArtist(cmd.OutOrStdout(), artist)

	if listSongs, _ := cmd.Flags().GetBool("songs"); !listSongs {
		return nil
	}

	opts := genius.SongsOptions{}
	opts.Sort, _ = cmd.Flags().GetString("sort")
	opts.Page, _ = cmd.Flags().GetInt("page")
	opts.PerPage, _ = cmd.Flags().GetInt("per-page")

	page, err := client.Artists().Songs(ctx, id, opts)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout())
	printSongTable(&table{w: cmd.OutOrStdout(), widths: []int{9, 40, 24, 0}}, page.Songs)
	if page.NextPage != 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nMore songs: --page %d\n", page.NextPage)
	}
	return nil
}

func printArtist(w io.Writer, a *genius.Artist) {
	name := a.Name
	if a.IsVerified {
		name += " ✓"
	}
	fmt.Fprintln(w, name)
	if len(a.AlternateNames) > 0 {
		fmt.Fprintf(w, "Also known as: %s\n", strings.Join(a.AlternateNames, ", "))
	}
	fmt.Fprintf(w, "Followers: %d\n", a.FollowersCount)
	fmt.Fprintf(w, "URL: %s\n", a.URL)
	if a.Description.Plain != "" && a.Description.Plain != "?" {
		fmt.Fprintf(w, "\n%s\n", a.Description.Plain)
	}
}
