package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/internal/match"
	"github.com/jfmyers9/verses/pkg/genius"
)

var findCmd = &cobra.Command{
	Use:   "find <artist> <title>",
	Short: "Search for a song and print its lyrics",
	Long: `Search Genius for a song by artist and title, pick the closest match
and print its lyrics.

Titles are compared after removing accents, punctuation, featured
artists and suffixes such as "- Remastered", so player metadata can be
passed as-is.`,
	Args: cobra.ExactArgs(2),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	addStripHeadersFlag(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := requireToken(cfg); err != nil {
		return err
	}

	strip, err := stripHeadersFlag(cmd, cfg)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	return findAndPrint(ctx, cmd, cfg, client, args[0], args[1], strip)
}

// findAndPrint resolves artist and title to a song, prints its lyrics and
// records the attempt
func findAndPrint(ctx context.Context, cmd *cobra.Command, cfg *config.Config, client *genius.Client, artist, title string, strip bool) error {
	song, err := findSong(ctx, client, artist, title)
	if err != nil {
		return err
	}

	r := fetchOne(ctx, client, songRef{Raw: song.URL, URL: song.URL}, strip)
	r.Song = song

	if store := openHistory(cfg); store != nil {
		recordFetch(ctx, store, r)
		_ = store.Close()
	}

	if r.Err != nil {
		return fmt.Errorf("%s: %s", song.FullTitle, describeFetchError(r.Err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n%s\n", song.FullTitle, r.Lyrics)
	return nil
}

// findSong searches for artist and title and returns the best scoring hit
func findSong(ctx context.Context, client *genius.Client, artist, title string) (*genius.Song, error) {
	query := strings.TrimSpace(artist + " " + match.NormalizeTitle(title))

	songs, err := client.Search().Songs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	best, score, ok := match.BestMatch(songs, artist, title)
	if !ok {
		return nil, fmt.Errorf("no song matching %q by %q among %d results", title, artist, len(songs))
	}

	logger.Debug().
		Int("song_id", best.ID).
		Str("full_title", best.FullTitle).
		Float64("score", score).
		Msg("Matched search result")

	return &best, nil
}
