package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
)

var songCmd = &cobra.Command{
	Use:   "song <song-id>",
	Short: "Show song metadata",
	Long: `Look up a song by its Genius ID and print it using the output format.

The format is a Go template, configured with output_format in
~/.config/verses/config.yaml or --format. Available fields:
.ID, .Title, .FullTitle, .Artist, .Album, .Released, .URL, .Pageviews`,
	Args: cobra.ExactArgs(1),
	RunE: runSong,
}

func init() {
	rootCmd.AddCommand(songCmd)

	songCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	songCmd.Flags().BoolP("lyrics", "l", false, "Also print the lyrics")
	addStripHeadersFlag(songCmd)
}

func runSong(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid song id %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := requireToken(cfg); err != nil {
		return err
	}

	if formatFlag, _ := cmd.Flags().GetString("format"); formatFlag != "" {
		cfg.OutputFormat = formatFlag
	}
	strip, err := stripHeadersFlag(cmd, cfg)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	song, err := client.Songs().Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get song: %w", err)
	}

	output, err := formatTemplate(newSongView(song), cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)

	if withLyrics, _ := cmd.Flags().GetBool("lyrics"); !withLyrics {
		return nil
	}

	r := fetchResult{Ref: args[0], URL: song.URL, Song: song}
	r.Lyrics, r.Err = client.Songs().Lyrics(ctx, song, strip)

	if store := openHistory(cfg); store != nil {
		recordFetch(ctx, store, r)
		_ = store.Close()
	}

	if r.Err != nil {
		return fmt.Errorf("failed to get lyrics: %s", describeFetchError(r.Err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", r.Lyrics)
	return nil
}
