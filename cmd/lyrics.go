package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/pkg/genius"
)

var lyricsCmd = &cobra.Command{
	Use:   "lyrics <url|song-id>...",
	Short: "Print the lyrics of one or more songs",
	Long: `Fetch lyrics from Genius song pages.

Each argument is either a song page URL, which needs no access token, or
a numeric Genius song ID, which is resolved through the API first.

Several songs are fetched in parallel (see --parallel). Genius answers
automated traffic with HTTP 403, so keep the number of requests low.

Exit codes:
  0 - All lyrics were printed
  1 - At least one fetch failed`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLyrics,
}

func init() {
	rootCmd.AddCommand(lyricsCmd)

	addStripHeadersFlag(lyricsCmd)
	lyricsCmd.Flags().IntP("parallel", "p", 0, "Maximum concurrent fetches (overrides config)")
	lyricsCmd.Flags().Bool("no-history", false, "Do not record this fetch in the history log")
}

// addStripHeadersFlag registers --strip-headers. A bare flag means true.
func addStripHeadersFlag(cmd *cobra.Command) {
	cmd.Flags().String("strip-headers", "", "Remove section markers such as [Chorus] (true/false, overrides config)")
	cmd.Flags().Lookup("strip-headers").NoOptDefVal = "true"
}

func stripHeadersFlag(cmd *cobra.Command, cfg *config.Config) (bool, error) {
	value, _ := cmd.Flags().GetString("strip-headers")
	return resolveStripHeaders(cmd.Flags().Changed("strip-headers"), value, cfg)
}

func runLyrics(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	strip, err := stripHeadersFlag(cmd, cfg)
	if err != nil {
		return err
	}

	parallel, _ := cmd.Flags().GetInt("parallel")
	if parallel <= 0 {
		parallel = cfg.Parallel
	}

	refs := make([]songRef, 0, len(args))
	for _, arg := range args {
		ref := parseSongRef(arg)
		if ref.ID != 0 {
			if err := requireToken(cfg); err != nil {
				return err
			}
		}
		refs = append(refs, ref)
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	results := fetchAll(ctx, client, refs, strip, parallel)

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		if store := openHistory(cfg); store != nil {
			defer func() { _ = store.Close() }()
			for _, r := range results {
				recordFetch(ctx, store, r)
			}
		}
	}

	failed := printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results)
	if failed > 0 {
		return fmt.Errorf("%d of %d fetches failed", failed, len(results))
	}
	return nil
}

// songRef is a lyrics argument: a Genius song ID or a page URL
type songRef struct {
	Raw string
	ID  int
	URL string
}

func parseSongRef(arg string) songRef {
	arg = strings.TrimSpace(arg)
	if id, err := strconv.Atoi(arg); err == nil && id > 0 {
		return songRef{Raw: arg, ID: id}
	}
	return songRef{Raw: arg, URL: arg}
}

// fetchResult is the outcome of fetching one songRef
type fetchResult struct {
	Ref    string
	URL    string
	Song   *genius.Song // nil when fetched by URL
	Lyrics string
	Err    error
}

// title names the result in multi-song output
func (r fetchResult) title() string {
	if r.Song != nil && r.Song.FullTitle != "" {
		return r.Song.FullTitle
	}
	return r.Ref
}

// fetchAll fetches every ref with at most parallel requests in flight.
// Results keep the order of refs and one failure does not stop the others.
func fetchAll(ctx context.Context, client *genius.Client, refs []songRef, strip bool, parallel int) []fetchResult {
	results := make([]fetchResult, len(refs))

	var g errgroup.Group
	g.SetLimit(max(parallel, 1))
	for i, ref := range refs {
		g.Go(func() error {
			results[i] = fetchOne(ctx, client, ref, strip)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func fetchOne(ctx context.Context, client *genius.Client, ref songRef, strip bool) fetchResult {
	r := fetchResult{Ref: ref.Raw, URL: ref.URL}

	if ref.ID != 0 {
		song, err := client.Songs().Get(ctx, ref.ID)
		if err != nil {
			r.Err = fmt.Errorf("failed to look up song %d: %w", ref.ID, err)
			return r
		}
		r.Song = song
		r.URL = song.URL
	}

	logger.Debug().Str("url", r.URL).Bool("strip_headers", strip).Msg("Fetching lyrics")

	r.Lyrics, r.Err = client.Lyrics().Fetch(ctx, r.URL, strip)
	return r
}

// printResults writes lyrics to out and failures to errOut. It returns the
// number of failures.
func printResults(out, errOut io.Writer, results []fetchResult) int {
	failed := 0
	printed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(errOut, "%s: %s\n", r.Ref, describeFetchError(r.Err))
			continue
		}

		if len(results) > 1 {
			if printed > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", r.title())
		}
		fmt.Fprintln(out, r.Lyrics)
		printed++
	}
	return failed
}
