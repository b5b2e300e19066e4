package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/internal/history"
	"github.com/jfmyers9/verses/internal/logging"
	"github.com/jfmyers9/verses/pkg/genius"
)

var errNoToken = errors.New("no Genius access token configured, run 'verses auth' or set GENIUS_ACCESS_TOKEN")

// newClient creates a Genius client from the loaded configuration
func newClient(cfg *config.Config) (*genius.Client, error) {
	client, err := genius.NewClient(genius.Config{
		AccessToken:    cfg.Genius.AccessToken,
		BaseURL:        cfg.Genius.BaseURL,
		Logger:         logging.NewAdapter(logger),
		LyricsSelector: cfg.Lyrics.Selector,
		LyricsTimeout:  cfg.Lyrics.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Genius client: %w", err)
	}
	return client, nil
}

// requireToken fails early for commands that call the API
func requireToken(cfg *config.Config) error {
	if cfg.Genius.AccessToken == "" {
		return errNoToken
	}
	return nil
}

// openHistory opens the fetch log, or returns nil when it is disabled or
// cannot be opened. A broken history never blocks a fetch.
func openHistory(cfg *config.Config) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg.History.DB)
	if err != nil {
		logger.Warn().Err(err).Str("db", cfg.History.DB).Msg("History disabled")
		return nil
	}
	return store
}

// recordFetch logs one fetch attempt to the history store
func recordFetch(ctx context.Context, store *history.Store, r fetchResult) {
	if store == nil {
		return
	}

	entry := history.Entry{
		URL:    r.URL,
		Status: history.StatusFor(r.Err),
		Chars:  utf8.RuneCountInString(r.Lyrics),
	}
	if entry.URL == "" {
		entry.URL = r.Ref
	}
	if r.Song != nil {
		entry.Title = r.Song.Title
		entry.Artist = r.Song.ArtistName()
	}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}

	if _, err := store.Record(ctx, entry); err != nil {
		logger.Warn().Err(err).Str("url", entry.URL).Msg("Failed to record fetch")
	}
}

// songView is the data available to --format templates
type songView struct {
	ID        int
	Title     string
	FullTitle string
	Artist    string
	Album     string
	Released  string
	URL       string
	Pageviews int
}

func newSongView(s *genius.Song) songView {
	v := songView{
		ID:        s.ID,
		Title:     s.Title,
		FullTitle: s.FullTitle,
		Artist:    s.ArtistName(),
		Released:  s.ReleaseDateForDisplay,
		URL:       s.URL,
		Pageviews: s.Stats.Pageviews,
	}
	if s.Album != nil {
		v.Album = s.Album.Name
	}
	return v
}

// formatTemplate applies a Go template to data
func formatTemplate(data interface{}, templateStr string) (string, error) {
	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// resolveStripHeaders returns the --strip-headers value, falling back to
// the configured default when the flag was not given
func resolveStripHeaders(changed bool, value string, cfg *config.Config) (bool, error) {
	if !changed {
		return cfg.Lyrics.StripHeaders, nil
	}
	return genius.ParseBool("--strip-headers", value)
}

// describeFetchError adds a hint for failures the user can act on
func describeFetchError(err error) string {
	switch {
	case errors.Is(err, genius.ErrAccessDenied):
		return err.Error() + " (Genius blocked the request, wait a while before retrying)"
	case errors.Is(err, genius.ErrNoResult):
		return err.Error() + " (the page has no lyrics, or its layout changed; see lyrics.selector)"
	default:
		return err.Error()
	}
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		result := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis

		// Wide runes may leave the result one column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}

// table writes rows as fixed width columns. A width of 0 leaves the last
// column unpadded.
type table struct {
	w      io.Writer
	widths []int
}

func (t *table) row(cells ...string) {
	padded := make([]string, len(cells))
	for i, c := range cells {
		width := 0
		if i < len(t.widths) {
			width = t.widths[i]
		}
		padded[i] = padToWidth(c, width)
	}
	fmt.Fprintln(t.w, strings.TrimRight(strings.Join(padded, "  "), " "))
}
