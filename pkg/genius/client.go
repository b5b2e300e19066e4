// Package genius provides a client for the Genius.com API.
//
// The official API exposes song, artist and album metadata. Lyrics are not
// part of the API, so the package also scrapes them from the public song
// pages. It is designed to be used as a standalone SDK.
//
// Example usage:
//
//	import "github.com/jfmyers9/verses/pkg/genius"
//
//	client, err := genius.NewClient(genius.Config{
//	    AccessToken: "your-client-access-token",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	song, err := client.Songs().Get(ctx, 378195)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lyrics, err := client.Songs().Lyrics(ctx, song, true)
package genius

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Config holds client configuration.
type Config struct {
	AccessToken string       // Optional: client access token, required for API calls
	HTTPClient  *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL     string       // Optional: Base URL for API (defaults to Genius API, used for testing)
	WebURL      string       // Optional: Site root sent as Referer/Origin when scraping
	Logger      Logger       // Optional: Logger interface for debug and error logging

	// Lyrics scraping knobs. Zero values select the defaults.
	LyricsSelector string        // CSS selector for lyrics containers
	LyricsTimeout  time.Duration // Base request timeout
	LyricsJitter   time.Duration // Upper bound of the random timeout jitter
	Extractor      Extractor     // HTML capability, defaults to a goquery extractor
	UserAgents     []string      // User-Agent pool
	Viewports      []Viewport    // Viewport pool
	Rand           Rand          // Random source for fingerprint and jitter
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
	// Errorf logs an unexpected failure.
	Errorf(format string, args ...interface{})
}

// Client is the main entry point for Genius operations.
type Client struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
	webURL      string
	logger      Logger

	songs   *SongService
	artists *ArtistService
	albums  *AlbumService
	search  *SearchService
	lyrics  *LyricsService
}

const (
	// DefaultBaseURL is the default Genius API endpoint.
	DefaultBaseURL = "https://api.genius.com"

	// DefaultWebURL is the public site that hosts song pages.
	DefaultWebURL = "https://genius.com"

	// DefaultLyricsSelector matches the elements holding rendered lyrics.
	DefaultLyricsSelector = `[data-lyrics-container="true"]`

	// DefaultLyricsTimeout is the base timeout of a lyrics page request.
	DefaultLyricsTimeout = 5 * time.Second

	// DefaultLyricsJitter bounds the random extra timeout added per request.
	DefaultLyricsJitter = 300 * time.Millisecond
)

// NewClient creates a new Genius client.
//
// AccessToken may be empty when only lyrics scraping is needed; API calls
// then fail with ErrNoAccessToken. Returns an error if a URL in the
// configuration is not absolute.
func NewClient(cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if err := checkAbsolute(baseURL); err != nil {
		return nil, fmt.Errorf("genius: invalid BaseURL: %w", err)
	}

	webURL := cfg.WebURL
	if webURL == "" {
		webURL = DefaultWebURL
	}
	if err := checkAbsolute(webURL); err != nil {
		return nil, fmt.Errorf("genius: invalid WebURL: %w", err)
	}

	c := &Client{
		accessToken: cfg.AccessToken,
		httpClient:  httpClient,
		baseURL:     baseURL,
		webURL:      webURL,
		logger:      cfg.Logger,
	}

	c.songs = &SongService{client: c}
	c.artists = &ArtistService{client: c}
	c.albums = &AlbumService{client: c}
	c.search = &SearchService{client: c}
	c.lyrics = newLyricsService(c, cfg)

	return c, nil
}

// Songs returns the song service.
func (c *Client) Songs() *SongService {
	return c.songs
}

// Artists returns the artist service.
func (c *Client) Artists() *ArtistService {
	return c.artists
}

// Albums returns the album service.
func (c *Client) Albums() *AlbumService {
	return c.albums
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return c.search
}

// Lyrics returns the lyrics scraping service.
func (c *Client) Lyrics() *LyricsService {
	return c.lyrics
}

// SetAccessToken sets the token used for API requests.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}

// logErrorf logs an error message if a logger is configured.
func (c *Client) logErrorf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Errorf(format, args...)
	}
}

func checkAbsolute(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", raw)
	}
	return nil
}
