package genius

import (
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxPageSize caps how much of a song page is read.
const maxPageSize = 10 << 20

// LyricsService scrapes lyrics from Genius song pages.
//
// The configuration is fixed at construction, so a LyricsService is safe
// for concurrent use as long as its Rand is.
type LyricsService struct {
	client     *Client
	extractor  Extractor
	userAgents []string
	viewports  []Viewport
	rand       Rand
	timeout    time.Duration
	jitter     time.Duration
}

func newLyricsService(c *Client, cfg Config) *LyricsService {
	l := &LyricsService{
		client:     c,
		extractor:  cfg.Extractor,
		userAgents: cfg.UserAgents,
		viewports:  cfg.Viewports,
		rand:       cfg.Rand,
		timeout:    cfg.LyricsTimeout,
		jitter:     cfg.LyricsJitter,
	}

	if l.extractor == nil {
		selector := cfg.LyricsSelector
		if selector == "" {
			selector = DefaultLyricsSelector
		}
		l.extractor = NewSelectorExtractor(selector)
	}
	if len(l.userAgents) == 0 {
		l.userAgents = defaultUserAgents
	} else {
		l.userAgents = append([]string(nil), l.userAgents...)
	}
	if len(l.viewports) == 0 {
		l.viewports = defaultViewports
	} else {
		l.viewports = append([]Viewport(nil), l.viewports...)
	}
	if l.rand == nil {
		l.rand = globalRand{}
	}
	if l.timeout <= 0 {
		l.timeout = DefaultLyricsTimeout
	}
	if l.jitter <= 0 {
		l.jitter = DefaultLyricsJitter
	}

	return l
}

// Fetch downloads the song page at songURL and returns its lyrics as
// newline separated plain text.
//
// The request carries a randomly drawn browser fingerprint and is bounded
// by the lyrics timeout plus a random jitter. When removeSectionHeaders is
// true, markers such as "[Chorus]" are removed with StripSectionHeaders.
//
// Errors:
//   - ErrInvalidArgument: songURL is not an absolute http(s) URL; no request is made
//   - ErrAccessDenied: the page answered 403
//   - ErrNoResult: the page holds no lyrics containers, or they are empty
//   - *TransportError: any other network failure or error status
//
// Example:
//
//	lyrics, err := client.Lyrics().Fetch(ctx, "https://genius.com/Adele-hello-lyrics", true)
//	if errors.Is(err, genius.ErrAccessDenied) {
//	    // the scraper was blocked
//	}
func (l *LyricsService) Fetch(ctx context.Context, songURL string, removeSectionHeaders bool) (string, error) {
	if err := validateSongURL(songURL); err != nil {
		return "", err
	}

	profile := pickProfile(l.rand, l.userAgents, l.viewports)
	timeout := l.timeout + time.Duration(l.rand.IntN(int(l.jitter/time.Millisecond)+1))*time.Millisecond

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, songURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	l.setBrowserHeaders(req, profile)

	l.client.logDebugf("genius: fetching lyrics page %s (timeout %s)", songURL, timeout)

	resp, err := l.client.httpClient.Do(req)
	if err != nil {
		l.client.logErrorf("genius: failed to fetch %s: %v", songURL, err)
		return "", &TransportError{URL: songURL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, songURL)
	}
	if resp.StatusCode != http.StatusOK {
		l.client.logErrorf("genius: %s returned status %d", songURL, resp.StatusCode)
		return "", &TransportError{URL: songURL, StatusCode: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		l.client.logErrorf("genius: failed to decode %s: %v", songURL, err)
		return "", &TransportError{URL: songURL, Err: err}
	}
	defer func() {
		_ = body.Close()
	}()

	containers, err := l.extractor.Containers(io.LimitReader(body, maxPageSize))
	if err != nil {
		l.client.logErrorf("genius: failed to read %s: %v", songURL, err)
		return "", &TransportError{URL: songURL, Err: err}
	}
	if len(containers) == 0 {
		l.client.logDebugf("genius: no lyrics containers matched on %s", songURL)
		return "", fmt.Errorf("%w: %s", ErrNoResult, songURL)
	}

	parts := make([]string, 0, len(containers))
	for _, markup := range containers {
		parts = append(parts, htmlToText(markup))
	}
	lyrics := strings.TrimSpace(strings.Join(parts, "\n"))
	if lyrics == "" {
		l.client.logDebugf("genius: %d lyrics containers on %s are empty", len(containers), songURL)
		return "", fmt.Errorf("%w: %s", ErrNoResult, songURL)
	}

	if removeSectionHeaders {
		lyrics = StripSectionHeaders(lyrics)
	}

	return lyrics, nil
}

// setBrowserHeaders makes the request look like a top level navigation
// from a desktop browser on the Genius site.
func (l *LyricsService) setBrowserHeaders(req *http.Request, p BrowserProfile) {
	origin := strings.TrimRight(l.client.webURL, "/")

	req.Header.Set("User-Agent", p.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Referer", origin+"/")
	req.Header.Set("Origin", origin)
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Sec-Ch-Ua", p.brands())
	req.Header.Set("Sec-Ch-Ua-Mobile", "?0")
	req.Header.Set("Sec-Ch-Ua-Platform", p.platform())
	req.Header.Set("Viewport-Width", strconv.Itoa(p.Viewport.Width))
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Connection", "keep-alive")
}

// decodeBody undoes the content encoding we asked for. Setting
// Accept-Encoding by hand disables the transport's transparent gzip.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return zlib.NewReader(resp.Body)
	default:
		return io.NopCloser(resp.Body), nil
	}
}

func validateSongURL(songURL string) error {
	if strings.TrimSpace(songURL) == "" {
		return fmt.Errorf("%w: empty song URL", ErrInvalidArgument)
	}
	u, err := url.Parse(songURL)
	if err != nil {
		return fmt.Errorf("%w: malformed song URL %q", ErrInvalidArgument, songURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: song URL %q must be http or https", ErrInvalidArgument, songURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: song URL %q has no host", ErrInvalidArgument, songURL)
	}
	return nil
}
