// Package genius provides a client library for the Genius.com API.
//
// # Overview
//
// This package wraps the read-only parts of the Genius API (songs, artists,
// albums and search) and adds a lyrics scraper, since the API does not
// return lyrics. It provides context support and typed errors so callers can
// react to a blocked scraper differently from a network failure.
//
// # Installation
//
//	go get github.com/jfmyers9/verses/pkg/genius
//
// # Quick Start
//
// Create a client with a client access token from
// https://genius.com/api-clients:
//
//	client, err := genius.NewClient(genius.Config{
//	    AccessToken: "your-client-access-token",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Metadata
//
//	song, err := client.Songs().Get(ctx, 378195)
//	artist, err := client.Artists().Get(ctx, song.PrimaryArtist.ID)
//	page, err := client.Artists().Songs(ctx, artist.ID, genius.SongsOptions{Sort: genius.SortPopularity})
//	album, err := client.Albums().Get(ctx, song.Album.ID)
//	tracks, err := client.Albums().Tracks(ctx, album.ID)
//	songs, err := client.Search().Songs(ctx, "Adele Hello")
//
// # Lyrics
//
// Lyrics are read from the song page. The request imitates a desktop
// browser: every call draws a User-Agent and a viewport from fixed pools
// and adds a small random jitter to the timeout. No access token is needed.
//
//	lyrics, err := client.Lyrics().Fetch(ctx, song.URL, false)
//
// Passing true as the last argument removes section markers such as
// "[Chorus]". The same result can be obtained afterwards with
// StripSectionHeaders.
//
// # Error Handling
//
// Errors can be inspected with errors.Is and errors.As:
//
//	switch {
//	case errors.Is(err, genius.ErrAccessDenied):
//	    // HTTP 403, usually anti-scraping
//	case errors.Is(err, genius.ErrNoResult):
//	    // page fetched, no lyrics on it
//	case errors.Is(err, genius.ErrInvalidArgument):
//	    // bad input, nothing was sent
//	case errors.Is(err, genius.ErrTransport):
//	    // network failure or unexpected status
//	}
//
// API envelope errors are returned as *Error and carry the HTTP status.
//
// There is no retry, rate limiting or caching. Callers fetching many pages
// are responsible for throttling.
//
// # Testing
//
// Config.BaseURL and Config.WebURL point the client at a test server, and
// Config.Rand, Config.UserAgents and Config.Viewports make fingerprint
// selection deterministic.
package genius
