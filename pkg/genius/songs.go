package genius

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SongService provides song operations for the Genius API.
type SongService struct {
	client *Client
}

// Get fetches a song by its Genius ID.
//
// Example:
//
//	song, err := client.Songs().Get(ctx, 378195)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(song.FullTitle)
func (s *SongService) Get(ctx context.Context, id int) (*Song, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: song id must be positive, got %d", ErrInvalidArgument, id)
	}

	var resp struct {
		Song Song `json:"song"`
	}
	params := url.Values{"text_format": {"plain"}}
	if err := s.client.call(ctx, "/songs/"+strconv.Itoa(id), params, &resp); err != nil {
		return nil, err
	}

	return &resp.Song, nil
}

// Lyrics scrapes the lyrics of song from its page.
//
// It is a shortcut for client.Lyrics().Fetch(ctx, song.URL, removeSectionHeaders)
// and does not require an access token.
func (s *SongService) Lyrics(ctx context.Context, song *Song, removeSectionHeaders bool) (string, error) {
	if song == nil {
		return "", fmt.Errorf("%w: song is nil", ErrInvalidArgument)
	}
	return s.client.lyrics.Fetch(ctx, song.URL, removeSectionHeaders)
}
