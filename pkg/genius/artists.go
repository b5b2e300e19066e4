package genius

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ArtistService provides artist operations for the Genius API.
type ArtistService struct {
	client *Client
}

// Sort orders accepted by ArtistService.Songs.
const (
	SortTitle      = "title"
	SortPopularity = "popularity"
)

// MaxPerPage is the largest page size the API accepts.
const MaxPerPage = 50

// SongsOptions controls an artist song listing. Zero values leave the
// parameter to the API default.
type SongsOptions struct {
	Sort    string // SortTitle or SortPopularity
	PerPage int    // 1..MaxPerPage
	Page    int    // 1-based
}

// Get fetches an artist by its Genius ID.
func (a *ArtistService) Get(ctx context.Context, id int) (*Artist, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: artist id must be positive, got %d", ErrInvalidArgument, id)
	}

	var resp struct {
		Artist Artist `json:"artist"`
	}
	params := url.Values{"text_format": {"plain"}}
	if err := a.client.call(ctx, "/artists/"+strconv.Itoa(id), params, &resp); err != nil {
		return nil, err
	}

	return &resp.Artist, nil
}

// Songs lists one page of songs by an artist.
//
// Example:
//
//	page, err := client.Artists().Songs(ctx, 16775, genius.SongsOptions{
//	    Sort:    genius.SortPopularity,
//	    PerPage: 20,
//	})
//	for page.NextPage != 0 { ... }
func (a *ArtistService) Songs(ctx context.Context, id int, opts SongsOptions) (*SongPage, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: artist id must be positive, got %d", ErrInvalidArgument, id)
	}

	params := url.Values{}
	switch opts.Sort {
	case "":
	case SortTitle, SortPopularity:
		params.Set("sort", opts.Sort)
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidArgument, opts.Sort)
	}
	if opts.PerPage < 0 || opts.PerPage > MaxPerPage {
		return nil, fmt.Errorf("%w: per page must be between 1 and %d, got %d", ErrInvalidArgument, MaxPerPage, opts.PerPage)
	}
	if opts.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Page < 0 {
		return nil, fmt.Errorf("%w: page must be positive, got %d", ErrInvalidArgument, opts.Page)
	}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}

	var page SongPage
	if err := a.client.call(ctx, "/artists/"+strconv.Itoa(id)+"/songs", params, &page); err != nil {
		return nil, err
	}

	return &page, nil
}
