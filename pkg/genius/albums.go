package genius

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AlbumService provides album operations for the Genius API.
type AlbumService struct {
	client *Client
}

// Get fetches an album by its Genius ID.
func (a *AlbumService) Get(ctx context.Context, id int) (*Album, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: album id must be positive, got %d", ErrInvalidArgument, id)
	}

	var resp struct {
		Album Album `json:"album"`
	}
	params := url.Values{"text_format": {"plain"}}
	if err := a.client.call(ctx, "/albums/"+strconv.Itoa(id), params, &resp); err != nil {
		return nil, err
	}

	return &resp.Album, nil
}

// Tracks returns the track listing of an album in album order.
func (a *AlbumService) Tracks(ctx context.Context, id int) ([]Track, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: album id must be positive, got %d", ErrInvalidArgument, id)
	}

	var resp struct {
		Tracks []Track `json:"tracks"`
	}
	if err := a.client.call(ctx, "/albums/"+strconv.Itoa(id)+"/tracks", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Tracks, nil
}
