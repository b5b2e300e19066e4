package genius

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SearchService provides search operations for the Genius API.
type SearchService struct {
	client *Client
}

// Songs searches Genius for songs matching query. Non-song hits are
// dropped; the API's relevance order is kept.
//
// Example:
//
//	songs, err := client.Search().Songs(ctx, "Kendrick Lamar HUMBLE.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range songs {
//	    fmt.Println(s.ID, s.FullTitle)
//	}
func (s *SearchService) Songs(ctx context.Context, query string) ([]Song, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidArgument)
	}

	var resp struct {
		Hits []SearchHit `json:"hits"`
	}
	if err := s.client.call(ctx, "/search", url.Values{"q": {query}}, &resp); err != nil {
		return nil, err
	}

	songs := make([]Song, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if hit.Type != "song" {
			continue
		}
		songs = append(songs, hit.Result)
	}

	return songs, nil
}
