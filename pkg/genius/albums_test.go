package genius

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestAlbumService tests album metadata and track listings.
func TestAlbumService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var response string
		switch r.URL.Path {
		case "/albums/132536":
			response = `{"meta": {"status": 200}, "response": {"album": {
  "id": 132536,
  "name": "25",
  "full_title": "25 by Adele",
  "release_date_for_display": "November 20, 2015",
  "release_date_components": {"year": 2015, "month": 11, "day": 20},
  "artist": {"id": 2300, "name": "Adele"}
}}}`
		case "/albums/132536/tracks":
			response = `{"meta": {"status": 200}, "response": {"tracks": [
  {"number": 1, "song": {"id": 2236, "title": "Hello"}},
  {"number": 2, "song": {"id": 2237, "title": "Send My Love (To Your New Lover)"}}
]}}`
		default:
			w.WriteHeader(http.StatusNotFound)
			response = `{"meta": {"status": 404, "message": "Not found"}}`
		}
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	}))
	defer server.Close()

	client := newAPITestClient(t, server)
	ctx := context.Background()

	album, err := client.Albums().Get(ctx, 132536)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if album.FullTitle != "25 by Adele" {
		t.Errorf("expected full title, got %q", album.FullTitle)
	}
	if album.ReleaseDateComponents == nil || album.ReleaseDateComponents.Year != 2015 {
		t.Errorf("expected release year 2015, got %+v", album.ReleaseDateComponents)
	}
	if album.Artist == nil || album.Artist.Name != "Adele" {
		t.Errorf("expected album artist Adele, got %+v", album.Artist)
	}

	tracks, err := client.Albums().Tracks(ctx, 132536)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].Number != 1 || tracks[0].Song.Title != "Hello" {
		t.Errorf("expected track 1 Hello, got %+v", tracks[0])
	}

	_, err = client.Albums().Get(ctx, 7)
	if !errors.Is(err, &Error{Status: http.StatusNotFound}) {
		t.Errorf("expected 404 api error, got %v", err)
	}

	if _, err := client.Albums().Tracks(ctx, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
