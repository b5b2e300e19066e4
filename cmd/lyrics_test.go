package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jfmyers9/verses/pkg/genius"
)

func TestParseSongRef(t *testing.T) {
	tests := []struct {
		arg  string
		want songRef
	}{
		{arg: "2236", want: songRef{Raw: "2236", ID: 2236}},
		{arg: " 42 ", want: songRef{Raw: "42", ID: 42}},
		{arg: "https://genius.com/Adele-hello-lyrics", want: songRef{Raw: "https://genius.com/Adele-hello-lyrics", URL: "https://genius.com/Adele-hello-lyrics"}},
		{arg: "-1", want: songRef{Raw: "-1", URL: "-1"}},
		{arg: "0", want: songRef{Raw: "0", URL: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			if got := parseSongRef(tt.arg); got != tt.want {
				t.Errorf("parseSongRef(%q) = %+v, want %+v", tt.arg, got, tt.want)
			}
		})
	}
}

// newFakeGenius serves both the API and song pages. Pages under /blocked
// answer 403 and pages under /slow wait before answering.
func newFakeGenius(t *testing.T, inFlight, peak *atomic.Int32) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/songs/") {
			id := strings.TrimPrefix(r.URL.Path, "/songs/")
			fmt.Fprintf(w, `{"meta": {"status": 200}, "response": {"song": {"id": %s, "title": "Song %s", "full_title": "Song %s by Someone", "url": "%s/page-%s"}}}`,
				id, id, id, server.URL, id)
			return
		}

		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)

		if strings.HasPrefix(r.URL.Path, "/blocked") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprintf(w, `<html><body><div data-lyrics-container="true">[Verse]<br>Lyrics of %s</div></body></html>`, r.URL.Path)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchAll(t *testing.T) {
	var inFlight, peak atomic.Int32
	server := newFakeGenius(t, &inFlight, &peak)

	client, err := genius.NewClient(genius.Config{
		AccessToken: "test-token",
		BaseURL:     server.URL,
		HTTPClient:  server.Client(),
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	refs := []songRef{
		parseSongRef(server.URL + "/one"),
		parseSongRef("7"),
		parseSongRef(server.URL + "/blocked"),
		parseSongRef("not a url"),
		parseSongRef(server.URL + "/two"),
		parseSongRef(server.URL + "/three"),
	}

	results := fetchAll(context.Background(), client, refs, true, 2)
	if len(results) != len(refs) {
		t.Fatalf("expected %d results, got %d", len(refs), len(results))
	}

	if results[0].Err != nil || results[0].Lyrics != "Lyrics of /one" {
		t.Errorf("result 0 = %+v", results[0])
	}
	if results[1].Err != nil || results[1].Lyrics != "Lyrics of /page-7" {
		t.Errorf("result 1 = %+v", results[1])
	}
	if results[1].Song == nil || results[1].title() != "Song 7 by Someone" {
		t.Errorf("expected song metadata for id ref, got %+v", results[1].Song)
	}
	if !errors.Is(results[2].Err, genius.ErrAccessDenied) {
		t.Errorf("expected access denied, got %v", results[2].Err)
	}
	if !errors.Is(results[3].Err, genius.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", results[3].Err)
	}
	if results[5].Ref != server.URL+"/three" || results[5].Lyrics != "Lyrics of /three" {
		t.Errorf("expected results in argument order, got %+v", results[5])
	}

	if p := peak.Load(); p > 2 {
		t.Errorf("expected at most 2 concurrent page fetches, saw %d", p)
	}
}

func TestPrintResults(t *testing.T) {
	results := []fetchResult{
		{Ref: "a", Lyrics: "First"},
		{Ref: "b", Err: fmt.Errorf("%w: b", genius.ErrNoResult)},
		{Ref: "c", Song: &genius.Song{FullTitle: "C by D"}, Lyrics: "Third"},
	}

	var out, errOut bytes.Buffer
	failed := printResults(&out, &errOut, results)

	if failed != 1 {
		t.Errorf("expected 1 failure, got %d", failed)
	}
	if want := "==> a <==\nFirst\n\n==> C by D <==\nThird\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if !strings.HasPrefix(errOut.String(), "b: genius: no result") {
		t.Errorf("error output = %q", errOut.String())
	}
}

func TestPrintResults_Single(t *testing.T) {
	var out, errOut bytes.Buffer
	failed := printResults(&out, &errOut, []fetchResult{{Ref: "a", Lyrics: "Only"}})

	if failed != 0 {
		t.Errorf("expected no failures, got %d", failed)
	}
	if out.String() != "Only\n" {
		t.Errorf("expected bare lyrics for a single song, got %q", out.String())
	}
}
