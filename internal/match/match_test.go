package match

import (
	"testing"

	"github.com/jfmyers9/verses/pkg/genius"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple", "The Beatles", "the beatles"},
		{"Accents", "Björk", "bjork"},
		{"Punctuation", "P!nk", "p nk"},
		{"Ampersand", "Simon & Garfunkel", "simon and garfunkel"},
		{"Compatibility forms", "ＡＢＣ", "abc"},
		{"Whitespace", "  Daft \t Punk ", "daft punk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "Hello", "hello"},
		{"Featured in brackets", "Empire State of Mind (feat. Alicia Keys)", "empire state of mind"},
		{"Featured suffix", "Stay ft. Justin Bieber", "stay"},
		{"Remaster suffix", "Come Together - 2019 Remaster", "come together"},
		{"Live suffix", "Hurt - Live", "hurt"},
		{"Square brackets", "Song [Radio Edit]", "song"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.expected {
				t.Errorf("NormalizeTitle() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"hello", "hello", 1},
		{"", "hello", 0},
		{"abc", "abd", 2.0 / 3.0},
		{"björk", "bjork", 0.8},
	}

	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func song(id int, title, artist string) genius.Song {
	return genius.Song{ID: id, Title: title, PrimaryArtist: &genius.Artist{Name: artist}}
}

func TestBestMatch(t *testing.T) {
	hits := []genius.Song{
		song(1, "Hello", "Lionel Richie"),
		song(2, "Hello", "Adele"),
		song(3, "Hello (Remix)", "Adele"),
		song(4, "When We Were Young", "Adele"),
	}

	tests := []struct {
		name   string
		artist string
		title  string
		wantID int
		wantOK bool
	}{
		{name: "artist decides", artist: "Adele", title: "Hello", wantID: 2, wantOK: true},
		{name: "player decorations", artist: "ADELE", title: "Hello - Live", wantID: 2, wantOK: true},
		{name: "other artist", artist: "Lionel Richie", title: "Hello", wantID: 1, wantOK: true},
		{name: "title only keeps relevance order", title: "Hello", wantID: 1, wantOK: true},
		{name: "nothing close", artist: "Metallica", title: "Enter Sandman", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score, ok := BestMatch(hits, tt.artist, tt.title)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v (score %.2f)", tt.wantOK, ok, score)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("expected song %d, got %d (score %.2f)", tt.wantID, got.ID, score)
			}
		})
	}

	if _, _, ok := BestMatch(nil, "Adele", "Hello"); ok {
		t.Error("expected no match for empty hits")
	}
}
