package genius

import (
	"time"
)

// Song is a song as returned by the Genius API.
type Song struct {
	ID                    int       `json:"id"`
	Title                 string    `json:"title"`
	TitleWithFeatured     string    `json:"title_with_featured"`
	FullTitle             string    `json:"full_title"`
	URL                   string    `json:"url"`  // Song page, the lyrics source
	Path                  string    `json:"path"` // URL path relative to the site root
	APIPath               string    `json:"api_path"`
	HeaderImageURL        string    `json:"header_image_url"`
	SongArtImageURL       string    `json:"song_art_image_url"`
	ReleaseDate           string    `json:"release_date"` // YYYY-MM-DD, may be empty
	ReleaseDateForDisplay string    `json:"release_date_for_display"`
	LyricsState           string    `json:"lyrics_state"`
	PrimaryArtist         *Artist   `json:"primary_artist"`
	FeaturedArtists       []Artist  `json:"featured_artists"`
	ProducerArtists       []Artist  `json:"producer_artists"`
	WriterArtists         []Artist  `json:"writer_artists"`
	Album                 *Album    `json:"album"`
	Media                 []Media   `json:"media"`
	Stats                 SongStats `json:"stats"`
	Description           RichText  `json:"description"`
}

// Released returns the parsed release date, if Genius knows it.
func (s *Song) Released() (time.Time, bool) {
	if s.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ArtistName returns the primary artist name or an empty string.
func (s *Song) ArtistName() string {
	if s.PrimaryArtist == nil {
		return ""
	}
	return s.PrimaryArtist.Name
}

// SongStats holds page statistics for a song.
type SongStats struct {
	Pageviews int  `json:"pageviews"`
	Hot       bool `json:"hot"`
}

// Media is an external media link (YouTube, Spotify, SoundCloud...).
type Media struct {
	Provider string `json:"provider"`
	Type     string `json:"type"`
	URL      string `json:"url"`
}

// RichText is a description field requested with text_format=plain.
type RichText struct {
	Plain string `json:"plain"`
}

// Artist is an artist as returned by the Genius API.
type Artist struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	URL            string   `json:"url"`
	APIPath        string   `json:"api_path"`
	ImageURL       string   `json:"image_url"`
	HeaderImageURL string   `json:"header_image_url"`
	IsVerified     bool     `json:"is_verified"`
	AlternateNames []string `json:"alternate_names"`
	FacebookName   string   `json:"facebook_name"`
	InstagramName  string   `json:"instagram_name"`
	TwitterName    string   `json:"twitter_name"`
	FollowersCount int      `json:"followers_count"`
	Description    RichText `json:"description"`
}

// Album is an album as returned by the Genius API.
type Album struct {
	ID                    int             `json:"id"`
	Name                  string          `json:"name"`
	FullTitle             string          `json:"full_title"`
	URL                   string          `json:"url"`
	APIPath               string          `json:"api_path"`
	CoverArtURL           string          `json:"cover_art_url"`
	ReleaseDateForDisplay string          `json:"release_date_for_display"`
	ReleaseDateComponents *DateComponents `json:"release_date_components"`
	Artist                *Artist         `json:"artist"`
	Description           RichText        `json:"description"`
}

// DateComponents is a partially known date. Month and Day may be zero.
type DateComponents struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Track is an entry of an album track listing.
type Track struct {
	Number int  `json:"number"`
	Song   Song `json:"song"`
}

// SongPage is one page of an artist's songs.
type SongPage struct {
	Songs    []Song `json:"songs"`
	NextPage int    `json:"next_page"` // zero on the last page
}

// SearchHit is a single search result.
type SearchHit struct {
	Type   string `json:"type"`
	Result Song   `json:"result"`
}
