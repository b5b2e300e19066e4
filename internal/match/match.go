// Package match picks the search hit that best fits a known artist and
// title, as reported by a music player.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/jfmyers9/verses/pkg/genius"
)

// MinScore is the lowest score BestMatch accepts.
const MinScore = 0.6

var (
	bracketRegex    = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]`)
	featRegex       = regexp.MustCompile(`(?i)\s+(?:feat\.?|ft\.?|featuring)\s+.*$`)
	versionRegex    = regexp.MustCompile(`(?i)\s+-\s+(?:.*remaster(?:ed)?.*|live.*|single version|radio edit|mono|stereo)$`)
	punctRegex      = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize folds text for comparison: accents are removed, punctuation
// becomes whitespace and everything is lower case.
func Normalize(text string) string {
	text = norm.NFKD.String(text)

	var b strings.Builder
	for _, r := range text {
		if !unicode.IsMark(r) {
			b.WriteRune(r)
		}
	}
	text = b.String()

	text = strings.ReplaceAll(text, "&", " and ")
	text = punctRegex.ReplaceAllString(text, " ")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(strings.ToLower(text))
}

// NormalizeTitle is Normalize after dropping featured artists, bracketed
// qualifiers and version suffixes such as "- 2011 Remaster".
func NormalizeTitle(title string) string {
	title = bracketRegex.ReplaceAllString(title, "")
	title = versionRegex.ReplaceAllString(title, "")
	title = featRegex.ReplaceAllString(title, "")
	return Normalize(title)
}

// Similarity returns the longest common subsequence of a and b relative to
// the longer string, from 0 to 1.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	return float64(lcs(ra, rb)) / float64(max(len(ra), len(rb)))
}

func lcs(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Score rates how well song fits artist and title. The title weighs more
// than the artist since search results are already artist biased.
func Score(song genius.Song, artist, title string) float64 {
	titleScore := Similarity(NormalizeTitle(song.Title), NormalizeTitle(title))
	if artist == "" {
		return titleScore
	}
	artistScore := Similarity(Normalize(song.ArtistName()), Normalize(artist))
	return 0.65*titleScore + 0.35*artistScore
}

// BestMatch returns the highest scoring song. Ties keep the earlier hit,
// so the API relevance order breaks them. ok is false when no song reaches
// MinScore.
func BestMatch(songs []genius.Song, artist, title string) (best genius.Song, score float64, ok bool) {
	bestIdx := -1
	for i, s := range songs {
		sc := Score(s, artist, title)
		if bestIdx == -1 || sc > score {
			bestIdx, score = i, sc
		}
	}
	if bestIdx == -1 || score < MinScore {
		return genius.Song{}, score, false
	}
	return songs[bestIdx], score, true
}
