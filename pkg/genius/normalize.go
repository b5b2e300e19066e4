package genius

import (
	"regexp"
	"strings"
)

var (
	lineBreakRegex     = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRegex           = regexp.MustCompile(`<[^>]*>`)
	sectionHeaderRegex = regexp.MustCompile(`(?m)^(?:\[[^\]\n]*\])+\n?`)
)

// entityReplacer decodes the entities found in lyrics markup. &#39; and
// &#34; are how the HTML renderer spells the apostrophe and double quote;
// &nbsp; becomes U+00A0, which is also what the renderer emits for it.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#34;", `"`,
	"&#039;", "'",
	"&#39;", "'",
	"&nbsp;", "\u00a0",
)

// htmlToText converts the inner markup of a lyrics container to plain
// text: line break tags become newlines, all other tags are dropped and
// entities are decoded.
func htmlToText(markup string) string {
	text := lineBreakRegex.ReplaceAllString(markup, "\n")
	text = tagRegex.ReplaceAllString(text, "")
	return entityReplacer.Replace(text)
}

// StripSectionHeaders removes bracketed section markers such as
// "[Chorus]" or "[Verse 1: Artist]" that start a line, together with the
// newline that follows them. Other lines are left untouched and in order.
//
// StripSectionHeaders is idempotent.
//
// Example:
//
//	genius.StripSectionHeaders("[Chorus]\nI love you\n[Verse]\nYou love me")
//	// "I love you\nYou love me"
func StripSectionHeaders(lyrics string) string {
	return sectionHeaderRegex.ReplaceAllString(lyrics, "")
}
