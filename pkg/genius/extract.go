package genius

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Extractor finds lyrics containers in an HTML document.
type Extractor interface {
	// Containers returns the inner markup of every lyrics container in
	// document order. An empty slice means the page has none.
	Containers(r io.Reader) ([]string, error)
}

// excludedSelector matches page chrome nested inside lyrics containers
// (contributor counts, translation menus, song description teasers).
const excludedSelector = `[data-exclude-from-selection="true"]`

// SelectorExtractor is an Extractor backed by goquery and a CSS selector.
type SelectorExtractor struct {
	selector string
}

// NewSelectorExtractor returns an extractor for elements matching selector.
func NewSelectorExtractor(selector string) *SelectorExtractor {
	return &SelectorExtractor{selector: selector}
}

// Containers implements Extractor.
func (e *SelectorExtractor) Containers(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(e.selector)
	containers := make([]string, 0, selection.Length())

	var htmlErr error
	selection.EachWithBreak(func(i int, s *goquery.Selection) bool {
		s.Find(excludedSelector).Remove()

		markup, err := s.Html()
		if err != nil {
			htmlErr = fmt.Errorf("failed to render container %d: %w", i, err)
			return false
		}
		containers = append(containers, markup)
		return true
	})
	if htmlErr != nil {
		return nil, htmlErr
	}

	return containers, nil
}
