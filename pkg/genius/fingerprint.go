package genius

import (
	"math/rand/v2"
	"strings"
)

// Viewport is a browser window size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// BrowserProfile is the fingerprint sent with a lyrics page request. The
// User-Agent and the viewport are drawn independently.
type BrowserProfile struct {
	UserAgent string
	Viewport  Viewport
}

// Rand is the random source used for fingerprints and timeout jitter.
// *rand.Rand from math/rand/v2 satisfies it. Implementations shared between
// goroutines must be safe for concurrent use.
type Rand interface {
	IntN(n int) int
}

// globalRand uses the goroutine-safe top-level functions of math/rand/v2.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
}

var defaultViewports = []Viewport{
	{Width: 1920, Height: 1080},
	{Width: 1366, Height: 768},
	{Width: 1536, Height: 864},
	{Width: 1440, Height: 900},
	{Width: 1280, Height: 720},
	{Width: 2560, Height: 1440},
}

// DefaultUserAgents returns a copy of the built-in User-Agent pool.
func DefaultUserAgents() []string {
	return append([]string(nil), defaultUserAgents...)
}

// DefaultViewports returns a copy of the built-in viewport pool.
func DefaultViewports() []Viewport {
	return append([]Viewport(nil), defaultViewports...)
}

// pickProfile draws a User-Agent and a viewport uniformly and independently.
func pickProfile(r Rand, agents []string, viewports []Viewport) BrowserProfile {
	return BrowserProfile{
		UserAgent: agents[r.IntN(len(agents))],
		Viewport:  viewports[r.IntN(len(viewports))],
	}
}

// platform returns the Sec-Ch-Ua-Platform value matching a User-Agent.
func (p BrowserProfile) platform() string {
	switch {
	case strings.Contains(p.UserAgent, "Windows"):
		return `"Windows"`
	case strings.Contains(p.UserAgent, "Macintosh"):
		return `"macOS"`
	case strings.Contains(p.UserAgent, "Linux"):
		return `"Linux"`
	default:
		return `"Unknown"`
	}
}

// brands returns the Sec-Ch-Ua value for the profile's browser. Only
// Chromium based browsers send a brand list; the others get a neutral one.
func (p BrowserProfile) brands() string {
	switch {
	case strings.Contains(p.UserAgent, "Edg/"):
		return `"Chromium";v="124", "Microsoft Edge";v="124", "Not-A.Brand";v="99"`
	case strings.Contains(p.UserAgent, "Chrome/"):
		return `"Chromium";v="124", "Google Chrome";v="124", "Not-A.Brand";v="99"`
	default:
		return `"Not-A.Brand";v="99"`
	}
}
