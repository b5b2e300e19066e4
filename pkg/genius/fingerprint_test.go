package genius

import (
	"math/rand/v2"
	"strings"
	"testing"
)

// TestDefaultPools tests that the built-in pools cover common browsers.
func TestDefaultPools(t *testing.T) {
	agents := DefaultUserAgents()
	if len(agents) < 5 {
		t.Fatalf("expected at least 5 User-Agents, got %d", len(agents))
	}

	engines := map[string]bool{}
	systems := map[string]bool{}
	for _, ua := range agents {
		p := BrowserProfile{UserAgent: ua}
		systems[p.platform()] = true
		switch {
		case strings.Contains(ua, "Firefox/"):
			engines["gecko"] = true
		case strings.Contains(ua, "Chrome/"):
			engines["chromium"] = true
		case strings.Contains(ua, "Safari/"):
			engines["webkit"] = true
		}
	}
	if len(engines) != 3 {
		t.Errorf("expected chromium, gecko and webkit agents, got %v", engines)
	}
	for _, os := range []string{`"Windows"`, `"macOS"`, `"Linux"`} {
		if !systems[os] {
			t.Errorf("expected an agent for %s", os)
		}
	}

	viewports := DefaultViewports()
	if len(viewports) < 5 {
		t.Fatalf("expected at least 5 viewports, got %d", len(viewports))
	}
	for _, v := range viewports {
		if v.Width < 1024 || v.Height < 600 {
			t.Errorf("expected desktop sized viewport, got %dx%d", v.Width, v.Height)
		}
	}

	// Callers get copies.
	agents[0] = "changed"
	if DefaultUserAgents()[0] == "changed" {
		t.Error("expected DefaultUserAgents to return a copy")
	}
}

// TestPickProfile tests that every combination is reachable.
func TestPickProfile(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	seen := map[BrowserProfile]bool{}
	for i := 0; i < 5000; i++ {
		seen[pickProfile(r, defaultUserAgents, defaultViewports)] = true
	}

	want := len(defaultUserAgents) * len(defaultViewports)
	if len(seen) != want {
		t.Errorf("expected %d distinct profiles, got %d", want, len(seen))
	}
}

// TestBrowserProfile_Hints tests client hints derived from the User-Agent.
func TestBrowserProfile_Hints(t *testing.T) {
	tests := []struct {
		ua           string
		wantPlatform string
		wantBrand    string
	}{
		{ua: defaultUserAgents[0], wantPlatform: `"Windows"`, wantBrand: "Google Chrome"},
		{ua: defaultUserAgents[1], wantPlatform: `"macOS"`, wantBrand: "Google Chrome"},
		{ua: defaultUserAgents[2], wantPlatform: `"Windows"`, wantBrand: "Microsoft Edge"},
		{ua: defaultUserAgents[4], wantPlatform: `"Linux"`, wantBrand: "Not-A.Brand"},
		{ua: "curl/8.0", wantPlatform: `"Unknown"`, wantBrand: "Not-A.Brand"},
	}

	for _, tt := range tests {
		p := BrowserProfile{UserAgent: tt.ua}
		if got := p.platform(); got != tt.wantPlatform {
			t.Errorf("%s: expected platform %s, got %s", tt.ua, tt.wantPlatform, got)
		}
		if got := p.brands(); !strings.Contains(got, tt.wantBrand) {
			t.Errorf("%s: expected brand %s in %s", tt.ua, tt.wantBrand, got)
		}
	}
}
