// Package music asks a desktop music player what is playing right now.
package music

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotPlaying is returned when the player is closed or stopped.
var ErrNotPlaying = errors.New("nothing is playing")

// Track is the song a player reports as current.
type Track struct {
	Name   string
	Artist string
	Album  string
	Paused bool
}

// Player reports the current track of a music application.
type Player interface {
	CurrentTrack(ctx context.Context) (*Track, error)
}

// Supported application names for NewPlayer.
const (
	AppMusic   = "Music"
	AppSpotify = "Spotify"
)

// runFunc runs osascript with the given script and returns its stdout.
type runFunc func(ctx context.Context, script string) (string, error)

// AppleScriptPlayer queries a macOS player through osascript.
type AppleScriptPlayer struct {
	app string
	run runFunc
}

// NewPlayer returns a player for app, either AppMusic or AppSpotify.
func NewPlayer(app string) (*AppleScriptPlayer, error) {
	switch strings.ToLower(app) {
	case "", "music", "apple music":
		return &AppleScriptPlayer{app: AppMusic, run: runOsascript}, nil
	case "spotify":
		return &AppleScriptPlayer{app: AppSpotify, run: runOsascript}, nil
	default:
		return nil, fmt.Errorf("unsupported player %q", app)
	}
}

// separator splits the fields printed by the script. It cannot appear in
// track metadata.
const separator = "\x1f"

// trackScript checks the process list and reads the current track in one
// osascript call. Both Music and Spotify use the same dictionary terms.
func trackScript(app string) string {
	return fmt.Sprintf(`
tell application "System Events"
	if not ((name of processes) contains %[1]q) then
		return "not_running"
	end if
end tell
tell application %[1]q
	if player state is stopped then
		return "stopped"
	end if
	set sep to ASCII character 31
	return (name of current track) & sep & (artist of current track) & sep & (album of current track) & sep & (player state as string)
end tell`, app)
}

// CurrentTrack returns the playing or paused track, or ErrNotPlaying.
func (p *AppleScriptPlayer) CurrentTrack(ctx context.Context) (*Track, error) {
	output, err := p.run(ctx, trackScript(p.app))
	if err != nil {
		return nil, err
	}

	result := strings.TrimSpace(output)
	if result == "not_running" || result == "stopped" {
		return nil, fmt.Errorf("%s: %w", p.app, ErrNotPlaying)
	}

	track, err := parseTrack(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s output: %w", p.app, err)
	}
	return track, nil
}

func parseTrack(output string) (*Track, error) {
	parts := strings.Split(output, separator)
	if len(parts) != 4 {
		return nil, fmt.Errorf("expected 4 fields, got %d", len(parts))
	}

	track := &Track{
		Name:   strings.TrimSpace(parts[0]),
		Artist: strings.TrimSpace(parts[1]),
		Album:  strings.TrimSpace(parts[2]),
	}
	if track.Name == "" {
		return nil, errors.New("track has no name")
	}

	switch strings.TrimSpace(parts[3]) {
	case "playing", "kPSP":
	case "paused", "kPSp":
		track.Paused = true
	default:
		return nil, fmt.Errorf("unknown player state %q", parts[3])
	}

	return track, nil
}

func runOsascript(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("osascript error: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("failed to execute osascript: %w", err)
	}
	return string(output), nil
}
