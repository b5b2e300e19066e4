package music

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Watcher polls a Player and reports when the current song changes.
type Watcher struct {
	player   Player
	interval time.Duration
	logger   zerolog.Logger
}

// NewWatcher creates a Watcher polling player every interval.
func NewWatcher(player Player, interval time.Duration, logger zerolog.Logger) *Watcher {
	return &Watcher{
		player:   player,
		interval: interval,
		logger:   logger.With().Str("component", "watcher").Logger(),
	}
}

// Run sends every newly started track to changes. Pausing and resuming
// the same track is not a change. Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, changes chan<- Track) error {
	w.logger.Info().
		Dur("interval", w.interval).
		Msg("Starting watcher")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var last *Track

	// Poll immediately on start
	last = w.poll(ctx, last, changes)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			last = w.poll(ctx, last, changes)
		}
	}
}

// poll queries the player and returns the track to compare against next.
func (w *Watcher) poll(ctx context.Context, last *Track, changes chan<- Track) *Track {
	track, err := w.player.CurrentTrack(ctx)
	if errors.Is(err, ErrNotPlaying) {
		return nil
	}
	if err != nil {
		w.logger.Debug().Err(err).Msg("Error getting current track")
		return last
	}

	if last != nil && sameSong(*last, *track) {
		return last
	}

	w.logger.Debug().
		Str("track", track.Name).
		Str("artist", track.Artist).
		Msg("Track changed")

	select {
	case changes <- *track:
	case <-ctx.Done():
	}
	return track
}

func sameSong(a, b Track) bool {
	return a.Name == b.Name && a.Artist == b.Artist && a.Album == b.Album
}
