/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/internal/music"
	"github.com/jfmyers9/verses/pkg/genius"
)

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Print the lyrics of the song currently playing",
	Long: `Ask the music player what is playing and print the lyrics of the
closest Genius match.

Supported players are Apple Music (default) and Spotify on macOS.
With --watch the player is polled and lyrics are printed every time a
new song starts, until interrupted.

Exit codes:
  0 - Lyrics were printed
  1 - Nothing playing, player not running, or no lyrics found`,
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	nowCmd.Flags().String("player", music.AppMusic, "Player to query (Music or Spotify)")
	nowCmd.Flags().BoolP("watch", "w", false, "Keep running and follow track changes")
	nowCmd.Flags().Duration("interval", 3*time.Second, "Poll interval for --watch")
	addStripHeadersFlag(nowCmd)
}

func runNow(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := requireToken(cfg); err != nil {
		return err
	}

	strip, err := stripHeadersFlag(cmd, cfg)
	if err != nil {
		return err
	}

	playerName, _ := cmd.Flags().GetString("player")
	player, err := music.NewPlayer(playerName)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		interval, _ := cmd.Flags().GetDuration("interval")
		return watchNow(cmd, cfg, client, player, interval, strip)
	}

	probeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	track, err := player.CurrentTrack(probeCtx)
	if errors.Is(err, music.ErrNotPlaying) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Nothing is playing")
		os.Exit(1)
	}
	if err != nil {
		return fmt.Errorf("failed to get current track: %w", err)
	}

	logger.Debug().
		Str("name", track.Name).
		Str("artist", track.Artist).
		Bool("paused", track.Paused).
		Msg("Current track")

	return findAndPrint(context.Background(), cmd, cfg, client, track.Artist, track.Name, strip)
}

// watchNow prints lyrics for every new track until interrupted. Failures
// for one track are reported and watching continues.
func watchNow(cmd *cobra.Command, cfg *config.Config, client *genius.Client, player music.Player, interval time.Duration, strip bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	changes := make(chan music.Track)
	watcher := music.NewWatcher(player, interval, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- watcher.Run(ctx, changes) }()

	out := cmd.OutOrStdout()
	printed := 0
	for {
		select {
		case <-ctx.Done():
			<-errCh
			return nil
		case track := <-changes:
			if printed > 0 {
				fmt.Fprintln(out)
			}
			if err := findAndPrint(ctx, cmd, cfg, client, track.Artist, track.Name, strip); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s - %s: %v\n", track.Artist, track.Name, err)
				continue
			}
			printed++
		}
	}
}
