package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/netlee/internal/events"
	"github.com/vmunix/netlee/internal/media"
	"github.com/vmunix/netlee/internal/playback"
	"github.com/vmunix/netlee/internal/probe"
	"github.com/vmunix/netlee/internal/resolve"
)

func newPlayCmd() *cobra.Command {
	var (
		origin      string
		trailerHost string
		timeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "play <id>",
		Short: "Resolve a title and check that it plays",
		Long: `Resolve a title and run it through the player: local titles load their
stream URL (falling back to the direct URL once), catalog titles play the
full movie when one is attached and the trailer otherwise.

Assets are probed, not rendered: http(s) URLs must answer a HEAD or ranged
GET, file URLs must name a non-empty file.

Examples:
  netlee play 42
  netlee play 550 --origin tmdb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := media.ParseOrigin(origin)
			if err != nil {
				return err
			}
			return runPlay(cmd, media.ContentRef{ID: args[0], Origin: o}, trailerHost, timeout)
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "local", "Origin: local, catalog (or tmdb)")
	cmd.Flags().StringVar(&trailerHost, "trailer-host", "www.youtube.com", "Host serving trailer embeds")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up after this long")
	return cmd
}

func runPlay(cmd *cobra.Command, ref media.ContentRef, trailerHost string, timeout time.Duration) error {
	logger := cliLogger(cmd)
	client := newClient()
	out := cmd.OutOrStdout()

	bus := events.NewBus(nil, logger)
	defer func() { _ = bus.Close() }()
	sub := bus.SubscribeEntity(events.EntityMovie, ref.String(), 64)

	loop := playback.NewLoop()
	native := probe.NewNativePlayer(probe.WithLogger(logger))
	web := probe.NewWebPlayer()
	ctrl := playback.New(loop, resolve.New(client, client, resolve.WithLogger(logger)), native, web,
		playback.WithLogger(logger),
		playback.WithPublisher(bus),
		playback.WithTrailerHost(trailerHost),
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return loop.Run(gctx)
	})

	var final playback.View
	g.Go(func() error {
		// Stops the loop once the outcome is known.
		defer cancel()
		if err := ctrl.Mount(gctx, ref); err != nil {
			return err
		}
		if err := watchPlayback(gctx, out, ctrl, sub); err != nil {
			return err
		}
		v, err := ctrl.Snapshot(gctx)
		if err != nil {
			return err
		}
		final = v
		return ctrl.Unmount(gctx)
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s waiting for playback", timeout)
		}
		return err
	}
	native.Wait()

	if jsonOutput {
		if err := printJSON(out, final); err != nil {
			return err
		}
	} else {
		printOutcome(out, final)
	}

	switch final.Session.Phase {
	case playback.PhaseFailed, playback.PhaseUnavailable:
		return fmt.Errorf("playback %s", final.Session.Phase)
	}
	return nil
}

// watchPlayback follows the session until it plays or ends. It starts
// playback as soon as the details are ready.
func watchPlayback(ctx context.Context, out io.Writer, ctrl *playback.Controller, sub <-chan events.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-sub:
			if !ok {
				return errors.New("event bus closed")
			}
			switch ev := e.(type) {
			case *events.ResolveCompleted:
				if !jsonOutput {
					fmt.Fprintf(out, "resolved: %s\n", ev.Title)
				}
			case *events.FallbackTriggered:
				if !jsonOutput {
					fmt.Fprintf(out, "fallback: %s -> %s (%s)\n", ev.FromURL, ev.ToURL, ev.Reason)
				}
			case *events.PlaybackLoaded:
				if !jsonOutput {
					fmt.Fprintf(out, "loaded:   %s\n", ev.URL)
				}
				return nil
			case *events.PhaseChanged:
				if !jsonOutput {
					fmt.Fprintf(out, "phase:    %s -> %s\n", ev.From, ev.To)
				}
				switch playback.Phase(ev.To) {
				case playback.PhaseDetailsReady:
					if err := ctrl.Play(ctx); err != nil {
						return err
					}
				case playback.PhasePlayingTrailer, playback.PhaseFailed, playback.PhaseUnavailable:
					return nil
				}
			}
		}
	}
}

func printOutcome(w io.Writer, v playback.View) {
	fmt.Fprintln(w)
	printRecord(w, v.Record)
	fmt.Fprintf(w, "%-10s %s\n", "Phase:", v.Session.Phase)
	if v.Session.ActiveAssetURL != "" {
		fmt.Fprintf(w, "%-10s %s\n", "Playing:", v.Session.ActiveAssetURL)
	}
	if v.Session.UsedFallback {
		fmt.Fprintf(w, "%-10s yes\n", "Fallback:")
	}
	if msg := v.ErrorMessage(); msg != "" {
		fmt.Fprintf(w, "%-10s %s (%s)\n", "Error:", msg, v.Session.LastError)
	}
}
