package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/netlee/internal/media"
)

func newEventsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events [origin/id]",
		Short: "Show resolve and playback history",
		Long: `Show recent events, newest first, or the full history of one title.

Examples:
  netlee events
  netlee events local/42
  netlee events tmdb/550`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ref *media.ContentRef
			if len(args) == 1 {
				r, err := parseRef(args[0])
				if err != nil {
					return err
				}
				ref = &r
			}

			resp, err := newClient().Events(cmd.Context(), ref, limit)
			if err != nil {
				return fmt.Errorf("events failed: %w", err)
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			out := cmd.OutOrStdout()
			if len(resp.Items) == 0 {
				fmt.Fprintln(out, "No events.")
				return nil
			}
			for _, e := range resp.Items {
				fmt.Fprintf(out, "%s  %-24s %-20s %s\n", e.OccurredAt, e.EventType, e.EntityID, e.Payload)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum events to show")
	return cmd
}

// parseRef parses "origin/id".
func parseRef(s string) (media.ContentRef, error) {
	originTag, id, ok := strings.Cut(s, "/")
	if !ok || id == "" {
		return media.ContentRef{}, fmt.Errorf("expected origin/id, got %q", s)
	}
	origin, err := media.ParseOriginStrict(originTag)
	if err != nil {
		return media.ContentRef{}, err
	}
	return media.ContentRef{ID: id, Origin: origin}, nil
}
