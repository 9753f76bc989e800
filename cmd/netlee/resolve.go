package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/netlee/internal/media"
)

func newResolveCmd() *cobra.Command {
	var origin string
	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve a title into its normalized record",
		Long: `Resolve a title on the server and show what the details screen would show.

Examples:
  netlee resolve 42                  # local library title
  netlee resolve 550 --origin tmdb   # TMDB catalog title`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := media.ParseOrigin(origin)
			if err != nil {
				return err
			}
			resp, err := newClient().Resolve(cmd.Context(), media.ContentRef{ID: args[0], Origin: o})
			if err != nil {
				return fmt.Errorf("resolve failed (%s): %w", media.KindOf(err), err)
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printRecord(cmd.OutOrStdout(), resp.Record)
			if resp.TrailerURL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Trailer:   %s\n", resp.TrailerURL)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "local", "Origin: local, catalog (or tmdb)")
	return cmd
}

func printRecord(w io.Writer, rec *media.MovieRecord) {
	if rec == nil {
		return
	}
	fmt.Fprintf(w, "Title:     %s\n", rec.Title)
	fmt.Fprintf(w, "Origin:    %s\n", rec.Origin)
	if rec.Description != "" {
		fmt.Fprintf(w, "About:     %s\n", rec.Description)
	}
	if p := rec.Presentation; p != nil {
		var facts []string
		if p.ReleaseYear > 0 {
			facts = append(facts, fmt.Sprint(p.ReleaseYear))
		}
		if p.RuntimeMinutes > 0 {
			facts = append(facts, fmt.Sprintf("%dm", p.RuntimeMinutes))
		}
		if p.Rating > 0 {
			facts = append(facts, fmt.Sprintf("%.1f/10", p.Rating))
		}
		if len(p.Genres) > 0 {
			facts = append(facts, strings.Join(p.Genres, ", "))
		}
		if len(facts) > 0 {
			fmt.Fprintf(w, "Info:      %s\n", strings.Join(facts, " | "))
		}
		if p.BackdropURL != "" {
			fmt.Fprintf(w, "Backdrop:  %s\n", p.BackdropURL)
		}
	}
	printAsset(w, "Asset", rec.PrimaryAsset)
	printAsset(w, "Full", rec.FullAsset)
}

func printAsset(w io.Writer, label string, a *media.AssetRef) {
	if a == nil {
		return
	}
	for i, u := range a.Candidates() {
		if i > 0 {
			label = "Fallback"
		}
		fmt.Fprintf(w, "%-10s %s\n", label+":", u)
	}
	if !a.Playable() {
		fmt.Fprintf(w, "%-10s (no playable url)\n", label+":")
	}
}
