package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/netlee/internal/remote"
)

func newLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the local library",
	}
	cmd.AddCommand(newLibraryListCmd(), newLibraryAddCmd(), newLibraryDeleteCmd(), newLibrarySearchCmd())
	return cmd
}

func newLibraryListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().ListMovies(cmd.Context(), limit, offset)
			if err != nil {
				return fmt.Errorf("list failed: %w", err)
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			out := cmd.OutOrStdout()
			if len(resp.Items) == 0 {
				fmt.Fprintln(out, "Library is empty.")
				return nil
			}
			for _, m := range resp.Items {
				printMovieLine(out, m)
			}
			fmt.Fprintf(out, "\n%d of %d titles\n", len(resp.Items), resp.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum titles to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "Titles to skip")
	return cmd
}

func newLibraryAddCmd() *cobra.Command {
	var (
		req       remote.MovieRequest
		tmdbID    int64
		streamURL string
		directURL string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a title to the library",
		Long: `Add a title to the library. At least one of --stream-url or --direct-url
is needed for the title to be playable.

Examples:
  netlee library add "Summer 2019" --stream-url https://media.lan/summer/index.m3u8 \
      --direct-url file:///srv/media/summer.mp4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Title = args[0]
			if tmdbID > 0 {
				req.TMDBID = &tmdbID
			}
			// Unset flags stay absent rather than empty.
			if cmd.Flags().Changed("stream-url") {
				req.StreamURL = &streamURL
			}
			if cmd.Flags().Changed("direct-url") {
				req.DirectURL = &directURL
			}

			m, err := newClient().AddMovie(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("add failed: %w", err)
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q as %s\n", m.Title, m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Description, "description", "", "Description")
	cmd.Flags().IntVar(&req.Year, "year", 0, "Release year")
	cmd.Flags().Int64Var(&tmdbID, "tmdb-id", 0, "TMDB id, if the title is also in the catalog")
	cmd.Flags().StringVar(&streamURL, "stream-url", "", "Adaptive stream URL (tried first)")
	cmd.Flags().StringVar(&directURL, "direct-url", "", "Direct file URL (fallback)")
	return cmd
}

func newLibraryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a title from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeleteMovie(cmd.Context(), args[0]); err != nil {
				if remote.IsNotFound(err) {
					return fmt.Errorf("no library title %s", args[0])
				}
				return fmt.Errorf("delete failed: %w", err)
			}
			if !jsonOutput {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			}
			return nil
		},
	}
}

func newLibrarySearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search library titles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().SearchLibrary(cmd.Context(), args[0], limit)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			out := cmd.OutOrStdout()
			if len(resp.Items) == 0 {
				fmt.Fprintf(out, "No matches for %q.\n", args[0])
				return nil
			}
			for _, r := range resp.Items {
				fmt.Fprintf(out, "%3.0f%%  ", r.Score*100)
				printMovieLine(out, r.Movie)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum results")
	return cmd
}

func printMovieLine(w io.Writer, m remote.Movie) {
	title := m.Title
	if m.Year > 0 {
		title = fmt.Sprintf("%s (%d)", m.Title, m.Year)
	}
	playable := "no asset"
	if (m.StreamURL != nil && *m.StreamURL != "") || (m.DirectURL != nil && *m.DirectURL != "") {
		playable = "playable"
	}
	fmt.Fprintf(w, "%-36s  %-40s  %s\n", m.ID, title, playable)
}
