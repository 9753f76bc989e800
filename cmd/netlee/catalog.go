package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage full-length assets for catalog titles",
	}
	cmd.AddCommand(newSetAssetCmd(), newClearAssetCmd())
	return cmd
}

func parseTMDBID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid TMDB id: %s", s)
	}
	return id, nil
}

func newSetAssetCmd() *cobra.Command {
	var streamURL, directURL string
	cmd := &cobra.Command{
		Use:   "set-asset <tmdb-id>",
		Short: "Attach a full movie to a catalog title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTMDBID(args[0])
			if err != nil {
				return err
			}
			var stream, direct *string
			if cmd.Flags().Changed("stream-url") {
				stream = &streamURL
			}
			if cmd.Flags().Changed("direct-url") {
				direct = &directURL
			}
			if stream == nil && direct == nil {
				return errors.New("one of --stream-url or --direct-url is required")
			}

			a, err := newClient().SetCatalogAsset(cmd.Context(), id, stream, direct)
			if err != nil {
				return fmt.Errorf("set asset failed: %w", err)
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), a)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Full movie attached to TMDB %d\n", a.TMDBID)
			return nil
		},
	}
	cmd.Flags().StringVar(&streamURL, "stream-url", "", "Adaptive stream URL")
	cmd.Flags().StringVar(&directURL, "direct-url", "", "Direct file URL")
	return cmd
}

func newClearAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-asset <tmdb-id>",
		Short: "Remove the full movie from a catalog title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTMDBID(args[0])
			if err != nil {
				return err
			}
			if err := newClient().ClearCatalogAsset(cmd.Context(), id); err != nil {
				return fmt.Errorf("clear asset failed: %w", err)
			}
			if !jsonOutput {
				fmt.Fprintf(cmd.OutOrStdout(), "Full movie removed from TMDB %d\n", id)
			}
			return nil
		},
	}
}
