package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newClient().Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("status check failed: %w", err)
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), s)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server:    %s (%s)\n", serverURL, s.Status)
			fmt.Fprintf(out, "Version:   %s\n", s.Version)
			fmt.Fprintf(out, "Movies:    %d\n", s.Movies)
			fmt.Fprintf(out, "Catalog:   %s\n", enabled(s.Catalog))
			fmt.Fprintf(out, "Event log: %s\n", enabled(s.EventLog))
			return nil
		},
	}
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
