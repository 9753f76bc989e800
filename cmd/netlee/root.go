package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/netlee/internal/remote"
)

var version = "dev"

var (
	serverURL  string
	apiToken   string
	jsonOutput bool
	verbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "netlee",
		Short: "CLI client for the netlee movie server",
		Long: `netlee - CLI client for the netlee movie server

Resolve titles from your own library or the TMDB catalog, check that
they play, and manage the library.

Run 'netleed' to start the server daemon.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&serverURL, "server", envOr("NETLEE_SERVER", "http://localhost:8585"), "Server URL")
	root.PersistentFlags().StringVar(&apiToken, "token", os.Getenv("NETLEE_TOKEN"), "API token")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log player and resolver activity to stderr")

	root.Version = version
	root.SetVersionTemplate("netlee {{.Version}}\n")

	root.AddCommand(
		newStatusCmd(),
		newResolveCmd(),
		newPlayCmd(),
		newLibraryCmd(),
		newCatalogCmd(),
		newEventsCmd(),
	)
	return root
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *remote.Client {
	return remote.NewClient(serverURL, remote.WithToken(apiToken))
}

// cliLogger logs to stderr with --verbose and discards otherwise.
func cliLogger(cmd *cobra.Command) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
