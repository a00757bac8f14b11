// Package main is the entry point for the trips CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trips",
	Short: "trips - keep your saved travel plans in one place",
	Long: `trips manages a personal collection of saved trips: where you are going,
when, what you want to see, and which plans are favorites.

The collection lives in a .trips/ directory (or a badger or redis store,
see .tripsconfig.yaml). Changing trips requires signing in with
'trips login'; searching and listing work once you are signed in.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	rootDir   string
	rootQuiet bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", ".", "directory containing .trips/")
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "do not print notices")

	// Use our own completion command with trip id completion
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetVersionTemplate("trips version {{.Version}}\n")
}
