package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/cli"
	"github.com/jacksmith/trips/internal/ops"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace all trips with the sample trips",
	Long: `Discard every saved trip and restore the three sample trips.

You are asked to confirm unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetYes bool

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.Session.IsAuthenticated() {
		return explain(ops.ErrUnauthorized)
	}

	if !resetYes {
		ok, err := cli.Confirm(stdin, os.Stdout, "Replace all saved trips with the sample trips?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := a.Manager.Reset(ctx); err != nil {
		return explain(err)
	}

	fmt.Println("Restored the sample trips.")
	return nil
}
