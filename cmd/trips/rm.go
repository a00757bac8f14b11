package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/cli"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a trip",
	Long: `Delete a trip permanently.

You are asked to confirm unless --yes is given.

Examples:
  trips rm trip1
  trips rm trip1 --yes`,
	Args:              cobra.ExactArgs(1),
	RunE:              runRm,
	ValidArgsFunction: completeTripIDs,
}

var rmYes bool

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveID(a, args[0])
	if err != nil {
		return err
	}
	trip, err := a.Manager.Get(id)
	if err != nil {
		return explain(err)
	}

	if !rmYes {
		ok, err := cli.Confirm(stdin, os.Stdout, fmt.Sprintf("Delete %q (%s)? This cannot be undone.", trip.Title, trip.ID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := a.Manager.Delete(ctx, id); err != nil {
		return explain(err)
	}

	fmt.Printf("Deleted %s.\n", id)
	return nil
}
