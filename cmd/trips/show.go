package main

import (
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a trip",
	Long: `Show every detail of a saved trip.

The id may be abbreviated to any unique prefix.

Examples:
  trips show trip1`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeTripIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := loadApp(commandContext(cmd))
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

	renderTrip(os.Stdout, trip)
	return nil
}
