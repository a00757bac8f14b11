package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:     "fav <id>",
	Aliases: []string{"favorite"},
	Short:   "Toggle a trip's favorite flag",
	Long: `Mark a trip as a favorite, or unmark it if it already is one.

Examples:
  trips fav trip2`,
	Args:              cobra.ExactArgs(1),
	RunE:              runFav,
	ValidArgsFunction: completeTripIDs,
}

func init() {
	rootCmd.AddCommand(favCmd)
}

func runFav(cmd *cobra.Command, args []string) error {
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

	trip, err := a.Manager.ToggleFavorite(ctx, id)
	if err != nil {
		return explain(err)
	}

	if trip.IsFavorite {
		fmt.Printf("%s %s added to favorites.\n", favoriteMark(trip), trip.ID)
	} else {
		fmt.Printf("%s %s removed from favorites.\n", favoriteMark(trip), trip.ID)
	}
	return nil
}
