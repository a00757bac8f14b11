package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/model"
)

var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"new"},
	Short:   "Create a new trip",
	Long: `Create a new trip at the top of your collection.

Fields you leave out get placeholders: "New Trip", "Choose Destination",
a week starting today, and a sample cover image. Fill them in later with
'trips edit'.

Examples:
  trips add
  trips add --title="Road trip" --destination=Iceland
  trips add --title=Lisbon --start=2025-05-01 --end=2025-05-06 --location=Alfama --location=Belem`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var (
	addTitle       string
	addDestination string
	addStart       string
	addEnd         string
	addImage       string
	addNotes       string
	addLocations   []string
	addFavorite    bool
)

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "trip title")
	addCmd.Flags().StringVar(&addDestination, "destination", "", "destination")
	addCmd.Flags().StringVar(&addStart, "start", "", "start date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "end date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addImage, "image", "", "cover image URL")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes")
	addCmd.Flags().StringArrayVar(&addLocations, "location", nil, "saved location (can be repeated)")
	addCmd.Flags().BoolVar(&addFavorite, "favorite", false, "mark as favorite")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	for flag, value := range map[string]string{"start": addStart, "end": addEnd} {
		if err := checkDate(flag, value); err != nil {
			return err
		}
	}

	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	trip, err := a.Manager.Create(ctx, model.TripFields{
		Title:          addTitle,
		Destination:    addDestination,
		StartDate:      addStart,
		EndDate:        addEnd,
		Image:          addImage,
		Notes:          addNotes,
		SavedLocations: addLocations,
		IsFavorite:     addFavorite,
	})
	if err != nil {
		return explain(err)
	}

	fmt.Printf("Created %s: %s\n", trip.ID, trip.Title)
	return nil
}
