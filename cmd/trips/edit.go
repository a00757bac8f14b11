package main

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/app"
	"github.com/jacksmith/trips/internal/cli"
	"github.com/jacksmith/trips/internal/model"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a trip",
	Long: `Edit a trip's fields.

Use flags to change specific fields, or -i to edit the whole trip as YAML
in $EDITOR. Changes are validated before they are saved: dates must be
YYYY-MM-DD, the end date cannot precede the start date, and the image
must be a URL.

Examples:
  trips edit trip1 --title="Two weeks in Paris"
  trips edit trip1 --end=2023-06-29
  trips edit trip1 --locations="Louvre,Montmartre"   # replaces all locations
  trips edit trip1 --add-location="Musee d'Orsay"    # adds a location
  trips edit trip1 --remove-location=Louvre          # removes a location
  trips edit trip1 --favorite=false
  trips edit trip1 -i                                # open in $EDITOR`,
	Args:              cobra.ExactArgs(1),
	RunE:              runEdit,
	ValidArgsFunction: completeTripIDs,
}

var (
	editTitle          string
	editDestination    string
	editStart          string
	editEnd            string
	editImage          string
	editNotes          string
	editLocations      string
	editAddLocation    []string
	editRemoveLocation []string
	editFavorite       string // "true", "false", or ""
	editInteractive    bool
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "set trip title")
	editCmd.Flags().StringVar(&editDestination, "destination", "", "set destination")
	editCmd.Flags().StringVar(&editStart, "start", "", "set start date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editEnd, "end", "", "set end date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editImage, "image", "", "set cover image URL")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "set notes")
	editCmd.Flags().StringVar(&editLocations, "locations", "", "replace all saved locations (comma-separated)")
	editCmd.Flags().StringArrayVar(&editAddLocation, "add-location", nil, "add a saved location")
	editCmd.Flags().StringArrayVar(&editRemoveLocation, "remove-location", nil, "remove a saved location")
	editCmd.Flags().StringVar(&editFavorite, "favorite", "", "set favorite (true/false)")
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "edit in $EDITOR")

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	if editInteractive {
		return runEditInteractive(cmd, a, trip)
	}

	changed, err := applyEditFlags(cmd, &trip)
	if err != nil {
		return err
	}
	if !changed {
		return cli.WithHint(errors.New("no changes specified"), "Pass a flag such as --title, or use -i to open $EDITOR.")
	}

	if _, err := a.Manager.Save(ctx, trip); err != nil {
		return explain(err)
	}

	fmt.Printf("%s updated.\n", trip.ID)
	return nil
}

// applyEditFlags copies every flag the user set onto trip.
func applyEditFlags(cmd *cobra.Command, trip *model.Trip) (bool, error) {
	flags := cmd.Flags()
	changed := false

	strFields := []struct {
		name  string
		value string
		dst   *string
	}{
		{"title", editTitle, &trip.Title},
		{"destination", editDestination, &trip.Destination},
		{"start", editStart, &trip.StartDate},
		{"end", editEnd, &trip.EndDate},
		{"image", editImage, &trip.Image},
		{"notes", editNotes, &trip.Notes},
	}
	for _, f := range strFields {
		if flags.Changed(f.name) {
			*f.dst = f.value
			changed = true
		}
	}

	if editFavorite != "" {
		switch strings.ToLower(editFavorite) {
		case "true", "yes", "1":
			trip.IsFavorite = true
		case "false", "no", "0":
			trip.IsFavorite = false
		default:
			return false, &cli.ValidationError{Field: "favorite", Message: fmt.Sprintf("%q (expected true/false)", editFavorite)}
		}
		changed = true
	}

	// --locations replaces the list; add and remove apply after it.
	if flags.Changed("locations") {
		trip.SavedLocations = splitList(editLocations)
		changed = true
	}
	for _, loc := range editAddLocation {
		if loc = strings.TrimSpace(loc); loc != "" {
			trip.SavedLocations = append(trip.SavedLocations, loc)
			changed = true
		}
	}
	for _, loc := range editRemoveLocation {
		loc = strings.TrimSpace(loc)
		i := slices.Index(trip.SavedLocations, loc)
		if i < 0 {
			return false, &cli.ValidationError{Field: "remove-location", Message: fmt.Sprintf("%q is not saved on %s", loc, trip.ID)}
		}
		trip.SavedLocations = slices.Delete(trip.SavedLocations, i, i+1)
		changed = true
	}

	return changed, nil
}

func runEditInteractive(cmd *cobra.Command, a *app.App, trip model.Trip) error {
	ctx := commandContext(cmd)

	content, err := model.MarshalTripYAML(&trip)
	if err != nil {
		return err
	}

	var saved model.Trip
	unchanged := false
	err = cli.NewEditor().EditUntilValid(ctx, content, ".yaml", func(data []byte) error {
		if bytes.Equal(data, content) {
			unchanged = true
			return nil
		}
		edited, err := model.UnmarshalTripYAML(data)
		if err != nil {
			return err
		}
		// The id cannot be changed from the editor.
		edited.ID = trip.ID
		saved, err = a.Manager.Save(ctx, edited)
		return err
	})
	// A bare abort means the user backed out; a wrapped one carries the
	// validation error they gave up on.
	if err == cli.ErrEditAborted {
		fmt.Println("No changes made.")
		return nil
	}
	if err != nil {
		return explain(err)
	}
	if unchanged {
		fmt.Println("No changes made.")
		return nil
	}

	fmt.Printf("%s updated.\n", saved.ID)
	return nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
