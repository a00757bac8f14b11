package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/trips/internal/cli"
	"github.com/jacksmith/trips/internal/model"
)

const (
	// previewLocations is how many saved locations a card or row shows.
	previewLocations = 2
	// cardWidth is the width of one card in the grid view.
	cardWidth = 36
)

func favoriteMark(t model.Trip) string {
	if t.IsFavorite {
		return cli.Yellow("★")
	}
	return cli.Gray("☆")
}

func dateRange(t model.Trip) string {
	return model.FormatDisplayDate(t.StartDate) + " - " + model.FormatDisplayDate(t.EndDate)
}

// locationSummary lists the first few saved locations and how many more exist.
func locationSummary(t model.Trip) string {
	shown, more := t.LocationPreview(previewLocations)
	s := strings.Join(shown, ", ")
	if more > 0 {
		s += cli.Gray(fmt.Sprintf(" +%d more", more))
	}
	return s
}

// renderGrid prints trips as cards.
func renderGrid(w io.Writer, trips []model.Trip) {
	cards := make([]cli.Card, len(trips))
	for i, t := range trips {
		lines := []string{
			t.Destination,
			cli.Gray(dateRange(t)),
		}
		if len(t.SavedLocations) > 0 {
			lines = append(lines, locationSummary(t))
		}
		lines = append(lines, cli.Gray(t.ID))
		cards[i] = cli.Card{
			Title: favoriteMark(t) + " " + cli.Bold(t.Title),
			Lines: lines,
		}
	}
	cli.RenderGrid(w, cards, cli.GridColumns(cli.TerminalWidth(w), cardWidth), cardWidth)
}

// renderTable prints trips one per row.
func renderTable(w io.Writer, trips []model.Trip) {
	table := cli.NewTable()
	table.SetMaxWidth(2, cli.DefaultMaxTitleWidth)
	table.SetMaxWidth(3, 30)
	for _, t := range trips {
		table.AddRow(
			favoriteMark(t),
			t.ID,
			t.Title,
			t.Destination,
			dateRange(t),
			locationSummary(t),
		)
	}
	table.Render(w)
}

// renderTrip prints every field of one trip.
func renderTrip(w io.Writer, t model.Trip) {
	fmt.Fprintf(w, "%s %s\n", favoriteMark(t), cli.Bold(t.Title))
	fmt.Fprintf(w, "%s\n\n", cli.Gray(t.ID))

	fmt.Fprintf(w, "Destination: %s\n", t.Destination)
	fmt.Fprintf(w, "Dates:       %s\n", dateRange(t))
	if created, ok := model.CreatedAt(t.ID); ok {
		fmt.Fprintf(w, "Created:     %s\n", created.Local().Format("Jan 2, 2006 15:04"))
	}
	if t.Image != "" {
		fmt.Fprintf(w, "Image:       %s\n", t.Image)
	}
	if t.IsFavorite {
		fmt.Fprintln(w, "Favorite:    yes")
	}

	if len(t.SavedLocations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Saved locations:")
		for _, loc := range t.SavedLocations {
			fmt.Fprintf(w, "  - %s\n", loc)
		}
	}

	if t.Notes != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Notes:")
		for _, line := range strings.Split(t.Notes, "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
