package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTrip_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 30, 15, 4, 5, 0, time.UTC)

	trip := NewTrip("trip42", TripFields{}, now)

	assert.Equal(t, "trip42", trip.ID)
	assert.Equal(t, DefaultTitle, trip.Title)
	assert.Equal(t, DefaultDestination, trip.Destination)
	assert.Equal(t, "2026-03-30", trip.StartDate)
	assert.Equal(t, "2026-04-06", trip.EndDate)
	assert.Equal(t, DefaultImage, trip.Image)
	assert.Equal(t, DefaultNotes, trip.Notes)
	assert.NotNil(t, trip.SavedLocations)
	assert.Empty(t, trip.SavedLocations)
	assert.False(t, trip.IsFavorite)
}

func TestNewTrip_SuppliedFields(t *testing.T) {
	locations := []string{"Oia"}
	trip := NewTrip("trip42", TripFields{
		Title:          "Santorini",
		Destination:    "Greece",
		StartDate:      "2025-05-01",
		SavedLocations: locations,
		IsFavorite:     true,
	}, time.Now())

	assert.Equal(t, "Santorini", trip.Title)
	assert.Equal(t, "Greece", trip.Destination)
	assert.Equal(t, "2025-05-01", trip.StartDate)
	assert.Equal(t, []string{"Oia"}, trip.SavedLocations)
	assert.True(t, trip.IsFavorite)

	// The caller's slice must not be shared.
	locations[0] = "Changed"
	assert.Equal(t, "Oia", trip.SavedLocations[0])
}

func TestClone(t *testing.T) {
	orig := SeedTrips()[0]
	c := orig.Clone()
	c.SavedLocations[0] = "Changed"
	assert.Equal(t, "Eiffel Tower", orig.SavedLocations[0])

	var empty Trip
	assert.Nil(t, empty.Clone().SavedLocations)
}

func TestLocationPreview(t *testing.T) {
	trip := SeedTrips()[0]

	shown, more := trip.LocationPreview(2)
	assert.Equal(t, []string{"Eiffel Tower", "Louvre Museum"}, shown)
	assert.Equal(t, 2, more)

	shown, more = trip.LocationPreview(10)
	assert.Len(t, shown, 4)
	assert.Equal(t, 0, more)

	shown, more = trip.LocationPreview(-1)
	assert.Empty(t, shown)
	assert.Equal(t, 4, more)
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "Jun 15, 2023", FormatDisplayDate("2023-06-15"))
	assert.Equal(t, "Jan 1, 2024", FormatDisplayDate("2024-01-01"))
	assert.Equal(t, "someday", FormatDisplayDate("someday"))
}

func TestStartEnd(t *testing.T) {
	trip := SeedTrips()[2]
	assert.Equal(t, 2024, trip.Start().Year())
	assert.Equal(t, time.July, trip.End().Month())

	trip.StartDate = "bad"
	assert.True(t, trip.Start().IsZero())
}

func TestCloneAll(t *testing.T) {
	trips := SeedTrips()
	c := CloneAll(trips)
	c[0].Title = "Changed"
	c[1].SavedLocations[0] = "Changed"
	assert.Equal(t, "Week in Paris", trips[0].Title)
	assert.Equal(t, "Tokyo Tower", trips[1].SavedLocations[0])
}
