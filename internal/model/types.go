// Package model defines the core data structures for trips.
package model

import "time"

// DateLayout is the calendar date format used for trip start and end dates.
const DateLayout = "2006-01-02"

// Trip is a single saved travel plan.
type Trip struct {
	ID             string   `json:"id" yaml:"id" validate:"required"`
	Title          string   `json:"title" yaml:"title" validate:"required"`
	Destination    string   `json:"destination" yaml:"destination"`
	StartDate      string   `json:"startDate" yaml:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string   `json:"endDate" yaml:"end_date" validate:"required,datetime=2006-01-02"`
	Image          string   `json:"image" yaml:"image,omitempty" validate:"omitempty,url"`
	Notes          string   `json:"notes" yaml:"notes,omitempty"`
	SavedLocations []string `json:"savedLocations" yaml:"saved_locations,omitempty"`
	IsFavorite     bool     `json:"isFavorite" yaml:"is_favorite"`
}

// TripFields holds the caller-supplied fields for a new trip.
// Empty fields fall back to the defaults used by NewTrip.
type TripFields struct {
	Title          string
	Destination    string
	StartDate      string
	EndDate        string
	Image          string
	Notes          string
	SavedLocations []string
	IsFavorite     bool
}

// Defaults for a newly created trip.
const (
	DefaultTitle       = "New Trip"
	DefaultDestination = "Choose Destination"
	DefaultNotes       = "Add your notes here..."
	DefaultImage       = "https://images.unsplash.com/photo-1488085061387-422e29b40080?q=80&w=1631&auto=format&fit=crop&ixlib=rb-4.0.3"

	// DefaultTripLength is the span between the default start and end dates.
	DefaultTripLength = 7 * 24 * time.Hour
)

// NewTrip builds a trip with the given id, filling unset fields with defaults.
// Dates default to now and now + DefaultTripLength.
func NewTrip(id string, f TripFields, now time.Time) Trip {
	t := Trip{
		ID:             id,
		Title:          orDefault(f.Title, DefaultTitle),
		Destination:    orDefault(f.Destination, DefaultDestination),
		StartDate:      orDefault(f.StartDate, now.Format(DateLayout)),
		EndDate:        orDefault(f.EndDate, now.Add(DefaultTripLength).Format(DateLayout)),
		Image:          orDefault(f.Image, DefaultImage),
		Notes:          orDefault(f.Notes, DefaultNotes),
		SavedLocations: append([]string{}, f.SavedLocations...),
		IsFavorite:     f.IsFavorite,
	}
	return t
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Clone returns a copy of t that shares no memory with it.
func (t Trip) Clone() Trip {
	c := t
	if t.SavedLocations != nil {
		c.SavedLocations = append([]string{}, t.SavedLocations...)
	}
	return c
}

// LocationPreview returns at most n saved locations and how many were left out.
func (t Trip) LocationPreview(n int) (shown []string, more int) {
	if n < 0 {
		n = 0
	}
	if len(t.SavedLocations) <= n {
		return t.SavedLocations, 0
	}
	return t.SavedLocations[:n], len(t.SavedLocations) - n
}

// Start parses StartDate. The zero time is returned if it is not a valid date.
func (t Trip) Start() time.Time {
	d, _ := time.Parse(DateLayout, t.StartDate)
	return d
}

// End parses EndDate. The zero time is returned if it is not a valid date.
func (t Trip) End() time.Time {
	d, _ := time.Parse(DateLayout, t.EndDate)
	return d
}

// FormatDisplayDate renders an ISO date as "Jun 15, 2023".
// Values that do not parse are returned unchanged.
func FormatDisplayDate(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Jan 2, 2006")
}

// CloneAll deep-copies a slice of trips.
func CloneAll(trips []Trip) []Trip {
	out := make([]Trip, len(trips))
	for i, t := range trips {
		out[i] = t.Clone()
	}
	return out
}
