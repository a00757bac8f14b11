package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/trips/internal/model"
)

func ids(trips []model.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = t.ID
	}
	return out
}

// isSubsequence reports whether sub appears in seq in order.
func isSubsequence(sub, seq []string) bool {
	i := 0
	for _, s := range seq {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}
	return i == len(sub)
}

func TestFilter(t *testing.T) {
	trips := model.SeedTrips()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"trip1", "trip2", "trip3"}},
		{"   ", []string{"trip1", "trip2", "trip3"}},
		{"paris week", []string{"trip1"}},
		{"PARIS", []string{"trip1"}},
		{"greek", []string{"trip3"}},
		{"tokyo", []string{"trip2"}},
		{"ramen", []string{"trip2"}},
		{"visit", []string{"trip1", "trip3"}},
		{"visit mykonos", []string{"trip3"}},
		{"paris tokyo", []string{}},
		{"zanzibar", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(trips, tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterSubsequence(t *testing.T) {
	trips := model.SeedTrips()
	all := ids(trips)

	for _, q := range []string{"", "a", "e", "tower", "visit", "in", "the of", "x y z"} {
		got := ids(Filter(trips, q))
		assert.True(t, isSubsequence(got, all), "query %q: %v is not a subsequence of %v", q, got, all)
	}
}

func TestFilterANDSemantics(t *testing.T) {
	trips := model.SeedTrips()

	for _, q := range []string{"paris week", "visit the", "tower tokyo"} {
		for _, trip := range trips {
			hay := Haystack(trip)
			want := true
			for _, term := range Terms(q) {
				if !containsTerm(hay, term) {
					want = false
				}
			}
			got := contains(ids(Filter(trips, q)), trip.ID)
			assert.Equal(t, want, got, "query %q trip %s", q, trip.ID)
		}
	}
}

func containsTerm(hay, term string) bool {
	for i := 0; i+len(term) <= len(hay); i++ {
		if hay[i:i+len(term)] == term {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestFilterDoesNotAlias(t *testing.T) {
	trips := model.SeedTrips()

	got := Filter(trips, "paris")
	require.Len(t, got, 1)
	got[0].Title = "changed"
	got[0].SavedLocations[0] = "changed"

	assert.Equal(t, "Week in Paris", trips[0].Title)
	assert.Equal(t, "Eiffel Tower", trips[0].SavedLocations[0])
}

func TestHaystack(t *testing.T) {
	trip := model.Trip{Title: "Week in Paris", Destination: "Paris, France", Notes: "Croissants"}
	assert.Equal(t, "week in paris paris, france croissants", Haystack(trip))
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"paris", "week"}, Terms("  Paris\tWEEK "))
	assert.Empty(t, Terms(""))
}

func TestFavorites(t *testing.T) {
	assert.Equal(t, []string{"trip1", "trip3"}, ids(Favorites(model.SeedTrips())))
	assert.Empty(t, Favorites(nil))
}
