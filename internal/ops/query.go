package ops

import (
	"strings"

	"github.com/jacksmith/trips/internal/model"
)

// Haystack returns the lowercase text a query is matched against:
// title, destination and notes.
func Haystack(t model.Trip) string {
	return strings.ToLower(t.Title + " " + t.Destination + " " + t.Notes)
}

// Terms splits a query into lowercase whitespace-separated terms.
// An empty or blank query has no terms.
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Filter returns the trips whose haystack contains every term of query
// (AND logic), in their original order. An empty query matches everything.
// The input slice is not modified and the result never aliases it.
func Filter(trips []model.Trip, query string) []model.Trip {
	terms := Terms(query)
	results := make([]model.Trip, 0, len(trips))
	for _, t := range trips {
		if matchesTerms(t, terms) {
			results = append(results, t.Clone())
		}
	}
	return results
}

func matchesTerms(t model.Trip, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := Haystack(t)
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// Favorites returns the favorited trips in their original order.
func Favorites(trips []model.Trip) []model.Trip {
	results := make([]model.Trip, 0, len(trips))
	for _, t := range trips {
		if t.IsFavorite {
			results = append(results, t.Clone())
		}
	}
	return results
}
