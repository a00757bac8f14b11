// Package cli provides terminal helpers for the trips command.
package cli

import "strings"

// MatchID resolves an id or unique id prefix against ids.
// An exact match always wins, so "trip1" picks trip1 even when
// longer ids share the prefix. Matching ignores case.
func MatchID(prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", &ValidationError{Field: "id", Message: "must not be empty"}
	}
	lower := strings.ToLower(prefix)

	for _, id := range ids {
		if strings.ToLower(id) == lower {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(strings.ToLower(id), lower) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ID: prefix}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousIDError{Prefix: prefix, Matches: matches}
	}
}
