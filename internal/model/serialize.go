package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when a serialized trip collection cannot be decoded.
var ErrMalformed = errors.New("malformed trip collection")

// EncodeTrips serializes a collection to its persisted form: a JSON array of
// trip objects. A nil location list is written as an empty array.
func EncodeTrips(trips []Trip) (string, error) {
	out := make([]Trip, len(trips))
	for i, t := range trips {
		out[i] = t
		if out[i].SavedLocations == nil {
			out[i].SavedLocations = []string{}
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to encode trips: %w", err)
	}
	return string(data), nil
}

// DecodeTrips parses the persisted form produced by EncodeTrips.
// Anything other than an array of trip objects with unique, non-empty ids
// returns an error wrapping ErrMalformed.
func DecodeTrips(data string) ([]Trip, error) {
	raw := bytes.TrimSpace([]byte(data))
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformed)
	}

	var trips []Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[string]bool, len(trips))
	for i, t := range trips {
		if err := ValidateID(t.ID); err != nil {
			return nil, fmt.Errorf("%w: trip %d: %v", ErrMalformed, i, err)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, t.ID)
		}
		seen[t.ID] = true
	}

	if trips == nil {
		trips = []Trip{}
	}
	return trips, nil
}

// MarshalTripYAML renders a trip as a YAML document for editing.
// Field order is fixed. Multi-line notes use block scalar style.
func MarshalTripYAML(t *Trip) ([]byte, error) {
	data, err := yaml.Marshal(buildTripNode(t))
	if err != nil {
		return nil, fmt.Errorf("failed to encode trip: %w", err)
	}
	return data, nil
}

// MarshalTripsYAML renders a whole collection as a YAML sequence.
func MarshalTripsYAML(trips []Trip) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for i := range trips {
		seq.Content = append(seq.Content, buildTripNode(&trips[i]))
	}
	data, err := yaml.Marshal(seq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trips: %w", err)
	}
	return data, nil
}

// UnmarshalTripYAML parses a trip edited as YAML.
func UnmarshalTripYAML(data []byte) (Trip, error) {
	var t Trip
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Trip{}, fmt.Errorf("failed to parse trip: %w", err)
	}
	return t, nil
}

// buildTripNode creates a yaml.Node for a Trip.
func buildTripNode(t *Trip) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	addStringField(node, "id", t.ID)
	addStringField(node, "title", t.Title)
	addStringField(node, "destination", t.Destination)
	addStringField(node, "start_date", t.StartDate)
	addStringField(node, "end_date", t.EndDate)
	if t.Image != "" {
		addStringField(node, "image", t.Image)
	}
	if t.Notes != "" {
		addMultilineStringField(node, "notes", t.Notes)
	}
	if len(t.SavedLocations) > 0 {
		addStringSliceField(node, "saved_locations", t.SavedLocations)
	}
	addBoolField(node, "is_favorite", t.IsFavorite)

	return node
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}

func addBoolField(node *yaml.Node, key string, value bool) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%t", value), Tag: "!!bool"},
	)
}

func addStringSliceField(node *yaml.Node, key string, values []string) {
	seqNode := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range values {
		seqNode.Content = append(seqNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: v, Tag: "!!str"},
		)
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		seqNode,
	)
}

func addMultilineStringField(node *yaml.Node, key, value string) {
	style := yaml.LiteralStyle
	if !strings.Contains(value, "\n") {
		style = 0
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: style, Tag: "!!str"},
	)
}
