package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	// ErrInvalidID is returned when an ID cannot be parsed.
	ErrInvalidID = errors.New("invalid ID format")

	// generatedIDRegex matches ids made by NewTripID, like trip1718000000000-x7Kq2p
	generatedIDRegex = regexp.MustCompile(`^trip(\d{10,})-([A-Za-z0-9]+)$`)

	// idRegex matches any acceptable trip id: no whitespace, not empty.
	idRegex = regexp.MustCompile(`^\S+$`)
)

const (
	// idAlphabet keeps ids shell- and URL-safe.
	idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	tripSuffixLen = 6
	userIDLen     = 9
)

// NewTripID returns a trip id derived from now, with a random suffix so that
// two trips created in the same millisecond still get distinct ids.
func NewTripID(now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(idAlphabet, tripSuffixLen)
	if err != nil {
		return "", fmt.Errorf("generate trip id: %w", err)
	}
	return fmt.Sprintf("trip%d-%s", now.UnixMilli(), suffix), nil
}

// NewUserID returns a user id like "user-k3j9x0q2m".
func NewUserID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, userIDLen)
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}
	return "user-" + id, nil
}

// ValidateID checks that s is usable as a trip id.
func ValidateID(s string) error {
	if !idRegex.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return nil
}

// CreatedAt extracts the creation time from an id made by NewTripID.
// Seed ids and hand-written ids return false.
func CreatedAt(id string) (time.Time, bool) {
	matches := generatedIDRegex.FindStringSubmatch(id)
	if matches == nil {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
