package services

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"shiptix/internal/domain/models"
)

// PassengerPolicy decides whether adults may drop to zero when seniors
// already cover the fare-eligible minimum.
type PassengerPolicy string

const (
	PolicySimple   PassengerPolicy = "simple"
	PolicyFlexible PassengerPolicy = "flexible"
)

func ParsePassengerPolicy(s string) PassengerPolicy {
	if PassengerPolicy(strings.ToLower(strings.TrimSpace(s))) == PolicyFlexible {
		return PolicyFlexible
	}
	return PolicySimple
}

// PassengerCounter edits passenger counts per category with floors.
type PassengerCounter struct {
	Policy PassengerPolicy
}

// Min is the floor of cat given the rest of the party.
func (c PassengerCounter) Min(cat models.PassengerCategory, counts models.PassengerCounts) int {
	switch cat {
	case models.PassengerAdult:
		if c.Policy == PolicyFlexible && counts.Seniors >= 1 {
			return 0
		}
		return 1
	case models.PassengerSenior:
		if c.Policy == PolicyFlexible && counts.Adults == 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (c PassengerCounter) Increment(counts models.PassengerCounts, cat models.PassengerCategory) models.PassengerCounts {
	return counts.With(cat, counts.Get(cat)+1)
}

// Decrement never goes below the category floor.
func (c PassengerCounter) Decrement(counts models.PassengerCounts, cat models.PassengerCategory) models.PassengerCounts {
	cur := counts.Get(cat)
	if cur-1 < c.Min(cat, counts) {
		return counts
	}
	return counts.With(cat, cur-1)
}

// Set stores a directly typed value: numbers are truncated to integers,
// negatives and unparsable text become 0.
func (c PassengerCounter) Set(counts models.PassengerCounts, cat models.PassengerCategory, raw any) models.PassengerCounts {
	return counts.With(cat, ParseCount(raw))
}

// ParseCount normalizes user input to a non-negative integer.
func ParseCount(raw any) int {
	if s, ok := raw.(string); ok {
		return parseDecimalPrefix(s)
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		f, ferr := cast.ToFloat64E(raw)
		if ferr != nil {
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

// parseDecimalPrefix reads the leading base-10 digits of s: "010" is 10,
// "2.5" is 2, "0x10" is 0. Negative or digitless text is 0.
func parseDecimalPrefix(s string) int {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return 0
	}
	s = strings.TrimPrefix(s, "+")
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		s = s[:end]
	}
	// cast reads a leading zero as octal
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return 0
	}
	n, err := cast.ToIntE(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NormalizeCounts maps raw {"adults": "2", "infant": 1, ...} input onto
// counts. Unknown keys are ignored. Aliases of one category are applied in
// key order, so the lexically last alias wins.
func NormalizeCounts(raw map[string]any) models.PassengerCounts {
	var out models.PassengerCounts
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		cat, ok := models.ParsePassengerCategory(k)
		if !ok {
			continue
		}
		out = out.With(cat, ParseCount(raw[k]))
	}
	return out
}
