package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWait is applied when a wait step omits its duration. Overridable
// per engine, documented rather than hidden.
const DefaultWait = 24 * time.Hour

// ErrInvalidDuration indicates a non-empty duration string that matched no
// known unit.
var ErrInvalidDuration = errors.New("invalid wait duration")

var (
	hoursPattern = regexp.MustCompile(`(\d+)\s*hour`)
	daysPattern  = regexp.MustCompile(`(\d+)\s*day`)
	weeksPattern = regexp.MustCompile(`(\d+)\s*week`)
)

// ParseWaitDuration parses human wait phrases of the form "<N> hour(s)",
// "<N> day(s)" or "<N> week(s)". An empty string is not an error here; the
// caller decides whether to apply DefaultWait.
func ParseWaitDuration(input string) (time.Duration, error) {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidDuration)
	}

	if match := hoursPattern.FindStringSubmatch(lower); match != nil {
		return scaled(match[1], time.Hour)
	}

	if match := daysPattern.FindStringSubmatch(lower); match != nil {
		return scaled(match[1], 24*time.Hour)
	}

	if match := weeksPattern.FindStringSubmatch(lower); match != nil {
		return scaled(match[1], 7*24*time.Hour)
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, input)
}

func scaled(digits string, unit time.Duration) (time.Duration, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, digits)
	}

	return time.Duration(n) * unit, nil
}
