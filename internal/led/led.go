// Package led defines the shared LED state record and its value parsing rules.
package led

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is one of the three supported LED colors.
type Color int

const (
	Red Color = iota
	Green
	Blue
)

// Rate bounds for the blink frequency, inclusive.
const (
	MinRate = 1
	MaxRate = 5
)

// State is the authoritative LED state record.
type State struct {
	Active bool
	Color  Color
	Rate   int
}

// Default returns the startup state: off, red, slowest rate.
func Default() State {
	return State{Active: false, Color: Red, Rate: MinRate}
}

// Equal reports field-wise equality of two state records.
func (s State) Equal(other State) bool {
	return s.Active == other.Active && s.Color == other.Color && s.Rate == other.Rate
}

// String renders the state in the display form `{ on, red, 3 }`.
func (s State) String() string {
	return fmt.Sprintf("{ %s, %s, %d }", FormatActive(s.Active), s.Color, s.Rate)
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// ParseColor matches a color token case-insensitively.
func ParseColor(token string) (Color, error) {
	switch {
	case strings.EqualFold(token, "red"):
		return Red, nil
	case strings.EqualFold(token, "green"):
		return Green, nil
	case strings.EqualFold(token, "blue"):
		return Blue, nil
	default:
		return Red, fmt.Errorf("unknown color %q", token)
	}
}

// ParseActive matches an on/off token case-insensitively.
func ParseActive(token string) (bool, error) {
	switch {
	case strings.EqualFold(token, "on"):
		return true, nil
	case strings.EqualFold(token, "off"):
		return false, nil
	default:
		return false, fmt.Errorf("unknown state %q", token)
	}
}

// FormatActive renders the on/off flag as its wire token.
func FormatActive(active bool) string {
	if active {
		return "on"
	}
	return "off"
}

// ParseRate parses a decimal rate token and enforces the 1..5 range.
func ParseRate(token string) (int, error) {
	rate, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("rate %q is not an integer", token)
	}
	if rate < MinRate || rate > MaxRate {
		return 0, fmt.Errorf("rate %d outside range %d..%d", rate, MinRate, MaxRate)
	}
	return rate, nil
}
