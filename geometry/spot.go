package geometry

import (
	"fmt"
	"strings"
)

// Spot is a symbolic location on a rectangle.
type Spot int

const (
	SpotNone Spot = iota
	SpotCenter
	SpotTop
	SpotRight
	SpotBottom
	SpotLeft
	SpotTopLeft
	SpotTopRight
	SpotBottomRight
	SpotBottomLeft
)

var spotNames = map[Spot]string{
	SpotNone:        "none",
	SpotCenter:      "center",
	SpotTop:         "top",
	SpotRight:       "right",
	SpotBottom:      "bottom",
	SpotLeft:        "left",
	SpotTopLeft:     "top-left",
	SpotTopRight:    "top-right",
	SpotBottomRight: "bottom-right",
	SpotBottomLeft:  "bottom-left",
}

// String returns the spot name as used in scene files.
func (s Spot) String() string {
	if name, ok := spotNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Spot(%d)", int(s))
}

// ParseSpot converts a spot name to a Spot. The empty string is SpotNone.
func ParseSpot(name string) (Spot, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SpotNone, nil
	}
	for s, n := range spotNames {
		if n == name {
			return s, nil
		}
	}
	return SpotNone, fmt.Errorf("unknown spot %q", name)
}

// Fraction returns the relative position of the spot inside a rectangle.
// None and Center both sit in the middle.
func (s Spot) Fraction() (fx, fy float64) {
	switch s {
	case SpotTop:
		return 0.5, 0
	case SpotRight:
		return 1, 0.5
	case SpotBottom:
		return 0.5, 1
	case SpotLeft:
		return 0, 0.5
	case SpotTopLeft:
		return 0, 0
	case SpotTopRight:
		return 1, 0
	case SpotBottomRight:
		return 1, 1
	case SpotBottomLeft:
		return 0, 1
	}
	return 0.5, 0.5
}

// Direction returns the outward direction implied by the spot. Corners
// resolve clockwise; None and Center imply no direction.
func (s Spot) Direction() Direction {
	switch s {
	case SpotTop, SpotTopLeft:
		return North
	case SpotRight, SpotTopRight:
		return East
	case SpotBottom, SpotBottomRight:
		return South
	case SpotLeft, SpotBottomLeft:
		return West
	}
	return NoDirection
}

// IsNone reports whether s is SpotNone.
func (s Spot) IsNone() bool {
	return s == SpotNone
}
