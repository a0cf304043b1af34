// Package geometry contains the point, rectangle, spot and direction
// primitives used by link routing. Coordinates are document units with
// Y growing downward.
package geometry

import "math"

// Epsilon is the tolerance used when comparing coordinates.
const Epsilon = 1e-9

// ApproxEqual reports whether a and b differ by less than Epsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Mid returns the arithmetic mean of a and b.
func Mid(a, b float64) float64 {
	return (a + b) / 2
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// ManhattanDistance returns |dx| + |dy| between two points.
func ManhattanDistance(a, b Point) float64 {
	return math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)
}

// IsHorizontal reports whether the segment a-b runs along the X axis.
func IsHorizontal(a, b Point) bool {
	return ApproxEqual(a.Y, b.Y) && !ApproxEqual(a.X, b.X)
}

// IsVertical reports whether the segment a-b runs along the Y axis.
func IsVertical(a, b Point) bool {
	return ApproxEqual(a.X, b.X) && !ApproxEqual(a.Y, b.Y)
}

// AxisAligned reports whether the segment a-b is horizontal or vertical
// and not degenerate.
func AxisAligned(a, b Point) bool {
	return IsHorizontal(a, b) || IsVertical(a, b)
}

// Collinear reports whether a, b and c lie on one horizontal or vertical line.
func Collinear(a, b, c Point) bool {
	sameX := ApproxEqual(a.X, b.X) && ApproxEqual(b.X, c.X)
	sameY := ApproxEqual(a.Y, b.Y) && ApproxEqual(b.Y, c.Y)
	return sameX || sameY
}
