package geometry

import "math"

// Direction is a cardinal direction in degrees, clockwise from East.
type Direction int

const (
	East  Direction = 0
	South Direction = 90
	West  Direction = 180
	North Direction = 270

	// NoDirection marks an end that imposes no direction.
	NoDirection Direction = -1
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case North:
		return "North"
	default:
		return "None"
	}
}

// IsCardinal reports whether d is one of the four cardinal directions.
func (d Direction) IsCardinal() bool {
	return d == East || d == South || d == West || d == North
}

// Horizontal reports whether d is East or West.
func (d Direction) Horizontal() bool {
	return d == East || d == West
}

// Vertical reports whether d is North or South.
func (d Direction) Vertical() bool {
	return d == North || d == South
}

// Degrees returns d as an angle.
func (d Direction) Degrees() float64 {
	return float64(d)
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	if !d.IsCardinal() {
		return d
	}
	return Direction((int(d) + 180) % 360)
}

// Rotate turns d clockwise by a multiple of 90 degrees.
func (d Direction) Rotate(quarterTurns int) Direction {
	if !d.IsCardinal() {
		return d
	}
	deg := (int(d) + quarterTurns*90) % 360
	if deg < 0 {
		deg += 360
	}
	return Direction(deg)
}

// Unit returns the unit vector of d, or the zero point for NoDirection.
func (d Direction) Unit() Point {
	switch d {
	case East:
		return Point{X: 1}
	case South:
		return Point{Y: 1}
	case West:
		return Point{X: -1}
	case North:
		return Point{Y: -1}
	}
	return Point{}
}

// NormalizeAngle maps any angle into [0, 360).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Snap returns the cardinal direction nearest to angle using ±45° bins.
func Snap(angle float64) Direction {
	a := NormalizeAngle(angle)
	switch {
	case a >= 315 || a < 45:
		return East
	case a < 135:
		return South
	case a < 225:
		return West
	default:
		return North
	}
}

// Angle returns the direction of the vector from a to b in degrees.
// Axis-aligned vectors are resolved exactly; coincident points yield 0.
func Angle(a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dx == 0 && dy == 0:
		return 0
	case dy == 0:
		if dx > 0 {
			return 0
		}
		return 180
	case dx == 0:
		if dy > 0 {
			return 90
		}
		return 270
	}
	return NormalizeAngle(math.Atan2(dy, dx) * 180 / math.Pi)
}

// DirectionTo returns the cardinal direction nearest to the vector a→b.
func DirectionTo(a, b Point) Direction {
	return Snap(Angle(a, b))
}

// SegmentDirection returns the direction of an axis-aligned segment, or
// NoDirection when the segment is degenerate or diagonal.
func SegmentDirection(a, b Point) Direction {
	switch {
	case IsHorizontal(a, b):
		if b.X > a.X {
			return East
		}
		return West
	case IsVertical(a, b):
		if b.Y > a.Y {
			return South
		}
		return North
	}
	return NoDirection
}
