package geometry

import (
	"fmt"
	"math"
)

// Point represents a location in document coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the distance of p from the origin.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Equals reports whether p and q are the same point within Epsilon.
func (p Point) Equals(q Point) bool {
	return ApproxEqual(p.X, q.X) && ApproxEqual(p.Y, q.Y)
}

// Offset returns p moved by length along angle degrees (clockwise from
// East). Cardinal angles are computed exactly; anything else falls back to
// sin/cos.
func (p Point) Offset(angle, length float64) Point {
	switch NormalizeAngle(angle) {
	case 0:
		return Point{X: p.X + length, Y: p.Y}
	case 90:
		return Point{X: p.X, Y: p.Y + length}
	case 180:
		return Point{X: p.X - length, Y: p.Y}
	case 270:
		return Point{X: p.X, Y: p.Y - length}
	}
	rad := angle * math.Pi / 180
	return Point{X: p.X + length*math.Cos(rad), Y: p.Y + length*math.Sin(rad)}
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}
