package diagram

import "linkroute/geometry"

// Box is a rectangular shape.
type Box struct {
	Rect geometry.Rect
}

// NewBox returns a box at (x, y) with the given size.
func NewBox(x, y, width, height float64) *Box {
	return &Box{Rect: geometry.NewRect(x, y, width, height)}
}

// Bounds returns the box rectangle.
func (b *Box) Bounds() geometry.Rect {
	return b.Rect
}

// SpotLocation returns the location of s on the box.
func (b *Box) SpotLocation(s geometry.Spot) geometry.Point {
	return b.Rect.SpotPoint(s)
}

// NearestIntersection returns where the ray from focus toward p leaves
// the box.
func (b *Box) NearestIntersection(p, focus geometry.Point) geometry.Point {
	return b.Rect.NearestIntersection(p, focus)
}

// MoveBy translates the box.
func (b *Box) MoveBy(dx, dy float64) {
	b.Rect.X += dx
	b.Rect.Y += dy
}
