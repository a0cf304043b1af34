package geometry

import (
	"fmt"
	"math"
)

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect returns the rectangle at (x, y) with the given size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains checks if a point is inside the rectangle or on its edge.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsStrict checks if a point is inside the rectangle's interior.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.X && p.X < r.Right() &&
		p.Y > r.Y && p.Y < r.Bottom()
}

// Inflate grows the rectangle by m on every side.
func (r Rect) Inflate(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	x, y := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	right, bottom := math.Max(r.Right(), o.Right()), math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// UnionPoint returns the smallest rectangle containing r and p.
func (r Rect) UnionPoint(p Point) Rect {
	return r.Union(Rect{X: p.X, Y: p.Y})
}

// SpotPoint returns the location of s on the rectangle. None resolves to
// the center.
func (r Rect) SpotPoint(s Spot) Point {
	fx, fy := s.Fraction()
	return Point{X: r.X + fx*r.Width, Y: r.Y + fy*r.Height}
}

// Bounds returns r itself, so a bare Rect can serve as a shape.
func (r Rect) Bounds() Rect { return r }

// SpotLocation is SpotPoint under the name shapes use.
func (r Rect) SpotLocation(s Spot) Point { return r.SpotPoint(s) }

// IntersectsSegment reports whether the segment a-b passes through the
// interior of the rectangle. Touching an edge does not count.
func (r Rect) IntersectsSegment(a, b Point) bool {
	t0, t1 := 0.0, 1.0
	d := b.Sub(a)
	clip := func(p, q float64) bool {
		if p == 0 {
			return q > 0
		}
		t := q / p
		if p < 0 {
			if t > t0 {
				t0 = t
			}
		} else if t < t1 {
			t1 = t
		}
		return true
	}
	return clip(-d.X, a.X-r.X) &&
		clip(d.X, r.Right()-a.X) &&
		clip(-d.Y, a.Y-r.Y) &&
		clip(d.Y, r.Bottom()-a.Y) &&
		t0 < t1
}

// NearestIntersection returns where the ray from focus toward p leaves the
// rectangle, which is the boundary point nearest to p along the line
// p-focus. When p and focus coincide, or the line misses the rectangle,
// focus is returned.
func (r Rect) NearestIntersection(p, focus Point) Point {
	d := p.Sub(focus)
	if d.X == 0 && d.Y == 0 {
		return focus
	}
	lo, hi := math.Inf(-1), math.Inf(1)
	clip := func(delta, start, min, max float64) bool {
		if delta == 0 {
			return start >= min && start <= max
		}
		ta, tb := (min-start)/delta, (max-start)/delta
		if ta > tb {
			ta, tb = tb, ta
		}
		lo, hi = math.Max(lo, ta), math.Min(hi, tb)
		return lo <= hi
	}
	if !clip(d.X, focus.X, r.X, r.Right()) || !clip(d.Y, focus.Y, r.Y, r.Bottom()) {
		return focus
	}
	if hi < 0 {
		return focus
	}
	// Axis-aligned rays land exactly on the edge coordinate.
	switch {
	case d.Y == 0:
		if d.X > 0 {
			return Point{X: r.Right(), Y: focus.Y}
		}
		return Point{X: r.X, Y: focus.Y}
	case d.X == 0:
		if d.Y > 0 {
			return Point{X: focus.X, Y: r.Bottom()}
		}
		return Point{X: focus.X, Y: r.Y}
	}
	return focus.Add(d.Scale(hi))
}

// String returns the rectangle as "[x,y wxh]".
func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)
}
