package connections

import (
	"slices"

	"linkroute/geometry"
)

// Adjustment is the outcome of an adjusting shortcut: either new points,
// or Declined when the caller must recompute the route from scratch.
type Adjustment struct {
	Points   []geometry.Point
	Declined bool
}

var declined = Adjustment{Declined: true}

func inRange(points []geometry.Point, i, j int) bool {
	return i >= 0 && j < len(points) && i < j
}

// unchanged reports whether points[i] and points[j] already sit on p and q.
func unchanged(points []geometry.Point, i int, p geometry.Point, j int, q geometry.Point) bool {
	return points[i] == p && points[j] == q
}

// Scale moves points[i] onto p and points[j] onto q, rotating and scaling
// the points between them about the old chord so the shape is kept.
// Points outside i..j are untouched.
func Scale(points []geometry.Point, i int, p geometry.Point, j int, q geometry.Point) Adjustment {
	if !inRange(points, i, j) {
		return declined
	}
	out := slices.Clone(points)
	if unchanged(points, i, p, j, q) {
		return Adjustment{Points: out}
	}
	a := points[i]
	d, e := points[j].Sub(a), q.Sub(p)
	den := d.Dot(d)
	if d.Length() < geometry.Epsilon || e.Length() < geometry.Epsilon {
		return declined
	}
	// r = e / d as complex numbers.
	rx := (e.X*d.X + e.Y*d.Y) / den
	ry := (e.Y*d.X - e.X*d.Y) / den
	for k := i + 1; k < j; k++ {
		z := points[k].Sub(a)
		out[k] = p.Add(geometry.Pt(z.X*rx-z.Y*ry, z.X*ry+z.Y*rx))
	}
	out[i], out[j] = p, q
	return Adjustment{Points: out}
}

// Stretch moves points[i] onto p and points[j] onto q. Each point between
// them keeps its fractional position along the chord and its perpendicular
// distance from it.
func Stretch(points []geometry.Point, i int, p geometry.Point, j int, q geometry.Point) Adjustment {
	if !inRange(points, i, j) {
		return declined
	}
	out := slices.Clone(points)
	if unchanged(points, i, p, j, q) {
		return Adjustment{Points: out}
	}
	a := points[i]
	d, e := points[j].Sub(a), q.Sub(p)
	dl, el := d.Length(), e.Length()
	if dl < geometry.Epsilon || el < geometry.Epsilon {
		return declined
	}
	normal := geometry.Pt(-e.Y/el, e.X/el)
	for k := i + 1; k < j; k++ {
		z := points[k].Sub(a)
		along := z.Dot(d) / (dl * dl)
		across := d.Cross(z) / dl
		out[k] = p.Add(e.Scale(along)).Add(normal.Scale(across))
	}
	out[i], out[j] = p, q
	return Adjustment{Points: out}
}

// StretchAxes is Stretch applied to each axis on its own, so horizontal
// and vertical segments stay that way. An axis with no old extent is
// translated; an axis whose extent collapses declines.
func StretchAxes(points []geometry.Point, i int, p geometry.Point, j int, q geometry.Point) Adjustment {
	if !inRange(points, i, j) {
		return declined
	}
	out := slices.Clone(points)
	if unchanged(points, i, p, j, q) {
		return Adjustment{Points: out}
	}
	a, b := points[i], points[j]
	fx, okx := axisMap(a.X, b.X, p.X, q.X)
	fy, oky := axisMap(a.Y, b.Y, p.Y, q.Y)
	if !okx || !oky {
		return declined
	}
	for k := i + 1; k < j; k++ {
		out[k] = geometry.Pt(fx(points[k].X), fy(points[k].Y))
	}
	out[i], out[j] = p, q
	return Adjustment{Points: out}
}

func axisMap(a, b, p, q float64) (func(float64) float64, bool) {
	switch {
	case geometry.ApproxEqual(a, b):
		return func(v float64) float64 { return v + p - a }, true
	case geometry.ApproxEqual(p, q):
		return nil, false
	}
	k := (q - p) / (b - a)
	return func(v float64) float64 { return p + (v-a)*k }, true
}

// MoveEnds moves points[i] onto p and points[j] onto q and leaves the rest
// alone. For orthogonal routes the neighbours of i and j are nudged along
// the old segment's axis so those segments stay horizontal or vertical;
// a zero-length neighbouring segment declines.
func MoveEnds(points []geometry.Point, i int, p geometry.Point, j int, q geometry.Point, orthogonal bool) Adjustment {
	if !inRange(points, i, j) {
		return declined
	}
	out := slices.Clone(points)
	out[i], out[j] = p, q
	if !orthogonal || j-i < 2 {
		return Adjustment{Points: out}
	}
	if !nudge(out, i+1, points[i], points[i+1], p) || !nudge(out, j-1, points[j-1], points[j], q) {
		return declined
	}
	return Adjustment{Points: out}
}

// nudge aligns out[k] with the moved end p along the axis of the old
// segment a-b.
func nudge(out []geometry.Point, k int, a, b, p geometry.Point) bool {
	switch {
	case geometry.IsHorizontal(a, b):
		out[k].Y = p.Y
	case geometry.IsVertical(a, b):
		out[k].X = p.X
	default:
		return false
	}
	return true
}
