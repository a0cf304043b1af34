package connections

import (
	"math"

	"linkroute/geometry"
	"linkroute/obstacles"
)

// orthoEnds describes the middle section of an orthogonal route: it runs
// from corner f, which the route leaves heading d1, to corner t, in front
// of a port facing d2.
type orthoEnds struct {
	f, t       geometry.Point
	d1, d2     geometry.Direction
	to         geometry.Point // anchor of the destination port
	fromB, toB geometry.Rect
	margin     float64 // gap kept outside the end bounds by detours
}

// orthoMiddle returns the bends between the corners. The canonical Z or L
// shape is used unless it folds back into an end or crosses either end's
// bounds, in which case the shortest valid detour with the fewest bends
// is used.
func (c *Calculator) orthoMiddle(e orthoEnds) []geometry.Point {
	if e.f.Equals(e.t) {
		return nil
	}
	canon := c.canonical(e)
	for _, bends := range canon {
		if e.valid(bends) {
			return e.compress(bends)
		}
	}
	if bends, ok := e.search(); ok {
		return bends
	}
	return e.compress(canon[0])
}

// canonical lists the preferred shapes in order. Parallel ends bend
// through the middle position between the from corner and the destination
// anchor, then between the two corners, then across the other axis.
// Perpendicular ends bend once, on the corner axis matching d1 first.
func (c *Calculator) canonical(e orthoEnds) [][]geometry.Point {
	f, t := e.f, e.t
	zx := func(x float64) []geometry.Point {
		return []geometry.Point{geometry.Pt(x, f.Y), geometry.Pt(x, t.Y)}
	}
	zy := func(y float64) []geometry.Point {
		return []geometry.Point{geometry.Pt(f.X, y), geometry.Pt(t.X, y)}
	}
	lx := []geometry.Point{geometry.Pt(t.X, f.Y)}
	ly := []geometry.Point{geometry.Pt(f.X, t.Y)}

	switch {
	case e.d1.Horizontal() && e.d2.Horizontal():
		return [][]geometry.Point{
			zx(c.mid(f.X, e.to.X, false)),
			zx(c.mid(f.X, t.X, false)),
			zy(c.mid(f.Y, t.Y, true)),
		}
	case e.d1.Vertical() && e.d2.Vertical():
		return [][]geometry.Point{
			zy(c.mid(f.Y, e.to.Y, true)),
			zy(c.mid(f.Y, t.Y, true)),
			zx(c.mid(f.X, t.X, false)),
		}
	case e.d1.Horizontal():
		return [][]geometry.Point{lx, ly}
	}
	return [][]geometry.Point{ly, lx}
}

// valid reports whether f, bends, t leave f without reversing d1, arrive
// at t without running into the destination port, and stay out of both
// end bounds.
func (e orthoEnds) valid(bends []geometry.Point) bool {
	path := e.path(bends)
	first, last := geometry.NoDirection, geometry.NoDirection
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if a.Equals(b) {
			continue
		}
		d := geometry.SegmentDirection(a, b)
		if d == geometry.NoDirection {
			return false
		}
		if first == geometry.NoDirection {
			first = d
		}
		last = d
		if e.fromB.IntersectsSegment(a, b) || e.toB.IntersectsSegment(a, b) {
			return false
		}
	}
	if first == geometry.NoDirection {
		return true
	}
	return first != e.d1.Opposite() && last != e.d2
}

func (e orthoEnds) path(bends []geometry.Point) []geometry.Point {
	path := make([]geometry.Point, 0, len(bends)+2)
	path = append(path, e.f)
	path = append(path, bends...)
	return append(path, e.t)
}

// compress drops repeated and collinear bends.
func (e orthoEnds) compress(bends []geometry.Point) []geometry.Point {
	path := obstacles.Simplify(e.path(bends))
	return path[1 : len(path)-1]
}

// channels returns the coordinates a detour may run along on one axis:
// the corners, their middle, and lines just outside each end's bounds and
// around both ends together.
func (e orthoEnds) channels(vertical bool) []float64 {
	u := e.fromB.Union(e.toB).UnionPoint(e.f).UnionPoint(e.t)
	m := e.margin
	var vals []float64
	if vertical {
		vals = []float64{
			geometry.Mid(e.f.Y, e.t.Y), e.f.Y, e.t.Y,
			e.fromB.Y - m, e.fromB.Bottom() + m,
			e.toB.Y - m, e.toB.Bottom() + m,
			u.Y - m, u.Bottom() + m,
		}
	} else {
		vals = []float64{
			geometry.Mid(e.f.X, e.t.X), e.f.X, e.t.X,
			e.fromB.X - m, e.fromB.Right() + m,
			e.toB.X - m, e.toB.Right() + m,
			u.X - m, u.Right() + m,
		}
	}
	out := vals[:0]
	for _, v := range vals {
		dup := false
		for _, o := range out {
			if geometry.ApproxEqual(o, v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

// search tries 2, 3 and 4 bend detours through the channels and returns
// the valid one with the fewest bends, then the shortest length. Ties keep
// the first candidate found.
func (e orthoEnds) search() ([]geometry.Point, bool) {
	f, t := e.f, e.t
	xs, ys := e.channels(false), e.channels(true)

	var best []geometry.Point
	bestLen, found := math.Inf(1), false
	consider := func(bends ...geometry.Point) {
		if !e.valid(bends) {
			return
		}
		c := e.compress(bends)
		l := pathLength(e.path(c))
		if !found || len(c) < len(best) || (len(c) == len(best) && l < bestLen-geometry.Epsilon) {
			best, bestLen, found = c, l, true
		}
	}

	for _, x := range xs {
		consider(geometry.Pt(x, f.Y), geometry.Pt(x, t.Y))
	}
	for _, y := range ys {
		consider(geometry.Pt(f.X, y), geometry.Pt(t.X, y))
	}
	for _, x := range xs {
		for _, y := range ys {
			consider(geometry.Pt(x, f.Y), geometry.Pt(x, y), geometry.Pt(t.X, y))
			consider(geometry.Pt(f.X, y), geometry.Pt(x, y), geometry.Pt(x, t.Y))
		}
	}
	for _, x1 := range xs {
		for _, y := range ys {
			for _, x2 := range xs {
				consider(geometry.Pt(x1, f.Y), geometry.Pt(x1, y), geometry.Pt(x2, y), geometry.Pt(x2, t.Y))
			}
		}
	}
	for _, y1 := range ys {
		for _, x := range xs {
			for _, y2 := range ys {
				consider(geometry.Pt(f.X, y1), geometry.Pt(x, y1), geometry.Pt(x, y2), geometry.Pt(t.X, y2))
			}
		}
	}
	return best, found
}

func pathLength(pts []geometry.Point) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += geometry.ManhattanDistance(pts[i-1], pts[i])
	}
	return l
}
