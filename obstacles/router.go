package obstacles

import (
	"linkroute/geometry"
)

// Passes is the number of escalating propagation passes Route attempts.
const Passes = 3

// Request describes one obstacle-avoiding route between two corner points.
type Request struct {
	Start    geometry.Point     // corner leaving the source port
	StartDir geometry.Direction // direction the route leaves Start
	End      geometry.Point     // corner in front of the destination port
	EndDir   geometry.Direction // outward direction of the destination port
	Region   geometry.Rect      // shapes of both ends
	Blockers []geometry.Rect    // bounds to route around

	// StartBounds and EndBounds are the nodes the route leaves and enters.
	// They stay walls; only a corridor in front of each end is opened.
	StartBounds geometry.Rect
	EndBounds   geometry.Rect
}

// Result is the outcome of Route.
type Result struct {
	Points []geometry.Point // Start, bends, End; nil when not found
	Passes int             // propagation passes run
	Grid   *Grid           // grid of the last pass, for debugging
	Cells  []Cell          // traced cells, nil when not found
}

// Found reports whether Route produced a path.
func (r Result) Found() bool {
	return len(r.Points) >= 2
}

// Route finds an orthogonal path from req.Start to req.End that keeps clear
// of every blocker. Distances are propagated from End; when Start is not
// reached the search area grows, up to Passes times. A third-party blocker
// whose interior holds either endpoint is ignored; the end nodes never are.
func Route(req Request, cfg Config) Result {
	region := req.Region.UnionPoint(req.Start).UnionPoint(req.End).Inflate(cfg.RegionMargin)
	g := NewGrid(region, req.Start, cfg.CellSize, cfg.MaxCells)

	grow := g.CellSize() + cfg.Clearance
	for _, b := range req.Blockers {
		own := !b.IsEmpty() && (b == req.StartBounds || b == req.EndBounds)
		if !own && (b.ContainsStrict(req.Start) || b.ContainsStrict(req.End)) {
			continue
		}
		g.Occupy(b, grow)
	}
	for _, b := range []geometry.Rect{req.StartBounds, req.EndBounds} {
		if !b.IsEmpty() {
			g.Occupy(b, grow)
		}
	}

	src, dst := g.CellAt(req.Start), g.CellAt(req.End)
	if src == dst {
		return Result{Grid: g}
	}
	g.clearExit(src, req.StartDir, req.StartBounds, grow)
	g.clearExit(dst, req.EndDir, req.EndBounds, grow)

	box := span{
		minCol: min(src.Col, dst.Col), minRow: min(src.Row, dst.Row),
		maxCol: max(src.Col, dst.Col), maxRow: max(src.Row, dst.Row),
	}
	whole := span{0, 0, g.cols - 1, g.rows - 1}
	limits := [Passes]span{box.grow(cfg.SmallMargin), box.grow(cfg.LargeMargin), whole}

	for i, lim := range limits {
		g.Reset()
		g.Propagate(dst, req.EndDir, lim)
		cells := g.Trace(src, req.StartDir)
		if cells == nil {
			continue
		}
		return Result{Points: g.polyline(cells, req), Passes: i + 1, Grid: g, Cells: cells}
	}
	return Result{Passes: Passes, Grid: g}
}

// polyline converts traced cells into corner points. The first point is
// req.Start, which sits on a cell center; the last run is shifted onto
// req.End, which may not.
func (g *Grid) polyline(cells []Cell, req Request) []geometry.Point {
	pts := make([]geometry.Point, 0, len(cells))
	for _, c := range cells {
		pts = append(pts, g.Center(c))
	}
	pts = Simplify(pts)
	pts[0] = req.Start

	last := len(pts) - 1
	end := req.End
	horizontal := geometry.ApproxEqual(pts[last-1].Y, pts[last].Y)
	if last == 1 {
		a := pts[0]
		if horizontal {
			mx := geometry.Mid(a.X, end.X)
			pts = []geometry.Point{a, geometry.Pt(mx, a.Y), geometry.Pt(mx, end.Y), end}
		} else {
			my := geometry.Mid(a.Y, end.Y)
			pts = []geometry.Point{a, geometry.Pt(a.X, my), geometry.Pt(end.X, my), end}
		}
		return Simplify(pts)
	}
	bend := pts[last-1]
	if horizontal {
		bend.Y = end.Y
	} else {
		bend.X = end.X
	}
	pts[last-1] = bend
	pts[last] = end
	return Simplify(pts)
}

// Simplify drops repeated points and interior points collinear with their
// neighbours. The first and last points are always kept.
func Simplify(pts []geometry.Point) []geometry.Point {
	if len(pts) <= 2 {
		return pts
	}
	out := []geometry.Point{pts[0]}
	for i := 1; i < len(pts)-1; i++ {
		prev := out[len(out)-1]
		if pts[i].Equals(prev) || geometry.Collinear(prev, pts[i], pts[i+1]) {
			continue
		}
		out = append(out, pts[i])
	}
	last := pts[len(pts)-1]
	if len(out) > 1 && out[len(out)-1].Equals(last) {
		out = out[:len(out)-1]
	}
	return append(out, last)
}
