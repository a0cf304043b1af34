package connections

import (
	"log/slog"
	"math"
	"slices"

	"linkroute/geometry"
	"linkroute/obstacles"
)

// Self-loop bias angles in degrees.
const (
	loopBias      = 30
	loopBiasOrtho = 90
)

// Calculator computes link routes. It holds no per-link state.
type Calculator struct {
	// MidOrthoPosition places the middle run between two parallel ends.
	// vertical reports whether a and b are Y coordinates.
	MidOrthoPosition func(a, b float64, vertical bool) float64

	Grid   obstacles.Config
	Logger *slog.Logger
}

// NewCalculator returns a Calculator using grid for obstacle avoidance.
// A nil logger discards output.
func NewCalculator(grid obstacles.Config, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Calculator{
		MidOrthoPosition: DefaultMidOrthoPosition,
		Grid:             grid,
		Logger:           logger,
	}
}

// DefaultMidOrthoPosition returns the arithmetic mean of a and b.
func DefaultMidOrthoPosition(a, b float64, vertical bool) float64 {
	return geometry.Mid(a, b)
}

func (c *Calculator) mid(a, b float64, vertical bool) float64 {
	if c.MidOrthoPosition == nil {
		return DefaultMidOrthoPosition(a, b, vertical)
	}
	return c.MidOrthoPosition(a, b, vertical)
}

func (c *Calculator) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Compute returns the route for req. With either end missing the current
// points are returned unchanged.
func (c *Calculator) Compute(req Request) Result {
	if req.From == nil || req.To == nil {
		return Result{Points: slices.Clone(req.Points)}
	}
	switch {
	case req.SelfLoop:
		return c.selfLoop(req)
	case !req.Orthogonal && !req.From.Imposed().IsCardinal() && !req.To.Imposed().IsCardinal():
		return Result{Points: simpleRoute(req)}
	}
	return c.general(req)
}

// simpleRoute joins the two boundary points on the line between the ends'
// references, adding two control points for bezier links.
func simpleRoute(req Request) []geometry.Point {
	p0 := req.From.Anchor(req.To.Reference())
	pn := req.To.Anchor(req.From.Reference())
	if req.Curve != CurveBezier {
		return []geometry.Point{p0, pn}
	}
	chord := pn.Sub(p0)
	var normal geometry.Point
	if l := chord.Length(); l > geometry.Epsilon {
		normal = geometry.Pt(-chord.Y/l, chord.X/l).Scale(req.Curviness)
	}
	return []geometry.Point{
		p0,
		p0.Add(chord.Scale(1.0 / 3)).Add(normal),
		p0.Add(chord.Scale(2.0 / 3)).Add(normal),
		pn,
	}
}

// anchorFacing anchors e on the side facing d when e has no spot, so
// orthogonal ends leave from the middle of a side.
func anchorFacing(e *End, d geometry.Direction, ref geometry.Point) geometry.Point {
	if e.Spot.IsNone() && d.IsCardinal() {
		return e.Anchor(e.Shape.Bounds().Center().Add(d.Unit()))
	}
	return e.Anchor(ref)
}

func (c *Calculator) general(req Request) Result {
	from, to := req.From, req.To
	fromRef, toRef := from.Reference(), to.Reference()

	var d1, d2 geometry.Direction
	if req.Orthogonal {
		d1, d2 = from.Direction(toRef), to.Direction(fromRef)
	} else {
		d1, d2 = from.Imposed(), to.Imposed()
	}
	p0 := anchorFacing(from, d1, toRef)
	pn := anchorFacing(to, d2, fromRef)
	f := p0.Add(d1.Unit().Scale(from.Length))
	t := pn.Add(d2.Unit().Scale(to.Length))

	if res, ok := c.adjust(req, p0, f, t, pn); ok {
		return res
	}

	if !req.Orthogonal {
		pts := []geometry.Point{p0}
		if d1.IsCardinal() {
			pts = append(pts, f)
		}
		if d2.IsCardinal() {
			pts = append(pts, t)
		}
		return Result{Points: dedupe(append(pts, pn))}
	}

	var res Result
	middle := c.middle(req, &res, f, d1, t, d2, pn)
	res.Points = assemble(p0, f, middle, t, pn)
	return res
}

// middle returns the bends between the two corners, trying the obstacle
// grid first when the link avoids obstacles.
func (c *Calculator) middle(req Request, res *Result, f geometry.Point, d1 geometry.Direction, t geometry.Point, d2 geometry.Direction, pn geometry.Point) []geometry.Point {
	ends := orthoEnds{
		f: f, d1: d1,
		t: t, d2: d2,
		to:     pn,
		fromB:  req.From.NodeBounds(),
		toB:    req.To.NodeBounds(),
		margin: req.PenWidth + 1,
	}
	if req.AvoidsObstacles && !f.Equals(t) {
		found := obstacles.Route(obstacles.Request{
			Start:    f,
			StartDir: d1,
			End:      t,
			EndDir:   d2,
			Region:   ends.fromB.Union(ends.toB),
			Blockers: req.Obstacles,

			StartBounds: ends.fromB,
			EndBounds:   ends.toB,
		}, c.Grid)
		res.Passes = found.Passes
		if found.Found() {
			c.logger().Debug("obstacle route", "from", f, "to", t, "passes", found.Passes, "grid", found)
			return found.Points[1 : len(found.Points)-1]
		}
		res.Fallback = true
		c.logger().Debug("obstacle avoidance abandoned",
			"from", f, "to", t, "passes", found.Passes, "grid", found)
	}
	return c.orthoMiddle(ends)
}

func (c *Calculator) selfLoop(req Request) Result {
	from, to := req.From, req.To
	s := geometry.Sign(req.Curviness)
	extra := math.Abs(req.Curviness)

	fromBase, toBase := loopDirection(from), loopDirection(to)
	p0 := from.Anchor(loopReference(from, fromBase))
	pn := to.Anchor(loopReference(to, toBase))
	lf, lt := from.Length+extra, to.Length+extra

	if !req.Orthogonal {
		return Result{Points: []geometry.Point{
			p0,
			p0.Offset(fromBase.Degrees()-loopBias*s, lf),
			pn.Offset(toBase.Degrees()+loopBias*s, lt),
			pn,
		}}
	}

	if p0.Equals(pn) {
		if lf <= 0 {
			return Result{Points: []geometry.Point{p0, pn}}
		}
		// The loop leaves along the base direction and returns from the
		// side rotated by the bias.
		u := fromBase.Unit().Scale(lf)
		v := geometry.Snap(fromBase.Degrees() + loopBiasOrtho*s).Unit().Scale(lf)
		p1 := p0.Add(u)
		return Result{Points: []geometry.Point{p0, p1, p1.Add(v), p0.Add(v), pn}}
	}

	f := p0.Add(fromBase.Unit().Scale(lf))
	t := pn.Add(toBase.Unit().Scale(lt))
	var res Result
	middle := c.middle(req, &res, f, fromBase, t, toBase, pn)
	res.Points = assemble(p0, f, middle, t, pn)
	return res
}

// loopDirection is the base direction of a self-loop end: the imposed one,
// or East.
func loopDirection(e *End) geometry.Direction {
	if d := e.Imposed(); d.IsCardinal() {
		return d
	}
	return geometry.East
}

func loopReference(e *End, d geometry.Direction) geometry.Point {
	b := e.Shape.Bounds()
	return b.Center().Add(d.Unit().Scale(math.Max(b.Width, b.Height) + 1))
}

// adjust applies the link's adjusting shortcut when the existing route has
// more than the minimal number of points.
func (c *Calculator) adjust(req Request, p0, f, t, pn geometry.Point) (Result, bool) {
	n := len(req.Points)
	minimal := 4
	if req.Orthogonal {
		minimal = 6
	}
	if req.Adjusting == AdjustCalculate || n <= minimal {
		return Result{}, false
	}

	pts := slices.Clone(req.Points)
	pts[0], pts[n-1] = p0, pn

	var a Adjustment
	switch req.Adjusting {
	case AdjustScale:
		if req.Orthogonal {
			return Result{}, false
		}
		a = Scale(pts, 1, f, n-2, t)
	case AdjustStretch:
		if req.Orthogonal {
			a = StretchAxes(pts, 1, f, n-2, t)
		} else {
			a = Stretch(pts, 1, f, n-2, t)
		}
	case AdjustEnd:
		a = MoveEnds(pts, 1, f, n-2, t, req.Orthogonal)
	default:
		return Result{}, false
	}
	if a.Declined || (req.Orthogonal && !IsOrthogonal(a.Points)) {
		return Result{}, false
	}
	return Result{Points: a.Points, Adjusted: req.Adjusting}, true
}

// assemble joins the ends, corners and middle bends of an orthogonal route.
func assemble(p0, f geometry.Point, middle []geometry.Point, t, pn geometry.Point) []geometry.Point {
	pts := make([]geometry.Point, 0, len(middle)+4)
	pts = append(pts, p0, f)
	pts = append(pts, middle...)
	pts = append(pts, t, pn)
	return dedupe(pts)
}

// dedupe drops consecutive repeated points, keeping at least two.
func dedupe(pts []geometry.Point) []geometry.Point {
	out := []geometry.Point{pts[0]}
	for _, p := range pts[1:] {
		if !p.Equals(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	if len(out) == 1 {
		out = append(out, pts[len(pts)-1])
	}
	return out
}

// IsOrthogonal reports whether every segment of pts is horizontal or
// vertical. Zero-length segments are allowed.
func IsOrthogonal(pts []geometry.Point) bool {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if !a.Equals(b) && !geometry.AxisAligned(a, b) {
			return false
		}
	}
	return true
}
