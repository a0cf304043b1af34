package diagram

import (
	"slices"

	"linkroute/connections"
	"linkroute/geometry"
	"linkroute/obstacles"
)

// Link connects two ports with an ordered list of points. Setters that
// affect the route ask the container to recompute it.
type Link struct {
	ID string

	container Container
	from, to  *Port
	points    []geometry.Point
	state     LinkState
	routing   bool

	orthogonal      bool
	avoidsObstacles bool
	adjusting       connections.Adjusting
	curve           connections.Curve
	curviness       float64
	penWidth        float64
}

// NewLink returns an unconnected link owned by c.
func NewLink(id string, c Container) *Link {
	return &Link{ID: id, container: c, penWidth: 1}
}

// From returns the from port, or nil.
func (l *Link) From() *Port { return l.from }

// To returns the to port, or nil.
func (l *Link) To() *Port { return l.to }

func (l *Link) port(end End) *Port {
	if end == ToEnd {
		return l.to
	}
	return l.from
}

// IsSelfLoop reports whether both ends use the same port.
func (l *Link) IsSelfLoop() bool {
	return l.from != nil && l.from == l.to
}

// Points returns a copy of the route.
func (l *Link) Points() []geometry.Point {
	return slices.Clone(l.points)
}

// SetPoints replaces the route without recomputing it, as when undoing.
func (l *Link) SetPoints(pts []geometry.Point) {
	l.points = slices.Clone(pts)
	if len(l.points) < 2 {
		l.state = Unrouted
	} else {
		l.state = Routed
	}
}

// State returns the routing state.
func (l *Link) State() LinkState { return l.state }

func (l *Link) Orthogonal() bool                 { return l.orthogonal }
func (l *Link) AvoidsObstacles() bool            { return l.avoidsObstacles }
func (l *Link) Adjusting() connections.Adjusting { return l.adjusting }
func (l *Link) Curve() connections.Curve         { return l.curve }
func (l *Link) Curviness() float64               { return l.curviness }
func (l *Link) PenWidth() float64                { return l.penWidth }

// SetOrthogonal restricts the route to horizontal and vertical segments.
func (l *Link) SetOrthogonal(v bool) {
	if l.orthogonal != v {
		l.orthogonal = v
		l.Invalidate()
	}
}

// SetAvoidsObstacles routes an orthogonal link around other nodes.
func (l *Link) SetAvoidsObstacles(v bool) {
	if l.avoidsObstacles != v {
		l.avoidsObstacles = v
		l.Invalidate()
	}
}

// SetAdjusting sets how an existing route follows moved ends.
func (l *Link) SetAdjusting(a connections.Adjusting) {
	if l.adjusting != a {
		l.adjusting = a
		l.Invalidate()
	}
}

// SetCurve sets how a free-form link is drawn.
func (l *Link) SetCurve(c connections.Curve) {
	if l.curve != c {
		l.curve = c
		l.Invalidate()
	}
}

// SetCurviness sets the bulge of bezier links and self-loops.
func (l *Link) SetCurviness(v float64) {
	if l.curviness != v {
		l.curviness = v
		l.Invalidate()
	}
}

// SetPenWidth sets the stroke width, which also widens detours.
func (l *Link) SetPenWidth(v float64) {
	if l.penWidth != v {
		l.penWidth = v
		l.Invalidate()
	}
}

// Invalidate marks the route stale and asks the container to recompute
// it. Links without a container are recomputed at once. Invalidating a
// link while it is being routed does nothing.
func (l *Link) Invalidate() {
	if l.routing {
		return
	}
	if l.state == Routed {
		l.state = Stale
	}
	if l.container == nil {
		l.CalculateStroke()
		return
	}
	l.container.RequestRoute(l)
}

// CalculateStroke recomputes the route. It does nothing when either port
// is missing or when called again while the same link is being routed,
// and reports whether a route was computed.
func (l *Link) CalculateStroke() bool {
	if l.from == nil || l.to == nil || l.routing {
		return false
	}
	l.routing = true
	defer func() { l.routing = false }()

	calc, env := l.environment()
	req := connections.Request{
		From:            l.from.end(l, FromEnd),
		To:              l.to.end(l, ToEnd),
		SelfLoop:        l.IsSelfLoop(),
		Points:          l.points,
		Orthogonal:      l.orthogonal,
		AvoidsObstacles: l.avoidsObstacles,
		Adjusting:       l.adjusting,
		Curve:           l.curve,
		Curviness:       l.curviness,
		PenWidth:        l.penWidth,
	}
	if env != nil && l.orthogonal && l.avoidsObstacles {
		req.Obstacles = env.Obstacles(l)
	}

	before := l.points
	res := calc.Compute(req)
	l.points = res.Points
	l.state = Routed

	l.from.notify(l)
	if l.to != l.from {
		l.to.notify(l)
	}
	if lst, ok := l.container.(RouteListener); ok {
		lst.LinkRouted(l, before, res)
	}
	return true
}

func (l *Link) environment() (*connections.Calculator, RouteEnvironment) {
	if env, ok := l.container.(RouteEnvironment); ok {
		return env.Calculator(), env
	}
	return connections.NewCalculator(obstacles.DefaultConfig(), nil), nil
}

// connect points the link at new ports, keeping the ports' link sets in
// step.
func (l *Link) connect(from, to *Port) {
	l.disconnect()
	l.from, l.to = from, to
	if from != nil {
		from.attach(l)
	}
	if to != nil {
		to.attach(l)
	}
}

func (l *Link) disconnect() {
	if l.from != nil {
		l.from.detach(l)
	}
	if l.to != nil {
		l.to.detach(l)
	}
	l.from, l.to = nil, nil
}
