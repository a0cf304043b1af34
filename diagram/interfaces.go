package diagram

import (
	"linkroute/connections"
	"linkroute/geometry"
)

// Shape is the geometry ports anchor on and nodes occupy.
type Shape interface {
	// Bounds returns the bounding box.
	Bounds() geometry.Rect

	// SpotLocation returns the document point of a spot.
	SpotLocation(s geometry.Spot) geometry.Point

	// NearestIntersection returns where the line from focus toward p
	// leaves the shape.
	NearestIntersection(p, focus geometry.Point) geometry.Point
}

// Mover is a shape that can be moved.
type Mover interface {
	MoveBy(dx, dy float64)
}

// Container owns links and decides when they are routed.
type Container interface {
	// RequestRoute routes l now, or queues it while routing is suspended.
	RequestRoute(l *Link)

	// IsRoutingSuspended reports whether requests are being queued.
	IsRoutingSuspended() bool

	// ResumeRouting ends one suspension, routing queued links once the
	// last one ends.
	ResumeRouting()
}

// RouteEnvironment is implemented by containers that supply the route
// calculator and the obstacles links avoid.
type RouteEnvironment interface {
	Calculator() *connections.Calculator
	Obstacles(l *Link) []geometry.Rect
}

// RouteListener is implemented by containers that want to see every
// computed route.
type RouteListener interface {
	LinkRouted(l *Link, before []geometry.Point, res connections.Result)
}
