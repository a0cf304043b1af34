// Package connections computes link routes: straight and bezier links,
// orthogonal routes with their middle sections, self-loops and the
// adjusting shortcuts that reshape an existing route instead of
// recomputing it.
package connections

import (
	"fmt"
	"strings"

	"linkroute/geometry"
)

// Shape is the geometry a link end is anchored on.
type Shape interface {
	Bounds() geometry.Rect
	SpotLocation(s geometry.Spot) geometry.Point
	NearestIntersection(p, focus geometry.Point) geometry.Point
}

// End is one resolved end of a link.
type End struct {
	Shape  Shape         // geometry holding the anchor
	Node   geometry.Rect // bounds of the owning node; zero uses Shape bounds
	Spot   geometry.Spot
	Length float64 // end segment length
}

// NodeBounds returns the bounds a route must not fold back into.
func (e *End) NodeBounds() geometry.Rect {
	if e.Node == (geometry.Rect{}) {
		return e.Shape.Bounds()
	}
	return e.Node
}

// Imposed returns the direction the spot imposes, or NoDirection.
func (e *End) Imposed() geometry.Direction {
	return e.Spot.Direction()
}

// Reference returns the point other ends aim at: the spot location, or the
// center for SpotNone.
func (e *End) Reference() geometry.Point {
	return e.Shape.SpotLocation(e.Spot)
}

// Anchor returns the spot location when a spot is set; otherwise the
// boundary point on the line from the shape center toward toward.
func (e *End) Anchor(toward geometry.Point) geometry.Point {
	return AnchorPoint(e.Shape, e.Spot, toward)
}

// Direction returns the imposed direction, or the direction from the shape
// center toward toward snapped to a cardinal one.
func (e *End) Direction(toward geometry.Point) geometry.Direction {
	return ResolveDirection(e.Shape, e.Spot, toward)
}

// AnchorPoint resolves a spot on s. SpotNone picks the boundary point
// nearest toward along the line through the center.
func AnchorPoint(s Shape, spot geometry.Spot, toward geometry.Point) geometry.Point {
	if !spot.IsNone() {
		return s.SpotLocation(spot)
	}
	return s.NearestIntersection(toward, s.Bounds().Center())
}

// ResolveDirection returns the spot direction, or the snapped direction
// from the center of s to toward. It never returns NoDirection.
func ResolveDirection(s Shape, spot geometry.Spot, toward geometry.Point) geometry.Direction {
	if d := spot.Direction(); d.IsCardinal() {
		return d
	}
	return geometry.DirectionTo(s.Bounds().Center(), toward)
}

// Adjusting selects how an existing route reacts to moved ends.
type Adjusting int

const (
	AdjustCalculate Adjusting = iota // recompute from scratch
	AdjustScale                      // rotate and scale about the chord
	AdjustStretch                    // remap along and across the chord
	AdjustEnd                        // move only the ends
)

var adjustingNames = [...]string{"calculate", "scale", "stretch", "end"}

func (a Adjusting) String() string {
	if a < 0 || int(a) >= len(adjustingNames) {
		return fmt.Sprintf("Adjusting(%d)", int(a))
	}
	return adjustingNames[a]
}

// ParseAdjusting converts a name to an Adjusting value. The empty string
// is AdjustCalculate.
func ParseAdjusting(name string) (Adjusting, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return AdjustCalculate, nil
	}
	for i, n := range adjustingNames {
		if n == name {
			return Adjusting(i), nil
		}
	}
	return AdjustCalculate, fmt.Errorf("unknown adjusting style %q", name)
}

// Curve selects how the simple case is drawn.
type Curve int

const (
	CurveStraight Curve = iota
	CurveBezier
)

func (c Curve) String() string {
	if c == CurveBezier {
		return "bezier"
	}
	return "straight"
}

// ParseCurve converts a name to a Curve. The empty string is CurveStraight.
func ParseCurve(name string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "straight":
		return CurveStraight, nil
	case "bezier":
		return CurveBezier, nil
	}
	return CurveStraight, fmt.Errorf("unknown curve %q", name)
}

// Request is everything Compute needs to route one link.
type Request struct {
	From, To        *End
	SelfLoop        bool
	Points          []geometry.Point // current route, possibly empty
	Orthogonal      bool
	AvoidsObstacles bool
	Adjusting       Adjusting
	Curve           Curve
	Curviness       float64
	PenWidth        float64
	Obstacles       []geometry.Rect // bounds to route around
}

// Result is a computed route.
type Result struct {
	Points   []geometry.Point
	Adjusted Adjusting // shortcut that produced Points; AdjustCalculate otherwise
	Passes   int       // obstacle grid passes run, 0 when not attempted
	Fallback bool      // obstacle avoidance was abandoned
}
