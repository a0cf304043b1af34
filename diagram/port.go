package diagram

import (
	"fmt"
	"slices"

	"linkroute/connections"
	"linkroute/geometry"
	"linkroute/validation"
)

// Port is where links attach to a node. A port never owns its links.
type Port struct {
	ID string

	// Delegate, when set, is the shape anchors are computed on instead of
	// the owning node's shape.
	Delegate Shape

	FromSpot         geometry.Spot // used where the port is a link's from end
	ToSpot           geometry.Spot // used where the port is a link's to end
	SegmentLength    float64 // base end segment length

	CanOriginate        bool
	CanTerminate        bool
	AllowSelfNode       bool
	AllowDuplicateLinks bool
	SingleLinkOnly      bool

	node      *Node
	links     []*Link
	observers []func(*Link)
}

// Node returns the owning node.
func (p *Port) Node() *Node {
	return p.node
}

// Shape returns the geometry anchors are computed on.
func (p *Port) Shape() Shape {
	if p.Delegate != nil {
		return p.Delegate
	}
	return p.node.Shape
}

// Links returns the connected links.
func (p *Port) Links() []*Link {
	return slices.Clone(p.links)
}

// Observe registers fn to run after every route computation of a
// connected link.
func (p *Port) Observe(fn func(*Link)) {
	p.observers = append(p.observers, fn)
}

func (p *Port) notify(l *Link) {
	for _, fn := range p.observers {
		fn(l)
	}
}

// Spot returns the spot used for the given end.
func (p *Port) Spot(end End) geometry.Spot {
	if end == ToEnd {
		return p.ToSpot
	}
	return p.FromSpot
}

// ImposedDirection returns the direction the spot for end implies, or
// NoDirection.
func (p *Port) ImposedDirection(end End) geometry.Direction {
	return p.Spot(end).Direction()
}

// Anchor returns where link attaches at end. With a spot set this is the
// spot location; otherwise it is the boundary point toward the link's
// neighbouring point, or the shape center when the link has fewer than
// two points.
func (p *Port) Anchor(link *Link, end End) geometry.Point {
	s := p.Shape()
	if spot := p.Spot(end); !spot.IsNone() {
		return s.SpotLocation(spot)
	}
	center := s.Bounds().Center()
	other, ok := neighbourPoint(link, end)
	if !ok {
		return center
	}
	return s.NearestIntersection(other, center)
}

// AnchorToward resolves the anchor for end aiming at ref.
func (p *Port) AnchorToward(end End, ref geometry.Point) geometry.Point {
	return connections.AnchorPoint(p.Shape(), p.Spot(end), ref)
}

// Direction returns the direction link leaves the port at end: the spot
// direction, or the snapped direction toward the link's neighbouring
// point, the other port, or East in that order.
func (p *Port) Direction(link *Link, end End) geometry.Direction {
	if d := p.ImposedDirection(end); d.IsCardinal() {
		return d
	}
	other, ok := neighbourPoint(link, end)
	if !ok && link != nil {
		if q := link.port(end.other()); q != nil && q != p {
			other, ok = q.Shape().Bounds().Center(), true
		}
	}
	if !ok {
		return geometry.East
	}
	return connections.ResolveDirection(p.Shape(), p.Spot(end), other)
}

func (e End) other() End {
	if e == FromEnd {
		return ToEnd
	}
	return FromEnd
}

// neighbourPoint returns the point next to end on link's route.
func neighbourPoint(link *Link, end End) (geometry.Point, bool) {
	if link == nil || len(link.points) < 2 {
		return geometry.Point{}, false
	}
	if end == FromEnd {
		return link.points[1], true
	}
	return link.points[len(link.points)-2], true
}

// EndSegmentLength returns the end segment length for link at end.
// Orthogonal links fan out: each linked sibling port on the same side
// that comes earlier along the side adds the document's end segment
// spacing, unless the longer segment would end inside the node.
func (p *Port) EndSegmentLength(link *Link, end End) float64 {
	base := p.SegmentLength
	if link == nil || !link.orthogonal || p.node == nil || p.node.doc == nil {
		return base
	}
	dir := p.ImposedDirection(end)
	spacing := p.node.doc.opts.EndSegmentSpacing
	if !dir.IsCardinal() || spacing == 0 {
		return base
	}
	idx := p.stackIndex(end, dir)
	if idx == 0 {
		return base
	}
	length := base + float64(idx)*spacing
	corner := p.Shape().SpotLocation(p.Spot(end)).Add(dir.Unit().Scale(length))
	if p.node.Bounds().ContainsStrict(corner) {
		return base
	}
	return length
}

// stackIndex is p's position among the node's linked ports facing dir,
// ordered along that side.
func (p *Port) stackIndex(end End, dir geometry.Direction) int {
	type sibling struct {
		port  *Port
		along float64
		order int
	}
	var side []sibling
	for i, q := range p.node.ports {
		if len(q.links) == 0 || q.ImposedDirection(end) != dir {
			continue
		}
		loc := q.Shape().SpotLocation(q.Spot(end))
		along := loc.Y
		if dir.Vertical() {
			along = loc.X
		}
		side = append(side, sibling{q, along, i})
	}
	slices.SortStableFunc(side, func(a, b sibling) int {
		switch {
		case a.along < b.along:
			return -1
		case a.along > b.along:
			return 1
		}
		return a.order - b.order
	})
	for i, s := range side {
		if s.port == p {
			return i
		}
	}
	return 0
}

// IsValidLinkTo reports whether a new link from p to other is allowed.
func (p *Port) IsValidLinkTo(other *Port) bool {
	return p.ValidateLinkTo(other) == nil
}

// ValidateLinkTo explains why a link from p to other is refused, or
// returns nil. It checks the ports' capabilities, the self-node and
// duplicate-link exceptions, single-link ports and the document's cycle
// policy.
func (p *Port) ValidateLinkTo(other *Port) error {
	if other == nil {
		return fmt.Errorf("%w: no destination port", ErrInvalidLink)
	}
	if !p.CanOriginate {
		return fmt.Errorf("%w: port %s cannot originate links", ErrInvalidLink, p.ID)
	}
	if !other.CanTerminate {
		return fmt.Errorf("%w: port %s cannot terminate links", ErrInvalidLink, other.ID)
	}
	if p.node == other.node && !(p.AllowSelfNode && other.AllowSelfNode) {
		return fmt.Errorf("%w: ports %s and %s share node %s", ErrInvalidLink, p.ID, other.ID, p.node.ID)
	}
	if p.SingleLinkOnly && len(p.links) > 0 {
		return fmt.Errorf("%w: port %s already has a link", ErrInvalidLink, p.ID)
	}
	if other.SingleLinkOnly && len(other.links) > 0 {
		return fmt.Errorf("%w: port %s already has a link", ErrInvalidLink, other.ID)
	}
	if !(p.AllowDuplicateLinks && other.AllowDuplicateLinks) {
		for _, l := range p.links {
			if l.from == p && l.to == other {
				return fmt.Errorf("%w: %s already links %s to %s", ErrInvalidLink, l.ID, p.ID, other.ID)
			}
		}
	}
	doc := p.node.doc
	if doc == nil {
		return nil
	}
	if err := validation.CheckCycle(doc.policy, doc.edges(), p.node.ID, other.node.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}
	return nil
}

// end builds the routing view of p for link at end.
func (p *Port) end(link *Link, end End) *connections.End {
	return &connections.End{
		Shape:  p.Shape(),
		Node:   p.node.Bounds(),
		Spot:   p.Spot(end),
		Length: p.EndSegmentLength(link, end),
	}
}

func (p *Port) attach(l *Link) {
	if !slices.Contains(p.links, l) {
		p.links = append(p.links, l)
	}
}

func (p *Port) detach(l *Link) {
	p.links = slices.DeleteFunc(p.links, func(x *Link) bool { return x == l })
}
