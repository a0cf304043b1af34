package diagram

import (
	"fmt"
	"log/slog"
	"slices"

	"linkroute/config"
	"linkroute/connections"
	"linkroute/geometry"
	"linkroute/validation"
)

// Document owns nodes and links and schedules their routing.
type Document struct {
	opts      config.Options
	policy    validation.CyclePolicy
	logger    *slog.Logger
	calc      *connections.Calculator
	scheduler *RouteScheduler

	nodes     []*Node
	nodeByID  map[string]*Node
	portByID  map[string]*Port
	links     []*Link
	linkByID  map[string]*Link
	listeners []func(RouteChange)
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for routing diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		d.logger = l
	}
}

// WithOptions replaces the default routing options.
func WithOptions(o config.Options) Option {
	return func(d *Document) {
		d.opts = o
	}
}

// NewDocument returns an empty document.
func NewDocument(opts ...Option) (*Document, error) {
	d := &Document{
		opts:     config.Default(),
		logger:   slog.New(slog.DiscardHandler),
		nodeByID: make(map[string]*Node),
		portByID: make(map[string]*Port),
		linkByID: make(map[string]*Link),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.opts.Validate(); err != nil {
		return nil, err
	}
	policy, err := d.opts.Cycles()
	if err != nil {
		return nil, err
	}
	d.policy = policy
	d.calc = connections.NewCalculator(d.opts.Grid(), d.logger)
	d.scheduler = NewRouteScheduler(d.logger)
	return d, nil
}

// Options returns the routing options in effect.
func (d *Document) Options() config.Options { return d.opts }

// Calculator returns the route calculator shared by the document's links.
func (d *Document) Calculator() *connections.Calculator { return d.calc }

// Stats returns the routing counters.
func (d *Document) Stats() Stats { return d.scheduler.Stats() }

// Nodes returns the nodes in insertion order.
func (d *Document) Nodes() []*Node { return slices.Clone(d.nodes) }

// Links returns the links in insertion order.
func (d *Document) Links() []*Link { return slices.Clone(d.links) }

// Node returns the node with the given ID, or nil.
func (d *Document) Node(id string) *Node { return d.nodeByID[id] }

// Port returns the port with the given ID, or nil.
func (d *Document) Port(id string) *Port { return d.portByID[id] }

// Link returns the link with the given ID, or nil.
func (d *Document) Link(id string) *Link { return d.linkByID[id] }

// OnRouteChange registers fn to receive a snapshot of every route
// computation.
func (d *Document) OnRouteChange(fn func(RouteChange)) {
	d.listeners = append(d.listeners, fn)
}

// AddNode adds a node with the given shape.
func (d *Document) AddNode(id string, shape Shape) (*Node, error) {
	if _, ok := d.nodeByID[id]; ok {
		return nil, fmt.Errorf("node %q: %w", id, ErrDuplicateID)
	}
	n := &Node{ID: id, Shape: shape, doc: d}
	d.nodes = append(d.nodes, n)
	d.nodeByID[id] = n
	return n, nil
}

// AddPort adds a port to a node. The port starts with no spots, the
// document's end segment length, and may both originate and terminate
// links.
func (d *Document) AddPort(nodeID, portID string) (*Port, error) {
	n := d.nodeByID[nodeID]
	if n == nil {
		return nil, fmt.Errorf("node %q: %w", nodeID, ErrUnknownNode)
	}
	if _, ok := d.portByID[portID]; ok {
		return nil, fmt.Errorf("port %q: %w", portID, ErrDuplicateID)
	}
	p := &Port{
		ID:            portID,
		SegmentLength: d.opts.EndSegmentLength,
		CanOriginate:  true,
		CanTerminate:  true,
		node:          n,
	}
	n.ports = append(n.ports, p)
	d.portByID[portID] = p
	return p, nil
}

// UpdatePort applies fn to a port and reroutes its links.
func (d *Document) UpdatePort(id string, fn func(*Port)) error {
	p := d.portByID[id]
	if p == nil {
		return fmt.Errorf("port %q: %w", id, ErrUnknownPort)
	}
	d.SuspendRouting()
	defer d.ResumeRouting()
	fn(p)
	for _, l := range p.node.Links() {
		l.Invalidate()
	}
	return nil
}

// AddLink connects two ports without checking link validity, and routes
// the new link.
func (d *Document) AddLink(id, fromPort, toPort string) (*Link, error) {
	from, to, err := d.ends(id, fromPort, toPort)
	if err != nil {
		return nil, err
	}
	return d.addLink(id, from, to), nil
}

// Connect is AddLink for interactive use: the ports must accept the link.
func (d *Document) Connect(id, fromPort, toPort string) (*Link, error) {
	from, to, err := d.ends(id, fromPort, toPort)
	if err != nil {
		return nil, err
	}
	if err := from.ValidateLinkTo(to); err != nil {
		return nil, fmt.Errorf("link %q: %w", id, err)
	}
	return d.addLink(id, from, to), nil
}

func (d *Document) ends(id, fromPort, toPort string) (*Port, *Port, error) {
	if _, ok := d.linkByID[id]; ok {
		return nil, nil, fmt.Errorf("link %q: %w", id, ErrDuplicateID)
	}
	from := d.portByID[fromPort]
	if from == nil {
		return nil, nil, fmt.Errorf("link %q from %q: %w", id, fromPort, ErrUnknownPort)
	}
	to := d.portByID[toPort]
	if to == nil {
		return nil, nil, fmt.Errorf("link %q to %q: %w", id, toPort, ErrUnknownPort)
	}
	return from, to, nil
}

func (d *Document) addLink(id string, from, to *Port) *Link {
	l := NewLink(id, d)
	l.penWidth = d.opts.PenWidth
	d.links = append(d.links, l)
	d.linkByID[id] = l
	d.SuspendRouting()
	defer d.ResumeRouting()
	l.connect(from, to)
	// Siblings on the same side may have to fan out further.
	for _, other := range slices.Concat(from.node.Links(), to.node.Links()) {
		other.Invalidate()
	}
	return l
}

// Relink moves one end of a link to another port.
func (d *Document) Relink(linkID string, end End, portID string) error {
	l := d.linkByID[linkID]
	if l == nil {
		return fmt.Errorf("link %q: %w", linkID, ErrUnknownLink)
	}
	p := d.portByID[portID]
	if p == nil {
		return fmt.Errorf("link %q %s %q: %w", linkID, end, portID, ErrUnknownPort)
	}
	from, to := l.from, l.to
	if end == FromEnd {
		from = p
	} else {
		to = p
	}
	l.connect(from, to)
	l.Invalidate()
	return nil
}

// RemoveLink detaches a link from its ports and drops it.
func (d *Document) RemoveLink(id string) error {
	l := d.linkByID[id]
	if l == nil {
		return fmt.Errorf("link %q: %w", id, ErrUnknownLink)
	}
	l.disconnect()
	d.scheduler.Forget(l)
	delete(d.linkByID, id)
	d.links = slices.DeleteFunc(d.links, func(x *Link) bool { return x == l })
	return nil
}

// RemovePort drops a port. Its links stay in the document with that end
// unset and their points untouched.
func (d *Document) RemovePort(id string) error {
	p := d.portByID[id]
	if p == nil {
		return fmt.Errorf("port %q: %w", id, ErrUnknownPort)
	}
	for _, l := range p.Links() {
		if l.from == p {
			l.from = nil
		}
		if l.to == p {
			l.to = nil
		}
		d.scheduler.Forget(l)
	}
	p.links = nil
	p.node.removePort(p)
	delete(d.portByID, id)
	return nil
}

// MoveNode translates a node and reroutes every link connected to it.
func (d *Document) MoveNode(id string, dx, dy float64) error {
	n := d.nodeByID[id]
	if n == nil {
		return fmt.Errorf("node %q: %w", id, ErrUnknownNode)
	}
	m, ok := n.Shape.(Mover)
	if !ok {
		return fmt.Errorf("node %q: %w", id, ErrNotMovable)
	}
	d.SuspendRouting()
	defer d.ResumeRouting()
	m.MoveBy(dx, dy)
	for _, p := range n.ports {
		if p.Delegate == nil {
			continue
		}
		if dm, ok := p.Delegate.(Mover); ok {
			dm.MoveBy(dx, dy)
		}
	}
	for _, l := range n.Links() {
		l.Invalidate()
	}
	return nil
}

// RouteAll recomputes every link once.
func (d *Document) RouteAll() {
	d.SuspendRouting()
	defer d.ResumeRouting()
	for _, l := range d.links {
		l.Invalidate()
	}
}

// SuspendRouting defers route computations until the matching
// ResumeRouting. Calls nest.
func (d *Document) SuspendRouting() {
	d.scheduler.Suspend()
}

// ResumeRouting ends one suspension.
func (d *Document) ResumeRouting() {
	d.scheduler.Resume()
}

// IsRoutingSuspended reports whether route requests are deferred.
func (d *Document) IsRoutingSuspended() bool {
	return d.scheduler.IsSuspended()
}

// RequestRoute routes l now or defers it.
func (d *Document) RequestRoute(l *Link) {
	d.scheduler.RequestRoute(l)
}

// Obstacles returns the bounds of every node.
func (d *Document) Obstacles(*Link) []geometry.Rect {
	out := make([]geometry.Rect, 0, len(d.nodes))
	for _, n := range d.nodes {
		out = append(out, n.Bounds())
	}
	return out
}

// LinkRouted records a finished route computation.
func (d *Document) LinkRouted(l *Link, before []geometry.Point, res connections.Result) {
	if res.Fallback {
		d.scheduler.countFallback()
	}
	d.logger.Debug("link routed",
		"link", l.ID,
		"points", len(res.Points),
		"adjusted", res.Adjusted,
		"passes", res.Passes,
		"fallback", res.Fallback)
	if len(d.listeners) == 0 {
		return
	}
	change := RouteChange{Link: l, Before: slices.Clone(before), After: l.Points()}
	for _, fn := range d.listeners {
		fn(change)
	}
}

// edges lists the node-level connections used by cycle policies.
func (d *Document) edges() []validation.Edge {
	out := make([]validation.Edge, 0, len(d.links))
	for _, l := range d.links {
		if l.from == nil || l.to == nil {
			continue
		}
		out = append(out, validation.Edge{From: l.from.node.ID, To: l.to.node.ID})
	}
	return out
}
