// Package diagram is the document model for link routing: nodes and their
// shapes, ports, links and the document that owns them and schedules route
// computations.
package diagram

import (
	"errors"

	"linkroute/geometry"
)

var (
	// ErrUnknownNode is returned when a node ID is not in the document.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownPort is returned when a port ID is not in the document.
	ErrUnknownPort = errors.New("unknown port")
	// ErrUnknownLink is returned when a link is not in the document.
	ErrUnknownLink = errors.New("unknown link")
	// ErrDuplicateID is returned when an ID is already taken.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidLink is returned when ports refuse a link.
	ErrInvalidLink = errors.New("invalid link")
	// ErrNotMovable is returned when a node's shape cannot move.
	ErrNotMovable = errors.New("shape cannot move")
)

// End names one end of a link.
type End int

const (
	FromEnd End = iota
	ToEnd
)

func (e End) String() string {
	if e == ToEnd {
		return "to"
	}
	return "from"
}

// LinkState tracks whether a link's points match its ends.
type LinkState int

const (
	Unrouted LinkState = iota // fewer than two points
	Routed                    // points match the current anchors
	Stale                     // an anchor or style changed since routing
)

func (s LinkState) String() string {
	switch s {
	case Routed:
		return "routed"
	case Stale:
		return "stale"
	}
	return "unrouted"
}

// RouteChange is a before/after snapshot of one route computation.
type RouteChange struct {
	Link   *Link
	Before []geometry.Point
	After  []geometry.Point
}

// Stats counts routing work done by a document.
type Stats struct {
	Routes    int // route computations run
	Deferred  int // requests queued while suspended
	Fallbacks int // obstacle avoidance abandoned
}
