package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

// CyclePolicy restricts which new links keep the node graph valid.
type CyclePolicy int

const (
	CycleAll           CyclePolicy = iota // any link
	CycleNotDirected                      // no directed cycles
	CycleNotUndirected                    // no cycles ignoring direction
	CycleTree                             // every node has at most one parent
)

var cyclePolicyNames = [...]string{"all", "not-directed", "not-undirected", "tree"}

func (p CyclePolicy) String() string {
	if p < 0 || int(p) >= len(cyclePolicyNames) {
		return fmt.Sprintf("CyclePolicy(%d)", int(p))
	}
	return cyclePolicyNames[p]
}

// ParseCyclePolicy converts a name to a CyclePolicy. The empty string is
// CycleAll.
func ParseCyclePolicy(name string) (CyclePolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CycleAll, nil
	}
	for i, n := range cyclePolicyNames {
		if n == name {
			return CyclePolicy(i), nil
		}
	}
	return CycleAll, fmt.Errorf("unknown cycle policy %q", name)
}

var (
	// ErrCycle is returned when a link would close a forbidden cycle.
	ErrCycle = errors.New("link would create a cycle")
	// ErrNotTree is returned when a link would give a node a second parent.
	ErrNotTree = errors.New("node already has a parent")
)

// Edge is an existing link between two nodes.
type Edge struct {
	From, To string
}

// CheckCycle reports whether a new link from -> to is allowed next to the
// existing edges under policy. It returns nil, ErrCycle, ErrNotTree or an
// error from building the graph.
func CheckCycle(policy CyclePolicy, edges []Edge, from, to string) error {
	if policy == CycleAll {
		return nil
	}
	if from == to {
		return fmt.Errorf("%w: %s links to itself", ErrCycle, from)
	}

	directed := policy == CycleNotDirected
	if policy == CycleTree {
		for _, e := range edges {
			if e.To == to {
				return fmt.Errorf("%w: %s is already linked from %s", ErrNotTree, to, e.From)
			}
		}
	}

	back, err := Reachable(edges, directed, to, from)
	if err != nil {
		return err
	}
	if back {
		return fmt.Errorf("%w: %s already reaches %s", ErrCycle, to, from)
	}
	return nil
}

// Reachable reports whether goal can be reached from start along edges,
// following their direction when directed is set.
func Reachable(edges []Edge, directed bool, start, goal string) (bool, error) {
	g, err := core.NewGraph(core.WithDirected(directed), core.WithMultiEdges(), core.WithLoops())
	if err != nil {
		return false, fmt.Errorf("building graph: %w", err)
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e.From, e.To, 0); err != nil {
			return false, fmt.Errorf("adding edge %s->%s: %w", e.From, e.To, err)
		}
	}
	if !g.HasVertex(start) || !g.HasVertex(goal) {
		return false, nil
	}
	res, err := bfs.BFS(g, start)
	if err != nil {
		return false, fmt.Errorf("searching from %s: %w", start, err)
	}
	_, ok := res.Depth[goal]
	return ok, nil
}
