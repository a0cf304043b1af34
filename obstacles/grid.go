package obstacles

import (
	"linkroute/geometry"
	"math"
)

// unreached marks a cell the wavefront has not labelled.
const unreached = -1

// Grid is a uniform grid of cells, each holding an occupancy bit and a
// propagated hop distance. Grids are built per routing attempt.
type Grid struct {
	origin geometry.Point // center of cell (0,0)
	cell   float64
	cols   int
	rows   int
	walls  []bool
	dist   []int
}

// NewGrid covers region with square cells whose centers include anchor.
// The cell size doubles until the grid fits within maxCells.
func NewGrid(region geometry.Rect, anchor geometry.Point, cellSize float64, maxCells int) *Grid {
	region = region.UnionPoint(anchor)
	g := &Grid{cell: cellSize}
	for {
		g.layout(region, anchor)
		if maxCells <= 0 || g.cols*g.rows <= maxCells {
			break
		}
		g.cell *= 2
	}
	g.walls = make([]bool, g.cols*g.rows)
	g.dist = make([]int, g.cols*g.rows)
	g.Reset()
	return g
}

func (g *Grid) layout(region geometry.Rect, anchor geometry.Point) {
	left := math.Ceil((anchor.X-region.X)/g.cell) * g.cell
	top := math.Ceil((anchor.Y-region.Y)/g.cell) * g.cell
	g.origin = geometry.Pt(anchor.X-left, anchor.Y-top)
	g.cols = int(math.Ceil((region.Right()-g.origin.X)/g.cell)) + 1
	g.rows = int(math.Ceil((region.Bottom()-g.origin.Y)/g.cell)) + 1
}

// Size returns the number of columns and rows.
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// CellSize returns the edge length of a cell.
func (g *Grid) CellSize() float64 {
	return g.cell
}

// CellAt returns the cell whose center is nearest to p, clamped to the grid.
func (g *Grid) CellAt(p geometry.Point) Cell {
	c := int(math.Round((p.X - g.origin.X) / g.cell))
	r := int(math.Round((p.Y - g.origin.Y) / g.cell))
	return Cell{Col: clamp(c, 0, g.cols-1), Row: clamp(r, 0, g.rows-1)}
}

// Center returns the center point of c.
func (g *Grid) Center(c Cell) geometry.Point {
	return geometry.Pt(g.origin.X+float64(c.Col)*g.cell, g.origin.Y+float64(c.Row)*g.cell)
}

// InBounds reports whether c is inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.cols && c.Row >= 0 && c.Row < g.rows
}

func (g *Grid) index(c Cell) int {
	return c.Row*g.cols + c.Col
}

// Occupy marks every cell whose center lies inside r grown by grow.
func (g *Grid) Occupy(r geometry.Rect, grow float64) {
	r = r.Inflate(grow)
	minC := clamp(int(math.Ceil((r.X-g.origin.X)/g.cell)), 0, g.cols)
	maxC := clamp(int(math.Floor((r.Right()-g.origin.X)/g.cell)), -1, g.cols-1)
	minR := clamp(int(math.Ceil((r.Y-g.origin.Y)/g.cell)), 0, g.rows)
	maxR := clamp(int(math.Floor((r.Bottom()-g.origin.Y)/g.cell)), -1, g.rows-1)
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			g.walls[row*g.cols+col] = true
		}
	}
}

// IsWall reports whether c is occupied. Cells outside the grid are walls.
func (g *Grid) IsWall(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.walls[g.index(c)]
}

// Free clears the occupancy bit of c.
func (g *Grid) Free(c Cell) {
	if g.InBounds(c) {
		g.walls[g.index(c)] = false
	}
}

// clearExit frees c and the cells after it in direction d whose centers
// lie inside own grown by grow, so an end sitting inside its own grown
// node can still be left in its prescribed direction.
func (g *Grid) clearExit(c Cell, d geometry.Direction, own geometry.Rect, grow float64) {
	g.Free(c)
	if !d.IsCardinal() || own.IsEmpty() {
		return
	}
	zone := own.Inflate(grow)
	for n := step(c, d); g.InBounds(n) && zone.Contains(g.Center(n)); n = step(n, d) {
		g.Free(n)
	}
}

// Reset clears every propagated distance, keeping walls.
func (g *Grid) Reset() {
	for i := range g.dist {
		g.dist[i] = unreached
	}
}

// Distance returns the hop distance of c from the propagation target, or
// -1 when c was not reached.
func (g *Grid) Distance(c Cell) int {
	if !g.InBounds(c) {
		return unreached
	}
	return g.dist[g.index(c)]
}

// Propagate labels cells with their hop distance from target using a 4-way
// breadth-first wavefront limited to lim. The first step out of target
// only goes in dir, so paths arrive against the target's direction. A
// non-cardinal dir lets the wavefront leave target on all four sides.
func (g *Grid) Propagate(target Cell, dir geometry.Direction, lim span) {
	g.dist[g.index(target)] = 0
	queue := []Cell{target}
	if dir.IsCardinal() {
		first := step(target, dir)
		if !lim.contains(first) || g.IsWall(first) {
			return
		}
		g.dist[g.index(first)] = 1
		queue[0] = first
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next := g.dist[g.index(cur)] + 1
		for _, d := range visitOrder(dir) {
			n := step(cur, d)
			if !lim.contains(n) || g.IsWall(n) || g.dist[g.index(n)] != unreached {
				continue
			}
			g.dist[g.index(n)] = next
			queue = append(queue, n)
		}
	}
}

// Trace walks from source down the distance gradient to the propagation
// target, preferring to keep heading, then turning right, then left, then
// reversing. It returns the visited cells or nil if source is unreached.
func (g *Grid) Trace(source Cell, heading geometry.Direction) []Cell {
	cur := source
	d := g.Distance(cur)
	if d == unreached {
		return nil
	}
	cells := []Cell{cur}
	for d > 0 {
		moved := false
		for _, dir := range visitOrder(heading) {
			n := step(cur, dir)
			if g.Distance(n) == d-1 {
				cur, heading, d = n, dir, d-1
				cells = append(cells, cur)
				moved = true
				break
			}
		}
		if !moved {
			return nil
		}
	}
	return cells
}

// visitOrder lists the four directions starting with d, then its two
// perpendiculars, then the reverse.
func visitOrder(d geometry.Direction) [4]geometry.Direction {
	if !d.IsCardinal() {
		d = geometry.East
	}
	return [4]geometry.Direction{d, d.Rotate(1), d.Rotate(-1), d.Opposite()}
}

func step(c Cell, d geometry.Direction) Cell {
	switch d {
	case geometry.East:
		return Cell{c.Col + 1, c.Row}
	case geometry.South:
		return Cell{c.Col, c.Row + 1}
	case geometry.West:
		return Cell{c.Col - 1, c.Row}
	case geometry.North:
		return Cell{c.Col, c.Row - 1}
	}
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
