package canvas

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidBox  = errors.New("invalid box dimensions")
	ErrShortPath   = errors.New("path must have at least 2 points")
)

// BoxStyle is the set of characters a box is drawn with.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

var (
	// DefaultBoxStyle draws light Unicode boxes.
	DefaultBoxStyle = BoxStyle{'┌', '┐', '└', '┘', '─', '│'}
	// ASCIIBoxStyle draws boxes with plain ASCII.
	ASCIIBoxStyle = BoxStyle{'+', '+', '+', '+', '-', '|'}
)

// MatrixCanvas implements a rune matrix-based canvas with high-level
// drawing primitives. Line characters drawn over each other merge into
// junctions.
//
// MatrixCanvas is NOT safe for concurrent writes.
type MatrixCanvas struct {
	matrix [][]rune
	width  int
	height int
	merger *CharacterMerger
}

// NewMatrixCanvas creates a new canvas with the specified dimensions, or
// returns nil for a non-positive size.
func NewMatrixCanvas(width, height int) *MatrixCanvas {
	if width <= 0 || height <= 0 {
		return nil
	}
	matrix := make([][]rune, height)
	for y := range matrix {
		matrix[y] = []rune(strings.Repeat(" ", width))
	}
	return &MatrixCanvas{
		matrix: matrix,
		width:  width,
		height: height,
		merger: NewCharacterMerger(),
	}
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Matrix returns direct access to the underlying rune matrix.
func (c *MatrixCanvas) Matrix() [][]rune {
	return c.matrix
}

func (c *MatrixCanvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the character at the given position, or ' ' outside the
// canvas.
func (c *MatrixCanvas) Get(p Point) rune {
	if !c.inBounds(p.X, p.Y) {
		return ' '
	}
	return c.matrix[p.Y][p.X]
}

// Set merges a character into the given position.
func (c *MatrixCanvas) Set(p Point, char rune) error {
	if !c.inBounds(p.X, p.Y) {
		return ErrOutOfBounds
	}
	c.matrix[p.Y][p.X] = c.merger.Merge(c.matrix[p.Y][p.X], char)
	return nil
}

// Put overwrites the character at the given position.
func (c *MatrixCanvas) Put(p Point, char rune) error {
	if !c.inBounds(p.X, p.Y) {
		return ErrOutOfBounds
	}
	c.matrix[p.Y][p.X] = char
	return nil
}

// Clear resets the canvas to all spaces.
func (c *MatrixCanvas) Clear() {
	for y := range c.matrix {
		for x := range c.matrix[y] {
			c.matrix[y][x] = ' '
		}
	}
}

// String returns the canvas rows joined by newlines, with trailing spaces
// removed.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))
	for y, row := range c.matrix {
		line := strings.Map(func(r rune) rune {
			if r == '\x00' {
				return -1
			}
			return r
		}, string(row))
		sb.WriteString(strings.TrimRight(line, " "))
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// DrawBox draws a rectangle with the specified style.
func (c *MatrixCanvas) DrawBox(x, y, width, height int, style BoxStyle) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBox, width, height)
	}
	right, bottom := x+width-1, y+height-1
	for i := x + 1; i < right; i++ {
		c.setClipped(i, y, style.Horizontal)
		c.setClipped(i, bottom, style.Horizontal)
	}
	for j := y + 1; j < bottom; j++ {
		c.setClipped(x, j, style.Vertical)
		c.setClipped(right, j, style.Vertical)
	}
	c.setClipped(x, y, style.TopLeft)
	c.setClipped(right, y, style.TopRight)
	c.setClipped(x, bottom, style.BottomLeft)
	c.setClipped(right, bottom, style.BottomRight)
	return nil
}

// DrawHorizontalLine draws a horizontal line, clipped to the canvas.
func (c *MatrixCanvas) DrawHorizontalLine(x1, y, x2 int, char rune) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.setClipped(x, y, char)
	}
}

// DrawVerticalLine draws a vertical line, clipped to the canvas.
func (c *MatrixCanvas) DrawVerticalLine(x, y1, y2 int, char rune) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.setClipped(x, y, char)
	}
}

// DrawLine draws a line between two points using Bresenham's algorithm.
func (c *MatrixCanvas) DrawLine(p1, p2 Point, char rune) {
	for _, p := range linePoints(p1, p2) {
		c.setClipped(p.X, p.Y, char)
	}
}

// linePoints returns the cells of the Bresenham line from p1 to p2,
// both included.
func linePoints(p1, p2 Point) []Point {
	dx, dy := abs(p2.X-p1.X), abs(p2.Y-p1.Y)
	xInc, yInc := 1, 1
	if p1.X > p2.X {
		xInc = -1
	}
	if p1.Y > p2.Y {
		yInc = -1
	}
	out := make([]Point, 0, max(dx, dy)+1)
	x, y := p1.X, p1.Y
	if dx > dy {
		err := dx / 2
		for x != p2.X {
			out = append(out, Point{x, y})
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != p2.Y {
			out = append(out, Point{x, y})
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}
	return append(out, p2)
}

// DrawText writes text starting at (x, y), overwriting what is there.
// Wide characters take two cells.
func (c *MatrixCanvas) DrawText(x, y int, text string) {
	if y < 0 || y >= c.height {
		return
	}
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.width {
			return
		}
		if x >= 0 {
			c.matrix[y][x] = r
			if w == 2 {
				c.matrix[y][x+1] = '\x00'
			}
		}
		x += w
	}
}

// DrawPath draws a polyline. Axis-aligned segments use line characters
// with rounded corners at the turns; other segments are drawn with dots.
func (c *MatrixCanvas) DrawPath(points []Point) error {
	pts := make([]Point, 0, len(points))
	for _, p := range points {
		if len(pts) == 0 || pts[len(pts)-1] != p {
			pts = append(pts, p)
		}
	}
	if len(pts) < 2 {
		return ErrShortPath
	}
	for i := 0; i < len(pts)-1; i++ {
		p1, p2 := pts[i], pts[i+1]
		char := '·'
		switch getDirection(p1, p2) {
		case 'E', 'W':
			char = '─'
		case 'N', 'S':
			char = '│'
		}
		cells := linePoints(p1, p2)
		for _, p := range cells[1 : len(cells)-1] {
			c.setClipped(p.X, p.Y, char)
		}
	}
	for i, p := range pts {
		c.setClipped(p.X, p.Y, jointChar(pts, i))
	}
	return nil
}

// jointChar picks the character for the i-th point of a path.
func jointChar(pts []Point, i int) rune {
	var in, out rune
	if i > 0 {
		in = getDirection(pts[i-1], pts[i])
	}
	if i < len(pts)-1 {
		out = getDirection(pts[i], pts[i+1])
	}
	if in != 0 && out != 0 {
		if corner, ok := selectCorner(in, out); ok {
			return corner
		}
	}
	switch {
	case in != 0 && in == out:
		if in == 'E' || in == 'W' {
			return '─'
		}
		return '│'
	case out != 0:
		return halfLine(out)
	case in != 0:
		return halfLine(opposite(in))
	}
	return '·'
}

// halfLine is the half-cell line reaching out of a cell toward dir.
func halfLine(dir rune) rune {
	switch dir {
	case 'N':
		return '╵'
	case 'E':
		return '╶'
	case 'S':
		return '╷'
	}
	return '╴'
}

func opposite(dir rune) rune {
	switch dir {
	case 'N':
		return 'S'
	case 'E':
		return 'W'
	case 'S':
		return 'N'
	}
	return 'E'
}

// DrawArrow puts an arrowhead at the end of the segment from -> to.
func (c *MatrixCanvas) DrawArrow(from, to Point) {
	var arrow rune
	switch getDirection(from, to) {
	case 'E':
		arrow = '▶'
	case 'W':
		arrow = '◀'
	case 'S':
		arrow = '▼'
	case 'N':
		arrow = '▲'
	default:
		return
	}
	if c.inBounds(to.X, to.Y) {
		c.matrix[to.Y][to.X] = arrow
	}
}

// selectCorner chooses the rounded corner for a turn from one heading to
// another.
func selectCorner(from, to rune) (rune, bool) {
	switch {
	case from == 'E' && to == 'S', from == 'N' && to == 'W':
		return '╮', true
	case from == 'E' && to == 'N', from == 'S' && to == 'W':
		return '╯', true
	case from == 'W' && to == 'S', from == 'N' && to == 'E':
		return '╭', true
	case from == 'W' && to == 'N', from == 'S' && to == 'E':
		return '╰', true
	}
	return 0, false
}

// getDirection returns the axis direction from p1 to p2, or 0 when the
// points coincide or the segment is diagonal.
func getDirection(p1, p2 Point) rune {
	switch {
	case p1.Y == p2.Y && p2.X > p1.X:
		return 'E'
	case p1.Y == p2.Y && p2.X < p1.X:
		return 'W'
	case p1.X == p2.X && p2.Y > p1.Y:
		return 'S'
	case p1.X == p2.X && p2.Y < p1.Y:
		return 'N'
	}
	return 0
}

// setClipped merges a character with bounds checking (no error).
func (c *MatrixCanvas) setClipped(x, y int, char rune) {
	if c.inBounds(x, y) {
		c.matrix[y][x] = c.merger.Merge(c.matrix[y][x], char)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
