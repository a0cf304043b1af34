package canvas

import "strings"

// ColoredMatrixCanvas extends MatrixCanvas with a color name per cell.
type ColoredMatrixCanvas struct {
	*MatrixCanvas
	colors [][]string
}

// NewColoredMatrixCanvas creates a new colored matrix canvas, or returns
// nil for a non-positive size.
func NewColoredMatrixCanvas(width, height int) *ColoredMatrixCanvas {
	m := NewMatrixCanvas(width, height)
	if m == nil {
		return nil
	}
	colors := make([][]string, height)
	for i := range colors {
		colors[i] = make([]string, width)
	}
	return &ColoredMatrixCanvas{MatrixCanvas: m, colors: colors}
}

// SetWithColor sets a character with a specific color.
func (c *ColoredMatrixCanvas) SetWithColor(p Point, char rune, color string) error {
	if err := c.MatrixCanvas.Set(p, char); err != nil {
		return err
	}
	c.colors[p.Y][p.X] = color
	return nil
}

// Tint runs draw and gives every cell it changed the given color.
func (c *ColoredMatrixCanvas) Tint(color string, draw func(m *MatrixCanvas)) {
	before := make([][]rune, len(c.matrix))
	for y, row := range c.matrix {
		before[y] = append([]rune(nil), row...)
	}
	draw(c.MatrixCanvas)
	for y, row := range c.matrix {
		for x, r := range row {
			if r != before[y][x] {
				c.colors[y][x] = color
			}
		}
	}
}

// ColorAt returns the color name of a cell, or "".
func (c *ColoredMatrixCanvas) ColorAt(p Point) string {
	if !c.inBounds(p.X, p.Y) {
		return ""
	}
	return c.colors[p.Y][p.X]
}

// ColoredString returns the canvas as a string with ANSI color codes.
func (c *ColoredMatrixCanvas) ColoredString() string {
	var sb strings.Builder
	for y := 0; y < c.height; y++ {
		current := ""
		for x := 0; x < c.width; x++ {
			char := c.matrix[y][x]
			if char == '\x00' {
				continue
			}
			code := ANSI(c.colors[y][x])
			if code != current {
				if current != "" {
					sb.WriteString(ansiReset)
				}
				sb.WriteString(code)
				current = code
			}
			sb.WriteRune(char)
		}
		if current != "" {
			sb.WriteString(ansiReset)
		}
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
