package obstacles

import (
	"fmt"
	"log/slog"
	"strings"
)

// Glyphs used by Grid.String and Grid.Overlay.
const (
	wallGlyph      = '█'
	reachedGlyph   = '·'
	unreachedGlyph = ' '
)

// String renders the grid as text, one line per row: walls as '█', cells
// labelled by the last propagation as '·' and unreached cells as spaces.
func (g *Grid) String() string {
	return g.header() + g.Overlay(nil)
}

func (g *Grid) header() string {
	return fmt.Sprintf("grid %dx%d cell=%g origin=%v\n", g.cols, g.rows, g.cell, g.origin)
}

func (g *Grid) glyph(c Cell) rune {
	switch {
	case g.IsWall(c):
		return wallGlyph
	case g.Distance(c) != unreached:
		return reachedGlyph
	}
	return unreachedGlyph
}

// Overlay renders the grid like String with the cells of path marked by
// their order modulo 10.
func (g *Grid) Overlay(path []Cell) string {
	marks := make(map[Cell]rune, len(path))
	for i, c := range path {
		marks[c] = rune('0' + i%10)
	}
	var sb strings.Builder
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := Cell{col, row}
			if m, ok := marks[c]; ok {
				sb.WriteRune(m)
				continue
			}
			sb.WriteRune(g.glyph(c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// LogValue renders the last grid with the traced path, or the bare grid
// when no path was found. The dump is only built when the record is logged.
func (r Result) LogValue() slog.Value {
	if r.Grid == nil {
		return slog.StringValue("")
	}
	return slog.StringValue(r.Grid.header() + r.Grid.Overlay(r.Cells))
}
