package canvas

import (
	"fmt"
	"unicode"
)

// LineError is a cell whose line drawing does not join its neighbour.
type LineError struct {
	X, Y    int
	Char    rune
	Message string
}

func (e LineError) String() string {
	return fmt.Sprintf("(%d,%d) %q: %s", e.X, e.Y, e.Char, e.Message)
}

// LineValidator checks that rendered lines join up. An arm of a
// box-drawing character that points at another line character must meet
// an arm pointing back, and an arrowhead must have a line behind it.
// Arms ending in blank cells or text are allowed unless Strict is set.
type LineValidator struct {
	Strict bool

	merger *CharacterMerger
}

// NewLineValidator creates a new validator with default settings.
func NewLineValidator() *LineValidator {
	return &LineValidator{merger: NewCharacterMerger()}
}

type arm struct {
	dir    rune
	dx, dy int
	back   rune
}

var arms = [4]arm{
	{'N', 0, -1, 'S'},
	{'E', 1, 0, 'W'},
	{'S', 0, 1, 'N'},
	{'W', -1, 0, 'E'},
}

// arrowTail is the side of each arrowhead its line arrives from.
var arrowTail = map[rune]arm{
	'▶': arms[3], '>': arms[3],
	'◀': arms[1], '<': arms[1],
	'▼': arms[0], 'v': arms[0],
	'▲': arms[2], '^': arms[2],
}

// Validate returns every broken joint in c, scanning rows top to bottom.
func (v *LineValidator) Validate(c Canvas) []LineError {
	var errs []LineError
	w, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := c.Get(Point{x, y})
			if tail, ok := arrowTail[r]; ok {
				n := c.Get(Point{x + tail.dx, y + tail.dy})
				if !v.merger.Connects(n, tail.back) {
					errs = append(errs, LineError{x, y, r, "arrowhead without a line behind it"})
				}
				continue
			}
			for _, a := range arms {
				if !v.merger.Connects(r, a.dir) {
					continue
				}
				n := c.Get(Point{x + a.dx, y + a.dy})
				if v.joins(n, a.back) {
					continue
				}
				errs = append(errs, LineError{x, y, r, fmt.Sprintf("%c arm meets %q", a.dir, n)})
			}
		}
	}
	return errs
}

func (v *LineValidator) joins(n rune, back rune) bool {
	switch {
	case v.merger.Connects(n, back), isArrow(n):
		return true
	case n == ' ' || n == '\x00':
		return !v.Strict
	case unicode.IsLetter(n) || unicode.IsDigit(n):
		return !v.Strict
	}
	return false
}
