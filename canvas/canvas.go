// Package canvas provides 2D character grids for drawing routed diagrams.
package canvas

// Point is a cell position. Origin (0,0) is top-left, Y grows downward.
type Point struct {
	X, Y int
}

// Canvas is a 2D grid of runes.
type Canvas interface {
	Size() (width, height int)
	Get(p Point) rune
	Set(p Point, char rune) error
}
