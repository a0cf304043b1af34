package canvas

import (
	"math"

	"linkroute/geometry"
)

// Projection maps document coordinates onto canvas cells.
type Projection struct {
	Origin geometry.Point // document point drawn at cell (0,0)
	ScaleX float64        // cells per document unit, horizontally
	ScaleY float64        // cells per document unit, vertically
}

// Fit returns a projection that places bounds at margin cells from the
// top-left corner, and the canvas size that holds it with the same margin
// on the other sides.
func Fit(bounds geometry.Rect, scaleX, scaleY float64, margin int) (Projection, int, int) {
	p := Projection{
		Origin: geometry.Pt(bounds.X-float64(margin)/scaleX, bounds.Y-float64(margin)/scaleY),
		ScaleX: scaleX,
		ScaleY: scaleY,
	}
	br := p.Cell(geometry.Pt(bounds.Right(), bounds.Bottom()))
	return p, br.X + margin + 1, br.Y + margin + 1
}

// Cell returns the cell a document point falls in.
func (p Projection) Cell(q geometry.Point) Point {
	return Point{
		X: int(math.Round((q.X - p.Origin.X) * p.ScaleX)),
		Y: int(math.Round((q.Y - p.Origin.Y) * p.ScaleY)),
	}
}

// Cells projects a polyline, dropping repeated cells.
func (p Projection) Cells(pts []geometry.Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, q := range pts {
		c := p.Cell(q)
		if len(out) == 0 || out[len(out)-1] != c {
			out = append(out, c)
		}
	}
	return out
}

// NodeRenderer draws node boxes with their labels.
type NodeRenderer struct {
	Style BoxStyle
}

// NewNodeRenderer creates a node renderer with the default box style.
func NewNodeRenderer() *NodeRenderer {
	return &NodeRenderer{Style: DefaultBoxStyle}
}

// RenderNode draws the box for bounds. Boxes are at least 2x2 cells.
func (r *NodeRenderer) RenderNode(c *ColoredMatrixCanvas, proj Projection, bounds geometry.Rect, color string) Rect {
	tl := proj.Cell(geometry.Pt(bounds.X, bounds.Y))
	br := proj.Cell(geometry.Pt(bounds.Right(), bounds.Bottom()))
	box := Rect{X: tl.X, Y: tl.Y, Width: max(br.X-tl.X+1, 2), Height: max(br.Y-tl.Y+1, 2)}
	c.Tint(color, func(m *MatrixCanvas) {
		m.DrawBox(box.X, box.Y, box.Width, box.Height, r.Style)
	})
	return box
}

// RenderLabel writes label on the first inner row of box, centered and
// truncated to the inner width. Boxes without an inner row get no label.
func (r *NodeRenderer) RenderLabel(c *ColoredMatrixCanvas, box Rect, label string) {
	inner := box.Width - 2
	if box.Height < 3 || inner <= 0 {
		return
	}
	text := FitText(label, inner, "…")
	x := box.X + 1 + (inner-StringWidth(text))/2
	c.DrawText(x, box.Y+1, text)
}

// Rect is a box in cells.
type Rect struct {
	X, Y, Width, Height int
}
