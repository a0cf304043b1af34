package canvas

import (
	"linkroute/diagram"
	"linkroute/geometry"
)

// RenderOptions controls how a document is drawn.
type RenderOptions struct {
	ScaleX, ScaleY float64 // cells per document unit
	Margin         int     // empty cells around the drawing
	Arrows         bool    // arrowheads at the to end of links
	Style          BoxStyle
}

// DefaultRenderOptions draws a 40x20 node as an 11x6 box.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ScaleX: 0.25,
		ScaleY: 0.25,
		Margin: 1,
		Arrows: true,
		Style:  DefaultBoxStyle,
	}
}

// Extent returns the bounds of every node and link point in doc.
func Extent(doc *diagram.Document) (geometry.Rect, bool) {
	var r geometry.Rect
	found := false
	grow := func(b geometry.Rect) {
		if !found {
			r, found = b, true
			return
		}
		r = r.Union(b)
	}
	for _, n := range doc.Nodes() {
		grow(n.Bounds())
	}
	for _, l := range doc.Links() {
		for _, p := range l.Points() {
			grow(geometry.Rect{X: p.X, Y: p.Y})
		}
	}
	return r, found
}

// Render draws every node and routed link of doc. Links are colored from
// the palette in document order.
func Render(doc *diagram.Document, opts RenderOptions) (*ColoredMatrixCanvas, Projection) {
	bounds, ok := Extent(doc)
	if !ok {
		return NewColoredMatrixCanvas(1, 1), Projection{ScaleX: opts.ScaleX, ScaleY: opts.ScaleY}
	}
	proj, w, h := Fit(bounds, opts.ScaleX, opts.ScaleY, opts.Margin)
	c := NewColoredMatrixCanvas(w, h)

	nodes := &NodeRenderer{Style: opts.Style}
	boxes := make([]Rect, 0, len(doc.Nodes()))
	for _, n := range doc.Nodes() {
		boxes = append(boxes, nodes.RenderNode(c, proj, n.Bounds(), ""))
	}

	for i, l := range doc.Links() {
		cells := proj.Cells(l.Points())
		if len(cells) < 2 {
			continue
		}
		c.Tint(PaletteColor(i), func(m *MatrixCanvas) {
			m.DrawPath(cells)
			if opts.Arrows {
				m.DrawArrow(cells[len(cells)-2], cells[len(cells)-1])
			}
		})
	}

	for i, n := range doc.Nodes() {
		nodes.RenderLabel(c, boxes[i], n.ID)
	}
	return c, proj
}
