// Package terminal shows a routed document in the terminal and lets the
// user move nodes to watch links reroute.
package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"linkroute/canvas"
	"linkroute/diagram"
	"linkroute/geometry"
)

var (
	styleDefault  = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)

	linkColors = map[string]tcell.Color{
		"cyan":    tcell.ColorTeal,
		"yellow":  tcell.ColorYellow,
		"magenta": tcell.ColorPurple,
		"green":   tcell.ColorGreen,
		"blue":    tcell.ColorBlue,
		"red":     tcell.ColorRed,
	}
)

const minScale = 0.02

// CellStyle returns the screen style for a canvas color name.
func CellStyle(color string) tcell.Style {
	if c, ok := linkColors[color]; ok {
		return styleDefault.Foreground(c)
	}
	return styleDefault
}

// Viewer draws a document on a tcell screen.
type Viewer struct {
	screen tcell.Screen
	doc    *diagram.Document
	opts   canvas.RenderOptions
	logger *slog.Logger

	offX, offY int
	selected   int // index into doc.Nodes(), -1 for none
	canvas     *canvas.ColoredMatrixCanvas
	proj       canvas.Projection
}

// NewViewer returns a viewer for doc. The screen must be initialized.
func NewViewer(screen tcell.Screen, doc *diagram.Document, opts canvas.RenderOptions, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	v := &Viewer{
		screen:   screen,
		doc:      doc,
		opts:     opts,
		logger:   logger,
		selected: -1,
	}
	v.render()
	return v
}

// Run opens the terminal, shows doc until the user quits and restores the
// terminal.
func Run(doc *diagram.Document, opts canvas.RenderOptions, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.Clear()

	NewViewer(screen, doc, opts, logger).Loop()
	return nil
}

// Loop draws and handles events until the user quits.
func (v *Viewer) Loop() {
	for {
		v.Draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return
			}
		}
	}
}

// Selected returns the selected node, or nil.
func (v *Viewer) Selected() *diagram.Node {
	nodes := v.doc.Nodes()
	if v.selected < 0 || v.selected >= len(nodes) {
		return nil
	}
	return nodes[v.selected]
}

// HandleKey applies one key press and reports whether the viewer should
// close.
//
//	q, Esc, Ctrl-C  quit
//	arrows          pan
//	Tab             select the next node
//	h j k l         move the selected node by one cell
//	+ -             zoom
//	r               reroute every link
//	a               toggle arrowheads
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.offY = max(v.offY-1, 0)
		return false
	case tcell.KeyDown:
		v.offY++
		return false
	case tcell.KeyLeft:
		v.offX = max(v.offX-1, 0)
		return false
	case tcell.KeyRight:
		v.offX++
		return false
	case tcell.KeyTab:
		if n := len(v.doc.Nodes()); n > 0 {
			v.selected = (v.selected + 1) % n
		}
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'h':
		v.move(-1, 0)
	case 'l':
		v.move(1, 0)
	case 'k':
		v.move(0, -1)
	case 'j':
		v.move(0, 1)
	case '+', '=':
		v.zoom(1.5)
	case '-':
		v.zoom(1 / 1.5)
	case 'r':
		v.doc.RouteAll()
		v.render()
	case 'a':
		v.opts.Arrows = !v.opts.Arrows
		v.render()
	}
	return false
}

func (v *Viewer) move(dx, dy int) {
	n := v.Selected()
	if n == nil {
		return
	}
	err := v.doc.MoveNode(n.ID, float64(dx)/v.opts.ScaleX, float64(dy)/v.opts.ScaleY)
	if err != nil {
		v.logger.Warn("move failed", "node", n.ID, "err", err)
		return
	}
	v.render()
}

func (v *Viewer) zoom(f float64) {
	v.opts.ScaleX = max(v.opts.ScaleX*f, minScale)
	v.opts.ScaleY = max(v.opts.ScaleY*f, minScale)
	v.render()
}

func (v *Viewer) render() {
	v.canvas, v.proj = canvas.Render(v.doc, v.opts)
}

// Draw paints the visible part of the document and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	rows := h - 1

	var sel canvas.Rect
	selected := v.Selected()
	if selected != nil {
		b := selected.Bounds()
		tl := v.proj.Cell(geometry.Pt(b.X, b.Y))
		br := v.proj.Cell(geometry.Pt(b.Right(), b.Bottom()))
		sel = canvas.Rect{X: tl.X, Y: tl.Y, Width: br.X - tl.X + 1, Height: br.Y - tl.Y + 1}
	}

	cw, ch := v.canvas.Size()
	for y := 0; y < rows && y+v.offY < ch; y++ {
		for x := 0; x < w && x+v.offX < cw; x++ {
			p := canvas.Point{X: x + v.offX, Y: y + v.offY}
			r := v.canvas.Get(p)
			if r == '\x00' || r == ' ' {
				continue
			}
			style := CellStyle(v.canvas.ColorAt(p))
			if selected != nil && onBorder(sel, p) {
				style = styleSelected
			}
			v.screen.SetContent(x, y, r, nil, style)
		}
	}
	v.drawStatus(w, h-1)
}

func onBorder(r canvas.Rect, p canvas.Point) bool {
	inX := p.X >= r.X && p.X < r.X+r.Width
	inY := p.Y >= r.Y && p.Y < r.Y+r.Height
	if !inX || !inY {
		return false
	}
	return p.X == r.X || p.X == r.X+r.Width-1 || p.Y == r.Y || p.Y == r.Y+r.Height-1
}

func (v *Viewer) drawStatus(w, y int) {
	name := "-"
	if n := v.Selected(); n != nil {
		name = n.ID
	}
	st := v.doc.Stats()
	line := fmt.Sprintf(" node:%s routes:%d deferred:%d fallbacks:%d zoom:%.2f  tab select  hjkl move  q quit",
		name, st.Routes, st.Deferred, st.Fallbacks, v.opts.ScaleX)
	line = canvas.FitText(line, w, "")
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	x := 0
	for _, r := range line {
		v.screen.SetContent(x, y, r, nil, styleStatus)
		x += canvas.RuneWidth(r)
	}
}
