package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkroute/canvas"
	"linkroute/diagram"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func twoBoxes(t *testing.T) *diagram.Document {
	t.Helper()
	doc, err := diagram.NewDocument()
	require.NoError(t, err)
	for _, n := range []struct {
		id string
		x  float64
	}{{"a", 0}, {"b", 10}} {
		_, err := doc.AddNode(n.id, diagram.NewBox(n.x, 0, 4, 4))
		require.NoError(t, err)
		_, err = doc.AddPort(n.id, n.id)
		require.NoError(t, err)
	}
	_, err = doc.AddLink("ab", "a", "b")
	require.NoError(t, err)
	return doc
}

func unitOptions() canvas.RenderOptions {
	opts := canvas.DefaultRenderOptions()
	opts.ScaleX, opts.ScaleY, opts.Margin = 1, 1, 0
	return opts
}

func row(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func styleAt(s tcell.SimulationScreen, x, y int) tcell.Style {
	cells, w, _ := s.GetContents()
	return cells[y*w+x].Style
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewer_Draw(t *testing.T) {
	s := newScreen(t, 20, 6)
	v := NewViewer(s, twoBoxes(t), unitOptions(), nil)

	v.Draw()
	s.Show()

	assert.Equal(t, "┌───┐     ┌───┐", row(s, 0))
	assert.Equal(t, "│   ├─────▶   │", row(s, 2))
	assert.Contains(t, row(s, 5), "routes:1")
	assert.Contains(t, row(s, 5), "node:-")

	fg, _, _ := styleAt(s, 6, 2).Decompose()
	assert.Equal(t, tcell.ColorTeal, fg, "links keep their palette color")
}

func TestViewer_Pan(t *testing.T) {
	s := newScreen(t, 20, 6)
	v := NewViewer(s, twoBoxes(t), unitOptions(), nil)

	assert.False(t, v.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)))
	assert.False(t, v.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.False(t, v.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))
	assert.False(t, v.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)), "clamped at the top")
	v.Draw()
	s.Show()

	assert.Equal(t, "───┐     ┌───┐", row(s, 0))
}

func TestViewer_MoveSelectedNode(t *testing.T) {
	s := newScreen(t, 20, 6)
	doc := twoBoxes(t)
	v := NewViewer(s, doc, unitOptions(), nil)

	v.HandleKey(key('l'))
	assert.Equal(t, 0.0, doc.Node("a").Bounds().X, "nothing selected")

	v.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	require.NotNil(t, v.Selected())
	assert.Equal(t, "a", v.Selected().ID)

	v.HandleKey(key('l'))
	v.HandleKey(key('j'))
	assert.Equal(t, 1.0, doc.Node("a").Bounds().X)
	assert.Equal(t, 1.0, doc.Node("a").Bounds().Y)
	assert.Equal(t, 3, doc.Stats().Routes, "each move reroutes")

	v.Draw()
	s.Show()
	fg, _, _ := styleAt(s, 0, 1).Decompose()
	assert.Equal(t, tcell.ColorYellow, fg, "selected box is highlighted")
	assert.Contains(t, row(s, 5), "node:a")
}

func TestViewer_Keys(t *testing.T) {
	s := newScreen(t, 20, 6)
	doc := twoBoxes(t)
	v := NewViewer(s, doc, unitOptions(), nil)

	v.HandleKey(key('+'))
	assert.InDelta(t, 1.5, v.opts.ScaleX, 1e-9)
	v.HandleKey(key('-'))
	assert.InDelta(t, 1.0, v.opts.ScaleX, 1e-9)

	v.HandleKey(key('r'))
	assert.Equal(t, 2, doc.Stats().Routes)

	v.HandleKey(key('a'))
	assert.False(t, v.opts.Arrows)
	assert.Equal(t, '┤', v.canvas.Get(canvas.Point{X: 10, Y: 2}))

	assert.True(t, v.HandleKey(key('q')))
	assert.True(t, v.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, v.HandleKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
}

func TestViewer_Loop(t *testing.T) {
	s := newScreen(t, 20, 6)
	v := NewViewer(s, twoBoxes(t), unitOptions(), nil)

	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	v.Loop()

	assert.Equal(t, 1, v.offX)
}

func TestCellStyle(t *testing.T) {
	fg, _, _ := CellStyle("red").Decompose()
	assert.Equal(t, tcell.ColorRed, fg)
	assert.Equal(t, tcell.StyleDefault, CellStyle(""))
}
