package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkroute/connections"
	"linkroute/geometry"
)

func TestPort_AnchorAtSpot(t *testing.T) {
	d := newDoc(t)
	addBox(t, d, "a", 0, 0, 40, 40)

	tests := []struct {
		spot geometry.Spot
		want geometry.Point
	}{
		{geometry.SpotCenter, geometry.Pt(20, 20)},
		{geometry.SpotTop, geometry.Pt(20, 0)},
		{geometry.SpotRight, geometry.Pt(40, 20)},
		{geometry.SpotBottom, geometry.Pt(20, 40)},
		{geometry.SpotLeft, geometry.Pt(0, 20)},
		{geometry.SpotTopLeft, geometry.Pt(0, 0)},
		{geometry.SpotTopRight, geometry.Pt(40, 0)},
		{geometry.SpotBottomRight, geometry.Pt(40, 40)},
		{geometry.SpotBottomLeft, geometry.Pt(0, 40)},
	}
	for _, tt := range tests {
		t.Run(tt.spot.String(), func(t *testing.T) {
			p := addPort(t, d, "a", tt.spot.String(), tt.spot, tt.spot)
			link := NewLink("l", nil)
			link.SetPoints([]geometry.Point{{X: 500, Y: 500}, {X: 600, Y: -100}})

			assert.Equal(t, tt.want, p.Anchor(nil, FromEnd))
			assert.Equal(t, tt.want, p.Anchor(link, ToEnd), "spot wins over the route")
			assert.Equal(t, tt.want, p.AnchorToward(FromEnd, geometry.Pt(-100, -100)))
		})
	}
}

func TestPort_AnchorWithoutSpot(t *testing.T) {
	d := newDoc(t)
	addBox(t, d, "a", 0, 0, 40, 40)
	p := addPort(t, d, "a", "p", geometry.SpotNone, geometry.SpotNone)

	assert.Equal(t, geometry.Pt(20, 20), p.Anchor(nil, FromEnd), "too few points")

	link := NewLink("l", nil)
	link.SetPoints([]geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 20}, {X: 20, Y: 200}, {X: 0, Y: 0}})
	assert.Equal(t, geometry.Pt(40, 20), p.Anchor(link, FromEnd))
	assert.Equal(t, geometry.Pt(20, 40), p.Anchor(link, ToEnd))
}

func TestPort_AnchorOnDelegate(t *testing.T) {
	d := newDoc(t)
	addBox(t, d, "a", 0, 0, 100, 100)
	p := addPort(t, d, "a", "p", geometry.SpotRight, geometry.SpotNone)
	p.Delegate = NewBox(80, 40, 20, 20)

	assert.Equal(t, geometry.Pt(100, 50), p.Anchor(nil, FromEnd))
	assert.Equal(t, geometry.Pt(90, 50), p.Anchor(nil, ToEnd))

	require.NoError(t, d.MoveNode("a", 10, 0))
	assert.Equal(t, geometry.Pt(110, 50), p.Anchor(nil, FromEnd), "delegates move with their node")
}

func TestPort_Direction(t *testing.T) {
	d := newDoc(t)
	addBox(t, d, "a", 0, 0, 40, 40)
	addBox(t, d, "b", 20, 200, 40, 40)
	spotted := addPort(t, d, "a", "spotted", geometry.SpotTopLeft, geometry.SpotNone)
	free := addPort(t, d, "a", "free", geometry.SpotNone, geometry.SpotNone)
	addPort(t, d, "b", "b", geometry.SpotNone, geometry.SpotNone)

	assert.Equal(t, geometry.North, spotted.Direction(nil, FromEnd), "corners resolve clockwise")
	assert.Equal(t, geometry.North, spotted.ImposedDirection(FromEnd))
	assert.Equal(t, geometry.NoDirection, spotted.ImposedDirection(ToEnd))
	assert.Equal(t, geometry.East, free.Direction(nil, FromEnd), "nothing to aim at")

	l := addLink(t, d, "l", "free", "b")
	assert.Equal(t, geometry.South, free.Direction(l, FromEnd))
	assert.Equal(t, geometry.North, d.Port("b").Direction(l, ToEnd))
}

func TestPort_EndSegmentLengthStacking(t *testing.T) {
	d := newDoc(t)
	d.SuspendRouting()
	addBox(t, d, "a", 0, 0, 40, 60)
	addBox(t, d, "b", 200, 0, 40, 60)
	top := addPort(t, d, "a", "a.top", geometry.SpotRight, geometry.SpotNone)
	top.Delegate = geometry.NewRect(30, 0, 10, 20)
	bottom := addPort(t, d, "a", "a.bottom", geometry.SpotRight, geometry.SpotNone)
	bottom.Delegate = geometry.NewRect(30, 40, 10, 20)
	inner := addPort(t, d, "a", "a.inner", geometry.SpotRight, geometry.SpotNone)
	inner.Delegate = geometry.NewRect(0, 20, 10, 20)
	idle := addPort(t, d, "a", "a.idle", geometry.SpotRight, geometry.SpotNone)
	idle.Delegate = geometry.NewRect(30, 0, 10, 5)
	addPort(t, d, "b", "b", geometry.SpotNone, geometry.SpotLeft)

	var links []*Link
	for _, id := range []string{"a.top", "a.bottom", "a.inner"} {
		l := addLink(t, d, id, id, "b")
		l.SetOrthogonal(true)
		links = append(links, l)
	}
	plain := addLink(t, d, "plain", "a.bottom", "b")
	d.ResumeRouting()

	assert.Equal(t, 10.0, top.EndSegmentLength(links[0], FromEnd), "first along the side")
	assert.Equal(t, 10.0, inner.EndSegmentLength(links[2], FromEnd), "corner would land inside the node")
	assert.Equal(t, 26.0, bottom.EndSegmentLength(links[1], FromEnd), "third along the side")
	assert.Equal(t, 10.0, bottom.EndSegmentLength(plain, FromEnd), "only orthogonal links fan out")

	assert.Equal(t, geometry.Pt(66, 50), links[1].Points()[1])
	assert.True(t, connections.IsOrthogonal(links[1].Points()))
}

func TestPort_EndSegmentLengthWithoutSpacing(t *testing.T) {
	opts := newDoc(t).Options()
	opts.EndSegmentSpacing = 0
	d := newDoc(t, WithOptions(opts))
	addBox(t, d, "a", 0, 0, 40, 60)
	addBox(t, d, "b", 200, 0, 40, 60)
	first := addPort(t, d, "a", "a.1", geometry.SpotRight, geometry.SpotNone)
	second := addPort(t, d, "a", "a.2", geometry.SpotRight, geometry.SpotNone)
	addPort(t, d, "b", "b", geometry.SpotNone, geometry.SpotLeft)
	l1 := addLink(t, d, "1", "a.1", "b")
	l2 := addLink(t, d, "2", "a.2", "b")
	l1.SetOrthogonal(true)
	l2.SetOrthogonal(true)

	assert.Equal(t, 10.0, first.EndSegmentLength(l1, FromEnd))
	assert.Equal(t, 10.0, second.EndSegmentLength(l2, FromEnd))
}

func TestPort_LinksAreNotOwned(t *testing.T) {
	d := triangle(t)
	a := d.Port("a")

	links := a.Links()
	require.Len(t, links, 2)
	links[0] = nil
	assert.NotNil(t, a.Links()[0], "Links returns a copy")
	assert.Equal(t, []*Link{d.Link("ab"), d.Link("ac")}, d.Node("a").Links())
}
