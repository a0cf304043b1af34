package connections

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkroute/geometry"
	"linkroute/obstacles"
)

func newCalc() *Calculator {
	return NewCalculator(obstacles.DefaultConfig(), nil)
}

func end(r geometry.Rect, spot geometry.Spot, length float64) *End {
	return &End{Shape: r, Spot: spot, Length: length}
}

func assertNoRepeats(t *testing.T, pts []geometry.Point) {
	t.Helper()
	for i := 1; i < len(pts); i++ {
		assert.False(t, pts[i-1].Equals(pts[i]), "repeated point %v at %d", pts[i], i)
	}
}

func TestCompute_MissingEndIsNoOp(t *testing.T) {
	pts := []geometry.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	res := newCalc().Compute(Request{From: end(geometry.NewRect(0, 0, 10, 10), geometry.SpotNone, 0), Points: pts})
	assert.Equal(t, pts, res.Points)
}

func TestCompute_OrthogonalZ(t *testing.T) {
	req := Request{
		From:       end(geometry.NewRect(-40, -15, 40, 30), geometry.SpotRight, 10),
		To:         end(geometry.NewRect(100, 35, 40, 30), geometry.SpotLeft, 10),
		Orthogonal: true,
	}
	res := newCalc().Compute(req)

	want := []geometry.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 55, Y: 0}, {X: 55, Y: 50}, {X: 90, Y: 50}, {X: 100, Y: 50},
	}
	assert.Equal(t, want, res.Points)
	assert.Equal(t, AdjustCalculate, res.Adjusted)
}

func TestCompute_OrthogonalCustomMidPosition(t *testing.T) {
	c := newCalc()
	c.MidOrthoPosition = func(a, b float64, vertical bool) float64 { return a + 20 }
	res := c.Compute(Request{
		From:       end(geometry.NewRect(-40, -15, 40, 30), geometry.SpotRight, 10),
		To:         end(geometry.NewRect(100, 35, 40, 30), geometry.SpotLeft, 10),
		Orthogonal: true,
	})
	assert.Equal(t, geometry.Pt(30, 0), res.Points[2])
	assert.Equal(t, geometry.Pt(30, 50), res.Points[3])
}

func TestCompute_OrthogonalAllDirectionPairs(t *testing.T) {
	a := geometry.NewRect(0, 0, 40, 40)
	b := geometry.NewRect(120, 80, 40, 40)
	sides := []geometry.Spot{geometry.SpotTop, geometry.SpotRight, geometry.SpotBottom, geometry.SpotLeft}

	for _, fs := range sides {
		for _, ts := range sides {
			t.Run(fmt.Sprintf("%v-%v", fs, ts), func(t *testing.T) {
				res := newCalc().Compute(Request{
					From:       end(a, fs, 10),
					To:         end(b, ts, 10),
					Orthogonal: true,
				})
				pts := res.Points
				require.GreaterOrEqual(t, len(pts), 2)
				assert.Equal(t, a.SpotPoint(fs), pts[0])
				assert.Equal(t, b.SpotPoint(ts), pts[len(pts)-1])
				assertNoRepeats(t, pts)
				for i := 1; i < len(pts); i++ {
					assert.True(t, geometry.AxisAligned(pts[i-1], pts[i]),
						"segment %v-%v", pts[i-1], pts[i])
					assert.False(t, a.IntersectsSegment(pts[i-1], pts[i]), "crosses source %v-%v", pts[i-1], pts[i])
					assert.False(t, b.IntersectsSegment(pts[i-1], pts[i]), "crosses target %v-%v", pts[i-1], pts[i])
				}
			})
		}
	}
}

func TestCompute_OrthogonalWithoutSpots(t *testing.T) {
	res := newCalc().Compute(Request{
		From:       end(geometry.NewRect(0, 0, 40, 40), geometry.SpotNone, 10),
		To:         end(geometry.NewRect(200, 100, 40, 40), geometry.SpotNone, 10),
		Orthogonal: true,
	})
	pts := res.Points
	assert.Equal(t, geometry.Pt(40, 20), pts[0], "leaves from the middle of the facing side")
	assert.Equal(t, geometry.Pt(200, 120), pts[len(pts)-1])
	assert.True(t, IsOrthogonal(pts))
}

func TestCompute_Simple(t *testing.T) {
	a := geometry.NewRect(0, 0, 40, 40)
	b := geometry.NewRect(200, 0, 40, 40)

	res := newCalc().Compute(Request{From: end(a, geometry.SpotNone, 10), To: end(b, geometry.SpotNone, 10)})
	assert.Equal(t, []geometry.Point{{X: 40, Y: 20}, {X: 200, Y: 20}}, res.Points)

	res = newCalc().Compute(Request{From: end(a, geometry.SpotCenter, 10), To: end(b, geometry.SpotCenter, 10)})
	assert.Equal(t, []geometry.Point{{X: 20, Y: 20}, {X: 220, Y: 20}}, res.Points)
}

func TestCompute_Bezier(t *testing.T) {
	res := newCalc().Compute(Request{
		From:      end(geometry.NewRect(0, 0, 40, 40), geometry.SpotNone, 10),
		To:        end(geometry.NewRect(200, 0, 40, 40), geometry.SpotNone, 10),
		Curve:     CurveBezier,
		Curviness: 12,
	})
	require.Len(t, res.Points, 4)
	assert.Equal(t, geometry.Pt(40, 20), res.Points[0])
	assert.InDelta(t, 40+160.0/3, res.Points[1].X, 1e-9)
	assert.InDelta(t, 32.0, res.Points[1].Y, 1e-9)
	assert.InDelta(t, 40+320.0/3, res.Points[2].X, 1e-9)
	assert.InDelta(t, 32.0, res.Points[2].Y, 1e-9)
	assert.Equal(t, geometry.Pt(200, 20), res.Points[3])
}

func TestCompute_ImposedDirectionAddsCorner(t *testing.T) {
	res := newCalc().Compute(Request{
		From: end(geometry.NewRect(0, 0, 40, 40), geometry.SpotRight, 10),
		To:   end(geometry.NewRect(200, 100, 40, 40), geometry.SpotNone, 10),
	})
	require.Len(t, res.Points, 3)
	assert.Equal(t, geometry.Pt(40, 20), res.Points[0])
	assert.Equal(t, geometry.Pt(50, 20), res.Points[1])
}

func TestCompute_SelfLoopBiasedThirtyDegrees(t *testing.T) {
	port := end(geometry.NewRect(0, 0, 40, 40), geometry.SpotNone, 10)
	res := newCalc().Compute(Request{From: port, To: port, SelfLoop: true, Curviness: 20})

	pts := res.Points
	require.Len(t, pts, 4)
	anchor := geometry.Pt(40, 20)
	assert.Equal(t, anchor, pts[0])
	assert.Equal(t, anchor, pts[3])
	assert.InDelta(t, 330.0, geometry.Angle(anchor, pts[1]), 1e-9)
	assert.InDelta(t, 30.0, geometry.Angle(anchor, pts[2]), 1e-9)
	assert.InDelta(t, 30.0, pts[1].Sub(anchor).Length(), 1e-9, "segment inflated by curviness")

	flipped := newCalc().Compute(Request{From: port, To: port, SelfLoop: true, Curviness: -20})
	assert.InDelta(t, 30.0, geometry.Angle(anchor, flipped.Points[1]), 1e-9)
	assert.InDelta(t, 330.0, geometry.Angle(anchor, flipped.Points[2]), 1e-9)
}

func TestCompute_OrthogonalSelfLoop(t *testing.T) {
	port := end(geometry.NewRect(0, 0, 40, 40), geometry.SpotRight, 10)
	res := newCalc().Compute(Request{From: port, To: port, SelfLoop: true, Orthogonal: true, Curviness: 5})

	want := []geometry.Point{{X: 40, Y: 20}, {X: 55, Y: 20}, {X: 55, Y: 35}, {X: 40, Y: 35}, {X: 40, Y: 20}}
	assert.Equal(t, want, res.Points)
	assert.True(t, IsOrthogonal(res.Points))
}

func TestCompute_OrthogonalSelfLoopBetweenSides(t *testing.T) {
	r := geometry.NewRect(0, 0, 40, 40)
	res := newCalc().Compute(Request{
		From:       end(r, geometry.SpotRight, 10),
		To:         end(r, geometry.SpotBottom, 10),
		SelfLoop:   true,
		Orthogonal: true,
	})
	pts := res.Points
	assert.Equal(t, geometry.Pt(40, 20), pts[0])
	assert.Equal(t, geometry.Pt(20, 40), pts[len(pts)-1])
	assert.True(t, IsOrthogonal(pts))
	for i := 1; i < len(pts); i++ {
		assert.False(t, r.IntersectsSegment(pts[i-1], pts[i]))
	}
}

func TestCompute_Idempotent(t *testing.T) {
	reqs := map[string]Request{
		"orthogonal": {
			From: end(geometry.NewRect(0, 0, 40, 40), geometry.SpotBottom, 10),
			To:   end(geometry.NewRect(120, 80, 40, 40), geometry.SpotTop, 10), Orthogonal: true,
		},
		"stretch": {
			From: end(geometry.NewRect(0, 0, 40, 40), geometry.SpotRight, 10),
			To:   end(geometry.NewRect(120, 80, 40, 40), geometry.SpotLeft, 10), Adjusting: AdjustStretch,
			Points: []geometry.Point{{X: 40, Y: 20}, {X: 50, Y: 20}, {X: 70, Y: 0}, {X: 90, Y: 120}, {X: 110, Y: 100}, {X: 120, Y: 100}},
		},
	}
	c := newCalc()
	for name, req := range reqs {
		t.Run(name, func(t *testing.T) {
			first := c.Compute(req)
			req.Points = first.Points
			second := c.Compute(req)
			assert.Equal(t, first.Points, second.Points)
		})
	}
}

func TestCompute_AdjustShortcuts(t *testing.T) {
	from := end(geometry.NewRect(0, 0, 40, 40), geometry.SpotRight, 10)
	old := []geometry.Point{{X: 40, Y: 20}, {X: 50, Y: 20}, {X: 70, Y: 0}, {X: 90, Y: 120}, {X: 100, Y: 90}, {X: 110, Y: 100}, {X: 120, Y: 100}}

	moved := end(geometry.NewRect(140, 100, 40, 40), geometry.SpotLeft, 10)

	t.Run("stretch", func(t *testing.T) {
		res := newCalc().Compute(Request{From: from, To: moved, Adjusting: AdjustStretch, Points: old})
		require.Len(t, res.Points, len(old))
		assert.Equal(t, AdjustStretch, res.Adjusted)
		assert.Equal(t, geometry.Pt(40, 20), res.Points[0])
		assert.Equal(t, geometry.Pt(50, 20), res.Points[1])
		assert.Equal(t, geometry.Pt(130, 120), res.Points[5])
		assert.Equal(t, geometry.Pt(140, 120), res.Points[6])
	})

	t.Run("scale", func(t *testing.T) {
		res := newCalc().Compute(Request{From: from, To: moved, Adjusting: AdjustScale, Points: old})
		assert.Equal(t, AdjustScale, res.Adjusted)
		assert.Equal(t, geometry.Pt(130, 120), res.Points[5])
	})

	t.Run("calculate ignores old points", func(t *testing.T) {
		res := newCalc().Compute(Request{From: from, To: moved, Points: old})
		assert.Equal(t, AdjustCalculate, res.Adjusted)
		assert.Len(t, res.Points, 4)
	})

	t.Run("too few points", func(t *testing.T) {
		res := newCalc().Compute(Request{From: from, To: moved, Adjusting: AdjustEnd, Points: old[:4]})
		assert.Equal(t, AdjustCalculate, res.Adjusted)
	})

	t.Run("scale declines for orthogonal", func(t *testing.T) {
		ortho := []geometry.Point{{X: 40, Y: 20}, {X: 50, Y: 20}, {X: 50, Y: -20}, {X: 80, Y: -20}, {X: 80, Y: 100}, {X: 110, Y: 100}, {X: 120, Y: 100}}
		res := newCalc().Compute(Request{From: from, To: moved, Orthogonal: true, Adjusting: AdjustScale, Points: ortho})
		assert.Equal(t, AdjustCalculate, res.Adjusted)
		assert.True(t, IsOrthogonal(res.Points))
	})

	t.Run("end keeps orthogonal route", func(t *testing.T) {
		ortho := []geometry.Point{{X: 40, Y: 20}, {X: 50, Y: 20}, {X: 50, Y: -20}, {X: 80, Y: -20}, {X: 80, Y: 100}, {X: 110, Y: 100}, {X: 120, Y: 100}}
		res := newCalc().Compute(Request{From: from, To: moved, Orthogonal: true, Adjusting: AdjustEnd, Points: ortho})
		require.Equal(t, AdjustEnd, res.Adjusted)
		want := []geometry.Point{{X: 40, Y: 20}, {X: 50, Y: 20}, {X: 50, Y: -20}, {X: 80, Y: -20}, {X: 80, Y: 120}, {X: 130, Y: 120}, {X: 140, Y: 120}}
		assert.Equal(t, want, res.Points)
	})
}

func TestCompute_AvoidsObstacles(t *testing.T) {
	blocker := geometry.NewRect(140, -20, 40, 80)
	req := Request{
		From:            end(geometry.NewRect(0, 0, 40, 40), geometry.SpotRight, 10),
		To:              end(geometry.NewRect(300, 0, 40, 40), geometry.SpotLeft, 10),
		Orthogonal:      true,
		AvoidsObstacles: true,
		Obstacles:       []geometry.Rect{blocker},
	}
	res := newCalc().Compute(req)

	pts := res.Points
	assert.False(t, res.Fallback)
	assert.GreaterOrEqual(t, res.Passes, 1)
	assert.Equal(t, geometry.Pt(40, 20), pts[0])
	assert.Equal(t, geometry.Pt(300, 20), pts[len(pts)-1])
	assert.True(t, IsOrthogonal(pts))
	for i := 1; i < len(pts); i++ {
		assert.False(t, blocker.IntersectsSegment(pts[i-1], pts[i]), "crosses blocker %v-%v", pts[i-1], pts[i])
	}

	again := newCalc().Compute(req)
	assert.Equal(t, pts, again.Points)
}

func TestCompute_ObstacleFallback(t *testing.T) {
	req := Request{
		From:            end(geometry.NewRect(0, 0, 40, 40), geometry.SpotRight, 10),
		To:              end(geometry.NewRect(300, 0, 40, 40), geometry.SpotLeft, 10),
		Orthogonal:      true,
		AvoidsObstacles: true,
		Obstacles: []geometry.Rect{
			geometry.NewRect(250, -60, 150, 10),
			geometry.NewRect(250, 100, 150, 10),
			geometry.NewRect(250, -60, 10, 170),
			geometry.NewRect(390, -60, 10, 170),
		},
	}
	res := newCalc().Compute(req)

	assert.True(t, res.Fallback)
	assert.Equal(t, obstacles.Passes, res.Passes)
	assert.Equal(t, []geometry.Point{{X: 40, Y: 20}, {X: 300, Y: 20}}, []geometry.Point{res.Points[0], res.Points[len(res.Points)-1]})
	assert.True(t, IsOrthogonal(res.Points))
}

func TestCompute_AvoidsObstaclesWithShortEndSegments(t *testing.T) {
	a := geometry.NewRect(0, 0, 40, 40)
	placements := []struct {
		name     string
		from, to geometry.Spot
		b        geometry.Rect
		blockers []geometry.Rect
	}{
		{
			name: "blocker between facing sides",
			from: geometry.SpotRight, to: geometry.SpotLeft,
			b:        geometry.NewRect(300, 0, 40, 40),
			blockers: []geometry.Rect{geometry.NewRect(150, -20, 40, 80)},
		},
		{
			name: "target behind and above",
			from: geometry.SpotTop, to: geometry.SpotLeft,
			b: geometry.NewRect(-240, -240, 40, 40),
		},
		{
			name: "blocker on the diagonal",
			from: geometry.SpotBottom, to: geometry.SpotTop,
			b:        geometry.NewRect(200, 200, 40, 40),
			blockers: []geometry.Rect{geometry.NewRect(100, 100, 40, 40)},
		},
	}

	for _, p := range placements {
		for _, length := range []float64{0, 2, 4, 10} {
			t.Run(fmt.Sprintf("%s/length %g", p.name, length), func(t *testing.T) {
				obs := append([]geometry.Rect{a, p.b}, p.blockers...)
				res := newCalc().Compute(Request{
					From:            end(a, p.from, length),
					To:              end(p.b, p.to, length),
					Orthogonal:      true,
					AvoidsObstacles: true,
					Obstacles:       obs,
				})

				pts := res.Points
				assert.False(t, res.Fallback, "a clear corridor exists")
				require.GreaterOrEqual(t, len(pts), 2)
				assert.Equal(t, a.SpotPoint(p.from), pts[0])
				assert.Equal(t, p.b.SpotPoint(p.to), pts[len(pts)-1])
				assert.True(t, IsOrthogonal(pts), "%v", pts)
				for i := 1; i < len(pts); i++ {
					for _, r := range obs {
						assert.False(t, r.IntersectsSegment(pts[i-1], pts[i]),
							"segment %v-%v crosses %v", pts[i-1], pts[i], r)
					}
				}
			})
		}
	}
}

func TestCompute_ObstacleGridIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := NewCalculator(obstacles.DefaultConfig(), logger)

	c.Compute(Request{
		From:            end(geometry.NewRect(0, 0, 40, 40), geometry.SpotRight, 10),
		To:              end(geometry.NewRect(300, 0, 40, 40), geometry.SpotLeft, 10),
		Orthogonal:      true,
		AvoidsObstacles: true,
		Obstacles:       []geometry.Rect{geometry.NewRect(140, -20, 40, 80)},
	})

	out := buf.String()
	assert.Contains(t, out, "obstacle route")
	assert.Contains(t, out, "grid ")
	assert.Contains(t, out, "█", "walls are drawn")
	assert.Contains(t, out, "0123", "traced cells are numbered")
}

func TestParseAdjustingAndCurve(t *testing.T) {
	tests := []struct {
		in   string
		want Adjusting
		err  bool
	}{
		{"", AdjustCalculate, false},
		{"Scale", AdjustScale, false},
		{"stretch", AdjustStretch, false},
		{" end ", AdjustEnd, false},
		{"warp", AdjustCalculate, true},
	}
	for _, tt := range tests {
		got, err := ParseAdjusting(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseAdjusting(%q) error = %v, wantErr %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Errorf("ParseAdjusting(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	c, err := ParseCurve("bezier")
	require.NoError(t, err)
	assert.Equal(t, CurveBezier, c)
	_, err = ParseCurve("spline")
	assert.Error(t, err)
}
