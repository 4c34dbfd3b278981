package geom

import (
	"math"
	"testing"
)

func TestScreenWorldRoundTrip(t *testing.T) {
	views := []View{
		DefaultView(),
		{Zoom: 2.5, PanX: 140, PanY: -33, UnitsPerFoot: 20},
		{Zoom: 0.25, PanX: -900, PanY: 412, UnitsPerFoot: 20},
	}
	points := [][2]float64{{0, 0}, {123.4, -567.8}, {-1, 2000}}

	for _, v := range views {
		for _, p := range points {
			sx, sy := v.WorldToScreen(p[0], p[1])
			x, y := v.ScreenToWorld(sx, sy)
			if math.Abs(x-p[0]) > 1e-9 || math.Abs(y-p[1]) > 1e-9 {
				t.Errorf("round trip %v through %+v gave (%v,%v)", p, v, x, y)
			}
		}
	}
}

func TestSnap(t *testing.T) {
	cases := []struct {
		value, inc, want float64
	}{
		{12, 10, 10},
		{15, 10, 20}, // round half away from zero at the midpoint
		{-12, 10, -10},
		{7, 0, 7}, // inc<=0 is identity
		{7, -5, 7},
		{0.74, 0.5, 0.5},
		{0.76, 0.5, 1},
	}
	for _, c := range cases {
		if got := Snap(c.value, c.inc); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Snap(%v, %v) = %v, want %v", c.value, c.inc, got, c.want)
		}
	}
}

func TestSnapUnits(t *testing.T) {
	v := DefaultView() // 20 units/ft, 0.5 ft snap -> 10-unit grid
	cases := []struct{ in, want float64 }{
		{12, 10},
		{17, 20},
		{-4, 0},
		{-6, -10},
		{100, 100},
	}
	for _, c := range cases {
		if got := v.SnapUnits(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("SnapUnits(%v) = %v, want %v", c.in, got, c.want)
		}
	}

	v.SnapEnabled = false
	if got := v.SnapUnits(12.34); got != 12.34 {
		t.Errorf("disabled snap changed value: %v", got)
	}
	v.SnapEnabled = true
	v.SnapFeet = 0
	if got := v.SnapUnits(12.34); got != 12.34 {
		t.Errorf("zero increment changed value: %v", got)
	}
}

func TestSnapPoint(t *testing.T) {
	v := DefaultView()
	got := v.SnapPoint(Point{7, 7})
	if got.X != 10 || got.Y != 10 {
		t.Errorf("SnapPoint(7,7) = %+v, want (10,10)", got)
	}
}

func TestSnapAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.1, 0},
		{math.Pi/4 - 0.2, math.Pi / 4},
		{math.Pi/2 + 0.3, math.Pi / 2},
		{-0.5, -math.Pi / 4},
	}
	for _, c := range cases {
		if got := SnapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("SnapAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	v := DefaultView()
	v.PanX, v.PanY = 37, -12

	const sx, sy = 421, 267
	wantX, wantY := v.ScreenToWorld(sx, sy)

	for _, factor := range []float64{1.1, 1.1, 0.9, 0.5, 3} {
		v.ZoomAt(sx, sy, factor)
		x, y := v.ScreenToWorld(sx, sy)
		if math.Abs(x-wantX) > 1e-6 || math.Abs(y-wantY) > 1e-6 {
			t.Fatalf("after factor %v cursor world moved to (%v,%v), want (%v,%v)",
				factor, x, y, wantX, wantY)
		}
	}
}

func TestZoomAtClamps(t *testing.T) {
	v := DefaultView()
	for i := 0; i < 200; i++ {
		v.ZoomAt(0, 0, 2)
	}
	if v.Zoom != MaxZoom {
		t.Errorf("zoom not clamped high: %v", v.Zoom)
	}
	for i := 0; i < 400; i++ {
		v.ZoomAt(0, 0, 0.5)
	}
	if v.Zoom != MinZoom {
		t.Errorf("zoom not clamped low: %v", v.Zoom)
	}
}

// applyMatrix runs a world point through the column-major VP like a vertex
// shader would.
func applyMatrix(m [16]float32, x, y float64) (float64, float64) {
	cx := float64(m[0])*x + float64(m[4])*y + float64(m[12])
	cy := float64(m[1])*x + float64(m[5])*y + float64(m[13])
	return cx, cy
}

func TestMatrixMatchesScreenTransform(t *testing.T) {
	v := View{Zoom: 1.5, PanX: 80, PanY: 60, UnitsPerFoot: 20}
	const fbW, fbH = 800, 600

	points := [][2]float64{{0, 0}, {100, 50}, {-40, 333}}
	for _, p := range points {
		cx, cy := applyMatrix(v.Matrix(fbW, fbH), p[0], p[1])
		sx, sy := v.WorldToScreen(p[0], p[1])
		// clip -> screen with Y down
		gx := (cx + 1) / 2 * fbW
		gy := (1 - cy) / 2 * fbH
		if math.Abs(gx-sx) > 1e-3 || math.Abs(gy-sy) > 1e-3 {
			t.Errorf("matrix maps %v to (%v,%v), WorldToScreen says (%v,%v)", p, gx, gy, sx, sy)
		}
	}
}
