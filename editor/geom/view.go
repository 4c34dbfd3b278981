package geom

import "math"

// Point is a position in world units (pixels at the base drawing scale).
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Zoom bounds. Wheel zoom multiplies by ~1.1 per notch; runaway values make
// the grid unusable long before they break the math.
const (
	MinZoom = 0.05
	MaxZoom = 50
)

// View holds the pan/zoom/scale state mapping world units to screen pixels:
// screen = world*Zoom + Pan. World geometry is stored independent of it.
type View struct {
	Zoom         float64
	PanX, PanY   float64
	UnitsPerFoot float64 // drawing scale: world units per real-world foot
	SnapFeet     float64 // grid snap increment in feet; 0 disables
	SnapEnabled  bool
	RotateSnap   bool
	ShowGrid     bool
}

// DefaultView matches a fresh document: 20 units/ft, 0.5 ft snap.
func DefaultView() View {
	return View{
		Zoom:         1,
		UnitsPerFoot: 20,
		SnapFeet:     0.5,
		SnapEnabled:  true,
		RotateSnap:   true,
		ShowGrid:     true,
	}
}

func (v *View) WorldToScreen(x, y float64) (sx, sy float64) {
	return x*v.Zoom + v.PanX, y*v.Zoom + v.PanY
}

func (v *View) ScreenToWorld(sx, sy float64) (x, y float64) {
	return (sx - v.PanX) / v.Zoom, (sy - v.PanY) / v.Zoom
}

func (v *View) FeetToUnits(ft float64) float64 { return ft * v.UnitsPerFoot }
func (v *View) UnitsToFeet(u float64) float64  { return u / v.UnitsPerFoot }

// Snap quantizes a value to the nearest multiple of inc; identity when inc<=0.
func Snap(value, inc float64) float64 {
	if inc <= 0 {
		return value
	}
	return math.Round(value/inc) * inc
}

// SnapAngle rounds an angle to the nearest 45 degrees.
func SnapAngle(rad float64) float64 {
	const step = math.Pi / 4
	return math.Round(rad/step) * step
}

// SnapUnits quantizes a world coordinate to the snap grid, honoring
// SnapEnabled. The grid lives in feet, so the value round-trips through the
// drawing scale.
func (v *View) SnapUnits(u float64) float64 {
	if !v.SnapEnabled || v.SnapFeet <= 0 {
		return u
	}
	return v.FeetToUnits(Snap(v.UnitsToFeet(u), v.SnapFeet))
}

func (v *View) SnapPoint(p Point) Point {
	return Point{v.SnapUnits(p.X), v.SnapUnits(p.Y)}
}

// ZoomAt scales the view by factor keeping the screen point (sx,sy) fixed.
func (v *View) ZoomAt(sx, sy, factor float64) {
	z := v.Zoom * factor
	if z < MinZoom {
		z = MinZoom
	} else if z > MaxZoom {
		z = MaxZoom
	}
	applied := z / v.Zoom
	v.Zoom = z
	v.PanX = sx - applied*(sx-v.PanX)
	v.PanY = sy - applied*(sy-v.PanY)
}

// Matrix builds the view-projection matrix for a framebuffer of the given
// pixel size: world -> clip space, Y down, origin at the top-left.
// Column-major, GLSL-style, same convention as the 2D renderer expects.
func (v *View) Matrix(fbW, fbH int) [16]float32 {
	if fbW < 1 || fbH < 1 {
		return [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	}
	w := float64(fbW)
	h := float64(fbH)
	return [16]float32{
		float32(2 * v.Zoom / w), 0, 0, 0,
		0, float32(-2 * v.Zoom / h), 0, 0,
		0, 0, 1, 0,
		float32(2*v.PanX/w - 1), float32(1 - 2*v.PanY/h), 0, 1,
	}
}
