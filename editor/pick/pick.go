// Package pick answers "what is under this world point": topmost object,
// manipulation handle on a selected object, marquee membership, drop target.
package pick

import (
	"math"

	"github.com/hubastard/blueprint/editor/geom"
	"github.com/hubastard/blueprint/editor/scene"
)

// Hit tolerances in screen pixels; divided by zoom to stay constant on
// screen as the view scales. Door slop is in world units, matching how the
// door's swing radius itself is stored.
const (
	lineSlop     = 6
	handleRadius = 8
	rotateOffset = 20
	doorSlop     = 8
)

// TextMeasurer returns the world-unit width and height of a label rendered
// at the given font size. Pick falls back to a crude estimate when nil, so
// headless callers still get usable label hit boxes.
type TextMeasurer func(text string, size float64) (w, h float64)

func measureOr(m TextMeasurer, text string, size float64) (float64, float64) {
	if m != nil {
		return m(text, size)
	}
	return float64(len(text)) * size * 0.6, size
}

// LabelBounds is the hit box for a label anchored baseline-left at (X,Y).
func LabelBounds(l *scene.Label, m TextMeasurer) geom.Rect {
	text := l.Text
	if text == "" {
		text = "Label"
	}
	w, h := measureOr(m, text, l.FontSize)
	return geom.Rect{X: l.X, Y: l.Y - h + 4, W: w, H: h}
}

// Pick returns the topmost interactable object at the world point p, or nil.
// Candidates are visited in reverse z-order; invisible layers are skipped.
func Pick(s *scene.Scene, v *geom.View, p geom.Point, m TextMeasurer) scene.Object {
	objects := s.Objects()
	for i := len(objects) - 1; i >= 0; i-- {
		o := objects[i]
		if !s.Layer(o.LayerName()).Visible {
			continue
		}
		if hits(o, v, p, m) {
			return o
		}
	}
	return nil
}

func hits(o scene.Object, v *geom.View, p geom.Point, m TextMeasurer) bool {
	switch t := o.(type) {
	case *scene.Wall:
		a, b := geom.Point{X: t.X1, Y: t.Y1}, geom.Point{X: t.X2, Y: t.Y2}
		return geom.SegmentDistance(p, a, b) <= lineSlop/v.Zoom
	case *scene.Measure:
		a, b := geom.Point{X: t.X1, Y: t.Y1}, geom.Point{X: t.X2, Y: t.Y2}
		return geom.SegmentDistance(p, a, b) <= lineSlop/v.Zoom
	case *scene.Door:
		return p.Dist(geom.Point{X: t.X, Y: t.Y}) <= t.Width+doorSlop
	case *scene.Label:
		return LabelBounds(t, m).Contains(p)
	case *scene.RectItem:
		loc := geom.RotateInto(p, geom.Point{X: t.X, Y: t.Y}, t.Rotation)
		return loc.X >= 0 && loc.Y >= 0 && loc.X <= t.Width && loc.Y <= t.Height
	}
	return false
}

// Handle identifies a manipulation hotspot on a selected object.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleW
	HandleE
	HandleSW
	HandleS
	HandleSE
	HandleRotate
	HandleP1
	HandleP2
)

// North/south handles move the top edge, west/east the left edge.
func (h Handle) North() bool { return h == HandleNW || h == HandleN || h == HandleNE }
func (h Handle) South() bool { return h == HandleSW || h == HandleS || h == HandleSE }
func (h Handle) West() bool  { return h == HandleNW || h == HandleW || h == HandleSW }
func (h Handle) East() bool  { return h == HandleNE || h == HandleE || h == HandleSE }

// HandleAt tests the world point against the handles of a single selected
// object: eight resize handles plus a rotate knob for rect items, the two
// endpoint handles for walls and measures. Other variants have no handles.
func HandleAt(o scene.Object, v *geom.View, p geom.Point) Handle {
	switch t := o.(type) {
	case *scene.Wall:
		return lineHandle(geom.Point{X: t.X1, Y: t.Y1}, geom.Point{X: t.X2, Y: t.Y2}, v, p)
	case *scene.Measure:
		return lineHandle(geom.Point{X: t.X1, Y: t.Y1}, geom.Point{X: t.X2, Y: t.Y2}, v, p)
	case *scene.RectItem:
		return rectHandle(t, v, p)
	}
	return HandleNone
}

func lineHandle(a, b geom.Point, v *geom.View, p geom.Point) Handle {
	r := handleRadius / v.Zoom
	if p.Dist(a) <= r {
		return HandleP1
	}
	if p.Dist(b) <= r {
		return HandleP2
	}
	return HandleNone
}

func rectHandle(t *scene.RectItem, v *geom.View, p geom.Point) Handle {
	loc := geom.RotateInto(p, geom.Point{X: t.X, Y: t.Y}, t.Rotation)
	r := handleRadius / v.Zoom
	spots := []struct {
		h    Handle
		x, y float64
	}{
		{HandleNW, 0, 0},
		{HandleN, t.Width / 2, 0},
		{HandleNE, t.Width, 0},
		{HandleW, 0, t.Height / 2},
		{HandleE, t.Width, t.Height / 2},
		{HandleSW, 0, t.Height},
		{HandleS, t.Width / 2, t.Height},
		{HandleSE, t.Width, t.Height},
	}
	for _, s := range spots {
		if math.Abs(loc.X-s.x) <= r && math.Abs(loc.Y-s.y) <= r {
			return s.h
		}
	}
	// Rotate knob floats above the top-mid point.
	dx := loc.X - t.Width/2
	dy := loc.Y + rotateOffset/v.Zoom
	if math.Hypot(dx, dy) < r {
		return HandleRotate
	}
	return HandleNone
}

// Marquee returns the ids of visible objects intersecting the rubber-band
// rectangle: line variants by segment-rectangle intersection, rect items by
// unrotated AABB overlap. Doors and labels are not marquee-selectable.
func Marquee(s *scene.Scene, r geom.Rect) []string {
	r = r.Normalized()
	var ids []string
	for _, o := range s.Objects() {
		if !s.Layer(o.LayerName()).Visible {
			continue
		}
		switch t := o.(type) {
		case *scene.Wall:
			if geom.SegmentIntersectsRect(geom.Point{X: t.X1, Y: t.Y1}, geom.Point{X: t.X2, Y: t.Y2}, r) {
				ids = append(ids, t.ID)
			}
		case *scene.Measure:
			if geom.SegmentIntersectsRect(geom.Point{X: t.X1, Y: t.Y1}, geom.Point{X: t.X2, Y: t.Y2}, r) {
				ids = append(ids, t.ID)
			}
		case *scene.RectItem:
			if r.Overlaps(geom.Rect{X: t.X, Y: t.Y, W: t.Width, H: t.Height}) {
				ids = append(ids, t.ID)
			}
		}
	}
	return ids
}

// DropTarget resolves a palette drop to the topmost rect item that accepts
// code assignment (rack/fixture/bin/pallet/special) at the world point.
func DropTarget(s *scene.Scene, p geom.Point) *scene.RectItem {
	objects := s.Objects()
	for i := len(objects) - 1; i >= 0; i-- {
		r, ok := objects[i].(*scene.RectItem)
		if !ok || !r.Kind.DropTargetKind() {
			continue
		}
		if !s.Layer(r.LayerName()).Visible {
			continue
		}
		loc := geom.RotateInto(p, geom.Point{X: r.X, Y: r.Y}, r.Rotation)
		if loc.X >= 0 && loc.Y >= 0 && loc.X <= r.Width && loc.Y <= r.Height {
			return r
		}
	}
	return nil
}
