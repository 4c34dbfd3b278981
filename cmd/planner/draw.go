package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/hubastard/blueprint/editor/pick"
	"github.com/hubastard/blueprint/editor/scene"
	"github.com/hubastard/blueprint/engine/colors"
	"github.com/hubastard/blueprint/engine/text"
)

func kindColor(r *scene.RectItem) colors.Color {
	if c, ok := colors.FromHex(r.Color); ok {
		return c
	}
	switch r.Kind {
	case scene.KindRack:
		return colors.Rack
	case scene.KindBin:
		return colors.Bin
	case scene.KindPallet:
		return colors.Pallet
	case scene.KindFixture:
		return colors.Fixture
	case scene.KindSpecial:
		return colors.Special
	default:
		return colors.Gray
	}
}

func (l *LayerCanvas) zoomPx(px float64) float32 {
	return float32(px / l.app.ctx.View.Zoom)
}

// worldText draws s with its top-left at (x,y) in world units.
func (l *LayerCanvas) worldText(x, y float64, s string, size float64, col colors.Color) {
	if l.app.font == nil {
		return
	}
	text.DrawTextScaled(l.app.r2d, l.app.font, float32(x), float32(y), s, float32(size), col)
}

func (l *LayerCanvas) drawWall(w *scene.Wall, draft bool) {
	l.app.r2d.DrawLine(float32(w.X1), float32(w.Y1), float32(w.X2), float32(w.Y2),
		l.zoomPx(4), colors.Wall)
	if draft || l.app.ctx.Scene.IsSelected(w.ID) {
		l.drawSegmentDims(w.X1, w.Y1, w.X2, w.Y2)
	}
}

func (l *LayerCanvas) drawMeasure(m *scene.Measure) {
	l.app.r2d.DrawLine(float32(m.X1), float32(m.Y1), float32(m.X2), float32(m.Y2),
		l.zoomPx(2), colors.MeasureLn)
	// end ticks
	ang := math.Atan2(m.Y2-m.Y1, m.X2-m.X1) + math.Pi/2
	tick := 6 / l.app.ctx.View.Zoom
	dx, dy := math.Cos(ang)*tick, math.Sin(ang)*tick
	l.app.r2d.DrawLine(float32(m.X1-dx), float32(m.Y1-dy), float32(m.X1+dx), float32(m.Y1+dy), l.zoomPx(2), colors.MeasureLn)
	l.app.r2d.DrawLine(float32(m.X2-dx), float32(m.Y2-dy), float32(m.X2+dx), float32(m.Y2+dy), l.zoomPx(2), colors.MeasureLn)
	l.drawSegmentDims(m.X1, m.Y1, m.X2, m.Y2)
}

// drawSegmentDims prints the segment length in feet beside its midpoint.
func (l *LayerCanvas) drawSegmentDims(x1, y1, x2, y2 float64) {
	v := l.app.ctx.View
	length := v.UnitsToFeet(math.Hypot(x2-x1, y2-y1))
	label := fmt.Sprintf("%.2f ft", length)
	size := 12 / v.Zoom
	mx := (x1+x2)/2 + 8/v.Zoom
	my := (y1+y2)/2 - size - 4/v.Zoom
	l.worldText(mx, my, label, size, colors.Label.WithAlpha(0.85))
}

func (l *LayerCanvas) drawDoor(d *scene.Door) {
	th := l.zoomPx(2)
	// swing arc plus the leaf in its closed position
	l.app.r2d.DrawArc(float32(d.X), float32(d.Y), float32(d.Width),
		float32(d.Angle), float32(d.Angle+math.Pi/2), th, colors.Door)
	ex := d.X + math.Cos(d.Angle)*d.Width
	ey := d.Y + math.Sin(d.Angle)*d.Width
	l.app.r2d.DrawLine(float32(d.X), float32(d.Y), float32(ex), float32(ey), th, colors.Door)
}

func (l *LayerCanvas) drawTextLabel(t *scene.Label) {
	b := pick.LabelBounds(t, l.app.measurer())
	if l.app.font == nil {
		// no text: show the hit box so the label stays findable
		l.app.r2d.DrawRectOutline(float32(b.X), float32(b.Y), float32(b.W), float32(b.H),
			l.zoomPx(1), colors.Label.WithAlpha(0.5), 0)
		return
	}
	s := t.Text
	if s == "" {
		s = "Label"
	}
	l.worldText(b.X, b.Y, s, t.FontSize, colors.Label)
}

func (l *LayerCanvas) drawRectItem(r *scene.RectItem) {
	// drafts may have negative extents until commit
	x, y, w, h := r.X, r.Y, r.Width, r.Height
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	col := kindColor(r)
	rot := float32(r.Rotation)
	fillAlpha := float32(0.25)
	if r.Kind == scene.KindZone || r.Kind == scene.KindWorkzone {
		fillAlpha = 0.14
	}
	l.app.r2d.DrawQuadAnchored(float32(x), float32(y), float32(w), float32(h), col.WithAlpha(fillAlpha), rot)
	l.app.r2d.DrawRectOutline(float32(x), float32(y), float32(w), float32(h), l.zoomPx(1.5), col, rot)
	l.drawFrontEdge(r, col)

	if l.app.font != nil && r.Label != "" {
		size := r.LabelFontSize
		tw, th := text.MeasureText(l.app.font, r.Label, float32(size))
		cx, cy := rectCenter(r)
		l.worldText(cx-float64(tw)/2, cy-float64(th)/2, r.Label, size, colors.Label)
		if len(r.Codes) > 0 {
			codes := strings.Join(r.Codes, ", ")
			csize := size * 0.7
			cw, _ := text.MeasureText(l.app.font, codes, float32(csize))
			l.worldText(cx-float64(cw)/2, cy+float64(th)/2+2, codes, csize, colors.Label.WithAlpha(0.7))
		}
	}
}

func rectCenter(r *scene.RectItem) (float64, float64) {
	// rotation pivots on the anchor, so the visual center rotates with it
	c, s := math.Cos(r.Rotation), math.Sin(r.Rotation)
	lx, ly := r.Width/2, r.Height/2
	return r.X + lx*c - ly*s, r.Y + lx*s + ly*c
}

// drawFrontEdge thickens the edge facing the pick aisle.
func (l *LayerCanvas) drawFrontEdge(r *scene.RectItem, col colors.Color) {
	if r.Front == "" {
		return
	}
	var x1, y1, x2, y2 float64
	switch r.Front {
	case "N":
		x1, y1, x2, y2 = 0, 0, r.Width, 0
	case "S":
		x1, y1, x2, y2 = 0, r.Height, r.Width, r.Height
	case "W":
		x1, y1, x2, y2 = 0, 0, 0, r.Height
	case "E":
		x1, y1, x2, y2 = r.Width, 0, r.Width, r.Height
	default:
		return
	}
	c, s := math.Cos(r.Rotation), math.Sin(r.Rotation)
	tx := func(lx, ly float64) (float64, float64) {
		return r.X + lx*c - ly*s, r.Y + lx*s + ly*c
	}
	ax, ay := tx(x1, y1)
	bx, by := tx(x2, y2)
	l.app.r2d.DrawLine(float32(ax), float32(ay), float32(bx), float32(by), l.zoomPx(4), col)
}

func (l *LayerCanvas) drawSelection(o scene.Object) {
	v := l.app.ctx.View
	hs := float32(8 / v.Zoom) // handle size
	th := l.zoomPx(1.5)

	switch t := o.(type) {
	case *scene.Wall:
		l.drawEndpointHandles(t.X1, t.Y1, t.X2, t.Y2, hs)
	case *scene.Measure:
		l.drawEndpointHandles(t.X1, t.Y1, t.X2, t.Y2, hs)
	case *scene.Door:
		l.app.r2d.DrawCircleOutline(float32(t.X), float32(t.Y), float32(t.Width), th, colors.Select)
	case *scene.Label:
		b := pick.LabelBounds(t, l.app.measurer())
		l.app.r2d.DrawRectOutline(float32(b.X), float32(b.Y), float32(b.W), float32(b.H), th, colors.Select, 0)
	case *scene.RectItem:
		l.drawRectHandles(t, hs, th)
	}
}

func (l *LayerCanvas) drawEndpointHandles(x1, y1, x2, y2 float64, hs float32) {
	l.app.r2d.DrawDisc(float32(x1), float32(y1), hs, colors.Handle)
	l.app.r2d.DrawDisc(float32(x2), float32(y2), hs, colors.Handle)
}

func (l *LayerCanvas) drawRectHandles(r *scene.RectItem, hs, th float32) {
	v := l.app.ctx.View
	l.app.r2d.DrawRectOutline(float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		th, colors.Select, float32(r.Rotation))

	c, s := math.Cos(r.Rotation), math.Sin(r.Rotation)
	tx := func(lx, ly float64) (float32, float32) {
		return float32(r.X + lx*c - ly*s), float32(r.Y + lx*s + ly*c)
	}
	spots := [8][2]float64{
		{0, 0}, {r.Width / 2, 0}, {r.Width, 0},
		{0, r.Height / 2}, {r.Width, r.Height / 2},
		{0, r.Height}, {r.Width / 2, r.Height}, {r.Width, r.Height},
	}
	for _, sp := range spots {
		x, y := tx(sp[0], sp[1])
		l.app.r2d.DrawQuad(x, y, hs, hs, colors.Handle, float32(r.Rotation))
	}

	// rotate knob above the top mid point, stem included
	kx, ky := tx(r.Width/2, -20/v.Zoom)
	mx, my := tx(r.Width/2, 0)
	l.app.r2d.DrawLine(mx, my, kx, ky, l.zoomPx(1), colors.Select)
	l.app.r2d.DrawDisc(kx, ky, hs, colors.Select)
}
