package main

import (
	"github.com/hubastard/blueprint/editor/geom"
	"github.com/hubastard/blueprint/editor/interact"
	"github.com/hubastard/blueprint/editor/scene"
	"github.com/hubastard/blueprint/engine/colors"
	"github.com/hubastard/blueprint/engine/core"
)

// LayerCanvas owns the drawing surface: it feeds pointer input to the
// interaction machine and renders the world each frame.
type LayerCanvas struct {
	app *App
}

func (l *LayerCanvas) OnAttach(e *core.Engine) {}
func (l *LayerCanvas) OnDetach(e *core.Engine) {}

func (l *LayerCanvas) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerCanvas) OnEvent(e *core.Engine, ev core.Event) bool {
	m := l.app.machine
	switch v := ev.(type) {
	case core.EventMouseButton:
		if !v.Down {
			m.PointerUp()
			return true
		}
		switch v.Button {
		case core.MouseLeft:
			m.PointerDown(v.X, v.Y, interact.ButtonLeft)
		case core.MouseMiddle:
			m.PointerDown(v.X, v.Y, interact.ButtonMiddle)
		default:
			return false
		}
		return true
	case core.EventMouseMove:
		m.PointerMove(v.X, v.Y)
		return false
	case core.EventScroll:
		x, y := e.Input.Mouse()
		m.Wheel(x, y, v.Yoff)
		return true
	case core.EventCursorEnter:
		// Leaving mid-gesture counts as a release.
		if !v.Entered {
			m.PointerUp()
		}
		return false
	}
	return false
}

func (l *LayerCanvas) OnRender(e *core.Engine, alpha float64) {
	a := l.app
	fbW, fbH := e.Window.FramebufferSize()
	v := a.ctx.View

	a.r2d.BeginScene(v.Matrix(fbW, fbH))

	if v.ShowGrid {
		l.drawGrid(fbW, fbH)
	}
	l.drawOrigin()

	for _, o := range a.ctx.Scene.Objects() {
		if !a.ctx.Scene.Layer(o.LayerName()).Visible {
			continue
		}
		l.drawObject(o, false)
	}

	if draft := a.machine.DraftObject(); draft != nil {
		l.drawObject(draft, true)
	}

	for _, id := range a.ctx.Scene.Selection() {
		if o := a.ctx.Scene.Get(id); o != nil {
			l.drawSelection(o)
		}
	}

	if r, ok := a.machine.MarqueeRect(); ok {
		l.drawMarquee(r)
	}

	a.r2d.EndScene()
}

func (l *LayerCanvas) drawGrid(fbW, fbH int) {
	v := l.app.ctx.View
	minor := v.UnitsPerFoot // 1 ft
	if minor <= 0 {
		return
	}
	// skip minor lines once they crowd below ~8px apart
	drawMinor := minor*v.Zoom >= 8

	x0, y0 := v.ScreenToWorld(0, 0)
	x1, y1 := v.ScreenToWorld(float64(fbW), float64(fbH))
	th := float32(1 / v.Zoom)

	startX := geom.Snap(x0, minor) - minor
	for x := startX; x <= x1; x += minor {
		major := isMajor(x, minor)
		if !major && !drawMinor {
			continue
		}
		col := colors.Grid
		if major {
			col = colors.GridMajor
		}
		l.app.r2d.DrawLine(float32(x), float32(y0), float32(x), float32(y1), th, col)
	}
	startY := geom.Snap(y0, minor) - minor
	for y := startY; y <= y1; y += minor {
		major := isMajor(y, minor)
		if !major && !drawMinor {
			continue
		}
		col := colors.Grid
		if major {
			col = colors.GridMajor
		}
		l.app.r2d.DrawLine(float32(x0), float32(y), float32(x1), float32(y), th, col)
	}
}

// isMajor marks every fifth grid line.
func isMajor(coord, spacing float64) bool {
	n := int(geom.Snap(coord, spacing) / spacing)
	if n < 0 {
		n = -n
	}
	return n%5 == 0
}

func (l *LayerCanvas) drawOrigin() {
	v := l.app.ctx.View
	arm := float32(8 / v.Zoom)
	th := float32(2 / v.Zoom)
	l.app.r2d.DrawLine(-arm, 0, arm, 0, th, colors.Select)
	l.app.r2d.DrawLine(0, -arm, 0, arm, th, colors.Select)
}

func (l *LayerCanvas) drawMarquee(r geom.Rect) {
	n := r.Normalized()
	v := l.app.ctx.View
	l.app.r2d.DrawQuadAnchored(float32(n.X), float32(n.Y), float32(n.W), float32(n.H),
		colors.Select.WithAlpha(0.12), 0)
	l.app.r2d.DrawRectOutline(float32(n.X), float32(n.Y), float32(n.W), float32(n.H),
		float32(1/v.Zoom), colors.Select, 0)
}

func (l *LayerCanvas) drawObject(o scene.Object, draft bool) {
	switch t := o.(type) {
	case *scene.Wall:
		l.drawWall(t, draft)
	case *scene.Measure:
		l.drawMeasure(t)
	case *scene.Door:
		l.drawDoor(t)
	case *scene.Label:
		l.drawTextLabel(t)
	case *scene.RectItem:
		l.drawRectItem(t)
	}
}
