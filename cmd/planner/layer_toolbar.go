package main

import (
	"fmt"

	"github.com/hubastard/blueprint/editor/interact"
	"github.com/hubastard/blueprint/engine/colors"
	"github.com/hubastard/blueprint/engine/core"
	"github.com/hubastard/blueprint/engine/gfx/renderer2d"
	"github.com/hubastard/blueprint/engine/ui"
)

const (
	toolbarHeight = 44
	statusHeight  = 26
)

// LayerToolbar renders the tool strip on top and the status line at the
// bottom, and consumes pointer input over both.
type LayerToolbar struct {
	app *App

	mouseX, mouseY float64
	mouseDown      bool
	pressed        bool
	released       bool
}

type toolButton struct {
	label string
	tool  interact.Tool
}

var toolButtons = []toolButton{
	{"Select", interact.ToolSelect},
	{"Wall", interact.ToolWall},
	{"Door", interact.ToolDoor},
	{"Label", interact.ToolLabel},
	{"Measure", interact.ToolMeasure},
	{"Rack", interact.ToolRack},
	{"Bin", interact.ToolBin},
	{"Pallet", interact.ToolPallet},
	{"Fixture", interact.ToolFixture},
	{"Special", interact.ToolSpecial},
	{"Zone", interact.ToolZone},
	{"Work Zone", interact.ToolWorkzone},
}

func (l *LayerToolbar) OnAttach(e *core.Engine) {}
func (l *LayerToolbar) OnDetach(e *core.Engine) {}

func (l *LayerToolbar) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerToolbar) inChrome(y float64, e *core.Engine) bool {
	_, fbH := e.Window.FramebufferSize()
	return y <= toolbarHeight || y >= float64(fbH-statusHeight)
}

func (l *LayerToolbar) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventMouseMove:
		l.mouseX, l.mouseY = v.X, v.Y
		return false
	case core.EventMouseButton:
		if v.Button != core.MouseLeft {
			return false
		}
		l.mouseX, l.mouseY = v.X, v.Y
		inside := l.inChrome(v.Y, e)
		if v.Down {
			l.mouseDown = true
			l.pressed = inside
			return inside
		}
		l.mouseDown = false
		l.released = inside
		return inside
	}
	return false
}

func (l *LayerToolbar) OnRender(e *core.Engine, alpha float64) {
	a := l.app
	fbW, fbH := e.Window.FramebufferSize()

	a.r2d.BeginScene(renderer2d.ScreenVP(fbW, fbH))
	c := &ui.Context{
		R2D: a.r2d, Font: a.font,
		MouseX: float32(l.mouseX), MouseY: float32(l.mouseY),
		MouseDown: l.mouseDown, Pressed: l.pressed, Released: l.released,
	}

	c.Panel(0, 0, float32(fbW), toolbarHeight, colors.Toolbar)

	x := float32(8)
	const bh, pad = 28, 6
	by := float32((toolbarHeight - bh) / 2)
	for _, tb := range toolButtons {
		bw := l.buttonWidth(c, tb.label)
		if c.Button(x, by, bw, bh, tb.label, a.machine.Tool() == tb.tool) {
			a.machine.SetTool(tb.tool)
		}
		x += bw + pad
	}
	x += 12

	type action struct {
		label string
		on    bool
		run   func()
	}
	v := a.ctx.View
	actions := []action{
		{"Undo", false, func() { a.ctx.Undo() }},
		{"Redo", false, func() { a.ctx.Redo() }},
		{"Save", false, a.save},
		{"New", false, a.ctx.NewPlan},
		{"Snap", v.SnapEnabled, func() { v.SnapEnabled = !v.SnapEnabled }},
		{"Grid", v.ShowGrid, func() { v.ShowGrid = !v.ShowGrid }},
		{"45°", v.RotateSnap, func() { v.RotateSnap = !v.RotateSnap }},
	}
	for _, act := range actions {
		bw := l.buttonWidth(c, act.label)
		if c.Button(x, by, bw, bh, act.label, act.on) {
			act.run()
		}
		x += bw + pad
	}

	l.drawStatus(c, fbW, fbH)
	a.r2d.EndScene()

	l.pressed = false
	l.released = false
}

func (l *LayerToolbar) buttonWidth(c *ui.Context, label string) float32 {
	tw, _ := c.Measure(label, 14)
	if tw < 20 {
		tw = 20
	}
	return tw + 16
}

func (l *LayerToolbar) drawStatus(c *ui.Context, fbW, fbH int) {
	a := l.app
	y := float32(fbH - statusHeight)
	c.Panel(0, y, float32(fbW), statusHeight, colors.Toolbar)

	v := a.ctx.View
	left := fmt.Sprintf("%s · %s · zoom %.0f%% · %d objects",
		a.machine.Tool(), a.machine.State(), v.Zoom*100, a.ctx.Scene.Len())
	c.Label(8, y+6, left, 13, colors.Label.WithAlpha(0.8))

	if a.status.msg != "" {
		col := colors.Label
		switch a.status.kind {
		case "error":
			col = colors.MustHex("#f87171")
		case "success":
			col = colors.MustHex("#4ade80")
		}
		tw, _ := c.Measure(a.status.msg, 13)
		c.Label(float32(fbW)-tw-8, y+6, a.status.msg, 13, col)
	}
}
