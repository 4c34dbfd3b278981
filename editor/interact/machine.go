// Package interact is the pointer-driven interaction state machine: one
// state value plus a gesture payload, transitioned by discrete input events.
// It queries geometry for world coordinates, picking for targets, applies
// snapping, mutates the scene, and controls history snapshot timing.
package interact

import (
	"math"

	"github.com/hubastard/blueprint/editor"
	"github.com/hubastard/blueprint/editor/geom"
	"github.com/hubastard/blueprint/editor/pick"
	"github.com/hubastard/blueprint/editor/scene"
)

type State int

const (
	Idle State = iota
	Drawing
	Dragging
	Resizing
	Rotating
	EditingEndpoint1
	EditingEndpoint2
	MovingLine
	Marqueeing
	PlacingLabel
	Panning
)

var stateNames = [...]string{
	"idle", "drawing", "dragging", "resizing", "rotating",
	"endpoint1", "endpoint2", "line-move", "marquee", "placing-label", "panning",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Tool is the active drawing tool, set by the toolbar.
type Tool string

const (
	ToolSelect   Tool = "select"
	ToolWall     Tool = "wall"
	ToolDoor     Tool = "door"
	ToolLabel    Tool = "label"
	ToolRack     Tool = "rack"
	ToolBin      Tool = "bin"
	ToolFixture  Tool = "fixture"
	ToolPallet   Tool = "pallet"
	ToolSpecial  Tool = "special"
	ToolZone     Tool = "zone"
	ToolWorkzone Tool = "workzone"
	ToolMeasure  Tool = "measure"
)

// RectKind maps a rectangle tool to its object kind.
func (t Tool) RectKind() (scene.Kind, bool) {
	k := scene.Kind(t)
	return k, k.Valid()
}

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
)

// Machine drives one drawing surface. Not safe for concurrent use; the
// event loop delivers pointer events one at a time.
type Machine struct {
	ctx     *editor.Context
	measure pick.TextMeasurer

	tool  Tool
	state State

	// Gesture payload, valid between pointer-down and pointer-up.
	preGesture []byte       // undo blob captured at gesture start
	targetID   string       // object being manipulated
	handle     pick.Handle
	start      geom.Point   // world point at pointer-down
	startObj   scene.Object // pre-gesture copy of the primary object
	startRot   float64
	startAng   float64
	group      map[string]scene.Object // pre-gesture copies for group drag
	groupIDs   []string
	draft      scene.Object // object under construction
	marquee    geom.Rect
	panAnchor  geom.Point // screen-space pan origin
}

func New(ctx *editor.Context, measure pick.TextMeasurer) *Machine {
	return &Machine{ctx: ctx, measure: measure, tool: ToolSelect}
}

func (m *Machine) State() State   { return m.state }
func (m *Machine) Tool() Tool     { return m.tool }
func (m *Machine) SetTool(t Tool) { m.tool = t }

// DraftObject exposes the in-progress draft for preview rendering; nil
// outside Drawing/PlacingLabel.
func (m *Machine) DraftObject() scene.Object {
	if m.state == Drawing || m.state == PlacingLabel {
		return m.draft
	}
	return nil
}

// MarqueeRect exposes the rubber-band rectangle while marqueeing.
func (m *Machine) MarqueeRect() (geom.Rect, bool) {
	return m.marquee, m.state == Marqueeing
}

func (m *Machine) world(sx, sy float64) geom.Point {
	x, y := m.ctx.View.ScreenToWorld(sx, sy)
	return geom.Point{X: x, Y: y}
}

func (m *Machine) redraw() {
	if m.ctx.Redraw != nil {
		m.ctx.Redraw()
	}
}

// PointerDown begins a gesture. Coordinates are screen pixels.
func (m *Machine) PointerDown(sx, sy float64, button Button) {
	if button == ButtonMiddle {
		m.state = Panning
		m.panAnchor = geom.Point{X: sx - m.ctx.View.PanX, Y: sy - m.ctx.View.PanY}
		return
	}
	pt := m.world(sx, sy)

	if m.tool == ToolSelect {
		m.downSelect(pt)
		return
	}
	m.downDraw(pt)
}

func (m *Machine) downSelect(pt geom.Point) {
	s := m.ctx.Scene

	// Handles extend past the body (rotate knob, endpoint dots), so a lone
	// selected object gets its handle test before general picking.
	if sel := s.Selection(); len(sel) == 1 {
		if o := s.Get(sel[0]); o != nil && !s.Layer(o.LayerName()).Locked {
			if h := pick.HandleAt(o, m.ctx.View, pt); h != pick.HandleNone {
				m.beginHandleGesture(o, h, pt)
				return
			}
		}
	}

	hit := pick.Pick(s, m.ctx.View, pt, m.measure)
	if hit == nil {
		m.state = Marqueeing
		m.marquee = geom.Rect{X: pt.X, Y: pt.Y}
		m.redraw()
		return
	}

	id := hit.ObjectID()
	if s.Layer(hit.LayerName()).Locked {
		// Selection still updates; no manipulation on a locked layer.
		s.SetSelection(id)
		m.redraw()
		return
	}
	if !s.IsSelected(id) {
		s.SetSelection(id)
		// Selection collapsed onto the hit, so its handles are live at
		// once: the first click on a wall endpoint edits that endpoint,
		// the first click on a rect corner resizes.
		if h := pick.HandleAt(hit, m.ctx.View, pt); h != pick.HandleNone {
			m.beginHandleGesture(hit, h, pt)
			return
		}
	}

	m.preGesture = m.capture()
	m.targetID = id
	m.start = pt
	m.startObj = hit.Clone()

	switch hit.(type) {
	case *scene.Wall, *scene.Measure:
		m.state = MovingLine
	default:
		m.beginGroupDrag()
	}
}

// beginHandleGesture starts endpoint editing, resizing or rotating on the
// single selected object.
func (m *Machine) beginHandleGesture(o scene.Object, h pick.Handle, pt geom.Point) {
	m.preGesture = m.capture()
	m.targetID = o.ObjectID()
	m.start = pt
	m.startObj = o.Clone()

	switch h {
	case pick.HandleP1:
		m.state = EditingEndpoint1
	case pick.HandleP2:
		m.state = EditingEndpoint2
	case pick.HandleRotate:
		r := o.(*scene.RectItem)
		cx, cy := r.X+r.Width/2, r.Y+r.Height/2
		m.state = Rotating
		m.startRot = r.Rotation
		m.startAng = math.Atan2(pt.Y-cy, pt.X-cx)
	default:
		m.state = Resizing
		m.handle = h
	}
}

// beginGroupDrag captures pre-gesture copies of the entire selection.
func (m *Machine) beginGroupDrag() {
	m.state = Dragging
	m.groupIDs = m.ctx.Scene.Selection()
	m.group = make(map[string]scene.Object, len(m.groupIDs))
	for _, id := range m.groupIDs {
		if o := m.ctx.Scene.Get(id); o != nil {
			m.group[id] = o.Clone()
		}
	}
}

func (m *Machine) downDraw(pt geom.Point) {
	v := m.ctx.View
	anchor := v.SnapPoint(pt)

	switch m.tool {
	case ToolWall:
		m.draft = scene.NewWall(anchor.X, anchor.Y, anchor.X, anchor.Y)
		m.state = Drawing
	case ToolMeasure:
		m.draft = scene.NewMeasure(anchor.X, anchor.Y, anchor.X, anchor.Y)
		m.state = Drawing
	case ToolDoor:
		m.draft = scene.NewDoor(anchor.X, anchor.Y, 0, 0)
		m.state = Drawing
	case ToolLabel:
		m.draft = scene.NewLabel(pt.X, pt.Y, "Label")
		m.state = PlacingLabel
	default:
		kind, ok := m.tool.RectKind()
		if !ok {
			return
		}
		layer := scene.LayerFixtures
		color := ""
		switch kind {
		case scene.KindZone:
			layer, color = scene.LayerZones, "#2563EB"
		case scene.KindWorkzone:
			layer, color = scene.LayerZones, "#F59E0B"
		}
		m.draft = scene.NewRectItem(kind, anchor.X, anchor.Y, 0, 0, color, layer)
		m.state = Drawing
	}
	m.redraw()
}

// PointerMove updates the gesture in progress.
func (m *Machine) PointerMove(sx, sy float64) {
	v := m.ctx.View
	switch m.state {
	case Panning:
		v.PanX = sx - m.panAnchor.X
		v.PanY = sy - m.panAnchor.Y
		m.redraw()
		return
	}

	pt := m.world(sx, sy)
	switch m.state {
	case Marqueeing:
		// The far corner follows the raw pointer; snapping never applies.
		m.marquee.W = pt.X - m.marquee.X
		m.marquee.H = pt.Y - m.marquee.Y
		m.redraw()
	case PlacingLabel:
		l := m.draft.(*scene.Label)
		l.X, l.Y = pt.X, pt.Y
		m.redraw()
	case Drawing:
		m.moveDrawing(pt)
	case Dragging:
		m.moveDrag(pt)
	case Resizing:
		m.moveResize(pt)
	case Rotating:
		m.moveRotate(pt)
	case EditingEndpoint1, EditingEndpoint2:
		m.moveEndpoint(pt)
	case MovingLine:
		m.moveLine(pt)
	}
}

func (m *Machine) moveDrawing(pt geom.Point) {
	spt := m.ctx.View.SnapPoint(pt)
	switch d := m.draft.(type) {
	case *scene.Wall:
		d.X2, d.Y2 = spt.X, spt.Y
	case *scene.Measure:
		d.X2, d.Y2 = spt.X, spt.Y
	case *scene.Door:
		d.Width = spt.Dist(geom.Point{X: d.X, Y: d.Y})
		d.Angle = math.Atan2(spt.Y-d.Y, spt.X-d.X)
	case *scene.RectItem:
		// Sign is resolved at commit; negative extents are legal here.
		d.Width = spt.X - d.X
		d.Height = spt.Y - d.Y
	}
	m.redraw()
}

func anchorOf(o scene.Object) geom.Point {
	switch t := o.(type) {
	case *scene.Wall:
		return geom.Point{X: t.X1, Y: t.Y1}
	case *scene.Measure:
		return geom.Point{X: t.X1, Y: t.Y1}
	case *scene.Door:
		return geom.Point{X: t.X, Y: t.Y}
	case *scene.Label:
		return geom.Point{X: t.X, Y: t.Y}
	case *scene.RectItem:
		return geom.Point{X: t.X, Y: t.Y}
	}
	return geom.Point{}
}

// moveDrag translates the whole captured group by one resolved delta. With
// snapping on, the delta comes from snapping the primary's resulting
// position, not the delta itself, so repeated moves cannot accumulate snap
// drift. Members that were off-grid stay off-grid.
func (m *Machine) moveDrag(pt geom.Point) {
	s := m.ctx.Scene
	primary := s.Get(m.targetID)
	if primary == nil {
		return
	}
	if s.Layer(primary.LayerName()).Locked {
		return
	}

	dx := pt.X - m.start.X
	dy := pt.Y - m.start.Y
	v := m.ctx.View
	if v.SnapEnabled && v.SnapFeet > 0 {
		a := anchorOf(m.startObj)
		dx = v.SnapUnits(a.X+dx) - a.X
		dy = v.SnapUnits(a.Y+dy) - a.Y
	}

	for _, id := range m.groupIDs {
		start, ok := m.group[id]
		if !ok {
			continue
		}
		live := s.Get(id)
		if live == nil || s.Layer(live.LayerName()).Locked {
			continue
		}
		s.Update(id, func(o scene.Object) {
			translateFrom(o, start, dx, dy)
		})
	}
}

func translateFrom(o, start scene.Object, dx, dy float64) {
	switch t := o.(type) {
	case *scene.Wall:
		w := start.(*scene.Wall)
		t.X1, t.Y1 = w.X1+dx, w.Y1+dy
		t.X2, t.Y2 = w.X2+dx, w.Y2+dy
	case *scene.Measure:
		ms := start.(*scene.Measure)
		t.X1, t.Y1 = ms.X1+dx, ms.Y1+dy
		t.X2, t.Y2 = ms.X2+dx, ms.Y2+dy
	case *scene.Door:
		d := start.(*scene.Door)
		t.X, t.Y = d.X+dx, d.Y+dy
	case *scene.Label:
		l := start.(*scene.Label)
		t.X, t.Y = l.X+dx, l.Y+dy
	case *scene.RectItem:
		r := start.(*scene.RectItem)
		t.X, t.Y = r.X+dx, r.Y+dy
	}
}

// moveResize works in the pre-gesture object's local frame: the handle
// decides which of x/y/width/height change, then each is snapped on its own.
func (m *Machine) moveResize(pt geom.Point) {
	s := m.ctx.Scene
	live, ok := s.Get(m.targetID).(*scene.RectItem)
	if !ok || s.Layer(live.LayerName()).Locked {
		return
	}
	base := m.startObj.(*scene.RectItem)
	loc := geom.RotateInto(pt, geom.Point{X: base.X, Y: base.Y}, base.Rotation)

	nx, ny, nw, nh := base.X, base.Y, base.Width, base.Height
	if m.handle.North() {
		nh = base.Height - loc.Y
		ny = base.Y + loc.Y
	}
	if m.handle.South() {
		nh = loc.Y
	}
	if m.handle.West() {
		nw = base.Width - loc.X
		nx = base.X + loc.X
	}
	if m.handle.East() {
		nw = loc.X
	}

	v := m.ctx.View
	nx, ny = v.SnapUnits(nx), v.SnapUnits(ny)
	nw, nh = v.SnapUnits(nw), v.SnapUnits(nh)

	s.Update(m.targetID, func(o scene.Object) {
		r := o.(*scene.RectItem)
		r.X, r.Y = nx, ny
		r.Width, r.Height = nw, nh // scene clamps to the minimum size
	})
}

func (m *Machine) moveRotate(pt geom.Point) {
	s := m.ctx.Scene
	live, ok := s.Get(m.targetID).(*scene.RectItem)
	if !ok || s.Layer(live.LayerName()).Locked {
		return
	}
	cx := live.X + live.Width/2
	cy := live.Y + live.Height/2
	ang := math.Atan2(pt.Y-cy, pt.X-cx)
	rot := m.startRot + (ang - m.startAng)
	if m.ctx.View.RotateSnap {
		rot = geom.SnapAngle(rot)
	}
	s.Update(m.targetID, func(o scene.Object) {
		o.(*scene.RectItem).Rotation = rot
	})
}

func (m *Machine) moveEndpoint(pt geom.Point) {
	spt := m.ctx.View.SnapPoint(pt)
	first := m.state == EditingEndpoint1
	m.ctx.Scene.Update(m.targetID, func(o scene.Object) {
		switch t := o.(type) {
		case *scene.Wall:
			if first {
				t.X1, t.Y1 = spt.X, spt.Y
			} else {
				t.X2, t.Y2 = spt.X, spt.Y
			}
		case *scene.Measure:
			if first {
				t.X1, t.Y1 = spt.X, spt.Y
			} else {
				t.X2, t.Y2 = spt.X, spt.Y
			}
		}
	})
}

// moveLine shifts both endpoints by one delta resolved from the first
// endpoint's snapped resulting position, preserving the segment's shape.
// A segment whose length is off the grid keeps that error; snapping each
// endpoint separately would fix the length but deform diagonal segments.
func (m *Machine) moveLine(pt geom.Point) {
	dx := pt.X - m.start.X
	dy := pt.Y - m.start.Y
	v := m.ctx.View
	if v.SnapEnabled && v.SnapFeet > 0 {
		a := anchorOf(m.startObj)
		dx = v.SnapUnits(a.X+dx) - a.X
		dy = v.SnapUnits(a.Y+dy) - a.Y
	}
	m.ctx.Scene.Update(m.targetID, func(o scene.Object) {
		translateFrom(o, m.startObj, dx, dy)
	})
}

// PointerUp commits the gesture. Releasing the pointer always commits;
// there is no cancel gesture. Leaving the window counts as a release.
func (m *Machine) PointerUp() {
	switch m.state {
	case Idle:
		return
	case Panning:
		// View-only; not undoable.
	case Marqueeing:
		ids := pick.Marquee(m.ctx.Scene, m.marquee)
		m.ctx.Scene.SetSelection(ids...)
	case PlacingLabel:
		l := m.draft.(*scene.Label)
		p := m.ctx.View.SnapPoint(geom.Point{X: l.X, Y: l.Y})
		l.X, l.Y = p.X, p.Y
		m.ctx.PushSnapshot()
		m.ctx.Scene.Add(l)
	case Drawing:
		// Zero-size drafts commit as drawn; only later edits clamp.
		if r, ok := m.draft.(*scene.RectItem); ok {
			if r.Width < 0 {
				r.X += r.Width
				r.Width = -r.Width
			}
			if r.Height < 0 {
				r.Y += r.Height
				r.Height = -r.Height
			}
		}
		m.ctx.PushSnapshot()
		m.ctx.Scene.Add(m.draft)
	default:
		// Transform gestures: the pre-gesture capture becomes the undo entry.
		if m.preGesture != nil {
			m.ctx.History.Push(m.preGesture)
		}
	}
	m.reset()
	m.redraw()
}

func (m *Machine) reset() {
	m.state = Idle
	m.preGesture = nil
	m.targetID = ""
	m.handle = pick.HandleNone
	m.startObj = nil
	m.draft = nil
	m.group = nil
	m.groupIDs = nil
	m.marquee = geom.Rect{}
}

func (m *Machine) capture() []byte {
	if m.ctx.EncodeState == nil {
		return nil
	}
	return m.ctx.EncodeState()
}

// Wheel zooms about the cursor position.
func (m *Machine) Wheel(sx, sy, yoff float64) {
	factor := 0.9
	if yoff > 0 {
		factor = 1.1
	}
	m.ctx.View.ZoomAt(sx, sy, factor)
	m.redraw()
}

// DropCode assigns a palette code to the topmost droppable object under the
// screen point, defaulting its quantity to 1.
func (m *Machine) DropCode(sx, sy float64, code string) bool {
	if code == "" {
		return false
	}
	target := pick.DropTarget(m.ctx.Scene, m.world(sx, sy))
	if target == nil {
		return false
	}
	m.ctx.Scene.Update(target.ID, func(o scene.Object) {
		o.(*scene.RectItem).AssignCode(code)
	})
	m.ctx.Catalog.Assignments[code] = target.ID
	m.redraw()
	return true
}
