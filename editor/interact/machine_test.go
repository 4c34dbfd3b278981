package interact_test

import (
	"math"
	"testing"

	"github.com/hubastard/blueprint/editor"
	"github.com/hubastard/blueprint/editor/interact"
	"github.com/hubastard/blueprint/editor/planio"
	"github.com/hubastard/blueprint/editor/scene"
)

// newMachine wires a headless editing context. The default view has zoom 1
// and zero pan, so screen and world coordinates coincide.
func newMachine(t *testing.T) (*editor.Context, *interact.Machine) {
	t.Helper()
	ctx := editor.NewContext()
	planio.Bind(ctx)
	return ctx, interact.New(ctx, nil)
}

func TestDrawWallSnapsAndIsUndoable(t *testing.T) {
	ctx, m := newMachine(t)
	m.SetTool(interact.ToolWall)

	m.PointerDown(100.4, 99.7, interact.ButtonLeft)
	if m.State() != interact.Drawing {
		t.Fatalf("state = %v", m.State())
	}
	m.PointerMove(207, 203)
	m.PointerUp()

	if ctx.Scene.Len() != 1 {
		t.Fatalf("scene len = %d", ctx.Scene.Len())
	}
	w := ctx.Scene.Objects()[0].(*scene.Wall)
	if w.X1 != 100 || w.Y1 != 100 || w.X2 != 210 || w.Y2 != 200 {
		t.Errorf("wall = (%v,%v)-(%v,%v)", w.X1, w.Y1, w.X2, w.Y2)
	}
	if ctx.History.UndoLen() != 1 {
		t.Fatalf("undo len = %d", ctx.History.UndoLen())
	}
	if !ctx.Undo() || ctx.Scene.Len() != 0 {
		t.Error("undo did not remove the drawn wall")
	}
}

func TestDrawZoneDraft(t *testing.T) {
	ctx, m := newMachine(t)
	m.SetTool(interact.ToolZone)

	m.PointerDown(7, 7, interact.ButtonLeft)
	r, ok := m.DraftObject().(*scene.RectItem)
	if !ok {
		t.Fatalf("draft = %T", m.DraftObject())
	}
	if r.X != 10 || r.Y != 10 {
		t.Errorf("anchor not snapped: (%v,%v)", r.X, r.Y)
	}
	if r.Layer != scene.LayerZones || r.Color != "#2563EB" {
		t.Errorf("zone defaults: layer=%q color=%q", r.Layer, r.Color)
	}

	m.PointerMove(133, 94)
	m.PointerUp()
	got := ctx.Scene.Objects()[0].(*scene.RectItem)
	if got.Width != 120 || got.Height != 80 {
		t.Errorf("committed size = %v x %v", got.Width, got.Height)
	}
}

func TestDrawNegativeExtentNormalizesOnCommit(t *testing.T) {
	ctx, m := newMachine(t)
	m.SetTool(interact.ToolRack)

	m.PointerDown(100, 100, interact.ButtonLeft)
	m.PointerMove(40, 60)
	m.PointerUp()

	r := ctx.Scene.Objects()[0].(*scene.RectItem)
	if r.X != 40 || r.Y != 60 || r.Width != 60 || r.Height != 40 {
		t.Errorf("normalized rect = (%v,%v) %vx%v", r.X, r.Y, r.Width, r.Height)
	}
}

func TestPlaceLabelSnapsOnRelease(t *testing.T) {
	ctx, m := newMachine(t)
	m.SetTool(interact.ToolLabel)

	m.PointerDown(7, 7, interact.ButtonLeft)
	if m.State() != interact.PlacingLabel {
		t.Fatalf("state = %v", m.State())
	}
	// the floating draft follows the raw pointer
	if l := m.DraftObject().(*scene.Label); l.X != 7 || l.Y != 7 {
		t.Errorf("draft anchor = (%v,%v)", l.X, l.Y)
	}
	m.PointerUp()

	l := ctx.Scene.Objects()[0].(*scene.Label)
	if l.X != 10 || l.Y != 10 {
		t.Errorf("placed anchor = (%v,%v)", l.X, l.Y)
	}
	if ctx.History.UndoLen() != 1 {
		t.Errorf("undo len = %d", ctx.History.UndoLen())
	}
}

func TestGroupDragSnapsPrimaryAnchor(t *testing.T) {
	ctx, m := newMachine(t)
	a := scene.NewRectItem(scene.KindRack, 20, 20, 40, 40, "", scene.LayerFixtures)
	b := scene.NewRectItem(scene.KindBin, 23, 100, 40, 40, "", scene.LayerFixtures)
	ctx.Scene.Add(a)
	ctx.Scene.Add(b)
	ctx.Scene.SetSelection(a.ID, b.ID)

	m.PointerDown(25, 25, interact.ButtonLeft)
	if m.State() != interact.Dragging {
		t.Fatalf("state = %v", m.State())
	}
	m.PointerMove(37, 37) // raw delta (12,12); snapping the primary gives 10
	m.PointerUp()

	if a.X != 30 || a.Y != 30 {
		t.Errorf("primary at (%v,%v)", a.X, a.Y)
	}
	// off-grid members move by the same resolved delta and stay off-grid
	if b.X != 33 || b.Y != 110 {
		t.Errorf("member at (%v,%v)", b.X, b.Y)
	}
	if ctx.History.UndoLen() != 1 {
		t.Errorf("undo len = %d", ctx.History.UndoLen())
	}
}

func TestGroupDragUnsnappedUsesRawDelta(t *testing.T) {
	ctx, m := newMachine(t)
	ctx.View.SnapEnabled = false
	a := scene.NewRectItem(scene.KindRack, 20, 20, 40, 40, "", scene.LayerFixtures)
	b := scene.NewRectItem(scene.KindBin, 23, 100, 40, 40, "", scene.LayerFixtures)
	ctx.Scene.Add(a)
	ctx.Scene.Add(b)
	ctx.Scene.SetSelection(a.ID, b.ID)

	m.PointerDown(30, 30, interact.ButtonLeft)
	m.PointerMove(42, 37)
	m.PointerUp()

	// every member moves by exactly the pointer delta
	if a.X != 32 || a.Y != 27 {
		t.Errorf("primary at (%v,%v)", a.X, a.Y)
	}
	if b.X != 35 || b.Y != 107 {
		t.Errorf("member at (%v,%v)", b.X, b.Y)
	}
}

func TestUndoAfterDragRestoresPosition(t *testing.T) {
	ctx, m := newMachine(t)
	a := scene.NewRectItem(scene.KindRack, 20, 20, 40, 40, "", scene.LayerFixtures)
	ctx.Scene.Add(a)
	ctx.Scene.SetSelection(a.ID)

	// body point clear of the corner handles
	m.PointerDown(30, 30, interact.ButtonLeft)
	m.PointerMove(90, 50)
	m.PointerUp()

	moved := ctx.Scene.Get(a.ID).(*scene.RectItem)
	if moved.X != 80 || moved.Y != 40 {
		t.Fatalf("moved to (%v,%v)", moved.X, moved.Y)
	}
	if !ctx.Undo() {
		t.Fatal("undo failed")
	}
	restored, ok := ctx.Scene.Get(a.ID).(*scene.RectItem)
	if !ok || restored.X != 20 || restored.Y != 20 {
		t.Errorf("restored to %+v", restored)
	}
}

func TestMoveLineKeepsShape(t *testing.T) {
	ctx, m := newMachine(t)
	w := scene.NewWall(0, 0, 95, 0) // length off the grid
	ctx.Scene.Add(w)
	ctx.Scene.SetSelection(w.ID)

	m.PointerDown(50, 1, interact.ButtonLeft)
	if m.State() != interact.MovingLine {
		t.Fatalf("state = %v", m.State())
	}
	m.PointerMove(62, 4) // raw delta (12,3) resolves to (10,0)
	m.PointerUp()

	if w.X1 != 10 || w.Y1 != 0 || w.X2 != 105 || w.Y2 != 0 {
		t.Errorf("wall = (%v,%v)-(%v,%v)", w.X1, w.Y1, w.X2, w.Y2)
	}
}

func TestEndpointEdit(t *testing.T) {
	ctx, m := newMachine(t)
	w := scene.NewWall(0, 0, 100, 0)
	ctx.Scene.Add(w)
	ctx.Scene.SetSelection(w.ID)

	m.PointerDown(99, 1, interact.ButtonLeft)
	if m.State() != interact.EditingEndpoint2 {
		t.Fatalf("state = %v", m.State())
	}
	m.PointerMove(152, 48)
	m.PointerUp()

	if w.X1 != 0 || w.Y1 != 0 {
		t.Errorf("fixed endpoint moved: (%v,%v)", w.X1, w.Y1)
	}
	if w.X2 != 150 || w.Y2 != 50 {
		t.Errorf("edited endpoint = (%v,%v)", w.X2, w.Y2)
	}
}

func TestEndpointEditOnFirstClick(t *testing.T) {
	ctx, m := newMachine(t)
	w := scene.NewWall(0, 0, 100, 0)
	ctx.Scene.Add(w)
	// nothing selected: the click both selects the wall and grabs the handle

	m.PointerDown(100, 0, interact.ButtonLeft)
	if m.State() != interact.EditingEndpoint2 {
		t.Fatalf("state = %v", m.State())
	}
	if sel := ctx.Scene.Selection(); len(sel) != 1 || sel[0] != w.ID {
		t.Fatalf("selection = %v", sel)
	}
	m.PointerMove(152, 48)
	m.PointerUp()

	if w.X2 != 150 || w.Y2 != 50 {
		t.Errorf("edited endpoint = (%v,%v)", w.X2, w.Y2)
	}
	if ctx.History.UndoLen() != 1 {
		t.Errorf("undo len = %d", ctx.History.UndoLen())
	}
}

func TestResizeOnFirstClick(t *testing.T) {
	ctx, m := newMachine(t)
	r := scene.NewRectItem(scene.KindRack, 20, 20, 40, 40, "", scene.LayerFixtures)
	ctx.Scene.Add(r)

	m.PointerDown(60, 60, interact.ButtonLeft) // SE corner of an unselected rect
	if m.State() != interact.Resizing {
		t.Fatalf("state = %v", m.State())
	}
	m.PointerMove(82, 78)
	m.PointerUp()

	if r.Width != 60 || r.Height != 60 {
		t.Errorf("size = %v x %v", r.Width, r.Height)
	}
	if r.X != 20 || r.Y != 20 {
		t.Errorf("anchor moved: (%v,%v)", r.X, r.Y)
	}
}

func TestRotateSnapsToEighthTurns(t *testing.T) {
	ctx, m := newMachine(t)
	r := scene.NewRectItem(scene.KindRack, 0, 0, 40, 20, "", scene.LayerFixtures)
	ctx.Scene.Add(r)
	ctx.Scene.SetSelection(r.ID)

	// rotate knob floats above the top-mid point at (20,-20)
	m.PointerDown(20, -20, interact.ButtonLeft)
	if m.State() != interact.Rotating {
		t.Fatalf("state = %v", m.State())
	}
	// ~30 degrees of knob travel about the center (20,10)
	m.PointerMove(35, -15.98)
	m.PointerUp()

	if math.Abs(r.Rotation-math.Pi/4) > 1e-9 {
		t.Errorf("rotation = %v, want %v", r.Rotation, math.Pi/4)
	}
}

func TestRotateUnsnapped(t *testing.T) {
	ctx, m := newMachine(t)
	ctx.View.RotateSnap = false
	r := scene.NewRectItem(scene.KindRack, 0, 0, 40, 20, "", scene.LayerFixtures)
	ctx.Scene.Add(r)
	ctx.Scene.SetSelection(r.ID)

	m.PointerDown(20, -20, interact.ButtonLeft)
	m.PointerMove(50, 10) // knob at due east of the center: quarter turn
	m.PointerUp()

	if math.Abs(r.Rotation-math.Pi/2) > 1e-9 {
		t.Errorf("rotation = %v, want %v", r.Rotation, math.Pi/2)
	}
}

func TestResizeClampsToMinimum(t *testing.T) {
	ctx, m := newMachine(t)
	r := scene.NewRectItem(scene.KindRack, 100, 100, 40, 40, "", scene.LayerFixtures)
	ctx.Scene.Add(r)
	ctx.Scene.SetSelection(r.ID)

	m.PointerDown(140, 140, interact.ButtonLeft) // SE corner
	if m.State() != interact.Resizing {
		t.Fatalf("state = %v", m.State())
	}
	m.PointerMove(102, 102)
	m.PointerUp()

	if r.Width != scene.MinRectSize || r.Height != scene.MinRectSize {
		t.Errorf("size = %v x %v", r.Width, r.Height)
	}
	if r.X != 100 || r.Y != 100 {
		t.Errorf("anchor moved: (%v,%v)", r.X, r.Y)
	}
}

func TestResizeWestEdgeSnaps(t *testing.T) {
	ctx, m := newMachine(t)
	r := scene.NewRectItem(scene.KindRack, 100, 100, 40, 40, "", scene.LayerFixtures)
	ctx.Scene.Add(r)
	ctx.Scene.SetSelection(r.ID)

	m.PointerDown(100, 120, interact.ButtonLeft) // W handle
	m.PointerMove(83, 120)                       // left edge to x=83, snaps to 80
	m.PointerUp()

	if r.X != 80 || r.Width != 60 || r.Height != 40 {
		t.Errorf("rect = (%v,%v) %vx%v", r.X, r.Y, r.Width, r.Height)
	}
}

func TestMarqueeSelectsWithoutHistory(t *testing.T) {
	ctx, m := newMachine(t)
	w := scene.NewWall(0, 0, 100, 0)
	r := scene.NewRectItem(scene.KindRack, 10, 10, 40, 40, "", scene.LayerFixtures)
	d := scene.NewDoor(200, 200, 30, 0)
	ctx.Scene.Add(w)
	ctx.Scene.Add(r)
	ctx.Scene.Add(d)

	m.PointerDown(300, 300, interact.ButtonLeft)
	if m.State() != interact.Marqueeing {
		t.Fatalf("state = %v", m.State())
	}
	m.PointerMove(-10, -10)
	if _, active := m.MarqueeRect(); !active {
		t.Fatal("marquee rect not exposed")
	}
	m.PointerUp()

	sel := ctx.Scene.Selection()
	if len(sel) != 2 {
		t.Fatalf("selection = %v", sel)
	}
	for _, id := range sel {
		if id == d.ID {
			t.Error("door is not marquee-selectable")
		}
	}
	if ctx.History.UndoLen() != 0 {
		t.Error("selection change recorded in history")
	}
}

func TestLockedLayerClickOnlySelects(t *testing.T) {
	ctx, m := newMachine(t)
	r := scene.NewRectItem(scene.KindRack, 10, 10, 40, 40, "", scene.LayerFixtures)
	ctx.Scene.Add(r)
	ctx.Scene.SetLayerFlag(scene.LayerFixtures, scene.FlagLocked, true)

	m.PointerDown(20, 20, interact.ButtonLeft)
	if m.State() != interact.Idle {
		t.Errorf("state = %v", m.State())
	}
	if sel := ctx.Scene.Selection(); len(sel) != 1 || sel[0] != r.ID {
		t.Errorf("selection = %v", sel)
	}
	m.PointerUp()
	if r.X != 10 || ctx.History.UndoLen() != 0 {
		t.Error("locked object mutated")
	}
}

func TestPanWithMiddleButton(t *testing.T) {
	ctx, m := newMachine(t)
	m.PointerDown(100, 100, interact.ButtonMiddle)
	if m.State() != interact.Panning {
		t.Fatalf("state = %v", m.State())
	}
	m.PointerMove(130, 120)
	m.PointerUp()

	if ctx.View.PanX != 30 || ctx.View.PanY != 20 {
		t.Errorf("pan = (%v,%v)", ctx.View.PanX, ctx.View.PanY)
	}
	if ctx.History.UndoLen() != 0 {
		t.Error("pan recorded in history")
	}
}

func TestWheelZoomsAboutCursor(t *testing.T) {
	ctx, m := newMachine(t)
	const sx, sy = 421, 267
	wantX, wantY := ctx.View.ScreenToWorld(sx, sy)

	m.Wheel(sx, sy, 1)
	if math.Abs(ctx.View.Zoom-1.1) > 1e-12 {
		t.Errorf("zoom = %v", ctx.View.Zoom)
	}
	x, y := ctx.View.ScreenToWorld(sx, sy)
	if math.Abs(x-wantX) > 1e-9 || math.Abs(y-wantY) > 1e-9 {
		t.Errorf("cursor world drifted to (%v,%v)", x, y)
	}

	m.Wheel(sx, sy, -1)
	if math.Abs(ctx.View.Zoom-0.99) > 1e-12 {
		t.Errorf("zoom after out = %v", ctx.View.Zoom)
	}
}

func TestDropCode(t *testing.T) {
	ctx, m := newMachine(t)
	rack := scene.NewRectItem(scene.KindRack, 0, 0, 40, 40, "", scene.LayerFixtures)
	zone := scene.NewRectItem(scene.KindZone, 100, 100, 80, 80, "#2563EB", scene.LayerZones)
	ctx.Scene.Add(rack)
	ctx.Scene.Add(zone)

	if !m.DropCode(20, 20, "A100") {
		t.Fatal("drop on rack rejected")
	}
	if len(rack.Codes) != 1 || rack.Codes[0] != "A100" || rack.Quantities["A100"] != 1 {
		t.Errorf("assignment = %v %v", rack.Codes, rack.Quantities)
	}
	if ctx.Catalog.Assignments["A100"] != rack.ID {
		t.Errorf("index = %v", ctx.Catalog.Assignments)
	}

	if m.DropCode(140, 140, "B200") {
		t.Error("zone accepted a drop")
	}
	if m.DropCode(20, 20, "") {
		t.Error("empty code accepted")
	}
}
