package planio

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/hubastard/blueprint/editor"
	"github.com/hubastard/blueprint/editor/catalog"
	"github.com/hubastard/blueprint/editor/scene"
)

func populated() *editor.Context {
	ctx := editor.NewContext()
	ctx.Scene.Add(scene.NewWall(0, 0, 200, 0))
	ctx.Scene.Add(scene.NewMeasure(0, 50, 120, 50))
	ctx.Scene.Add(scene.NewDoor(200, 0, 60, math.Pi/2))
	ctx.Scene.Add(scene.NewLabel(10, 80, "receiving"))

	r := scene.NewRectItem(scene.KindRack, 40, 120, 80, 40, "#ff0000", scene.LayerFixtures)
	r.Label = "Rack 1"
	r.LabelFontSize = 18
	r.Rotation = math.Pi / 4
	r.Front = "S"
	r.AssignCode("A100")
	r.Quantities["A100"] = 3
	ctx.Scene.Add(r)

	ctx.Catalog.Upsert(catalog.Item{Code: "A100", Name: "Widget", Category: "Storage", Tags: []string{"metal"}})
	ctx.Catalog.Assignments["A100"] = r.ID
	ctx.UI.HideOffItems = true
	ctx.Print.LegendCompact = true
	ctx.Print.LegendInclude["Rack 1"] = true
	return ctx
}

func TestDocumentRoundTrip(t *testing.T) {
	src := populated()
	b, err := json.Marshal(CaptureFull(src))
	if err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	dst := editor.NewContext()
	Apply(dst, doc)
	ApplyView(dst, doc)

	if dst.Scene.Len() != 5 {
		t.Fatalf("scene len = %d", dst.Scene.Len())
	}
	for i, want := range src.Scene.Objects() {
		got := dst.Scene.Objects()[i]
		if got.ObjectID() != want.ObjectID() {
			t.Errorf("object %d id %q != %q", i, got.ObjectID(), want.ObjectID())
		}
	}

	r, ok := dst.Scene.Objects()[4].(*scene.RectItem)
	if !ok {
		t.Fatalf("object 4 = %T", dst.Scene.Objects()[4])
	}
	if r.Kind != scene.KindRack || r.Color != "#ff0000" || r.Front != "S" ||
		r.Label != "Rack 1" || r.LabelFontSize != 18 ||
		math.Abs(r.Rotation-math.Pi/4) > 1e-12 {
		t.Errorf("rect fields lost: %+v", r)
	}
	if len(r.Codes) != 1 || r.Codes[0] != "A100" || r.Quantities["A100"] != 3 {
		t.Errorf("codes lost: %v %v", r.Codes, r.Quantities)
	}

	if it, found := dst.Catalog.Find("A100"); !found || it.Name != "Widget" || it.Category != "Storage" {
		t.Errorf("catalog lost: %+v", it)
	}
	if dst.Catalog.Assignments["A100"] != r.ID {
		t.Errorf("assignments lost: %v", dst.Catalog.Assignments)
	}
	if !dst.UI.HideOffItems || !dst.Print.LegendCompact || !dst.Print.LegendInclude["Rack 1"] {
		t.Error("toggles lost")
	}
	if dst.View.SnapFeet != 0.5 || dst.View.UnitsPerFoot != 20 {
		t.Errorf("view lost: %+v", dst.View)
	}
}

func TestUndoSnapshotOmitsView(t *testing.T) {
	doc := Capture(populated())
	if doc.View != nil {
		t.Error("undo snapshot carries the camera")
	}
	if doc.Version != FormatVersion {
		t.Errorf("version = %d", doc.Version)
	}
}

func TestLegacyKeys(t *testing.T) {
	raw := []byte(`{
		"version": 1,
		"objects": [
			{"id":"r1","type":"rack","x":10,"y":20,"w":80,"h":40,"rot":0.5,"labelSize":16},
			{"id":"p1","type":"halfpallet","x":0,"y":0,"w":40,"h":48},
			{"id":"l1","type":"label","x":5,"y":5,"text":"hi","size":22},
			{"id":"??","type":"widget","x":1,"y":1}
		],
		"itemCatalog": [{"sku":"A100","description":"Widget"}]
	}`)

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	ctx := editor.NewContext()
	Apply(ctx, doc)

	// the unknown "widget" record is skipped, not fatal
	if ctx.Scene.Len() != 3 {
		t.Fatalf("scene len = %d", ctx.Scene.Len())
	}

	r := ctx.Scene.Get("r1").(*scene.RectItem)
	if r.Width != 80 || r.Height != 40 || r.Rotation != 0.5 || r.LabelFontSize != 16 {
		t.Errorf("legacy rect keys: %+v", r)
	}
	if r.Layer != scene.LayerFixtures {
		t.Errorf("layer default = %q", r.Layer)
	}
	if r.Codes == nil || r.Quantities == nil {
		t.Error("nil code containers after load")
	}

	p := ctx.Scene.Get("p1").(*scene.RectItem)
	if p.Kind != scene.KindPallet {
		t.Errorf("halfpallet mapped to %q", p.Kind)
	}

	l := ctx.Scene.Get("l1").(*scene.Label)
	if l.FontSize != 22 {
		t.Errorf("legacy size key: %v", l.FontSize)
	}

	// legacy catalog spellings resolve through the item decoder
	if it, ok := ctx.Catalog.Find("A100"); !ok || it.Name != "Widget" || !it.Active {
		t.Errorf("legacy catalog item: %+v", it)
	}
}

func TestZoneLayerDefault(t *testing.T) {
	raw := []byte(`{"objects":[{"id":"z1","type":"zone","x":0,"y":0,"width":100,"height":100}]}`)
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	ctx := editor.NewContext()
	Apply(ctx, doc)
	z := ctx.Scene.Get("z1").(*scene.RectItem)
	if z.Layer != scene.LayerZones {
		t.Errorf("zone layer default = %q", z.Layer)
	}
}

func TestApplyViewClampsZoom(t *testing.T) {
	ctx := editor.NewContext()
	ApplyView(ctx, Document{View: &ViewRecord{Zoom: 1000, UnitsPerFoot: 20, SnapFeet: 0.5}})
	if ctx.View.Zoom != 50 {
		t.Errorf("zoom = %v", ctx.View.Zoom)
	}
	// non-positive scale values keep the current ones
	before := ctx.View.UnitsPerFoot
	ApplyView(ctx, Document{View: &ViewRecord{Zoom: -1, UnitsPerFoot: 0}})
	if ctx.View.UnitsPerFoot != before || ctx.View.Zoom != 50 {
		t.Errorf("view = %+v", ctx.View)
	}
}
