// Package planio serializes plans: the JSON document format, file save/load,
// CSV catalog import and the debounced autosaver. It also provides the undo
// codec bound into the editor context.
package planio

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hubastard/blueprint/editor"
	"github.com/hubastard/blueprint/editor/catalog"
	"github.com/hubastard/blueprint/editor/geom"
	"github.com/hubastard/blueprint/editor/scene"
)

// FormatVersion is written into every saved document.
const FormatVersion = 2

// Document is the persisted form of a plan. View is only present in files
// (saves, autosaves); undo snapshots omit it so that undo never moves the
// camera.
type Document struct {
	Version     int                 `json:"version"`
	Objects     []ObjectRecord      `json:"objects"`
	Catalog     []catalog.Item      `json:"itemCatalog"`
	Assignments map[string]string   `json:"itemAssignments"`
	UI          editor.UIToggles    `json:"uiToggles"`
	Print       editor.PrintOptions `json:"printOptions"`
	View        *ViewRecord         `json:"view,omitempty"`
}

// ViewRecord is the camera and grid state stored alongside a plan.
type ViewRecord struct {
	PanX         float64 `json:"panX"`
	PanY         float64 `json:"panY"`
	Zoom         float64 `json:"zoom"`
	UnitsPerFoot float64 `json:"scale"`
	SnapFeet     float64 `json:"snap"`
	SnapEnabled  bool    `json:"snapEnabled"`
	RotateSnap   bool    `json:"rotateSnap"`
	ShowGrid     bool    `json:"showGrid"`
}

// ObjectRecord is one scene object on the wire. Type is "wall", "door",
// "label", "measure", or a rectangle kind name.
type ObjectRecord struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Layer string `json:"layer,omitempty"`

	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	Angle    float64 `json:"angle,omitempty"`

	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`

	Color         string         `json:"color,omitempty"`
	Label         string         `json:"label,omitempty"`
	LabelFontSize float64        `json:"labelFontSize,omitempty"`
	Front         string         `json:"front,omitempty"`
	Codes         []string       `json:"codes,omitempty"`
	Quantities    map[string]int `json:"quantities,omitempty"`
}

// UnmarshalJSON accepts both the current keys and the legacy short forms
// (w/h/rot/size/labelSize), and applies field defaults.
func (r *ObjectRecord) UnmarshalJSON(data []byte) error {
	type plain ObjectRecord
	aux := struct {
		*plain
		W         *float64 `json:"w"`
		H         *float64 `json:"h"`
		Rot       *float64 `json:"rot"`
		Size      *float64 `json:"size"`
		LabelSize *float64 `json:"labelSize"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.W != nil {
		r.Width = *aux.W
	}
	if aux.H != nil {
		r.Height = *aux.H
	}
	if aux.Rot != nil {
		r.Rotation = *aux.Rot
	}
	if aux.Size != nil {
		r.FontSize = *aux.Size
	}
	if aux.LabelSize != nil {
		r.LabelFontSize = *aux.LabelSize
	}
	return nil
}

func recordOf(o scene.Object) ObjectRecord {
	switch t := o.(type) {
	case *scene.Wall:
		return ObjectRecord{ID: t.ID, Type: "wall", X1: t.X1, Y1: t.Y1, X2: t.X2, Y2: t.Y2}
	case *scene.Measure:
		return ObjectRecord{ID: t.ID, Type: "measure", X1: t.X1, Y1: t.Y1, X2: t.X2, Y2: t.Y2}
	case *scene.Door:
		return ObjectRecord{ID: t.ID, Type: "door", X: t.X, Y: t.Y, Width: t.Width, Angle: t.Angle}
	case *scene.Label:
		return ObjectRecord{ID: t.ID, Type: "label", X: t.X, Y: t.Y, Text: t.Text, FontSize: t.FontSize}
	case *scene.RectItem:
		return ObjectRecord{
			ID: t.ID, Type: string(t.Kind), Layer: t.Layer,
			X: t.X, Y: t.Y, Width: t.Width, Height: t.Height, Rotation: t.Rotation,
			Color: t.Color, Label: t.Label, LabelFontSize: t.LabelFontSize,
			Front: t.Front, Codes: t.Codes, Quantities: t.Quantities,
		}
	}
	return ObjectRecord{}
}

// object rebuilds the scene object, normalizing missing fields. Records of
// an unknown type return an error and are skipped by the caller.
func (r ObjectRecord) object() (scene.Object, error) {
	switch r.Type {
	case "wall":
		return &scene.Wall{ID: r.ID, X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}, nil
	case "measure":
		return &scene.Measure{ID: r.ID, X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}, nil
	case "door":
		return &scene.Door{ID: r.ID, X: r.X, Y: r.Y, Width: r.Width, Angle: r.Angle}, nil
	case "label":
		size := r.FontSize
		if size <= 0 {
			size = 14
		}
		return &scene.Label{ID: r.ID, X: r.X, Y: r.Y, Text: r.Text, FontSize: size}, nil
	}

	kind := scene.Kind(r.Type)
	if r.Type == "halfpallet" { // pre-v2 kind name
		kind = scene.KindPallet
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown object type %q", r.Type)
	}
	layer := r.Layer
	if layer == "" {
		layer = scene.LayerFixtures
		if kind == scene.KindZone || kind == scene.KindWorkzone {
			layer = scene.LayerZones
		}
	}
	labelSize := r.LabelFontSize
	if labelSize <= 0 {
		labelSize = 14
	}
	codes := r.Codes
	if codes == nil {
		codes = []string{}
	}
	qty := r.Quantities
	if qty == nil {
		qty = map[string]int{}
	}
	return &scene.RectItem{
		ID: r.ID, Kind: kind, Layer: layer,
		X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Rotation: r.Rotation,
		Color: r.Color, Label: r.Label, LabelFontSize: labelSize,
		Front: r.Front, Codes: codes, Quantities: qty,
	}, nil
}

// Capture builds the undoable document: everything except the view.
func Capture(ctx *editor.Context) Document {
	objects := ctx.Scene.Objects()
	records := make([]ObjectRecord, 0, len(objects))
	for _, o := range objects {
		records = append(records, recordOf(o))
	}
	return Document{
		Version:     FormatVersion,
		Objects:     records,
		Catalog:     ctx.Catalog.Items(),
		Assignments: ctx.Catalog.Assignments,
		UI:          ctx.UI,
		Print:       ctx.Print,
	}
}

// CaptureFull is Capture plus the view, for files.
func CaptureFull(ctx *editor.Context) Document {
	doc := Capture(ctx)
	v := ctx.View
	doc.View = &ViewRecord{
		PanX: v.PanX, PanY: v.PanY, Zoom: v.Zoom,
		UnitsPerFoot: v.UnitsPerFoot, SnapFeet: v.SnapFeet,
		SnapEnabled: v.SnapEnabled, RotateSnap: v.RotateSnap, ShowGrid: v.ShowGrid,
	}
	return doc
}

// Apply replaces the editable state with the document's. Records that fail
// to rebuild are dropped with a warning rather than failing the whole load.
func Apply(ctx *editor.Context, doc Document) {
	objects := make([]scene.Object, 0, len(doc.Objects))
	for _, rec := range doc.Objects {
		o, err := rec.object()
		if err != nil {
			slog.Warn("skipping object record", "id", rec.ID, "err", err)
			continue
		}
		objects = append(objects, o)
	}
	ctx.Scene.Replace(objects)

	ctx.Catalog.SetItems(doc.Catalog)
	if doc.Assignments != nil {
		ctx.Catalog.Assignments = doc.Assignments
	} else {
		ctx.Catalog.Assignments = map[string]string{}
	}
	ctx.UI = doc.UI
	ctx.Print = doc.Print
	if ctx.Print.LegendInclude == nil {
		ctx.Print.LegendInclude = map[string]bool{}
	}
}

// ApplyView restores the camera from a file document, clamping zoom.
func ApplyView(ctx *editor.Context, doc Document) {
	if doc.View == nil {
		return
	}
	r := doc.View
	v := ctx.View
	v.PanX, v.PanY = r.PanX, r.PanY
	if r.Zoom > 0 {
		v.Zoom = min(max(r.Zoom, geom.MinZoom), geom.MaxZoom)
	}
	if r.UnitsPerFoot > 0 {
		v.UnitsPerFoot = r.UnitsPerFoot
	}
	if r.SnapFeet > 0 {
		v.SnapFeet = r.SnapFeet
	}
	v.SnapEnabled = r.SnapEnabled
	v.RotateSnap = r.RotateSnap
	v.ShowGrid = r.ShowGrid
}
