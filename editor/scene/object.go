package scene

import "github.com/google/uuid"

// Layer names are fixed; every object belongs to exactly one.
const (
	LayerWalls       = "Walls"
	LayerFixtures    = "Fixtures"
	LayerZones       = "Zones"
	LayerAnnotations = "Annotations"
)

// Kind discriminates the rectangular item variants.
type Kind string

const (
	KindRack     Kind = "rack"
	KindBin      Kind = "bin"
	KindFixture  Kind = "fixture"
	KindPallet   Kind = "pallet"
	KindSpecial  Kind = "special"
	KindZone     Kind = "zone"
	KindWorkzone Kind = "workzone"
)

var rectKinds = map[Kind]bool{
	KindRack: true, KindBin: true, KindFixture: true, KindPallet: true,
	KindSpecial: true, KindZone: true, KindWorkzone: true,
}

func (k Kind) Valid() bool { return rectKinds[k] }

// LegendKind reports whether objects of this kind appear in the print legend.
func (k Kind) LegendKind() bool {
	return k == KindRack || k == KindFixture || k == KindSpecial || k == KindBin
}

// DropTargetKind reports whether item codes may be dropped onto this kind.
func (k Kind) DropTargetKind() bool {
	return k == KindRack || k == KindFixture || k == KindBin ||
		k == KindPallet || k == KindSpecial
}

// Object is the closed union of scene variants. Identifiers are assigned at
// creation and immutable for the object's lifetime.
type Object interface {
	ObjectID() string
	LayerName() string
	Clone() Object
}

type Wall struct {
	ID             string
	X1, Y1, X2, Y2 float64
}

type Door struct {
	ID    string
	X, Y  float64
	Width float64 // swing radius in world units
	Angle float64 // radians
}

type Label struct {
	ID       string
	X, Y     float64 // baseline-left anchor
	Text     string
	FontSize float64
}

type Measure struct {
	ID             string
	X1, Y1, X2, Y2 float64
}

type RectItem struct {
	ID            string
	Kind          Kind
	X, Y          float64 // top-left corner; rotation pivots here
	Width, Height float64
	Rotation      float64 // radians
	Layer         string
	Color         string // hex, "" = kind default
	Label         string
	LabelFontSize float64
	Front         string // N/E/S/W facing marker for rack-like kinds
	Codes         []string
	Quantities    map[string]int
}

func (w *Wall) ObjectID() string     { return w.ID }
func (d *Door) ObjectID() string     { return d.ID }
func (l *Label) ObjectID() string    { return l.ID }
func (m *Measure) ObjectID() string  { return m.ID }
func (r *RectItem) ObjectID() string { return r.ID }

func (w *Wall) LayerName() string     { return LayerWalls }
func (d *Door) LayerName() string     { return LayerWalls }
func (l *Label) LayerName() string    { return LayerAnnotations }
func (m *Measure) LayerName() string  { return LayerAnnotations }
func (r *RectItem) LayerName() string { return r.Layer }

func (w *Wall) Clone() Object    { c := *w; return &c }
func (d *Door) Clone() Object    { c := *d; return &c }
func (l *Label) Clone() Object   { c := *l; return &c }
func (m *Measure) Clone() Object { c := *m; return &c }

func (r *RectItem) Clone() Object {
	c := *r
	c.Codes = append([]string(nil), r.Codes...)
	c.Quantities = make(map[string]int, len(r.Quantities))
	for k, v := range r.Quantities {
		c.Quantities[k] = v
	}
	return &c
}

func newID() string { return uuid.NewString() }

func NewWall(x1, y1, x2, y2 float64) *Wall {
	return &Wall{ID: newID(), X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func NewDoor(x, y, width, angle float64) *Door {
	return &Door{ID: newID(), X: x, Y: y, Width: width, Angle: angle}
}

func NewLabel(x, y float64, text string) *Label {
	return &Label{ID: newID(), X: x, Y: y, Text: text, FontSize: 14}
}

func NewMeasure(x1, y1, x2, y2 float64) *Measure {
	return &Measure{ID: newID(), X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func NewRectItem(kind Kind, x, y, w, h float64, color, layer string) *RectItem {
	return &RectItem{
		ID: newID(), Kind: kind,
		X: x, Y: y, Width: w, Height: h,
		Layer: layer, Color: color,
		LabelFontSize: 14,
		Codes:         []string{},
		Quantities:    map[string]int{},
	}
}

// AssignCode appends code once and defaults its quantity to 1.
// Returns false if the code was already assigned.
func (r *RectItem) AssignCode(code string) bool {
	for _, c := range r.Codes {
		if c == code {
			if _, ok := r.Quantities[code]; !ok {
				r.Quantities[code] = 1
			}
			return false
		}
	}
	r.Codes = append(r.Codes, code)
	if r.Quantities == nil {
		r.Quantities = map[string]int{}
	}
	if _, ok := r.Quantities[code]; !ok {
		r.Quantities[code] = 1
	}
	return true
}

// RemoveCode drops code from the assignment list and its quantity entry.
func (r *RectItem) RemoveCode(code string) bool {
	for i, c := range r.Codes {
		if c == code {
			r.Codes = append(r.Codes[:i], r.Codes[i+1:]...)
			delete(r.Quantities, code)
			return true
		}
	}
	return false
}
