package scene

import (
	"math"
	"testing"

	"github.com/hubastard/blueprint/editor/geom"
)

func TestSetWallLengthFeet(t *testing.T) {
	s := New()
	v := geom.DefaultView() // 20 units/ft
	w := NewWall(0, 0, 100, 0)
	s.Add(w)

	if !s.SetWallLengthFeet(w.ID, 3.5, &v) {
		t.Fatal("setter rejected valid input")
	}
	if w.X2 != 70 || w.Y2 != 0 || w.X1 != 0 || w.Y1 != 0 {
		t.Errorf("wall = (%v,%v)-(%v,%v)", w.X1, w.Y1, w.X2, w.Y2)
	}

	// direction is preserved for angled walls
	w2 := NewWall(0, 0, 30, 40)
	s.Add(w2)
	v.SnapEnabled = false
	s.SetWallLengthFeet(w2.ID, 5, &v) // 100 units along the 3-4-5 direction
	if math.Abs(w2.X2-60) > 1e-9 || math.Abs(w2.Y2-80) > 1e-9 {
		t.Errorf("angled wall end = (%v,%v)", w2.X2, w2.Y2)
	}

	if s.SetWallLengthFeet(w.ID, 0, &v) || s.SetWallLengthFeet(w.ID, math.NaN(), &v) {
		t.Error("invalid length accepted")
	}
}

func TestSetRectSizeFeet(t *testing.T) {
	s := New()
	v := geom.DefaultView()
	r := NewRectItem(KindRack, 0, 0, 40, 40, "", LayerFixtures)
	s.Add(r)

	s.SetRectSizeFeet(r.ID, 4, 2, &v)
	if r.Width != 80 || r.Height != 40 {
		t.Errorf("size = %v x %v", r.Width, r.Height)
	}
	if s.SetRectSizeFeet(r.ID, -1, 2, &v) {
		t.Error("negative size accepted")
	}
}

func TestSetRotationDegreesNeverSnaps(t *testing.T) {
	s := New()
	r := NewRectItem(KindRack, 0, 0, 40, 40, "", LayerFixtures)
	s.Add(r)

	s.SetRotationDegrees(r.ID, 37)
	want := 37 * math.Pi / 180
	if math.Abs(r.Rotation-want) > 1e-12 {
		t.Errorf("rotation = %v, want %v", r.Rotation, want)
	}
	if s.SetRotationDegrees(r.ID, math.Inf(1)) {
		t.Error("infinite rotation accepted")
	}
}

func TestSetFront(t *testing.T) {
	s := New()
	r := NewRectItem(KindRack, 0, 0, 40, 40, "", LayerFixtures)
	s.Add(r)

	for _, d := range []string{"N", "E", "S", "W"} {
		if !s.SetFront(r.ID, d) {
			t.Errorf("direction %q rejected", d)
		}
	}
	if s.SetFront(r.ID, "NE") || s.SetFront(r.ID, "") || s.SetFront(r.ID, "n") {
		t.Error("invalid direction accepted")
	}
	if r.Front != "W" {
		t.Errorf("front = %q", r.Front)
	}
}

func TestSetLabelTextAndSize(t *testing.T) {
	s := New()
	l := NewLabel(0, 0, "hello")
	r := NewRectItem(KindBin, 0, 0, 40, 40, "", LayerFixtures)
	s.Add(l)
	s.Add(r)

	s.SetLabelText(l.ID, "dock 3")
	s.SetLabelText(r.ID, "Bin 7")
	if l.Text != "dock 3" || r.Label != "Bin 7" {
		t.Errorf("texts: %q / %q", l.Text, r.Label)
	}

	s.SetLabelFontSize(l.ID, 22)
	s.SetLabelFontSize(r.ID, 18)
	if l.FontSize != 22 || r.LabelFontSize != 18 {
		t.Errorf("sizes: %v / %v", l.FontSize, r.LabelFontSize)
	}
	if s.SetLabelFontSize(l.ID, 0) {
		t.Error("zero font size accepted")
	}
}

func TestSetDoorProps(t *testing.T) {
	s := New()
	v := geom.DefaultView()
	d := NewDoor(0, 0, 60, 0)
	s.Add(d)

	s.SetDoorWidthFeet(d.ID, 4, &v)
	if d.Width != 80 {
		t.Errorf("width = %v", d.Width)
	}
	s.SetDoorAngleDegrees(d.ID, 90)
	if math.Abs(d.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("angle = %v", d.Angle)
	}
}
