package scene

import "testing"

func TestAddGetRemove(t *testing.T) {
	s := New()
	w := NewWall(0, 0, 100, 0)
	r := NewRectItem(KindRack, 20, 20, 40, 40, "", LayerFixtures)
	s.Add(w)
	s.Add(r)

	if s.Len() != 2 {
		t.Fatalf("len = %d", s.Len())
	}
	if s.Get(w.ID) != Object(w) {
		t.Error("Get returned a different wall")
	}

	s.SetSelection(w.ID, r.ID)
	s.Remove(w.ID)
	if s.Get(w.ID) != nil {
		t.Error("removed wall still present")
	}
	if sel := s.Selection(); len(sel) != 1 || sel[0] != r.ID {
		t.Errorf("selection not pruned: %v", sel)
	}
}

func TestUpdateClampsRectMinimum(t *testing.T) {
	s := New()
	r := NewRectItem(KindBin, 0, 0, 40, 40, "", LayerFixtures)
	s.Add(r)

	s.Update(r.ID, func(o Object) {
		o.(*RectItem).Width = 2
		o.(*RectItem).Height = -5
	})
	if r.Width != MinRectSize || r.Height != MinRectSize {
		t.Errorf("not clamped: %v x %v", r.Width, r.Height)
	}

	if s.Update("nope", func(Object) {}) {
		t.Error("update of unknown id reported success")
	}
}

func TestSelectionFiltersUnknownIDs(t *testing.T) {
	s := New()
	w := NewWall(0, 0, 10, 0)
	s.Add(w)
	s.SetSelection(w.ID, "ghost")
	if sel := s.Selection(); len(sel) != 1 || sel[0] != w.ID {
		t.Errorf("selection = %v", sel)
	}
	if !s.IsSelected(w.ID) || s.IsSelected("ghost") {
		t.Error("IsSelected wrong")
	}
}

func TestLayerFlags(t *testing.T) {
	s := New()
	if !s.SetLayerFlag(LayerWalls, FlagLocked, true) {
		t.Fatal("known layer rejected")
	}
	if !s.Layer(LayerWalls).Locked {
		t.Error("lock not applied")
	}
	if s.SetLayerFlag("Nope", FlagLocked, true) {
		t.Error("unknown layer accepted")
	}
	// unknown layers degrade to interactable
	if f := s.Layer("Nope"); !f.Visible || !f.Selectable || f.Locked {
		t.Errorf("unknown layer flags = %+v", f)
	}
}

func TestCloneIsolation(t *testing.T) {
	r := NewRectItem(KindRack, 0, 0, 40, 40, "", LayerFixtures)
	r.AssignCode("A100")

	c := r.Clone().(*RectItem)
	c.Codes[0] = "B200"
	c.Quantities["A100"] = 99
	c.X = 500

	if r.Codes[0] != "A100" || r.Quantities["A100"] != 1 || r.X != 0 {
		t.Errorf("clone shares state with original: %+v", r)
	}
}

func TestAssignRemoveCode(t *testing.T) {
	r := NewRectItem(KindRack, 0, 0, 40, 40, "", LayerFixtures)
	if !r.AssignCode("A100") {
		t.Error("first assign should report true")
	}
	if r.AssignCode("A100") {
		t.Error("duplicate assign should report false")
	}
	if len(r.Codes) != 1 || r.Quantities["A100"] != 1 {
		t.Errorf("codes=%v quantities=%v", r.Codes, r.Quantities)
	}

	r.Quantities["A100"] = 4
	r.AssignCode("A100") // must not reset the quantity
	if r.Quantities["A100"] != 4 {
		t.Errorf("quantity reset to %d", r.Quantities["A100"])
	}

	if !r.RemoveCode("A100") || len(r.Codes) != 0 {
		t.Error("remove failed")
	}
	if _, ok := r.Quantities["A100"]; ok {
		t.Error("quantity entry survived removal")
	}
}

func TestCloneObjectsDeepCopies(t *testing.T) {
	s := New()
	w := NewWall(0, 0, 10, 0)
	s.Add(w)
	snap := s.CloneObjects()
	w.X2 = 999
	if snap[0].(*Wall).X2 != 10 {
		t.Error("snapshot tracks live mutation")
	}
}
