package scene

// MinRectSize is the smallest width/height a rect item may be edited down to,
// in world units. Commit of a freshly drawn draft is exempt; the clamp applies
// to later resize and property edits only.
const MinRectSize = 10

// LayerFlags controls per-layer interaction.
type LayerFlags struct {
	Visible    bool
	Locked     bool
	Selectable bool
}

// Flag selects which LayerFlags field SetLayerFlag mutates.
type Flag int

const (
	FlagVisible Flag = iota
	FlagLocked
	FlagSelectable
)

// Scene is the single source of truth for objects, layers and selection.
// It owns its object list exclusively; snapshot/restore paths deep-copy.
// Mutations fire the change hook (redraw + autosave scheduling), which the
// embedding application provides. Undoability is the caller's concern: the
// scene never pushes history snapshots itself.
type Scene struct {
	objects   []Object
	layers    map[string]*LayerFlags
	selection []string
	onChange  func()
}

func New() *Scene {
	return &Scene{
		layers: map[string]*LayerFlags{
			LayerWalls:       {Visible: true, Selectable: true},
			LayerFixtures:    {Visible: true, Selectable: true},
			LayerZones:       {Visible: true, Selectable: true},
			LayerAnnotations: {Visible: true, Selectable: true},
		},
	}
}

// SetChangeHook registers the callback fired after every mutation.
func (s *Scene) SetChangeHook(fn func()) { s.onChange = fn }

func (s *Scene) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Objects returns the object list in z-order (last = topmost). The slice is
// owned by the scene; callers must not mutate it.
func (s *Scene) Objects() []Object { return s.objects }

func (s *Scene) Len() int { return len(s.objects) }

func (s *Scene) Get(id string) Object {
	for _, o := range s.objects {
		if o.ObjectID() == id {
			return o
		}
	}
	return nil
}

func (s *Scene) Add(o Object) {
	if o == nil {
		return
	}
	s.objects = append(s.objects, o)
	s.changed()
}

// Remove deletes the given objects and prunes them from the selection.
func (s *Scene) Remove(ids ...string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.objects[:0]
	for _, o := range s.objects {
		if !drop[o.ObjectID()] {
			kept = append(kept, o)
		}
	}
	s.objects = kept
	sel := s.selection[:0]
	for _, id := range s.selection {
		if !drop[id] {
			sel = append(sel, id)
		}
	}
	s.selection = sel
	s.changed()
}

// Update applies fn to the object with the given id, then enforces the rect
// minimum-size clamp. Unknown ids are a defensive no-op.
func (s *Scene) Update(id string, fn func(Object)) bool {
	o := s.Get(id)
	if o == nil {
		return false
	}
	fn(o)
	if r, ok := o.(*RectItem); ok {
		if r.Width < MinRectSize {
			r.Width = MinRectSize
		}
		if r.Height < MinRectSize {
			r.Height = MinRectSize
		}
	}
	s.changed()
	return true
}

// Selection returns a copy of the selected ids.
func (s *Scene) Selection() []string {
	return append([]string(nil), s.selection...)
}

// SetSelection replaces the selection, keeping only ids of existing objects.
func (s *Scene) SetSelection(ids ...string) {
	sel := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.Get(id) != nil {
			sel = append(sel, id)
		}
	}
	s.selection = sel
	s.changed()
}

func (s *Scene) ClearSelection() {
	s.selection = s.selection[:0]
	s.changed()
}

func (s *Scene) IsSelected(id string) bool {
	for _, sid := range s.selection {
		if sid == id {
			return true
		}
	}
	return false
}

// Layer returns the flags for a layer name. Unknown layers read as visible
// and selectable so that a bad layer field degrades to "interactable".
func (s *Scene) Layer(name string) LayerFlags {
	if f, ok := s.layers[name]; ok {
		return *f
	}
	return LayerFlags{Visible: true, Selectable: true}
}

func (s *Scene) LayerNames() []string {
	return []string{LayerWalls, LayerFixtures, LayerZones, LayerAnnotations}
}

func (s *Scene) SetLayerFlag(name string, flag Flag, value bool) bool {
	f, ok := s.layers[name]
	if !ok {
		return false
	}
	switch flag {
	case FlagVisible:
		f.Visible = value
	case FlagLocked:
		f.Locked = value
	case FlagSelectable:
		f.Selectable = value
	}
	s.changed()
	return true
}

// Replace swaps in a new object list (restore path). Selection is cleared;
// the caller owns snapshot timing.
func (s *Scene) Replace(objects []Object) {
	s.objects = objects
	s.selection = s.selection[:0]
	s.changed()
}

// Clear empties the scene for a new plan.
func (s *Scene) Clear() {
	s.objects = nil
	s.selection = s.selection[:0]
	s.changed()
}

// CloneObjects deep-copies the current object list, for snapshotting.
func (s *Scene) CloneObjects() []Object {
	out := make([]Object, len(s.objects))
	for i, o := range s.objects {
		out[i] = o.Clone()
	}
	return out
}
