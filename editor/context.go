// Package editor ties the scene model, view state, catalog and history into
// one explicitly constructed context. Components receive it by reference;
// there is no process-wide state.
package editor

import (
	"github.com/hubastard/blueprint/editor/catalog"
	"github.com/hubastard/blueprint/editor/geom"
	"github.com/hubastard/blueprint/editor/history"
	"github.com/hubastard/blueprint/editor/scene"
)

// UIToggles is the persisted chrome state.
type UIToggles struct {
	HideOffItems  bool `json:"hideOffItems"`
	DockCollapsed bool `json:"dockCollapsed"`
	DockShowAll   bool `json:"dockShowAll"`
}

// PrintOptions selects what the print legend includes. An empty LegendInclude
// map means every label prints.
type PrintOptions struct {
	LegendCompact bool            `json:"legendCompact"`
	LegendInclude map[string]bool `json:"legendInclude"`
}

func defaultPrint() PrintOptions {
	return PrintOptions{LegendInclude: map[string]bool{}}
}

// Context owns the editable state. The snapshot codec is injected (see
// planio.Bind): what matters for undo is value isolation between live state
// and stored entries, not the encoding.
type Context struct {
	Scene   *scene.Scene
	View    *geom.View
	Catalog *catalog.Catalog
	History *history.History

	UI    UIToggles
	Print PrintOptions

	// Collaborators. All optional; nil means no-op.
	Redraw       func()
	Notify       func(kind, msg string)
	EncodeState  func() []byte
	RestoreState func([]byte) error
}

func NewContext() *Context {
	v := geom.DefaultView()
	return &Context{
		Scene:   scene.New(),
		View:    &v,
		Catalog: catalog.New(),
		History: history.New(history.DefaultLimit),
		Print:   defaultPrint(),
	}
}

func (c *Context) redraw() {
	if c.Redraw != nil {
		c.Redraw()
	}
}

func (c *Context) notify(kind, msg string) {
	if c.Notify != nil {
		c.Notify(kind, msg)
	}
}

// PushSnapshot records the current undoable state immediately before a
// committed mutation.
func (c *Context) PushSnapshot() {
	if c.EncodeState == nil {
		return
	}
	c.History.Push(c.EncodeState())
}

// Undo rolls back to the most recent snapshot. Selection never survives a
// restore; the view (pan/zoom) does.
func (c *Context) Undo() bool {
	if c.EncodeState == nil || c.RestoreState == nil || !c.History.CanUndo() {
		return false
	}
	blob, _ := c.History.Undo(c.EncodeState())
	if err := c.RestoreState(blob); err != nil {
		c.notify("error", "Undo failed")
		return false
	}
	c.Scene.ClearSelection()
	c.redraw()
	return true
}

func (c *Context) Redo() bool {
	if c.EncodeState == nil || c.RestoreState == nil || !c.History.CanRedo() {
		return false
	}
	blob, _ := c.History.Redo(c.EncodeState())
	if err := c.RestoreState(blob); err != nil {
		c.notify("error", "Redo failed")
		return false
	}
	c.Scene.ClearSelection()
	c.redraw()
	return true
}

// NewPlan snapshots, then resets everything except the drawing scale.
func (c *Context) NewPlan() {
	c.PushSnapshot()
	c.Scene.Clear()
	c.Catalog.Clear()
	c.Catalog.Assignments = map[string]string{}
	c.UI = UIToggles{}
	c.Print = defaultPrint()
	c.View.PanX, c.View.PanY, c.View.Zoom = 0, 0, 1
	c.notify("success", "New plan")
	c.redraw()
}

// DeleteSelected removes every selected object, with a snapshot.
func (c *Context) DeleteSelected() {
	sel := c.Scene.Selection()
	if len(sel) == 0 {
		return
	}
	c.PushSnapshot()
	c.Scene.Remove(sel...)
	c.Scene.ClearSelection()
	c.redraw()
}

// DeleteSelectedLabels removes only the Label members of the selection, and
// only when at least one is selected; other members stay selected. This is
// the Backspace behavior: a guard against deleting fixtures while typing.
func (c *Context) DeleteSelectedLabels() {
	sel := c.Scene.Selection()
	if len(sel) == 0 {
		return
	}
	var labels []string
	for _, id := range sel {
		if _, ok := c.Scene.Get(id).(*scene.Label); ok {
			labels = append(labels, id)
		}
	}
	if len(labels) == 0 {
		return
	}
	c.PushSnapshot()
	c.Scene.Remove(labels...)
	c.redraw()
}
