package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/hubastard/blueprint/editor"
	"github.com/hubastard/blueprint/editor/interact"
	"github.com/hubastard/blueprint/editor/pick"
	"github.com/hubastard/blueprint/editor/planio"
	"github.com/hubastard/blueprint/engine/assets"
	"github.com/hubastard/blueprint/engine/colors"
	"github.com/hubastard/blueprint/engine/core"
	glbackend "github.com/hubastard/blueprint/engine/gfx/gl"
	"github.com/hubastard/blueprint/engine/gfx/renderer2d"
	"github.com/hubastard/blueprint/engine/platform"
	"github.com/hubastard/blueprint/engine/text"
)

type status struct {
	msg   string
	kind  string
	until time.Time
}

type App struct {
	planPath     string
	autosavePath string

	ctx       *editor.Context
	machine   *interact.Machine
	autosaver *planio.Autosaver

	r2d    *renderer2d.Renderer2D
	font   *text.Font
	stats  renderer2d.Statistics
	status status

	canvas  *LayerCanvas
	toolbar *LayerToolbar
	debug   *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	vs, err := assets.LoadShader("renderer2d.vert")
	if err != nil {
		panic(err)
	}
	fs, err := assets.LoadShader("renderer2d.frag")
	if err != nil {
		panic(err)
	}
	a.r2d, err = renderer2d.New(e.Renderer, vs, fs, 20000)
	if err != nil {
		panic(err)
	}

	// Labels degrade to boxes without a font; the editor stays usable.
	if path, err := assets.FindFont(); err == nil {
		a.font, err = text.LoadTTF(e.Renderer, path, 32)
		if err != nil {
			log.Printf("font %s unusable: %v", path, err)
		}
	} else {
		log.Printf("%v; text rendering disabled", err)
	}

	a.ctx = editor.NewContext()
	planio.Bind(a.ctx)
	a.ctx.Notify = a.notify

	a.autosaver = planio.NewAutosaver(a.autosavePath, planio.DefaultAutosaveDelay)
	a.ctx.Scene.SetChangeHook(func() {
		a.autosaver.Schedule(planio.EncodeFull(a.ctx))
	})

	if doc, err := planio.ReadDocument(a.autosavePath); err == nil {
		planio.Apply(a.ctx, doc)
		planio.ApplyView(a.ctx, doc)
		a.notify("info", "Recovered autosaved plan")
	}

	a.machine = interact.New(a.ctx, a.measurer())

	a.canvas = &LayerCanvas{app: a}
	a.toolbar = &LayerToolbar{app: a}
	a.debug = &LayerDebug{app: a}
	e.Layers.Push(a.canvas)
	e.Layers.Push(a.toolbar)
	e.Layers.Push(a.debug)
}

// measurer adapts the font atlas to world-unit label measurement. With no
// font, the fallback estimate inside pick applies.
func (a *App) measurer() pick.TextMeasurer {
	if a.font == nil {
		return nil
	}
	return func(s string, size float64) (float64, float64) {
		w, h := text.MeasureText(a.font, s, float32(size))
		return float64(w), float64(h)
	}
}

func (a *App) notify(kind, msg string) {
	a.status = status{msg: msg, kind: kind, until: time.Now().Add(3 * time.Second)}
}

func (a *App) save() {
	if err := planio.Save(a.ctx, a.planPath); err != nil {
		log.Printf("save: %v", err)
		a.notify("error", "Save failed")
		return
	}
	a.notify("success", "Saved "+filepath.Base(a.planPath))
}

func (a *App) load(path string) {
	if err := planio.Load(a.ctx, path); err != nil {
		log.Printf("load: %v", err)
		a.notify("error", "Could not open "+filepath.Base(path))
		return
	}
	a.planPath = path
	a.notify("success", "Opened "+filepath.Base(path))
}

func (a *App) importCSV(path string) {
	mapPath := a.autosavePath + ".columns"
	items, resolved, err := planio.ImportCSVFile(path, planio.LoadHeaderMap(mapPath))
	if err != nil {
		log.Printf("csv import: %v", err)
		a.notify("error", "CSV import failed")
		return
	}
	added := 0
	for _, it := range items {
		if a.ctx.Catalog.Upsert(it) {
			added++
		}
	}
	if err := planio.SaveHeaderMap(mapPath, resolved); err != nil {
		log.Printf("saving column map: %v", err)
	}
	a.notify("success", "Imported "+filepath.Base(path))
	_ = added
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	if a.status.msg != "" && time.Now().After(a.status.until) {
		a.status = status{}
	}
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	a.stats = a.r2d.Stats()
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down {
			a.handleKey(e, v)
		}
	case core.EventFileDrop:
		for _, p := range v.Paths {
			switch strings.ToLower(filepath.Ext(p)) {
			case ".json":
				a.load(p)
			case ".csv":
				a.importCSV(p)
			}
		}
	case core.EventCloseRequested:
		a.autosaver.Flush()
	}
}

func (a *App) handleKey(e *core.Engine, k core.EventKey) {
	ctrl := k.Mods&(core.ModCtrl|core.ModSuper) != 0
	if ctrl {
		switch k.Key {
		case core.KeyZ:
			if k.Mods&core.ModShift != 0 {
				a.ctx.Redo()
			} else {
				a.ctx.Undo()
			}
		case core.KeyY:
			a.ctx.Redo()
		case core.KeyS:
			a.save()
		case core.KeyN:
			a.ctx.NewPlan()
		}
		return
	}
	switch k.Key {
	case core.KeyEscape:
		a.machine.SetTool(interact.ToolSelect)
	case core.KeyDelete:
		a.ctx.DeleteSelected()
	case core.KeyBackspace:
		a.ctx.DeleteSelectedLabels()
	case core.KeyG:
		a.ctx.View.ShowGrid = !a.ctx.View.ShowGrid
	case core.KeyS:
		a.ctx.View.SnapEnabled = !a.ctx.View.SnapEnabled
	case core.KeyR:
		a.ctx.View.RotateSnap = !a.ctx.View.RotateSnap
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	a.autosaver.Flush()
	if a.font != nil {
		a.font.Close()
	}
}

func main() {
	planPath := flag.String("plan", "plan.json", "plan file for save/open")
	autosavePath := flag.String("autosave", ".blueprint.autosave.json", "autosave file")
	flag.Parse()

	cfg := core.Config{
		Title:      "Blueprint",
		Width:      1440,
		Height:     900,
		VSync:      true,
		ClearColor: colors.Canvas,
	}
	app := &App{planPath: *planPath, autosavePath: *autosavePath}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
