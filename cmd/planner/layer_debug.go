package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/hubastard/blueprint/engine/colors"
	"github.com/hubastard/blueprint/engine/core"
	"github.com/hubastard/blueprint/engine/gfx/renderer2d"
	"github.com/hubastard/blueprint/engine/ui"
)

// LayerDebug is a Ctrl+D overlay with frame timing, batcher statistics and
// GPU info.
type LayerDebug struct {
	app *App

	visible   bool
	lastFrame time.Time
	frameMs   float32
}

func (l *LayerDebug) OnAttach(e *core.Engine) {}
func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {
	now := time.Now()
	if !l.lastFrame.IsZero() {
		l.frameMs = float32(now.Sub(l.lastFrame).Seconds() * 1000)
	}
	l.lastFrame = now
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	if k, ok := ev.(core.EventKey); ok {
		if k.Down && k.Key == core.KeyD && k.Mods&core.ModCtrl != 0 {
			l.visible = !l.visible
			return true
		}
	}
	return false
}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	if !l.visible || l.app.font == nil {
		return
	}
	a := l.app
	fbW, fbH := e.Window.FramebufferSize()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	lines := []string{
		fmt.Sprintf("frame %.2f ms (%.0f fps)", l.frameMs, 1000/l.frameMs),
		fmt.Sprintf("draws %d  quads %d  verts %d", a.stats.DrawCalls, a.stats.QuadCount, a.stats.TotalVertexCount()),
		fmt.Sprintf("heap %.1f MB  goroutines %d", float64(mem.HeapAlloc)/(1<<20), runtime.NumGoroutine()),
		fmt.Sprintf("undo %d  redo %d", a.ctx.History.UndoLen(), a.ctx.History.RedoLen()),
		fmt.Sprintf("gpu %s", e.Renderer.GPURenderer()),
	}

	a.r2d.BeginScene(renderer2d.ScreenVP(fbW, fbH))
	c := &ui.Context{R2D: a.r2d, Font: a.font}

	const size, lineH, pad = 13, 18, 10
	w := float32(0)
	for _, s := range lines {
		if tw, _ := c.Measure(s, size); tw > w {
			w = tw
		}
	}
	x := float32(8)
	y := float32(toolbarHeight + 8)
	c.Panel(x, y, w+pad*2, float32(len(lines))*lineH+pad*2, colors.Black.WithAlpha(0.6))
	for i, s := range lines {
		c.Label(x+pad, y+pad+float32(i)*lineH, s, size, colors.Label)
	}
	a.r2d.EndScene()
}
