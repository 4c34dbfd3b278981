// Package ui is a small immediate-mode widget kit for screen-space chrome:
// panels, labels and click buttons, drawn through the 2D batcher. State
// lives in the caller; the context only carries this frame's pointer input.
package ui

import (
	"github.com/hubastard/blueprint/engine/colors"
	"github.com/hubastard/blueprint/engine/gfx/renderer2d"
	"github.com/hubastard/blueprint/engine/text"
)

// Context is rebuilt every frame from the current input snapshot. Pressed
// is the down edge, Released the up edge.
type Context struct {
	R2D  *renderer2d.Renderer2D
	Font *text.Font

	MouseX, MouseY float32
	MouseDown      bool
	Pressed        bool
	Released       bool
}

// Hit reports whether the pointer is inside the rect.
func (c *Context) Hit(x, y, w, h float32) bool {
	return c.MouseX >= x && c.MouseX <= x+w && c.MouseY >= y && c.MouseY <= y+h
}

// Panel fills a rect.
func (c *Context) Panel(x, y, w, h float32, col colors.Color) {
	c.R2D.DrawQuadAnchored(x, y, w, h, col, 0)
}

// Label draws single-line text top-left at (x,y).
func (c *Context) Label(x, y float32, s string, size float32, col colors.Color) {
	if c.Font == nil {
		return
	}
	text.DrawTextScaled(c.R2D, c.Font, x, y, s, size, col)
}

// Measure returns the size of s at the given font size; zero without a font.
func (c *Context) Measure(s string, size float32) (float32, float32) {
	if c.Font == nil {
		return 0, 0
	}
	return text.MeasureText(c.Font, s, size)
}

// Button draws a click button and reports activation (release inside).
// Active renders with the highlight background, for toggle state.
func (c *Context) Button(x, y, w, h float32, label string, active bool) bool {
	hot := c.Hit(x, y, w, h)
	bg := colors.ButtonBg
	if active {
		bg = colors.Select.WithAlpha(0.45)
	} else if hot {
		bg = colors.ButtonHot
	}
	c.Panel(x, y, w, h, bg)

	if c.Font != nil {
		const size = 14
		tw, th := c.Measure(label, size)
		c.Label(x+(w-tw)*0.5, y+(h-th)*0.5, label, size, colors.Label)
	}
	return hot && c.Released
}
