package renderer2d

import (
	"math"

	"github.com/hubastard/blueprint/engine/colors"
)

// Editor primitives built on the quad batcher: anchored rects, line
// segments, outlines and arcs. All angles are radians; positive Y is down.

// DrawQuadAnchored draws a w*h quad whose top-left corner sits at (x,y),
// rotated about that corner. Plan objects pivot on their anchor, not their
// center, so this is the main object primitive.
func (rd *Renderer2D) DrawQuadAnchored(x, y, w, h float32, color colors.Color, rotationRad float32) {
	c := float32(math.Cos(float64(rotationRad)))
	s := float32(math.Sin(float64(rotationRad)))
	// center offset (w/2, h/2) rotated about the anchor
	cx := x + (w*0.5)*c - (h*0.5)*s
	cy := y + (w*0.5)*s + (h*0.5)*c
	rd.DrawQuad(cx, cy, w, h, color, rotationRad)
}

// DrawLine draws a segment as a thin rotated quad.
func (rd *Renderer2D) DrawLine(x1, y1, x2, y2, thickness float32, color colors.Color) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		rd.DrawQuad(x1, y1, thickness, thickness, color, 0)
		return
	}
	rot := float32(math.Atan2(float64(dy), float64(dx)))
	rd.DrawQuad((x1+x2)*0.5, (y1+y2)*0.5, length, thickness, color, rot)
}

// DrawRectOutline strokes an anchored, possibly rotated rectangle.
func (rd *Renderer2D) DrawRectOutline(x, y, w, h, thickness float32, color colors.Color, rotationRad float32) {
	c := float32(math.Cos(float64(rotationRad)))
	s := float32(math.Sin(float64(rotationRad)))
	px := func(lx, ly float32) (float32, float32) {
		return x + lx*c - ly*s, y + lx*s + ly*c
	}
	x0, y0 := px(0, 0)
	x1, y1 := px(w, 0)
	x2, y2 := px(w, h)
	x3, y3 := px(0, h)
	rd.DrawLine(x0, y0, x1, y1, thickness, color)
	rd.DrawLine(x1, y1, x2, y2, thickness, color)
	rd.DrawLine(x2, y2, x3, y3, thickness, color)
	rd.DrawLine(x3, y3, x0, y0, thickness, color)
}

// DrawArc strokes a circular arc from a0 to a1 as a polyline.
func (rd *Renderer2D) DrawArc(cx, cy, radius, a0, a1, thickness float32, color colors.Color) {
	span := float64(a1 - a0)
	segs := int(math.Ceil(math.Abs(span) / (math.Pi / 16)))
	if segs < 1 {
		segs = 1
	}
	step := span / float64(segs)
	px := cx + radius*float32(math.Cos(float64(a0)))
	py := cy + radius*float32(math.Sin(float64(a0)))
	for i := 1; i <= segs; i++ {
		a := float64(a0) + step*float64(i)
		nx := cx + radius*float32(math.Cos(a))
		ny := cy + radius*float32(math.Sin(a))
		rd.DrawLine(px, py, nx, ny, thickness, color)
		px, py = nx, ny
	}
}

// DrawCircleOutline strokes a full circle.
func (rd *Renderer2D) DrawCircleOutline(cx, cy, radius, thickness float32, color colors.Color) {
	rd.DrawArc(cx, cy, radius, 0, 2*math.Pi, thickness, color)
}

// DrawDisc fills a circle: a half-radius ring stroked as thick as the
// radius covers the interior.
func (rd *Renderer2D) DrawDisc(cx, cy, radius float32, color colors.Color) {
	rd.DrawArc(cx, cy, radius*0.5, 0, 2*math.Pi, radius, color)
}
