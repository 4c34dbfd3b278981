package renderer2d

// ScreenVP is an orthographic view-projection mapping framebuffer pixels to
// clip space with the origin top-left and Y down, for screen-space layers
// (toolbar, overlays, text chrome).
func ScreenVP(w, h int) [16]float32 {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	sx := 2 / float32(w)
	sy := 2 / float32(h)
	return [16]float32{
		sx, 0, 0, 0,
		0, -sy, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}
