// Package colors holds the RGBA color type, hex parsing and the editor
// palette.
package colors

import (
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

// Editor palette. Object colors default to these per kind; zone-like kinds
// carry an explicit hex color instead.
var (
	Canvas    = MustHex("#0b0f14")
	Grid      = MustHex("#2563eb").WithAlpha(0.15)
	GridMajor = MustHex("#2563eb").WithAlpha(0.28)
	Wall      = MustHex("#9ca3af")
	Door      = MustHex("#22d3ee")
	Rack      = MustHex("#2563eb")
	Bin       = MustHex("#fbbf24")
	Pallet    = MustHex("#a78b5f")
	Fixture   = MustHex("#16a34a")
	Special   = MustHex("#9333ea")
	MeasureLn = MustHex("#f472b6")
	Label     = MustHex("#e5e7eb")
	Select    = MustHex("#60a5fa")
	Handle    = MustHex("#e0f2fe")
	Toolbar   = MustHex("#111827")
	ButtonBg  = MustHex("#1f2937")
	ButtonHot = MustHex("#374151")
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// FromHex parses #rgb, #rrggbb or #rrggbbaa (case-insensitive).
func FromHex(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, false
	}
	alpha := float32(1)
	if strings.HasPrefix(s, "#") && len(s) == 9 {
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return Color{}, false
		}
		alpha = float32(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, false
	}
	return Color{float32(c.R), float32(c.G), float32(c.B), alpha}, true
}

// MustHex is FromHex for package-level palette constants.
func MustHex(s string) Color {
	c, ok := FromHex(s)
	if !ok {
		panic("bad hex color: " + s)
	}
	return c
}
