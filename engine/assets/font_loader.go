package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// Candidate font files, bundled path first, then common system locations.
var fontCandidates = []string{
	filepath.Join("assets", "fonts", "default.ttf"),
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// FindFont returns the first usable TTF path. Callers degrade to a textless
// rendering mode when no font is found.
func FindFont() (string, error) {
	for _, p := range fontCandidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("no usable TTF font found")
}
