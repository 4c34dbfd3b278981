package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hubastard/blueprint/editor/scene"
)

// Unlabeled is the legend group for legend-kind objects without a label.
const Unlabeled = "(Unlabeled)"

// Groups and items print in human order: case-insensitive, digit runs
// compared numerically ("Rack 2" before "Rack 10").
var collator = collate.New(language.Und, collate.Numeric, collate.Loose)

func sortStrings(s []string) {
	sort.Slice(s, func(i, j int) bool { return collator.CompareString(s[i], s[j]) < 0 })
}

type LegendItem struct {
	Name string
	Code string
}

type LegendGroup struct {
	Label string
	Kind  scene.Kind
	Items []LegendItem
}

// Legend builds print-legend rows from the scene: legend-kind rect objects
// grouped by label, each listing its assigned codes resolved against the
// catalog. A non-empty include map restricts groups to the checked labels;
// an empty map means include everything. hideOff drops inactive items.
func Legend(objects []scene.Object, c *Catalog, include map[string]bool, hideOff bool) []LegendGroup {
	selectionActive := len(include) > 0
	byLabel := map[string]*LegendGroup{}
	var order []string

	for _, o := range objects {
		r, ok := o.(*scene.RectItem)
		if !ok || !r.Kind.LegendKind() {
			continue
		}
		label := strings.TrimSpace(r.Label)
		if label == "" {
			label = Unlabeled
		}
		if selectionActive && !include[label] {
			continue
		}
		g := byLabel[label]
		if g == nil {
			g = &LegendGroup{Label: label, Kind: r.Kind}
			byLabel[label] = g
			order = append(order, label)
		}
		for _, code := range r.Codes {
			rec, found := c.Find(code)
			if hideOff && found && !rec.Active {
				continue
			}
			name := rec.Name
			if name == "" {
				name = "(No name)"
			}
			g.Items = append(g.Items, LegendItem{Name: name, Code: code})
		}
	}

	sortStrings(order)
	out := make([]LegendGroup, 0, len(order))
	for _, label := range order {
		g := byLabel[label]
		sort.Slice(g.Items, func(i, j int) bool {
			a, b := g.Items[i], g.Items[j]
			an, bn := strings.TrimSpace(a.Name), strings.TrimSpace(b.Name)
			if an != "" && bn != "" && an != "(No name)" && bn != "(No name)" {
				return collator.CompareString(an, bn) < 0
			}
			return collator.CompareString(a.Code, b.Code) < 0
		})
		out = append(out, *g)
	}
	return out
}

// Labels collects every legend label in the scene, for the all/none include
// toggles.
func Labels(objects []scene.Object) []string {
	seen := map[string]bool{}
	var out []string
	for _, o := range objects {
		r, ok := o.(*scene.RectItem)
		if !ok || !r.Kind.LegendKind() {
			continue
		}
		label := strings.TrimSpace(r.Label)
		if label == "" {
			label = Unlabeled
		}
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	sortStrings(out)
	return out
}
