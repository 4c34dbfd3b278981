package catalog

import "github.com/hubastard/blueprint/editor/scene"

// Report summarizes layout problems surfaced in the validation panel.
type Report struct {
	MissingLabels   []string            // ids of legend-kind objects without a label
	DuplicateLabels map[string][]string // label -> ids sharing it
	Unplaced        []string            // active codes assigned to no object
	Duplicates      []string            // codes assigned to more than one object
}

// Validate checks label hygiene on legend-kind objects and catalog placement
// coverage across the whole scene.
func Validate(objects []scene.Object, c *Catalog) Report {
	rep := Report{DuplicateLabels: map[string][]string{}}
	seen := map[string][]string{}
	placements := map[string]int{}

	for _, o := range objects {
		r, ok := o.(*scene.RectItem)
		if !ok {
			continue
		}
		for _, code := range r.Codes {
			placements[key(code)]++
		}
		if !r.Kind.LegendKind() {
			continue
		}
		if r.Label == "" {
			rep.MissingLabels = append(rep.MissingLabels, r.ID)
		} else {
			seen[r.Label] = append(seen[r.Label], r.ID)
		}
	}
	for label, ids := range seen {
		if len(ids) > 1 {
			rep.DuplicateLabels[label] = ids
		}
	}

	for _, it := range c.items {
		if !it.Active {
			continue
		}
		switch placements[key(it.Code)] {
		case 0:
			rep.Unplaced = append(rep.Unplaced, it.Code)
		case 1:
		default:
			rep.Duplicates = append(rep.Duplicates, it.Code)
		}
	}
	sortStrings(rep.Unplaced)
	sortStrings(rep.Duplicates)
	return rep
}
