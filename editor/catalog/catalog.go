// Package catalog manages the item (SKU) catalog and its placement on scene
// objects: the record list, dock filtering, legend grouping, and validation.
package catalog

import (
	"encoding/json"
	"strings"
)

// Item is one catalog record. Codes are unique case-insensitively.
type Item struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Active   bool     `json:"active"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// UnmarshalJSON defaults Active to true (absent field means active) and
// accepts the legacy field spellings older documents used.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code        string   `json:"code"`
		Sku         string   `json:"sku"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Active      *bool    `json:"active"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	it.Code = raw.Code
	if it.Code == "" {
		it.Code = raw.Sku
	}
	it.Name = raw.Name
	if it.Name == "" {
		it.Name = raw.Description
	}
	it.Active = raw.Active == nil || *raw.Active
	it.Category = raw.Category
	it.Tags = raw.Tags
	if it.Tags == nil {
		it.Tags = []string{}
	}
	return nil
}

// Catalog holds the item list plus the code -> object id assignment index
// maintained by drop-assignment.
type Catalog struct {
	items       []Item
	Assignments map[string]string
}

func New() *Catalog {
	return &Catalog{Assignments: map[string]string{}}
}

func key(code string) string { return strings.ToLower(strings.TrimSpace(code)) }

// Items returns a copy of the records in insertion order.
func (c *Catalog) Items() []Item { return append([]Item(nil), c.items...) }

func (c *Catalog) Len() int { return len(c.items) }

func (c *Catalog) Find(code string) (Item, bool) {
	k := key(code)
	for _, it := range c.items {
		if key(it.Code) == k {
			return it, true
		}
	}
	return Item{}, false
}

// Upsert adds a record, or merges into the existing one with the same code:
// name fills a blank, category overwrites when set, tags union, and the
// record is re-activated. Reports whether a new record was added.
func (c *Catalog) Upsert(it Item) bool {
	it.Code = strings.TrimSpace(it.Code)
	if it.Code == "" {
		return false
	}
	if it.Tags == nil {
		it.Tags = []string{}
	}
	k := key(it.Code)
	for i := range c.items {
		if key(c.items[i].Code) != k {
			continue
		}
		ref := &c.items[i]
		if it.Name != "" && ref.Name == "" {
			ref.Name = it.Name
		}
		if it.Category != "" {
			ref.Category = it.Category
		}
		ref.Tags = unionTags(ref.Tags, it.Tags)
		ref.Active = true
		return false
	}
	it.Active = true
	c.items = append(c.items, it)
	return true
}

func unionTags(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := append([]string{}, a...)
	for _, t := range a {
		seen[strings.ToLower(t)] = true
	}
	for _, t := range b {
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}

// BulkAdd parses "CODE, Name" lines (name optional) and adds the new codes.
// Existing codes are left untouched. Returns how many records were added.
func (c *Catalog) BulkAdd(text string) int {
	added := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		code, name, _ := strings.Cut(line, ",")
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, exists := c.Find(code); exists {
			continue
		}
		c.items = append(c.items, Item{
			Code: code, Name: strings.TrimSpace(name),
			Active: true, Tags: []string{},
		})
		added++
	}
	return added
}

func (c *Catalog) SetActive(code string, on bool) bool {
	k := key(code)
	for i := range c.items {
		if key(c.items[i].Code) == k {
			c.items[i].Active = on
			return true
		}
	}
	return false
}

// Remove drops a record from the catalog. Placements on objects remain.
func (c *Catalog) Remove(code string) bool {
	k := key(code)
	for i := range c.items {
		if key(c.items[i].Code) == k {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Catalog) Clear() { c.items = nil }

// SetItems replaces the record list (restore path).
func (c *Catalog) SetItems(items []Item) {
	c.items = append([]Item(nil), items...)
}

// Categories lists the distinct non-empty categories, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range c.items {
		if it.Category != "" && !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	sortStrings(out)
	return out
}

// Filter narrows the dock listing.
type Filter struct {
	Query        string   // substring over name or code, case-insensitive
	Category     string   // exact category, "" = all
	Tags         []string // tag terms
	TagsAll      bool     // true = every term must match (AND), else any (OR)
	HideInactive bool
}

func (c *Catalog) Filter(f Filter) []Item {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	terms := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}
	var out []Item
	for _, it := range c.items {
		if f.HideInactive && !it.Active {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Code), q) {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if len(terms) > 0 && !matchTags(it.Tags, terms, f.TagsAll) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchTags(tags, terms []string, all bool) bool {
	have := make(map[string]bool, len(tags))
	for _, t := range tags {
		have[strings.ToLower(t)] = true
	}
	if all {
		for _, t := range terms {
			if !have[t] {
				return false
			}
		}
		return true
	}
	for _, t := range terms {
		if have[t] {
			return true
		}
	}
	return false
}
