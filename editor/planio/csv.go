package planio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hubastard/blueprint/editor/catalog"
)

// HeaderMap names the CSV columns to import from. Zero-value fields fall
// back to auto-detection; a match found once is saved and reused on the
// next import of the same file shape.
type HeaderMap struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
}

var headerCandidates = map[string][]string{
	"code":     {"sku", "upc", "id", "code", "item", "item code", "itemcode", "item_id", "part", "part number"},
	"name":     {"name", "description", "desc", "title", "product", "product name", "item name"},
	"category": {"category", "cat", "dept", "department", "group", "type"},
	"tags":     {"tags", "labels", "keywords"},
}

func matchHeader(header []string, want string, candidates []string) string {
	if want != "" {
		for _, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return h
			}
		}
	}
	for _, cand := range candidates {
		for _, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), cand) {
				return h
			}
		}
	}
	return ""
}

// Resolve fills unmatched fields of the map from the header row by
// candidate-name matching. Code is required; the rest are optional.
func (hm HeaderMap) Resolve(header []string) (HeaderMap, error) {
	out := HeaderMap{
		Code:     matchHeader(header, hm.Code, headerCandidates["code"]),
		Name:     matchHeader(header, hm.Name, headerCandidates["name"]),
		Category: matchHeader(header, hm.Category, headerCandidates["category"]),
		Tags:     matchHeader(header, hm.Tags, headerCandidates["tags"]),
	}
	if out.Code == "" {
		return out, fmt.Errorf("no code column found in header %v", header)
	}
	return out, nil
}

// ImportCSV parses catalog items from a CSV stream. The first row must be a
// header. Rows without a code are skipped. The resolved header map is
// returned so callers can persist it for the next import.
func ImportCSV(r io.Reader, hm HeaderMap) ([]catalog.Item, HeaderMap, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, hm, fmt.Errorf("reading csv header: %w", err)
	}
	resolved, err := hm.Resolve(header)
	if err != nil {
		return nil, hm, err
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || name == "" || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var items []catalog.Item
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, resolved, fmt.Errorf("reading csv row: %w", err)
		}
		code := field(row, resolved.Code)
		if code == "" {
			continue
		}
		items = append(items, catalog.Item{
			Code:     code,
			Name:     field(row, resolved.Name),
			Category: field(row, resolved.Category),
			Tags:     splitTags(field(row, resolved.Tags)),
			Active:   true,
		})
	}
	return items, resolved, nil
}

// ImportCSVFile is ImportCSV over a file on disk.
func ImportCSVFile(path string, hm HeaderMap) ([]catalog.Item, HeaderMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, hm, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ImportCSV(f, hm)
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '|' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadHeaderMap reads a previously saved column mapping; a missing file
// returns the zero map.
func LoadHeaderMap(path string) HeaderMap {
	var hm HeaderMap
	b, err := os.ReadFile(path)
	if err != nil {
		return hm
	}
	_ = json.Unmarshal(b, &hm)
	return hm
}

// SaveHeaderMap persists the resolved mapping for the next import.
func SaveHeaderMap(path string, hm HeaderMap) error {
	b, err := json.Marshal(hm)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, b)
}
