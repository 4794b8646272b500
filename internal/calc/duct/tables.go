package duct

import (
	"fmt"
	"sort"
	"strings"
)

type Material struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Roughness float64 `json:"roughness"` // relative to galvanized steel = 1.0
}

// StandardSizes holds the tabulated duct dimensions in inches.
// Each slice is ascending and free of duplicates.
type StandardSizes struct {
	Round       []int `json:"round"`
	RectWidths  []int `json:"rect_widths"`
	RectHeights []int `json:"rect_heights"`
}

const DefaultMaterialID = "galvanized"

func DefaultMaterials() []Material {
	return []Material{
		{ID: "galvanized", Name: "Galvanized Steel", Roughness: 1.0},
		{ID: "flexible", Name: "Flexible Duct", Roughness: 1.35},
		{ID: "fibrous", Name: "Fibrous Glass Duct Board", Roughness: 1.2},
		{ID: "spiral", Name: "Spiral Duct", Roughness: 0.95},
	}
}

func DefaultSizes() StandardSizes {
	return StandardSizes{
		Round:       []int{4, 5, 6, 7, 8, 9, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 36, 40, 42, 44, 46, 48},
		RectWidths:  []int{6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 36, 40, 42, 44, 46, 48, 52, 56, 60},
		RectHeights: []int{4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24},
	}
}

// SnapUp returns the smallest tabulated size >= x. When x is larger than
// every entry the largest entry is returned and clamped is true.
// An empty table yields 0, true.
func SnapUp(table []int, x float64) (size int, clamped bool) {
	if len(table) == 0 {
		return 0, true
	}
	for _, s := range table {
		if float64(s) >= x {
			return s, false
		}
	}
	return table[len(table)-1], true
}

func (s StandardSizes) Round(d float64) (int, bool)  { return SnapUp(s.Round, d) }
func (s StandardSizes) Width(w float64) (int, bool)  { return SnapUp(s.RectWidths, w) }
func (s StandardSizes) Height(h float64) (int, bool) { return SnapUp(s.RectHeights, h) }

// Normalize sorts and deduplicates every table and rejects empty tables or
// non-positive entries.
func (s StandardSizes) Normalize() (StandardSizes, error) {
	var err error
	out := StandardSizes{}
	if out.Round, err = normalizeTable("round", s.Round); err != nil {
		return StandardSizes{}, err
	}
	if out.RectWidths, err = normalizeTable("rect_widths", s.RectWidths); err != nil {
		return StandardSizes{}, err
	}
	if out.RectHeights, err = normalizeTable("rect_heights", s.RectHeights); err != nil {
		return StandardSizes{}, err
	}
	return out, nil
}

func normalizeTable(name string, in []int) ([]int, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("size table %s is empty", name)
	}
	t := append([]int(nil), in...)
	sort.Ints(t)
	out := make([]int, 0, len(t))
	for _, v := range t {
		if v <= 0 {
			return nil, fmt.Errorf("size table %s: non-positive entry %d", name, v)
		}
		if len(out) > 0 && v == out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func isStandard(table []int, v float64) bool {
	i := sort.SearchInts(table, int(v))
	return i < len(table) && float64(table[i]) == v
}

// FindMaterial looks a material up by id, case-insensitively.
func FindMaterial(materials []Material, id string) (Material, bool) {
	for _, m := range materials {
		if strings.EqualFold(m.ID, id) {
			return m, true
		}
	}
	return Material{}, false
}
