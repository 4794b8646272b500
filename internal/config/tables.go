package config

import (
	"fmt"
	"strings"

	duct "Ductwork/internal/calc/duct"
	"gopkg.in/ini.v1"
)

const materialPrefix = "material."

// LoadTables builds a calculator from an ini source: a file path, []byte
// or io.Reader, anything ini.Load accepts. A missing [sizes] key keeps the
// built-in table; any [material.<id>] section replaces the built-in
// material list.
//
//	[sizes]
//	round = 4, 5, 6, 8
//	rect_widths = 6, 8, 10
//	rect_heights = 4, 6, 8
//
//	[material.galvanized]
//	name = Galvanized Steel
//	roughness = 1.0
func LoadTables(source any) (*duct.Calculator, error) {
	file, err := ini.Load(source)
	if err != nil {
		return nil, fmt.Errorf("load duct tables: %w", err)
	}

	sizes := duct.DefaultSizes()
	sec := file.Section("sizes")
	for key, dst := range map[string]*[]int{
		"round":        &sizes.Round,
		"rect_widths":  &sizes.RectWidths,
		"rect_heights": &sizes.RectHeights,
	} {
		if !sec.HasKey(key) {
			continue
		}
		vals, err := sec.Key(key).StrictInts(",")
		if err != nil {
			return nil, fmt.Errorf("sizes.%s: %w", key, err)
		}
		*dst = vals
	}

	var materials []duct.Material
	for _, s := range file.Sections() {
		if !strings.HasPrefix(s.Name(), materialPrefix) {
			continue
		}
		id := strings.TrimPrefix(s.Name(), materialPrefix)
		roughness, err := s.Key("roughness").Float64()
		if err != nil {
			return nil, fmt.Errorf("%s.roughness: %w", s.Name(), err)
		}
		materials = append(materials, duct.Material{
			ID:        id,
			Name:      s.Key("name").MustString(id),
			Roughness: roughness,
		})
	}
	if len(materials) == 0 {
		materials = duct.DefaultMaterials()
	}
	return duct.New(sizes, materials)
}
