package duct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapUp(t *testing.T) {
	table := DefaultSizes().Round
	tests := []struct {
		x       float64
		want    int
		clamped bool
	}{
		{0.5, 4, false},
		{4, 4, false},
		{7.82, 8, false},
		{10.01, 12, false},
		{48, 48, false},
		{48.1, 48, true},
		{120, 48, true},
	}
	for _, tt := range tests {
		got, clamped := SnapUp(table, tt.x)
		assert.Equal(t, tt.want, got, "x=%v", tt.x)
		assert.Equal(t, tt.clamped, clamped, "x=%v", tt.x)
	}

	got, clamped := SnapUp(nil, 3)
	assert.Zero(t, got)
	assert.True(t, clamped)
}

func TestSnapIdempotentAndMonotonic(t *testing.T) {
	sizes := DefaultSizes()
	for _, table := range [][]int{sizes.Round, sizes.RectWidths, sizes.RectHeights} {
		prev := 0
		for x := 0.0; x <= 70; x += 0.25 {
			s, _ := SnapUp(table, x)
			again, _ := SnapUp(table, float64(s))
			assert.Equal(t, s, again, "snap(snap(%v))", x)
			assert.GreaterOrEqual(t, s, prev, "x=%v", x)
			prev = s
		}
	}
}

func TestNormalize(t *testing.T) {
	s, err := StandardSizes{
		Round:       []int{10, 4, 8, 8, 6},
		RectWidths:  []int{6, 6, 6},
		RectHeights: []int{12, 4},
	}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, []int{4, 6, 8, 10}, s.Round)
	assert.Equal(t, []int{6}, s.RectWidths)
	assert.Equal(t, []int{4, 12}, s.RectHeights)

	_, err = StandardSizes{Round: []int{4}, RectWidths: []int{6}}.Normalize()
	assert.ErrorContains(t, err, "rect_heights")

	_, err = StandardSizes{Round: []int{0, 4}, RectWidths: []int{6}, RectHeights: []int{4}}.Normalize()
	assert.ErrorContains(t, err, "non-positive")
}

func TestFindMaterial(t *testing.T) {
	m, ok := FindMaterial(DefaultMaterials(), "Flexible")
	require.True(t, ok)
	assert.Equal(t, 1.35, m.Roughness)

	_, ok = FindMaterial(DefaultMaterials(), "aluminium")
	assert.False(t, ok)
}

func TestIsStandard(t *testing.T) {
	table := DefaultSizes().Round
	assert.True(t, isStandard(table, 8))
	assert.False(t, isStandard(table, 8.5))
	assert.False(t, isStandard(table, 11))
	assert.False(t, isStandard(table, 50))
}
