package duct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrictionChart(t *testing.T) {
	series, err := FrictionChart(ChartDiameters, ChartFrictionRates, 1.0)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, "0.05 in.wc/100ft", series[0].Label)

	for _, s := range series {
		require.Len(t, s.Points, len(ChartDiameters))
		for i := 1; i < len(s.Points); i++ {
			assert.Greater(t, s.Points[i].AirflowCFM, s.Points[i-1].AirflowCFM)
		}
	}
	// a steeper friction rate moves more air through the same duct
	assert.Greater(t, series[2].Points[0].AirflowCFM, series[0].Points[0].AirflowCFM)

	// 8 in at 0.1 in.wc/100ft
	assert.InDelta(t, 459.6, series[1].Points[1].AirflowCFM, 0.1)
}

func TestFrictionChartRejectsBadRate(t *testing.T) {
	_, err := FrictionChart(ChartDiameters, []float64{0}, 1.0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
