package recommend

import (
	"fmt"
	"sort"

	"Ductwork/internal/calc/duct"
)

type MaterialRecommendInput struct {
	AirflowCFM       float64 `json:"airflow_cfm"`
	FrictionRate     float64 `json:"friction_rate"`
	VelocityLimitFPM float64 `json:"velocity_limit_fpm"`
	DuctLengthFt     float64 `json:"duct_length_ft"`
	Fittings         int     `json:"fittings"`
}

type Option struct {
	Material string      `json:"material"`
	Result   duct.Result `json:"result"`
}

type MaterialRecommendResult struct {
	Best    string   `json:"best"`
	Options []Option `json:"options"`
	Notes   string   `json:"notes"`
}

// Materials sizes a round duct for every material in the table and ranks
// them by snapped diameter, then by pressure drop.
func Materials(calc *duct.Calculator, in MaterialRecommendInput) (MaterialRecommendResult, error) {
	opts := make([]Option, 0, len(calc.Materials))
	for _, m := range calc.Materials {
		res, err := calc.Calculate(duct.Input{
			Mode:             duct.ModeDuctSize,
			Shape:            duct.ShapeRound,
			Material:         m.ID,
			AirflowCFM:       in.AirflowCFM,
			FrictionRate:     in.FrictionRate,
			VelocityLimitFPM: in.VelocityLimitFPM,
			DuctLengthFt:     in.DuctLengthFt,
			Fittings:         in.Fittings,
		})
		if err != nil {
			return MaterialRecommendResult{}, fmt.Errorf("material %s: %w", m.ID, err)
		}
		opts = append(opts, Option{Material: m.ID, Result: res})
	}

	sort.SliceStable(opts, func(i, j int) bool {
		a, b := opts[i].Result, opts[j].Result
		if a.RoundDiameterIn != b.RoundDiameterIn {
			return a.RoundDiameterIn < b.RoundDiameterIn
		}
		return a.IdealDiameterIn < b.IdealDiameterIn
	})

	best := opts[0]
	return MaterialRecommendResult{
		Best:    best.Material,
		Options: opts,
		Notes:   fmt.Sprintf("%s needs the smallest round duct (%g in).", best.Material, best.Result.RoundDiameterIn),
	}, nil
}
