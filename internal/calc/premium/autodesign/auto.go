package autodesign

import (
	"errors"
	"fmt"

	duct "Ductwork/internal/calc/duct"
)

const defaultMaxAspect = 4.0

var ErrNoFit = errors.New("no standard rectangular duct meets the friction and velocity limits")

type RectAutoInput struct {
	Material         string  `json:"material"`
	AirflowCFM       float64 `json:"airflow_cfm"`
	FrictionRate     float64 `json:"friction_rate"`
	VelocityLimitFPM float64 `json:"velocity_limit_fpm"`
	MaxAspectRatio   float64 `json:"max_aspect_ratio"`
	DuctLengthFt     float64 `json:"duct_length_ft"`
	Fittings         int     `json:"fittings"`
}

type RectAutoResult struct {
	WidthIn      int         `json:"width_in"`
	HeightIn     int         `json:"height_in"`
	AspectRatio  float64     `json:"aspect_ratio"`
	RoundIdealIn float64     `json:"round_ideal_in"`
	Candidates   int         `json:"candidates"`
	Result       duct.Result `json:"result"`
	Notes        string      `json:"notes"`
}

// SelectRect walks the standard height/width pairs and picks the smallest
// rectangular duct whose own hydraulic diameter keeps friction and velocity
// within the targets. Ties go to the squarer duct.
func SelectRect(calc *duct.Calculator, in RectAutoInput) (RectAutoResult, error) {
	mat, ok := duct.FindMaterial(calc.Materials, in.Material)
	if !ok {
		return RectAutoResult{}, &duct.InvalidInputError{Field: "material", Reason: fmt.Sprintf("unknown material %q", in.Material)}
	}
	ideal, err := duct.SolveDuctSize(in.AirflowCFM, in.FrictionRate, mat.Roughness, in.VelocityLimitFPM)
	if err != nil {
		return RectAutoResult{}, err
	}
	if in.MaxAspectRatio <= 0 {
		in.MaxAspectRatio = defaultMaxAspect
	}

	var (
		best       duct.Rect
		bestArea   float64
		bestAspect float64
		candidates int
	)
	for _, h := range calc.Sizes.RectHeights {
		for _, w := range calc.Sizes.RectWidths {
			aspect := float64(w) / float64(h)
			if w < h || aspect > in.MaxAspectRatio {
				continue
			}
			sec, err := duct.RectSection(float64(w), float64(h))
			if err != nil {
				return RectAutoResult{}, err
			}
			f, err := duct.SolveFrictionRate(in.AirflowCFM, sec.AreaSqFt, sec.HydraulicDiameterFt, mat.Roughness)
			if err != nil {
				return RectAutoResult{}, err
			}
			if f > in.FrictionRate || in.AirflowCFM/sec.AreaSqFt > in.VelocityLimitFPM {
				continue
			}
			candidates++
			area := float64(w * h)
			if best.Width == 0 || area < bestArea || (area == bestArea && aspect < bestAspect) {
				best, bestArea, bestAspect = duct.Rect{Width: w, Height: h}, area, aspect
			}
		}
	}
	if candidates == 0 {
		return RectAutoResult{}, ErrNoFit
	}

	res, err := calc.Calculate(duct.Input{
		Mode:             duct.ModeFriction,
		Shape:            duct.ShapeRectangular,
		Material:         mat.ID,
		AirflowCFM:       in.AirflowCFM,
		VelocityLimitFPM: in.VelocityLimitFPM,
		RectWidthIn:      float64(best.Width),
		RectHeightIn:     float64(best.Height),
		DuctLengthFt:     in.DuctLengthFt,
		Fittings:         in.Fittings,
	})
	if err != nil {
		return RectAutoResult{}, err
	}
	return RectAutoResult{
		WidthIn:      best.Width,
		HeightIn:     best.Height,
		AspectRatio:  bestAspect,
		RoundIdealIn: ideal,
		Candidates:   candidates,
		Result:       res,
		Notes:        "Auto-selected rectangular duct (smallest standard section within friction and velocity limits).",
	}, nil
}
