package duct

import (
	"fmt"
	"math"
	"strings"
)

type Mode string

const (
	ModeDuctSize Mode = "duct-size"
	ModeAirflow  Mode = "airflow"
	ModeFriction Mode = "friction"
)

type Shape string

const (
	ShapeRound       Shape = "round"
	ShapeRectangular Shape = "rectangular"
)

type Input struct {
	Mode             Mode    `json:"mode"`
	Shape            Shape   `json:"shape"`
	Material         string  `json:"material"`
	AirflowCFM       float64 `json:"airflow_cfm"`
	FrictionRate     float64 `json:"friction_rate"` // in.wc per 100 ft
	VelocityLimitFPM float64 `json:"velocity_limit_fpm"`
	RoundDiameterIn  float64 `json:"round_diameter_in"`
	RectWidthIn      float64 `json:"rect_width_in"`
	RectHeightIn     float64 `json:"rect_height_in"`
	DuctLengthFt     float64 `json:"duct_length_ft"`
	Fittings         int     `json:"fittings"`
}

type Result struct {
	Mode      Mode    `json:"mode"`
	Shape     Shape   `json:"shape"`
	Material  string  `json:"material"`
	Roughness float64 `json:"roughness"`

	IdealDiameterIn float64 `json:"ideal_diameter_in,omitempty"`
	RoundDiameterIn float64 `json:"round_diameter_in,omitempty"`
	RectWidthIn     float64 `json:"rect_width_in,omitempty"`
	RectHeightIn    float64 `json:"rect_height_in,omitempty"`
	RectEquivalent  *Rect   `json:"rect_equivalent,omitempty"`

	AirflowCFM     float64 `json:"airflow_cfm"`
	FrictionRate   float64 `json:"friction_rate"`
	VelocityFPM    float64 `json:"velocity_fpm"`
	VelocityRating Rating  `json:"velocity_rating"`
	FrictionRating Rating  `json:"friction_rating,omitempty"`
	Section

	EquivalentLengthFt    float64 `json:"equivalent_length_ft"`
	TotalPressureDropInWc float64 `json:"total_pressure_drop_in_wc"`

	Clamped  bool     `json:"clamped"`
	Warnings []string `json:"warnings,omitempty"`
	Notes    string   `json:"notes"`
}

// Primary returns the quantity the mode solves for.
func (r Result) Primary() float64 {
	switch r.Mode {
	case ModeAirflow:
		return r.AirflowCFM
	case ModeFriction:
		return r.FrictionRate
	default:
		return r.RoundDiameterIn
	}
}

// Calculator carries the reference tables a calculation runs against.
type Calculator struct {
	Sizes     StandardSizes
	Materials []Material
}

func Default() *Calculator {
	return &Calculator{Sizes: DefaultSizes(), Materials: DefaultMaterials()}
}

// New validates the tables and returns a calculator over them.
func New(sizes StandardSizes, materials []Material) (*Calculator, error) {
	norm, err := sizes.Normalize()
	if err != nil {
		return nil, err
	}
	if len(materials) == 0 {
		return nil, fmt.Errorf("material table is empty")
	}
	seen := make(map[string]bool, len(materials))
	for _, m := range materials {
		id := strings.ToLower(m.ID)
		if id == "" {
			return nil, fmt.Errorf("material %q has no id", m.Name)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate material %q", m.ID)
		}
		if m.Roughness < 0 || math.IsNaN(m.Roughness) || math.IsInf(m.Roughness, 0) {
			return nil, fmt.Errorf("material %q: invalid roughness %g", m.ID, m.Roughness)
		}
		seen[id] = true
	}
	return &Calculator{Sizes: norm, Materials: append([]Material(nil), materials...)}, nil
}

// Calculate solves the quantity selected by in.Mode and fills the derived
// diagnostics. Required inputs are never defaulted here.
func (c *Calculator) Calculate(in Input) (Result, error) {
	mat, ok := FindMaterial(c.Materials, in.Material)
	if !ok {
		return Result{}, &InvalidInputError{Field: "material", Reason: fmt.Sprintf("unknown material %q", in.Material)}
	}
	if err := requirePositive("roughness", mat.Roughness); err != nil {
		return Result{}, err
	}
	if in.Shape != ShapeRound && in.Shape != ShapeRectangular {
		return Result{}, &InvalidInputError{Field: "shape", Reason: fmt.Sprintf("unknown shape %q", in.Shape)}
	}
	if err := requirePositive("duct_length_ft", in.DuctLengthFt); err != nil {
		return Result{}, err
	}
	if in.Fittings < 0 {
		return Result{}, invalid("fittings", float64(in.Fittings))
	}

	res := Result{
		Mode:               in.Mode,
		Shape:              in.Shape,
		Material:           mat.ID,
		Roughness:          mat.Roughness,
		EquivalentLengthFt: EquivalentLength(in.DuctLengthFt, in.Fittings),
	}

	var err error
	switch in.Mode {
	case ModeDuctSize:
		err = c.findDuctSize(in, &res)
	case ModeAirflow:
		err = c.findAirflow(in, &res)
	case ModeFriction:
		err = c.findFriction(in, &res)
	default:
		return Result{}, &InvalidInputError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", in.Mode)}
	}
	if err != nil {
		return Result{}, err
	}

	res.TotalPressureDropInWc = PressureDrop(res.FrictionRate, res.EquivalentLengthFt)
	if err := finite(res.TotalPressureDropInWc, res.VelocityFPM); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (c *Calculator) findDuctSize(in Input, res *Result) error {
	ideal, err := SolveDuctSize(in.AirflowCFM, in.FrictionRate, res.Roughness, in.VelocityLimitFPM)
	if err != nil {
		return err
	}
	size, clamped := c.Sizes.Round(ideal)
	if clamped {
		res.clamp(fmt.Sprintf("required diameter %.1f in exceeds the largest standard round size; clamped to %d in", ideal, size))
	}
	rect, rectClamped, err := RectangularEquivalent(c.Sizes, float64(size), RectAspectRatio)
	if err != nil {
		return err
	}
	if rectClamped {
		res.clamp(fmt.Sprintf("rectangular equivalent of %d in round clamped to %dx%d in", size, rect.Width, rect.Height))
	}
	sec, err := RoundSection(float64(size))
	if err != nil {
		return err
	}
	v, err := Velocity(in.AirflowCFM, sec.AreaSqFt)
	if err != nil {
		return err
	}

	res.IdealDiameterIn = ideal
	res.RoundDiameterIn = float64(size)
	res.RectEquivalent = &rect
	res.Section = sec
	res.AirflowCFM = in.AirflowCFM
	res.FrictionRate = in.FrictionRate
	res.VelocityFPM = v
	res.VelocityRating = RateVelocity(v, in.VelocityLimitFPM)
	res.Notes = "Round duct sized by the equal friction method; rectangular equivalent at 1.5:1 aspect."
	if in.Shape == ShapeRectangular {
		res.Notes += " Velocity is reported for the round size."
	}
	return nil
}

func (c *Calculator) findAirflow(in Input, res *Result) error {
	if err := checkPositive(
		operand{"friction_rate", in.FrictionRate},
		operand{"velocity_limit_fpm", in.VelocityLimitFPM},
	); err != nil {
		return err
	}
	sec, err := c.section(in, res)
	if err != nil {
		return err
	}
	q, err := SolveMaxAirflow(sec.AreaSqFt, sec.HydraulicDiameterFt, res.Roughness, in.FrictionRate, in.VelocityLimitFPM)
	if err != nil {
		return err
	}
	v, err := Velocity(q, sec.AreaSqFt)
	if err != nil {
		return err
	}
	res.Section = sec
	res.AirflowCFM = q
	res.FrictionRate = in.FrictionRate
	res.VelocityFPM = v
	res.VelocityRating = RateVelocity(v, in.VelocityLimitFPM)
	res.Notes = "Maximum airflow limited by the lower of the friction and velocity limits."
	return nil
}

func (c *Calculator) findFriction(in Input, res *Result) error {
	if err := requirePositive("airflow_cfm", in.AirflowCFM); err != nil {
		return err
	}
	sec, err := c.section(in, res)
	if err != nil {
		return err
	}
	f, err := SolveFrictionRate(in.AirflowCFM, sec.AreaSqFt, sec.HydraulicDiameterFt, res.Roughness)
	if err != nil {
		return err
	}
	v, err := Velocity(in.AirflowCFM, sec.AreaSqFt)
	if err != nil {
		return err
	}
	limit := FrictionModeVelocityLimitFPM
	if in.VelocityLimitFPM > 0 && !math.IsInf(in.VelocityLimitFPM, 0) {
		limit = in.VelocityLimitFPM
	}
	res.Section = sec
	res.AirflowCFM = in.AirflowCFM
	res.FrictionRate = f
	res.FrictionRating = RateFriction(f)
	res.VelocityFPM = v
	res.VelocityRating = RateVelocity(v, limit)
	res.Notes = "Friction rate from the simplified Darcy relation."
	return nil
}

// section resolves the user-selected duct for the airflow and friction modes.
func (c *Calculator) section(in Input, res *Result) (Section, error) {
	if in.Shape == ShapeRound {
		sec, err := RoundSection(in.RoundDiameterIn)
		if err != nil {
			return Section{}, err
		}
		res.RoundDiameterIn = in.RoundDiameterIn
		if !isStandard(c.Sizes.Round, in.RoundDiameterIn) {
			res.warn(fmt.Sprintf("%g in is not a standard round size", in.RoundDiameterIn))
		}
		return sec, nil
	}
	sec, err := RectSection(in.RectWidthIn, in.RectHeightIn)
	if err != nil {
		return Section{}, err
	}
	res.RectWidthIn = in.RectWidthIn
	res.RectHeightIn = in.RectHeightIn
	if !isStandard(c.Sizes.RectWidths, in.RectWidthIn) || !isStandard(c.Sizes.RectHeights, in.RectHeightIn) {
		res.warn(fmt.Sprintf("%gx%g in is not a standard rectangular size", in.RectWidthIn, in.RectHeightIn))
	}
	return sec, nil
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *Result) clamp(msg string) {
	r.Clamped = true
	r.warn(msg)
}

// WithDefaults fills blank fields the way the interactive calculator form
// does. The engine itself never calls it.
func WithDefaults(in Input) Input {
	if in.Mode == "" {
		in.Mode = ModeDuctSize
	}
	if in.Shape == "" {
		in.Shape = ShapeRound
	}
	if in.Material == "" {
		in.Material = DefaultMaterialID
	}
	if in.AirflowCFM == 0 {
		in.AirflowCFM = 400
	}
	if in.FrictionRate == 0 {
		in.FrictionRate = 0.1
	}
	if in.VelocityLimitFPM == 0 {
		in.VelocityLimitFPM = 1200
	}
	if in.RoundDiameterIn == 0 {
		in.RoundDiameterIn = 8
	}
	if in.RectWidthIn == 0 {
		in.RectWidthIn = 12
	}
	if in.RectHeightIn == 0 {
		in.RectHeightIn = 8
	}
	if in.DuctLengthFt == 0 {
		in.DuctLengthFt = 100
	}
	return in
}
