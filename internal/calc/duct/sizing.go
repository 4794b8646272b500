package duct

import "math"

const (
	// frictionConstant is the 4005 coefficient of the simplified Darcy
	// relation Q = 4005 * D^2.5 * sqrt(F/R), D in feet.
	frictionConstant = 4005.0
	sqInPerSqFt      = 144.0
	inPerFt          = 12.0

	RectAspectRatio = 1.5
)

type Rect struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Section is the cross-section of a duct in the units the formulas use.
type Section struct {
	AreaSqFt            float64 `json:"area_sqft"`
	HydraulicDiameterFt float64 `json:"hydraulic_diameter_ft"`
}

func RoundSection(diameterIn float64) (Section, error) {
	if err := requirePositive("round_diameter_in", diameterIn); err != nil {
		return Section{}, err
	}
	r := diameterIn / 24.0
	return Section{
		AreaSqFt:            math.Pi * r * r,
		HydraulicDiameterFt: diameterIn / inPerFt,
	}, nil
}

func RectSection(widthIn, heightIn float64) (Section, error) {
	if err := requirePositive("rect_width_in", widthIn); err != nil {
		return Section{}, err
	}
	if err := requirePositive("rect_height_in", heightIn); err != nil {
		return Section{}, err
	}
	area := widthIn * heightIn / sqInPerSqFt
	perimeter := 2 * (widthIn + heightIn) / inPerFt
	return Section{
		AreaSqFt:            area,
		HydraulicDiameterFt: 4 * area / perimeter,
	}, nil
}

// SolveDuctSize returns the ideal round diameter in inches before snapping:
// the larger of the friction-limited and velocity-limited diameters.
func SolveDuctSize(airflowCFM, frictionRate, roughness, velocityLimitFPM float64) (float64, error) {
	if err := checkPositive(
		operand{"airflow_cfm", airflowCFM},
		operand{"friction_rate", frictionRate},
		operand{"roughness", roughness},
		operand{"velocity_limit_fpm", velocityLimitFPM},
	); err != nil {
		return 0, err
	}
	factor := math.Pow((airflowCFM/frictionConstant)/math.Sqrt(frictionRate/roughness), 0.4)
	byFriction := factor * inPerFt
	byVelocity := math.Sqrt((airflowCFM/velocityLimitFPM)*4/math.Pi) * inPerFt
	d := math.Max(byFriction, byVelocity)
	if err := finite(d); err != nil {
		return 0, err
	}
	return d, nil
}

// RectangularEquivalent sizes a rectangle of the given width/height aspect
// with the same area as a round duct, snapping each side up independently.
func RectangularEquivalent(sizes StandardSizes, roundDiameterIn, aspect float64) (Rect, bool, error) {
	if err := checkPositive(operand{"round_diameter_in", roundDiameterIn}, operand{"aspect_ratio", aspect}); err != nil {
		return Rect{}, false, err
	}
	area := math.Pi * math.Pow(roundDiameterIn/2, 2)
	h := math.Sqrt(area / aspect)
	w := h * aspect
	height, hClamped := sizes.Height(h)
	width, wClamped := sizes.Width(w)
	return Rect{Width: width, Height: height}, hClamped || wClamped, nil
}

// AirflowByFriction is the airflow a duct of hydraulic diameter dhFt carries
// at the given friction rate.
func AirflowByFriction(dhFt, roughness, frictionRate float64) (float64, error) {
	if err := checkPositive(
		operand{"hydraulic_diameter_ft", dhFt},
		operand{"roughness", roughness},
		operand{"friction_rate", frictionRate},
	); err != nil {
		return 0, err
	}
	q := frictionConstant * math.Pow(dhFt, 2.5) * math.Sqrt(frictionRate/roughness)
	if err := finite(q); err != nil {
		return 0, err
	}
	return q, nil
}

// SolveMaxAirflow caps airflow by whichever of friction and velocity binds first.
func SolveMaxAirflow(areaSqFt, dhFt, roughness, frictionRate, velocityLimitFPM float64) (float64, error) {
	if err := checkPositive(operand{"duct_area_sqft", areaSqFt}, operand{"velocity_limit_fpm", velocityLimitFPM}); err != nil {
		return 0, err
	}
	byFriction, err := AirflowByFriction(dhFt, roughness, frictionRate)
	if err != nil {
		return 0, err
	}
	byVelocity := areaSqFt * velocityLimitFPM
	q := math.Min(byFriction, byVelocity)
	if err := finite(q); err != nil {
		return 0, err
	}
	return q, nil
}

// SolveFrictionRate is the inverse of AirflowByFriction, in in.wc/100ft.
func SolveFrictionRate(airflowCFM, areaSqFt, dhFt, roughness float64) (float64, error) {
	if err := checkPositive(
		operand{"airflow_cfm", airflowCFM},
		operand{"duct_area_sqft", areaSqFt},
		operand{"hydraulic_diameter_ft", dhFt},
		operand{"roughness", roughness},
	); err != nil {
		return 0, err
	}
	f := roughness * math.Pow(airflowCFM/(frictionConstant*math.Pow(dhFt, 2.5)), 2)
	if err := finite(f); err != nil {
		return 0, err
	}
	return f, nil
}

type operand struct {
	name string
	v    float64
}

func checkPositive(ops ...operand) error {
	for _, op := range ops {
		if err := requirePositive(op.name, op.v); err != nil {
			return err
		}
	}
	return nil
}
