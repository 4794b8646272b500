package duct

type Rating string

const (
	RatingGood    Rating = "good"
	RatingTooHigh Rating = "too high"
	RatingTooLow  Rating = "too low"
	RatingHigh    Rating = "high"
	RatingLow     Rating = "low"
)

const (
	MinVelocityFPM = 400.0
	// FrictionModeVelocityLimitFPM rates velocity when no limit is an input.
	FrictionModeVelocityLimitFPM = 1200.0

	HighFrictionRate = 0.15
	LowFrictionRate  = 0.05

	FittingEquivalentFt = 25.0
)

func Velocity(airflowCFM, areaSqFt float64) (float64, error) {
	if err := checkPositive(operand{"duct_area_sqft", areaSqFt}); err != nil {
		return 0, err
	}
	v := airflowCFM / areaSqFt
	if err := finite(v); err != nil {
		return 0, err
	}
	return v, nil
}

func RateVelocity(velocityFPM, limitFPM float64) Rating {
	switch {
	case velocityFPM > limitFPM:
		return RatingTooHigh
	case velocityFPM < MinVelocityFPM:
		return RatingTooLow
	default:
		return RatingGood
	}
}

func RateFriction(frictionRate float64) Rating {
	switch {
	case frictionRate > HighFrictionRate:
		return RatingHigh
	case frictionRate < LowFrictionRate:
		return RatingLow
	default:
		return RatingGood
	}
}

// EquivalentLength approximates each fitting as 25 ft of straight duct.
func EquivalentLength(ductLengthFt float64, fittings int) float64 {
	return ductLengthFt + float64(fittings)*FittingEquivalentFt
}

// PressureDrop is the total static loss in in.wc over an equivalent length.
func PressureDrop(frictionRate, equivalentLengthFt float64) float64 {
	return frictionRate / 100 * equivalentLengthFt
}

// Advice is the short explanation a UI shows next to a rating.
func (r Rating) Advice(mode Mode) string {
	switch r {
	case RatingTooHigh:
		switch mode {
		case ModeAirflow:
			return "Too high - reduce airflow"
		case ModeFriction:
			return "Too high - noise issues likely"
		}
		return "Too high - consider larger duct"
	case RatingTooLow:
		return "Low - may cause poor air mixing"
	case RatingHigh:
		return "High - consider larger duct"
	case RatingLow:
		return "Low - consider smaller duct"
	case RatingGood:
		return "Good range"
	}
	return ""
}
