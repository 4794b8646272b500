package duct

import "fmt"

type Point struct {
	AirflowCFM float64 `json:"airflow_cfm"`
	DiameterIn int     `json:"diameter_in"`
}

// Series is one friction-rate curve of the duct size vs. airflow chart.
type Series struct {
	Label        string  `json:"label"`
	FrictionRate float64 `json:"friction_rate"`
	Points       []Point `json:"points"`
}

var (
	ChartDiameters     = []int{6, 8, 10, 12, 14, 16, 18, 20, 24}
	ChartFrictionRates = []float64{0.05, 0.1, 0.2}
)

// FrictionChart returns, for every friction rate, the airflow each round
// diameter carries at that rate.
func FrictionChart(diameters []int, rates []float64, roughness float64) ([]Series, error) {
	out := make([]Series, 0, len(rates))
	for _, f := range rates {
		s := Series{
			Label:        fmt.Sprintf("%g in.wc/100ft", f),
			FrictionRate: f,
			Points:       make([]Point, 0, len(diameters)),
		}
		for _, d := range diameters {
			q, err := AirflowByFriction(float64(d)/inPerFt, roughness, f)
			if err != nil {
				return nil, err
			}
			s.Points = append(s.Points, Point{AirflowCFM: q, DiameterIn: d})
		}
		out = append(out, s)
	}
	return out, nil
}
