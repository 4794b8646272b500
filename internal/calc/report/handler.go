package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	duct "Ductwork/internal/calc/duct"
	"github.com/phpdave11/gofpdf"
	log "github.com/sirupsen/logrus"
)

type Input struct {
	Project     string     `json:"project"`
	Author      string     `json:"author"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes"`
	Calculation duct.Input `json:"calculation"`
}

type Handler struct {
	Engine *duct.Calculator
	Now    func() time.Time
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Engine.Calculate(input.Calculation)
	if err != nil {
		duct.WriteError(w, err)
		return
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"duct-report.pdf\"")
	if err := Render(w, input, res, now()); err != nil {
		log.WithError(err).Error("render duct report")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// Render writes a one-page A4 report of a single duct calculation.
func Render(w io.Writer, input Input, res duct.Result, date time.Time) error {
	if input.Title == "" {
		input.Title = "Duct Sizing Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(10)

	table(pdf, "Inputs", inputRows(input.Calculation, res))
	table(pdf, "Results", resultRows(res))

	if len(res.Warnings) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, "Warnings")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, strings.Join(res.Warnings, "\n"), "", "L", false)
		pdf.Ln(4)
	}
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, res.Notes, "", "L", false)
	if input.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}
	return pdf.Output(w)
}

func table(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(70, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func inputRows(in duct.Input, res duct.Result) [][2]string {
	rows := [][2]string{
		{"Mode", string(res.Mode)},
		{"Shape", string(res.Shape)},
		{"Material", fmt.Sprintf("%s (roughness %.2f)", res.Material, res.Roughness)},
	}
	switch res.Mode {
	case duct.ModeDuctSize:
		rows = append(rows,
			[2]string{"Airflow", fmt.Sprintf("%.0f CFM", in.AirflowCFM)},
			[2]string{"Friction rate", fmt.Sprintf("%.3f in.wc/100ft", in.FrictionRate)},
			[2]string{"Velocity limit", fmt.Sprintf("%.0f FPM", in.VelocityLimitFPM)},
		)
	case duct.ModeAirflow:
		rows = append(rows,
			[2]string{"Friction rate", fmt.Sprintf("%.3f in.wc/100ft", in.FrictionRate)},
			[2]string{"Velocity limit", fmt.Sprintf("%.0f FPM", in.VelocityLimitFPM)},
			[2]string{"Duct size", size(res)},
		)
	case duct.ModeFriction:
		rows = append(rows,
			[2]string{"Airflow", fmt.Sprintf("%.0f CFM", in.AirflowCFM)},
			[2]string{"Duct size", size(res)},
		)
	}
	return append(rows,
		[2]string{"Duct length", fmt.Sprintf("%.0f ft", in.DuctLengthFt)},
		[2]string{"Fittings", fmt.Sprintf("%d", in.Fittings)},
	)
}

func resultRows(res duct.Result) [][2]string {
	var rows [][2]string
	switch res.Mode {
	case duct.ModeDuctSize:
		rows = append(rows,
			[2]string{"Required diameter", fmt.Sprintf("%.1f in", res.IdealDiameterIn)},
			[2]string{"Standard round size", fmt.Sprintf("%.0f in", res.RoundDiameterIn)},
		)
		if res.RectEquivalent != nil {
			rows = append(rows, [2]string{"Rectangular equivalent",
				fmt.Sprintf("%d x %d in", res.RectEquivalent.Width, res.RectEquivalent.Height)})
		}
	case duct.ModeAirflow:
		rows = append(rows, [2]string{"Maximum airflow", fmt.Sprintf("%.0f CFM", res.AirflowCFM)})
	case duct.ModeFriction:
		rows = append(rows, [2]string{"Friction rate",
			fmt.Sprintf("%.3f in.wc/100ft (%s)", res.FrictionRate, res.FrictionRating.Advice(res.Mode))})
	}
	return append(rows,
		[2]string{"Velocity", fmt.Sprintf("%.0f FPM (%s)", res.VelocityFPM, res.VelocityRating.Advice(res.Mode))},
		[2]string{"Equivalent length", fmt.Sprintf("%.0f ft", res.EquivalentLengthFt)},
		[2]string{"Total pressure drop", fmt.Sprintf("%.3f in.wc", res.TotalPressureDropInWc)},
	)
}

func size(res duct.Result) string {
	if res.Shape == duct.ShapeRound {
		return fmt.Sprintf("%g in round", res.RoundDiameterIn)
	}
	return fmt.Sprintf("%g x %g in", res.RectWidthIn, res.RectHeightIn)
}
