package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	duct "Ductwork/internal/calc/duct"
	"github.com/xuri/excelize/v2"
)

// Columns of an import sheet, in order. The first row is a header.
var Columns = []string{
	"mode", "shape", "material", "airflow_cfm", "friction_rate", "velocity_limit_fpm",
	"round_diameter_in", "rect_width_in", "rect_height_in", "duct_length_ft", "fittings",
}

var resultColumns = []string{
	"round_diameter_in", "rect_equivalent", "airflow_cfm", "friction_rate", "velocity_fpm",
	"velocity_rating", "friction_rating", "equivalent_length_ft", "total_pressure_drop_in_wc", "warnings", "error",
}

type Row struct {
	Line   int          `json:"row"`
	Input  duct.Input   `json:"input"`
	Result *duct.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type DuctImportResult struct {
	Count   int      `json:"count"`
	Skipped int      `json:"skipped"`
	Rows    []Row    `json:"rows"`
	Errors  []string `json:"errors,omitempty"`
}

// Import reads the first sheet of an xlsx workbook and calculates every
// row. Rows that do not parse or do not calculate are skipped and reported.
func Import(calc *duct.Calculator, r io.Reader) (DuctImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return DuctImportResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return DuctImportResult{}, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return DuctImportResult{}, fmt.Errorf("empty sheet")
	}

	var out DuctImportResult
	for i := 1; i < len(rows); i++ {
		line := i + 1
		if blank(rows[i]) {
			continue
		}
		input, err := parseDuctRow(rows[i])
		if err == nil {
			var res duct.Result
			if res, err = calc.Calculate(input); err == nil {
				out.Rows = append(out.Rows, Row{Line: line, Input: input, Result: &res})
				continue
			}
		}
		out.Skipped++
		out.Errors = append(out.Errors, fmt.Sprintf("row %d: %v", line, err))
	}
	out.Count = len(out.Rows)
	return out, nil
}

func parseDuctRow(row []string) (duct.Input, error) {
	if len(row) < 3 {
		return duct.Input{}, fmt.Errorf("bad row")
	}
	num := make([]float64, len(Columns))
	for c := 3; c < len(Columns) && c < len(row); c++ {
		if strings.TrimSpace(row[c]) == "" {
			continue
		}
		v, err := toFloat(row[c])
		if err != nil {
			return duct.Input{}, fmt.Errorf("column %s: %w", Columns[c], err)
		}
		num[c] = v
	}
	fittings := int(num[10])
	if float64(fittings) != num[10] {
		return duct.Input{}, fmt.Errorf("column fittings: %g is not a whole number", num[10])
	}
	return duct.Input{
		Mode:             duct.Mode(cell(row, 0)),
		Shape:            duct.Shape(cell(row, 1)),
		Material:         cell(row, 2),
		AirflowCFM:       num[3],
		FrictionRate:     num[4],
		VelocityLimitFPM: num[5],
		RoundDiameterIn:  num[6],
		RectWidthIn:      num[7],
		RectHeightIn:     num[8],
		DuctLengthFt:     num[9],
		Fittings:         fittings,
	}, nil
}

// WriteResults writes one sheet holding every row's input next to its
// result or error.
func WriteResults(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	header := make([]any, 0, len(Columns)+len(resultColumns))
	for _, c := range Columns {
		header = append(header, c)
	}
	for _, c := range resultColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		in := row.Input
		values := []any{
			string(in.Mode), string(in.Shape), in.Material, in.AirflowCFM, in.FrictionRate, in.VelocityLimitFPM,
			in.RoundDiameterIn, in.RectWidthIn, in.RectHeightIn, in.DuctLengthFt, in.Fittings,
		}
		if res := row.Result; res != nil {
			rect := ""
			if res.RectEquivalent != nil {
				rect = fmt.Sprintf("%dx%d", res.RectEquivalent.Width, res.RectEquivalent.Height)
			}
			values = append(values,
				res.RoundDiameterIn, rect, res.AirflowCFM, res.FrictionRate, res.VelocityFPM,
				string(res.VelocityRating), string(res.FrictionRating), res.EquivalentLengthFt,
				res.TotalPressureDropInWc, strings.Join(res.Warnings, "; "), "",
			)
		} else {
			values = append(values, "", "", "", "", "", "", "", "", "", "", row.Error)
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(row[i]))
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
