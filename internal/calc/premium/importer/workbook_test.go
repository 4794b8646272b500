package importer

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	duct "Ductwork/internal/calc/duct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	header := make([]any, 0, len(Columns))
	for _, c := range Columns {
		header = append(header, c)
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImport(t *testing.T) {
	data := workbook(t,
		[]any{"duct-size", "round", "galvanized", 400, 0.1, 1200, "", "", "", 100, 2},
		[]any{"Friction", "Round", "Flexible", 400, "", "", 8, "", "", 50, 0},
		[]any{"airflow", "rectangular", "galvanized", "", 0.1, 1200, "", 12, 8, 100, 1},
		[]any{"duct-size", "round", "galvanized", "lots", 0.1, 1200, "", "", "", 100, 0},
		[]any{"duct-size", "round", "copper", 400, 0.1, 1200, "", "", "", 100, 0},
		[]any{"", "", "", "", "", "", "", "", "", "", ""},
	)

	res, err := Import(duct.Default(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "row 5")
	assert.Contains(t, res.Errors[1], "row 6")

	assert.Equal(t, 8.0, res.Rows[0].Result.RoundDiameterIn)
	assert.InDelta(t, 0.15, res.Rows[0].Result.TotalPressureDropInWc, 1e-12)
	assert.Equal(t, duct.ModeFriction, res.Rows[1].Input.Mode)
	assert.Equal(t, "flexible", res.Rows[1].Result.Material)
	assert.InDelta(t, 725.0, res.Rows[2].Result.AirflowCFM, 0.5)
	assert.Equal(t, 4, res.Rows[2].Line)
}

func TestImportRejectsEmptyAndGarbage(t *testing.T) {
	_, err := Import(duct.Default(), bytes.NewReader(workbook(t)))
	assert.EqualError(t, err, "empty sheet")

	_, err = Import(duct.Default(), strings.NewReader("not a workbook"))
	assert.Error(t, err)
}

func TestParseDuctRowFractionalFittings(t *testing.T) {
	_, err := parseDuctRow([]string{"duct-size", "round", "galvanized", "400", "0.1", "1200", "", "", "", "100", "1.5"})
	assert.ErrorContains(t, err, "fittings")
}

func TestWriteResultsRoundTrip(t *testing.T) {
	calc := duct.Default()
	in := duct.Input{
		Mode: duct.ModeDuctSize, Shape: duct.ShapeRound, Material: "galvanized",
		AirflowCFM: 400, FrictionRate: 0.1, VelocityLimitFPM: 1200, DuctLengthFt: 100,
	}
	res, err := calc.Calculate(in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, []Row{
		{Line: 2, Input: in, Result: &res},
		{Line: 3, Input: duct.Input{Mode: duct.ModeAirflow}, Error: "invalid material"},
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Results", f.GetSheetName(0))
	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "mode", rows[0][0])
	assert.Equal(t, "error", rows[0][len(rows[0])-1])
	assert.Equal(t, "8", rows[1][len(Columns)])
	assert.Equal(t, "10x6", rows[1][len(Columns)+1])
	assert.Equal(t, "invalid material", rows[2][len(rows[2])-1])
}

func TestHandlerDuctUpload(t *testing.T) {
	data := workbook(t, []any{"duct-size", "round", "galvanized", 400, 0.1, 1200, "", "", "", 100, 2})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "ducts.xlsx")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	(&Handler{Engine: duct.Default()}).Duct(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = httptest.NewRecorder()
	(&Handler{Engine: duct.Default()}).Duct(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerExport(t *testing.T) {
	body := `{"items":[{"mode":"duct-size","shape":"round","material":"galvanized","airflow_cfm":400,"friction_rate":0.1,"velocity_limit_fpm":1200,"duct_length_ft":100}]}`
	rec := httptest.NewRecorder()
	(&Handler{Engine: duct.Default()}).Export(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
