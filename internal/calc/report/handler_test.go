package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	duct "Ductwork/internal/calc/duct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	in := Input{
		Project: "Office fit-out",
		Author:  "QA",
		Calculation: duct.Input{
			Mode: duct.ModeFriction, Shape: duct.ShapeRectangular, Material: "galvanized",
			AirflowCFM: 400, RectWidthIn: 12, RectHeightIn: 8, DuctLengthFt: 100, Fittings: 1,
		},
	}
	res, err := duct.Default().Calculate(in.Calculation)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, in, res, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestResultRows(t *testing.T) {
	res, err := duct.Default().Calculate(duct.Input{
		Mode: duct.ModeDuctSize, Shape: duct.ShapeRound, Material: "galvanized",
		AirflowCFM: 400, FrictionRate: 0.1, VelocityLimitFPM: 1200, DuctLengthFt: 100, Fittings: 2,
	})
	require.NoError(t, err)
	rows := resultRows(res)
	assert.Equal(t, [2]string{"Standard round size", "8 in"}, rows[1])
	assert.Equal(t, [2]string{"Rectangular equivalent", "10 x 6 in"}, rows[2])
	assert.Equal(t, [2]string{"Total pressure drop", "0.150 in.wc"}, rows[len(rows)-1])
}

func TestGenerate(t *testing.T) {
	h := &Handler{Engine: duct.Default(), Now: func() time.Time { return time.Unix(0, 0) }}

	body := `{"project":"P","calculation":{"mode":"airflow","shape":"round","material":"spiral","friction_rate":0.1,"velocity_limit_fpm":1200,"round_diameter_in":10,"duct_length_ft":40}}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"calculation":{"mode":"airflow"}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
