package batch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	duct "Ductwork/internal/calc/duct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(airflow float64) duct.Input {
	return duct.Input{
		Mode:             duct.ModeDuctSize,
		Shape:            duct.ShapeRound,
		Material:         "galvanized",
		AirflowCFM:       airflow,
		FrictionRate:     0.1,
		VelocityLimitFPM: 1200,
		DuctLengthFt:     100,
	}
}

func TestCalculateDuct(t *testing.T) {
	res, err := CalculateDuct(duct.Default(), DuctBatchInput{Items: []duct.Input{item(400), item(1200)}})
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, 8.0, res.Results[0].RoundDiameterIn)
	assert.Greater(t, res.Results[1].RoundDiameterIn, res.Results[0].RoundDiameterIn)
}

func TestCalculateDuctErrors(t *testing.T) {
	_, err := CalculateDuct(duct.Default(), DuctBatchInput{})
	assert.EqualError(t, err, "no items")

	_, err = CalculateDuct(duct.Default(), DuctBatchInput{Items: []duct.Input{item(400), item(0)}})
	require.Error(t, err)
	assert.ErrorIs(t, err, duct.ErrInvalidInput)
	assert.Contains(t, err.Error(), "item 1")
}

func TestHandlerDuct(t *testing.T) {
	h := &Handler{Engine: duct.Default()}

	rec := httptest.NewRecorder()
	body := `{"items":[{"mode":"friction","shape":"round","material":"galvanized","airflow_cfm":400,"round_diameter_in":8,"duct_length_ft":100}]}`
	h.Duct(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"friction_rating":"good"`)

	rec = httptest.NewRecorder()
	h.Duct(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
