package duct

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	Engine *Calculator
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Engine.Calculate(input)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Engine.Materials)
}

func (h *Handler) Sizes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Engine.Sizes)
}

// Chart serves the duct size vs. airflow curves. The optional material
// query parameter selects the roughness; galvanized steel otherwise.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("material")
	if id == "" {
		id = DefaultMaterialID
	}
	mat, ok := FindMaterial(h.Engine.Materials, id)
	if !ok {
		http.Error(w, "Unknown material", http.StatusBadRequest)
		return
	}
	rates := ChartFrictionRates
	if q := r.URL.Query()["rate"]; len(q) > 0 {
		rates = make([]float64, 0, len(q))
		for _, s := range q {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				http.Error(w, "Invalid rate", http.StatusBadRequest)
				return
			}
			rates = append(rates, f)
		}
	}
	series, err := FrictionChart(ChartDiameters, rates, mat.Roughness)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, series)
}

// WriteError maps calculation errors onto HTTP status codes.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNonFinite):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.WithError(err).Error("duct calculation failed")
		http.Error(w, "Calculation error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("write response")
	}
}
