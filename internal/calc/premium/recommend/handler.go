package recommend

import (
	"encoding/json"
	"net/http"

	"Ductwork/internal/calc/duct"
)

type Handler struct {
	Engine *duct.Calculator
}

func (h *Handler) Material(w http.ResponseWriter, r *http.Request) {
	var input MaterialRecommendInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Materials(h.Engine, input)
	if err != nil {
		duct.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
