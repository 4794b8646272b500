package batch

import (
	"encoding/json"
	"net/http"

	duct "Ductwork/internal/calc/duct"
)

type Handler struct {
	Engine *duct.Calculator
}

func (h *Handler) Duct(w http.ResponseWriter, r *http.Request) {
	var input DuctBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateDuct(h.Engine, input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
