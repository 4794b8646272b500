package autodesign

import (
	"encoding/json"
	"errors"
	"net/http"

	duct "Ductwork/internal/calc/duct"
)

type Handler struct {
	Engine *duct.Calculator
}

func (h *Handler) Rect(w http.ResponseWriter, r *http.Request) {
	var input RectAutoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := SelectRect(h.Engine, input)
	if errors.Is(err, ErrNoFit) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		duct.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
