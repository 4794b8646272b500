package importer

import (
	"encoding/json"
	"net/http"

	duct "Ductwork/internal/calc/duct"
	log "github.com/sirupsen/logrus"
)

const maxUploadSize = 10 << 20

type Handler struct {
	Engine *duct.Calculator
}

func (h *Handler) Duct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := Import(h.Engine, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.WithFields(log.Fields{"count": res.Count, "skipped": res.Skipped}).Info("duct workbook imported")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

type ExportInput struct {
	Items []duct.Input `json:"items"`
}

// Export calculates every item and returns the rows as an xlsx workbook.
// Items that fail keep their error in the workbook instead of aborting.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input ExportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.Items) == 0 {
		http.Error(w, "no items", http.StatusBadRequest)
		return
	}
	rows := make([]Row, 0, len(input.Items))
	for i, in := range input.Items {
		row := Row{Line: i + 2, Input: in}
		if res, err := h.Engine.Calculate(in); err != nil {
			row.Error = err.Error()
		} else {
			row.Result = &res
		}
		rows = append(rows, row)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"duct-results.xlsx\"")
	if err := WriteResults(w, rows); err != nil {
		log.WithError(err).Error("write duct workbook")
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}
