package batch

import (
	"fmt"

	duct "Ductwork/internal/calc/duct"
)

type DuctBatchInput struct {
	Items []duct.Input `json:"items"`
}

type DuctBatchResult struct {
	Results []duct.Result `json:"results"`
}

// CalculateDuct runs every item through calc and stops at the first item
// that fails, naming its index.
func CalculateDuct(calc *duct.Calculator, in DuctBatchInput) (DuctBatchResult, error) {
	if len(in.Items) == 0 {
		return DuctBatchResult{}, fmt.Errorf("no items")
	}
	out := DuctBatchResult{Results: make([]duct.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := calc.Calculate(item)
		if err != nil {
			return DuctBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
