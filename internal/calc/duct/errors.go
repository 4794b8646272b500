package duct

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is matched by every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNonFinite is returned when a formula overflows or otherwise
	// produces NaN or Inf from inputs that passed validation.
	ErrNonFinite = errors.New("calculation produced a non-finite value")
)

// InvalidInputError names the offending field for a rejected calculation.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %g", e.Field, e.Value)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field string, v float64) error {
	return &InvalidInputError{Field: field, Value: v}
}

// requirePositive fails closed on zero, negative, NaN and Inf operands.
func requirePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalid(field, v)
	}
	return nil
}

func finite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	return nil
}
