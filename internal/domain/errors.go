package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during aggregation.
var (
	// ErrInvalidScale indicates that the index scale is not 4 or 5.
	ErrInvalidScale = errors.New("index scale must be 4 or 5")

	// ErrWeightMismatch indicates that the weighting function returned a
	// different number of weights than there are records.
	ErrWeightMismatch = errors.New("weights and records length mismatch")

	// ErrEmptyColumn indicates that a required column key is empty.
	ErrEmptyColumn = errors.New("column key cannot be empty")

	// ErrNilTable indicates that a nil table was passed to an operation
	// that requires one.
	ErrNilTable = errors.New("table cannot be nil")
)

// WeightError reports a failure of the external weighting collaborator.
// It carries the record and weight counts so callers can diagnose
// positional misalignment.
type WeightError struct {
	// Records is the number of input records.
	Records int

	// Weights is the number of weights the collaborator returned.
	Weights int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for WeightError.
func (e *WeightError) Error() string {
	return fmt.Sprintf("weighting failed: records=%d, weights=%d, err=%v", e.Records, e.Weights, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is matching.
func (e *WeightError) Unwrap() error { return e.Err }
