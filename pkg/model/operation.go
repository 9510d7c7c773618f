// pkg/model/operation.go
package model

import (
	"time"
)

// CorruptionOperation is the audit record for a single mutation performed by
// the injector. One is emitted per touched cell, including forced fallback
// mutations and label flips, so a run can be reconstructed afterwards.
type CorruptionOperation struct {
	Dataset   string      // Dataset policy name (e.g., "alpaca")
	RowIndex  int         // Index of the mutated row
	Column    string      // Column that was mutated
	Family    string      // Corruption family ("grammar", "semantic", "quality", "label_flip")
	Primitive string      // Primitive applied (e.g., "typos", "truncation", "fallback")
	Original  interface{} // Cell value before mutation (may be nil)
	NewValue  interface{} // Cell value after mutation
	Reason    string      // Why the mutation happened (e.g., "strategy_draw", "no_observable_change")
	AppliedAt time.Time   // When the mutation occurred
}

// NewCorruptionOperation creates an operation record with the current timestamp.
func NewCorruptionOperation(dataset string, rowIndex int, column, family, primitive string) CorruptionOperation {
	return CorruptionOperation{
		Dataset:   dataset,
		RowIndex:  rowIndex,
		Column:    column,
		Family:    family,
		Primitive: primitive,
		AppliedAt: time.Now(),
	}
}

// WithValues attaches the before/after cell values and returns the record.
func (op CorruptionOperation) WithValues(original, newValue interface{}) CorruptionOperation {
	op.Original = original
	op.NewValue = newValue
	return op
}

// WithReason attaches a reason string and returns the record.
func (op CorruptionOperation) WithReason(reason string) CorruptionOperation {
	op.Reason = reason
	return op
}
