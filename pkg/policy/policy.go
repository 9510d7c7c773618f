// pkg/policy/policy.go
package policy

import (
	"errors"
	"fmt"
)

// ErrUnknownDataset is returned when a dataset name has no registered policy.
// This is a configuration error: callers must fail fast, no partial corruption.
var ErrUnknownDataset = errors.New("policy: unknown dataset name")

// Policy declares, per dataset, which columns are corruptible text and which
// are protected labels. Dataset-specific behavior lives here as data; nothing
// else in the repository branches on a dataset name.
type Policy struct {
	// Name identifies the dataset (registry key).
	Name string

	// TextColumns are the corruption candidates, in declaration order.
	TextColumns []string

	// LabelColumns must be preserved byte-for-byte unless label-flip mode
	// is explicitly active.
	LabelColumns []string

	// PreserveLabels is true when LabelColumns must survive text corruption
	// untouched.
	PreserveLabels bool

	// SupportsLabelFlip is true when the dataset carries a discrete label
	// with a defined flip bijection.
	SupportsLabelFlip bool

	// LabelFlip maps a label value to its flipped counterpart. Values are
	// compared and stored in string form. Empty unless SupportsLabelFlip.
	LabelFlip map[string]string

	// LengthColumn is the text column whose character length drives quartile
	// stratification when no label column exists.
	LengthColumn string

	// OutputColumn is the answer-bearing text column, the only one eligible
	// for cross-record replacement.
	OutputColumn string

	// ColumnWeights holds per-text-column selection weights used when no
	// label column constrains the choice; output-like columns are favored.
	// Keys are TextColumns entries; weights need not sum to 1.
	ColumnWeights map[string]float64
}

// HasLabels reports whether the policy declares any label column.
func (p Policy) HasLabels() bool {
	return len(p.LabelColumns) > 0
}

// FirstLabelColumn returns the stratification label column, or "" when the
// dataset has none.
func (p Policy) FirstLabelColumn() string {
	if len(p.LabelColumns) == 0 {
		return ""
	}
	return p.LabelColumns[0]
}

// FlipLabel applies the bijection to a label value in string form.
// The second result is false when the value is outside the bijection's
// domain, in which case the label must be left unchanged.
func (p Policy) FlipLabel(value string) (string, bool) {
	if !p.SupportsLabelFlip {
		return value, false
	}
	flipped, ok := p.LabelFlip[value]
	return flipped, ok
}

// Validate checks internal consistency of a policy definition.
func (p Policy) Validate() error {
	if p.Name == "" {
		return errors.New("policy: name cannot be empty")
	}
	if len(p.TextColumns) == 0 {
		return fmt.Errorf("policy %s: at least one text column is required", p.Name)
	}
	if p.SupportsLabelFlip {
		if len(p.LabelColumns) == 0 {
			return fmt.Errorf("policy %s: label flip requires a label column", p.Name)
		}
		if len(p.LabelFlip) == 0 {
			return fmt.Errorf("policy %s: label flip requires a bijection", p.Name)
		}
		// The mapping must be bijective: no two keys share a target.
		seen := make(map[string]string, len(p.LabelFlip))
		for from, to := range p.LabelFlip {
			if prev, dup := seen[to]; dup {
				return fmt.Errorf("policy %s: labels %s and %s both flip to %s", p.Name, prev, from, to)
			}
			seen[to] = from
		}
	}
	if p.LengthColumn != "" && !containsString(p.TextColumns, p.LengthColumn) {
		return fmt.Errorf("policy %s: length column %s is not a text column", p.Name, p.LengthColumn)
	}
	if p.OutputColumn != "" && !containsString(p.TextColumns, p.OutputColumn) {
		return fmt.Errorf("policy %s: output column %s is not a text column", p.Name, p.OutputColumn)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
