// pkg/policy/registry.go
package policy

import (
	"fmt"
	"sort"
)

// builtins holds the four supported dataset policies. The registry is
// read-only lookup state; nothing in the repository writes to it after init.
var builtins = map[string]Policy{
	"alpaca": {
		Name:           "alpaca",
		TextColumns:    []string{"instruction", "input", "output"},
		PreserveLabels: false,
		LengthColumn:   "instruction",
		OutputColumn:   "output",
		ColumnWeights: map[string]float64{
			"instruction": 0.35,
			"input":       0.10,
			"output":      0.55,
		},
	},
	"gsm8k": {
		Name:           "gsm8k",
		TextColumns:    []string{"question"},
		LabelColumns:   []string{"answer"},
		PreserveLabels: true,
		LengthColumn:   "question",
		OutputColumn:   "question",
	},
	"sst2": {
		Name:              "sst2",
		TextColumns:       []string{"sentence"},
		LabelColumns:      []string{"label"},
		PreserveLabels:    true,
		SupportsLabelFlip: true,
		LabelFlip:         map[string]string{"0": "1", "1": "0"},
		LengthColumn:      "sentence",
		OutputColumn:      "sentence",
	},
	"mrpc": {
		Name:              "mrpc",
		TextColumns:       []string{"sentence1", "sentence2"},
		LabelColumns:      []string{"label"},
		PreserveLabels:    true,
		SupportsLabelFlip: true,
		LabelFlip:         map[string]string{"0": "1", "1": "0"},
		LengthColumn:      "sentence1",
		OutputColumn:      "sentence2",
	},
}

// Lookup returns the policy registered for a dataset name.
// Unknown names return ErrUnknownDataset wrapped with the offending name.
func Lookup(name string) (Policy, error) {
	p, ok := builtins[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
	}
	return p, nil
}

// Names returns the registered dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
