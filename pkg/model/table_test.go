// pkg/model/table_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		[]string{"instruction", "output"},
		[]Row{
			{"instruction": "Explain gravity.", "output": "Gravity pulls masses together."},
			{"instruction": "Name a color.", "output": "Blue."},
		},
	)
	require.NoError(t, err)
	return table
}

func TestNewTableValidation(t *testing.T) {
	_, err := NewTable(nil, nil)
	assert.Error(t, err)

	_, err = NewTable([]string{"a", "a"}, nil)
	assert.Error(t, err)
}

func TestTableAccessors(t *testing.T) {
	table := sampleTable(t)

	assert.Equal(t, 2, table.RowCount())
	assert.True(t, table.HasColumn("output"))
	assert.False(t, table.HasColumn("label"))
	assert.Equal(t, "Blue.", table.CellString(1, "output"))
	assert.Equal(t, []string{"instruction", "output"}, table.Columns())
}

func TestCloneIsDeep(t *testing.T) {
	table := sampleTable(t)
	clone := table.Clone()

	clone.SetCell(0, "output", "changed")

	assert.Equal(t, "Gravity pulls masses together.", table.CellString(0, "output"))
	assert.Equal(t, "changed", clone.CellString(0, "output"))
}

func TestCloneRowIsDetached(t *testing.T) {
	table := sampleTable(t)
	row := table.CloneRow(0)

	row["output"] = "mutated"

	assert.Equal(t, "Gravity pulls masses together.", table.CellString(0, "output"))
}
