// pkg/sampler/sampler.go
package sampler

import (
	"math/rand"
	"sort"

	"github.com/datainf-eval/noisegen/pkg/corrupt"
	"github.com/datainf-eval/noisegen/pkg/model"
	"github.com/datainf-eval/noisegen/pkg/policy"
)

// Select returns the row indices to corrupt, sorted ascending, with
// len == min(n, rows). Selection is stratified: label-bearing datasets are
// grouped by the first label column's value, label-free datasets by length
// quartile of the policy's length column. Each group contributes n/groups
// indices sampled without replacement; the remainder is filled uniformly from
// the unused rows. Given a fixed rng state and table, the selection is
// reproducible.
func Select(t *model.Table, n int, pol policy.Policy, rng *rand.Rand) []int {
	rows := t.RowCount()
	if n >= rows {
		all := make([]int, rows)
		for i := range all {
			all[i] = i
		}
		return all
	}
	if n <= 0 {
		return []int{}
	}

	var groups [][]int
	if col := pol.FirstLabelColumn(); col != "" && t.HasColumn(col) {
		groups = groupByLabel(t, col)
	} else {
		groups = groupByLengthQuartile(t, lengthColumn(t, pol))
	}

	selected := make([]int, 0, n)
	used := make([]bool, rows)
	quota := n / len(groups)

	for _, group := range groups {
		indices := append([]int(nil), group...)
		corrupt.ShuffleInts(indices, rng)
		take := quota
		if take > len(indices) {
			take = len(indices)
		}
		for _, i := range indices[:take] {
			selected = append(selected, i)
			used[i] = true
		}
	}

	// Fill the remainder uniformly from rows no group quota consumed.
	if need := n - len(selected); need > 0 {
		unused := make([]int, 0, rows-len(selected))
		for i := 0; i < rows; i++ {
			if !used[i] {
				unused = append(unused, i)
			}
		}
		corrupt.ShuffleInts(unused, rng)
		if need > len(unused) {
			need = len(unused)
		}
		selected = append(selected, unused[:need]...)
	}

	sort.Ints(selected)
	return selected
}

// groupByLabel buckets row indices by the label column's string value.
// Groups are ordered by first appearance so that map iteration order never
// influences the rng draw sequence.
func groupByLabel(t *model.Table, column string) [][]int {
	var order []string
	byValue := make(map[string][]int)

	for i := 0; i < t.RowCount(); i++ {
		v := t.CellString(i, column)
		if _, seen := byValue[v]; !seen {
			order = append(order, v)
		}
		byValue[v] = append(byValue[v], i)
	}

	groups := make([][]int, 0, len(order))
	for _, v := range order {
		groups = append(groups, byValue[v])
	}
	return groups
}

// groupByLengthQuartile buckets row indices into the four character-length
// quartile buckets (short/medium/long/very_long) of one text column.
func groupByLengthQuartile(t *model.Table, column string) [][]int {
	rows := t.RowCount()
	lengths := make([]int, rows)
	for i := 0; i < rows; i++ {
		lengths[i] = len([]rune(t.CellString(i, column)))
	}

	ordered := append([]int(nil), lengths...)
	sort.Ints(ordered)
	q1 := ordered[rows/4]
	q2 := ordered[rows/2]
	q3 := ordered[rows*3/4]

	groups := make([][]int, 4)
	for i, l := range lengths {
		switch {
		case l < q1:
			groups[0] = append(groups[0], i) // short
		case l < q2:
			groups[1] = append(groups[1], i) // medium
		case l < q3:
			groups[2] = append(groups[2], i) // long
		default:
			groups[3] = append(groups[3], i) // very_long
		}
	}
	return groups
}

// lengthColumn resolves the stratification column, falling back to the first
// text column the table actually carries.
func lengthColumn(t *model.Table, pol policy.Policy) string {
	if pol.LengthColumn != "" && t.HasColumn(pol.LengthColumn) {
		return pol.LengthColumn
	}
	for _, col := range pol.TextColumns {
		if t.HasColumn(col) {
			return col
		}
	}
	return ""
}
