// pkg/analyzer/analyzer.go
package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/datainf-eval/noisegen/pkg/corrupt"
	"github.com/datainf-eval/noisegen/pkg/model"
	"github.com/datainf-eval/noisegen/pkg/policy"
)

// Classification is the coarse post-hoc category assigned to a changed record.
type Classification string

const (
	ClassTypoLike     Classification = "typo_like"
	ClassGrammarLike  Classification = "grammar_like"
	ClassSemanticLike Classification = "semantic_like"
	ClassQualityLike  Classification = "quality_like"
)

// LabelWarning flags a protected label column that differs between the
// original and corrupted table. Outside explicit flip mode this must never
// happen; any occurrence is a hard warning regardless of heuristics.
type LabelWarning struct {
	RowIndex       int
	Column         string
	OriginalValue  interface{}
	CorruptedValue interface{}
}

// Report is the structured outcome of comparing a corrupted table against
// its original.
type Report struct {
	Dataset            string
	TotalRows          int
	SelectedCount      int
	TextColumnChanges  map[string]int
	LabelColumnChanges map[string]int
	ActualChanges      int     // rows with at least one text-column difference
	MeanLengthDelta    float64 // mean signed character-length delta across text columns of changed rows
	Classifications    map[Classification]int
	LabelWarnings      []LabelWarning
}

// Analyzer compares original/corrupted table pairs.
type Analyzer struct {
	logger *zap.Logger
}

// New creates an Analyzer.
func New(logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Analyzer{logger: logger}, nil
}

// Analyze walks every row of both tables, counts per-column differences,
// classifies each changed record, and flags any protected-label difference.
// Analyzing a table against itself reports zero changes and zero delta.
func (a *Analyzer) Analyze(
	corrupted, original *model.Table,
	selectedIndices []int,
	pol policy.Policy,
) (*Report, error) {
	if corrupted == nil || original == nil {
		return nil, errors.New("both tables are required")
	}
	if corrupted.RowCount() != original.RowCount() {
		return nil, fmt.Errorf("row count mismatch: corrupted %d, original %d",
			corrupted.RowCount(), original.RowCount())
	}

	report := &Report{
		Dataset:            pol.Name,
		TotalRows:          original.RowCount(),
		SelectedCount:      len(selectedIndices),
		TextColumnChanges:  make(map[string]int),
		LabelColumnChanges: make(map[string]int),
		Classifications:    make(map[Classification]int),
	}

	deltaSum := 0
	for i := 0; i < original.RowCount(); i++ {
		rowDelta, changed := a.compareTextColumns(corrupted, original, i, pol, report)
		if changed {
			report.ActualChanges++
			deltaSum += rowDelta
			report.Classifications[classifyChange(corrupted, original, i, pol)]++
		}
		a.compareLabelColumns(corrupted, original, i, pol, report)
	}

	if report.ActualChanges > 0 {
		report.MeanLengthDelta = float64(deltaSum) / float64(report.ActualChanges)
	}

	a.logger.Info("Distribution analysis completed",
		zap.String("dataset", pol.Name),
		zap.Int("totalRows", report.TotalRows),
		zap.Int("actualChanges", report.ActualChanges),
		zap.Float64("meanLengthDelta", report.MeanLengthDelta),
		zap.Int("labelWarnings", len(report.LabelWarnings)))

	return report, nil
}

// compareTextColumns tallies per-column text differences for one row and
// returns the row's signed length delta plus whether anything changed.
func (a *Analyzer) compareTextColumns(
	corrupted, original *model.Table,
	i int,
	pol policy.Policy,
	report *Report,
) (int, bool) {
	delta := 0
	changed := false
	for _, col := range pol.TextColumns {
		if !original.HasColumn(col) || !corrupted.HasColumn(col) {
			continue
		}
		before := original.CellString(i, col)
		after := corrupted.CellString(i, col)
		if before == after {
			continue
		}
		changed = true
		report.TextColumnChanges[col]++
		delta += len([]rune(after)) - len([]rune(before))
	}
	return delta, changed
}

// compareLabelColumns records label differences as hard warnings.
func (a *Analyzer) compareLabelColumns(
	corrupted, original *model.Table,
	i int,
	pol policy.Policy,
	report *Report,
) {
	for _, col := range pol.LabelColumns {
		if !original.HasColumn(col) || !corrupted.HasColumn(col) {
			continue
		}
		origCell := original.Cell(i, col)
		corrCell := corrupted.Cell(i, col)
		if model.CellsEqual(origCell, corrCell) {
			continue
		}
		report.LabelColumnChanges[col]++
		report.LabelWarnings = append(report.LabelWarnings, LabelWarning{
			RowIndex:       i,
			Column:         col,
			OriginalValue:  origCell,
			CorruptedValue: corrCell,
		})
		a.logger.Warn("Protected label column changed",
			zap.String("dataset", pol.Name),
			zap.Int("row", i),
			zap.String("column", col))
	}
}

// classifyChange assigns a coarse category to a changed record:
// shrinking below half the original length looks like a quality degradation,
// a known off-topic fragment looks semantic, a forced contradiction looks
// grammatical, anything else is treated as typo-like surface noise.
func classifyChange(corrupted, original *model.Table, i int, pol policy.Policy) Classification {
	var beforeLen, afterLen int
	var afterText strings.Builder

	for _, col := range pol.TextColumns {
		if !original.HasColumn(col) || !corrupted.HasColumn(col) {
			continue
		}
		before := original.CellString(i, col)
		after := corrupted.CellString(i, col)
		beforeLen += len([]rune(before))
		afterLen += len([]rune(after))
		afterText.WriteString(after)
		afterText.WriteString(" ")
	}

	if afterLen*2 < beforeLen {
		return ClassQualityLike
	}

	combined := afterText.String()
	for _, fragment := range corrupt.IrrelevantFragments() {
		if strings.Contains(combined, fragment) {
			return ClassSemanticLike
		}
	}
	if strings.Contains(combined, corrupt.IncompleteMarker()) {
		return ClassQualityLike
	}
	if strings.Contains(combined, corrupt.ContradictionMarker()) {
		return ClassGrammarLike
	}
	return ClassTypoLike
}
