// pkg/injector/injector.go
package injector

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"go.uber.org/zap"

	"github.com/datainf-eval/noisegen/pkg/corrupt"
	"github.com/datainf-eval/noisegen/pkg/model"
	"github.com/datainf-eval/noisegen/pkg/policy"
	"github.com/datainf-eval/noisegen/pkg/sampler"
)

var (
	// ErrInvalidRatio indicates a corruption ratio outside [0, 1].
	ErrInvalidRatio = errors.New("injector: corruption ratio must be within [0, 1]")

	// ErrFlipUnsupported indicates label-flip mode requested for a dataset
	// whose policy declares no flip bijection. This is rejected outright
	// rather than silently degraded to text corruption: an experiment that
	// asked for flipped labels must never receive text noise instead.
	ErrFlipUnsupported = errors.New("injector: label flip is not supported by this dataset policy")

	// ErrNoTextColumns indicates a table that carries none of the policy's
	// text columns.
	ErrNoTextColumns = errors.New("injector: table has no corruptible text columns for this policy")
)

// Options selects the corruption mode for a run.
type Options struct {
	// Profile is the strategy weighting across text corruption families.
	// A zero Profile defaults to "balanced". Ignored when LabelFlip is set.
	Profile corrupt.Profile

	// LabelFlip corrupts labels via the policy bijection instead of text.
	LabelFlip bool
}

// Result is the outcome of one injection run. Table is a corrupted deep copy;
// the input table is never mutated.
type Result struct {
	Table           *model.Table
	SelectedIndices []int
	Operations      []model.CorruptionOperation
	FamilyCounts    map[corrupt.Family]int
	FallbackCount   int // times the guaranteed fallback mutation fired
	NotFlippable    int // labels outside the bijection domain (flip mode)
}

// Injector drives sampling, family selection, primitive application,
// post-condition verification and forced fallback for one table at a time.
// It owns the run's RNG seed; the same seed, table, and parameters produce
// identical selected indices and identical corrupted values.
type Injector struct {
	seed   int64
	logger *zap.Logger
}

// New creates an Injector. Seed 0 selects the fixed default seed.
func New(seed int64, logger *zap.Logger) (*Injector, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Injector{seed: seed, logger: logger}, nil
}

// Inject corrupts floor(ratio * rows) records of the table under the given
// policy and returns the corrupted copy together with the selected indices.
//
// Configuration problems (ratio out of range, malformed profile, label flip
// on a non-flippable policy) fail fast before any corruption is performed.
// After a successful text-mode run, every selected record differs from the
// original in at least one text column, enforced by the fallback mutation.
func (inj *Injector) Inject(t *model.Table, pol policy.Policy, ratio float64, opts Options) (*Result, error) {
	if t == nil {
		return nil, errors.New("table cannot be nil")
	}
	if ratio < 0 || ratio > 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRatio, ratio)
	}
	if err := pol.Validate(); err != nil {
		return nil, err
	}
	if opts.LabelFlip && !pol.SupportsLabelFlip {
		return nil, fmt.Errorf("%w: %s", ErrFlipUnsupported, pol.Name)
	}
	if !opts.LabelFlip {
		if opts.Profile.Weights == nil {
			opts.Profile, _ = corrupt.ProfileByName("balanced")
		}
		if err := opts.Profile.Validate(); err != nil {
			return nil, err
		}
	}
	textCols := presentTextColumns(pol, t)
	if len(textCols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTextColumns, pol.Name)
	}

	rng := corrupt.NewRand(inj.seed)
	nCorrupt := int(ratio * float64(t.RowCount()))

	inj.logger.Info("Starting noise injection",
		zap.String("dataset", pol.Name),
		zap.Float64("ratio", ratio),
		zap.Int("totalRows", t.RowCount()),
		zap.Int("targetRows", nCorrupt),
		zap.Bool("labelFlip", opts.LabelFlip),
		zap.String("strategy", opts.Profile.Name))

	corrupted := t.Clone()
	indices := sampler.Select(t, nCorrupt, pol, rng)

	result := &Result{
		Table:           corrupted,
		SelectedIndices: indices,
		FamilyCounts:    make(map[corrupt.Family]int),
	}

	// Strictly sequential, index-ascending traversal: the rng draw order is
	// part of the reproducibility contract.
	for _, idx := range indices {
		if opts.LabelFlip {
			inj.flipLabels(corrupted, idx, pol, result)
			continue
		}
		inj.corruptRow(t, corrupted, idx, pol, textCols, opts.Profile, rng, result)
	}

	inj.logger.Info("Noise injection completed",
		zap.String("dataset", pol.Name),
		zap.Int("selected", len(indices)),
		zap.Int("operations", len(result.Operations)),
		zap.Int("fallbacks", result.FallbackCount),
		zap.Int("notFlippable", result.NotFlippable))

	return result, nil
}

// corruptRow applies one drawn corruption family to one row, then verifies
// the row observably changed and forces a fallback mutation when it did not.
func (inj *Injector) corruptRow(
	original, corrupted *model.Table,
	idx int,
	pol policy.Policy,
	textCols []string,
	profile corrupt.Profile,
	rng *rand.Rand,
	result *Result,
) {
	snapshot := original.CloneRow(idx)
	family := profile.Draw(rng)
	column := chooseTextColumn(pol, textCols, rng)

	ctx := corrupt.Context{
		Original:   original,
		RowIndex:   idx,
		Column:     column,
		OutputLike: column == pol.OutputColumn,
	}

	before := corrupted.CellString(idx, column)
	applied := corrupt.ApplyFamily(family, before, ctx, rng)
	corrupted.SetCell(idx, column, applied.Text)

	// Never trust a primitive not to have touched a protected column.
	restoreLabels(corrupted, idx, snapshot, pol)

	result.FamilyCounts[family]++
	for _, prim := range applied.Primitives {
		result.Operations = append(result.Operations,
			model.NewCorruptionOperation(pol.Name, idx, column, string(family), prim).
				WithValues(before, applied.Text).
				WithReason("strategy_draw"))
	}

	if rowTextChanged(original, corrupted, idx, textCols) {
		return
	}

	// The drawn primitives landed on a no-op (short-circuit case or identity
	// shuffle). Force a change on the same targeted column so the reported
	// family always matches the mutated column.
	current := corrupted.CellString(idx, column)
	forced := corrupt.ForceFallback(current)
	corrupted.SetCell(idx, column, forced)
	restoreLabels(corrupted, idx, snapshot, pol)

	result.FallbackCount++
	result.Operations = append(result.Operations,
		model.NewCorruptionOperation(pol.Name, idx, column, string(family), "fallback").
			WithValues(current, forced).
			WithReason("no_observable_change"))

	inj.logger.Debug("Applied fallback mutation",
		zap.String("dataset", pol.Name),
		zap.Int("row", idx),
		zap.String("column", column))
}

// flipLabels applies the policy bijection to every label column of one row.
// Labels outside the bijection domain are left unchanged and counted.
func (inj *Injector) flipLabels(corrupted *model.Table, idx int, pol policy.Policy, result *Result) {
	for _, col := range pol.LabelColumns {
		if !corrupted.HasColumn(col) {
			continue
		}
		original := corrupted.Cell(idx, col)
		value := model.CellToString(original)

		flipped, ok := pol.FlipLabel(value)
		if !ok {
			result.NotFlippable++
			continue
		}

		corrupted.SetCell(idx, col, flippedCell(original, flipped))
		result.FamilyCounts[corrupt.FamilyLabelFlip]++
		result.Operations = append(result.Operations,
			model.NewCorruptionOperation(pol.Name, idx, col, string(corrupt.FamilyLabelFlip), "bijection").
				WithValues(original, flipped).
				WithReason("label_flip_mode"))
	}
}

// flippedCell keeps the flipped label in the original cell's type: numeric
// labels stay numeric so a JSON round-trip does not change the column type.
func flippedCell(original interface{}, flipped string) interface{} {
	if _, isNumber := original.(float64); isNumber {
		if f, err := strconv.ParseFloat(flipped, 64); err == nil {
			return f
		}
	}
	return flipped
}

// restoreLabels copies every protected label column back from the snapshot.
func restoreLabels(corrupted *model.Table, idx int, snapshot model.Row, pol policy.Policy) {
	if !pol.PreserveLabels {
		return
	}
	for _, col := range pol.LabelColumns {
		if corrupted.HasColumn(col) {
			corrupted.SetCell(idx, col, snapshot[col])
		}
	}
}

// rowTextChanged reports whether at least one text column differs between the
// original and corrupted row.
func rowTextChanged(original, corrupted *model.Table, idx int, textCols []string) bool {
	for _, col := range textCols {
		if original.CellString(idx, col) != corrupted.CellString(idx, col) {
			return true
		}
	}
	return false
}

// presentTextColumns filters the policy's text columns down to those the
// table actually carries.
func presentTextColumns(pol policy.Policy, t *model.Table) []string {
	cols := make([]string, 0, len(pol.TextColumns))
	for _, col := range pol.TextColumns {
		if t.HasColumn(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// chooseTextColumn picks the column a family will mutate. Label-preserving
// policies draw uniformly; label-free policies use the per-column selection
// weights, which favor output-like columns.
func chooseTextColumn(pol policy.Policy, textCols []string, rng *rand.Rand) string {
	if len(textCols) == 1 {
		return textCols[0]
	}
	if pol.PreserveLabels || len(pol.ColumnWeights) == 0 {
		return textCols[rng.Intn(len(textCols))]
	}

	total := 0.0
	for _, col := range textCols {
		total += pol.ColumnWeights[col]
	}
	if total <= 0 {
		return textCols[rng.Intn(len(textCols))]
	}

	r := rng.Float64() * total
	acc := 0.0
	for _, col := range textCols {
		acc += pol.ColumnWeights[col]
		if r < acc {
			return col
		}
	}
	return textCols[len(textCols)-1]
}
