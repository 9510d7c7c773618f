// pkg/runner/runner.go
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/datainf-eval/noisegen/pkg/analyzer"
	"github.com/datainf-eval/noisegen/pkg/catalog"
	"github.com/datainf-eval/noisegen/pkg/corrupt"
	"github.com/datainf-eval/noisegen/pkg/injector"
	"github.com/datainf-eval/noisegen/pkg/loader"
	"github.com/datainf-eval/noisegen/pkg/policy"
)

// Runner executes corruption runs end to end: load the original dataset,
// inject noise, save the variant, and optionally record the run in the
// catalog. Runs within a batch execute strictly in order.
type Runner struct {
	loader  *loader.Loader
	catalog *catalog.Catalog // nil disables run recording
	logger  *zap.Logger
}

// New creates a Runner. The catalog is optional.
func New(ld *loader.Loader, cat *catalog.Catalog, logger *zap.Logger) (*Runner, error) {
	if ld == nil {
		return nil, errors.New("loader cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Runner{loader: ld, catalog: cat, logger: logger}, nil
}

// Run executes a single corruption run.
func (r *Runner) Run(ctx context.Context, spec RunSpec) *RunResult {
	result := NewRunResult(spec)

	r.logger.Info("Starting corruption run",
		zap.String("runID", spec.ID),
		zap.String("dataset", spec.Dataset),
		zap.Float64("ratio", spec.Ratio),
		zap.String("strategy", spec.Strategy),
		zap.Bool("labelFlip", spec.LabelFlip),
		zap.Int64("seed", spec.Seed))

	pol, err := policy.Lookup(spec.Dataset)
	if err != nil {
		result.Fail(err)
		return result
	}

	table, err := r.loader.Load(spec.Dataset)
	if err != nil {
		result.Fail(err)
		return result
	}

	inj, err := injector.New(spec.Seed, r.logger)
	if err != nil {
		result.Fail(err)
		return result
	}

	opts := injector.Options{LabelFlip: spec.LabelFlip}
	if !spec.LabelFlip {
		profile, err := corrupt.ProfileByName(spec.Strategy)
		if err != nil {
			result.Fail(err)
			return result
		}
		opts.Profile = profile
	}

	injected, err := inj.Inject(table, pol, spec.Ratio, opts)
	if err != nil {
		result.Fail(err)
		return result
	}

	path, err := r.loader.Save(injected.Table, spec.OutputName())
	if err != nil {
		result.Fail(err)
		return result
	}

	result.TotalRows = table.RowCount()
	result.CorruptedRows = len(injected.SelectedIndices)
	result.Operations = len(injected.Operations)
	result.FallbackCount = injected.FallbackCount
	result.NotFlippable = injected.NotFlippable
	result.OutputPath = path

	if injected.NotFlippable > 0 {
		result.AddWarning(fmt.Sprintf("%d labels were outside the flip mapping and kept as-is",
			injected.NotFlippable))
	}

	if r.catalog != nil {
		record := catalog.RunRecord{
			RunID:         spec.ID,
			Dataset:       spec.Dataset,
			Strategy:      spec.Strategy,
			Ratio:         spec.Ratio,
			Seed:          spec.Seed,
			LabelFlip:     spec.LabelFlip,
			TotalRows:     result.TotalRows,
			CorruptedRows: result.CorruptedRows,
			FallbackCount: result.FallbackCount,
			OutputPath:    path,
			CreatedAt:     time.Now(),
		}
		if err := r.catalog.RecordRun(ctx, record, injected.Operations); err != nil {
			// A catalog failure never invalidates the generated variant.
			result.AddWarning("catalog recording failed: " + err.Error())
			r.logger.Warn("Failed to record run in catalog",
				zap.String("runID", spec.ID),
				zap.Error(err))
		}
	}

	result.Complete(true)

	r.logger.Info("Corruption run completed",
		zap.String("runID", spec.ID),
		zap.String("output", path),
		zap.Int("corruptedRows", result.CorruptedRows),
		zap.Int("fallbacks", result.FallbackCount),
		zap.Duration("duration", result.Duration))

	return result
}

// RunAll executes a batch of runs sequentially and returns the per-run
// results with a batch summary. A failed run does not stop the batch.
func (r *Runner) RunAll(ctx context.Context, specs []RunSpec) ([]*RunResult, *Summary) {
	summary := NewSummary()
	results := make([]*RunResult, 0, len(specs))

	for _, spec := range specs {
		select {
		case <-ctx.Done():
			result := NewRunResult(spec)
			result.Fail(ctx.Err())
			results = append(results, result)
			summary.AddResult(result)
			continue
		default:
		}

		result := r.Run(ctx, spec)
		results = append(results, result)
		summary.AddResult(result)

		if !result.Success {
			r.logger.Error("Corruption run failed",
				zap.String("runID", spec.ID),
				zap.String("dataset", spec.Dataset),
				zap.Error(result.Err))
		}
	}

	summary.Complete()

	r.logger.Info("Batch completed",
		zap.Int("totalRuns", summary.TotalRuns),
		zap.Int("successfulRuns", summary.SuccessfulRuns),
		zap.Float64("successRate", summary.SuccessRate()),
		zap.Duration("duration", summary.Duration))

	return results, summary
}

// Analyze compares a generated variant against its original dataset.
func (r *Runner) Analyze(dataset, variantFile string) (*analyzer.Report, error) {
	pol, err := policy.Lookup(dataset)
	if err != nil {
		return nil, err
	}

	original, err := r.loader.Load(dataset)
	if err != nil {
		return nil, err
	}

	ext := len(variantFile) - len(".json")
	variantName := variantFile
	if ext > 0 && variantFile[ext:] == ".json" {
		variantName = variantFile[:ext]
	}
	variant, err := r.loader.Load(variantName)
	if err != nil {
		return nil, err
	}

	an, err := analyzer.New(r.logger)
	if err != nil {
		return nil, err
	}
	return an.Analyze(variant, original, nil, pol)
}
