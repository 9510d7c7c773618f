// pkg/runner/runner_test.go
package runner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/datainf-eval/noisegen/pkg/loader"
	"github.com/datainf-eval/noisegen/pkg/model"
)

func newRunner(t *testing.T) (*Runner, *loader.Loader) {
	t.Helper()
	ld, err := loader.New(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	r, err := New(ld, nil, zap.NewNop())
	require.NoError(t, err)
	return r, ld
}

func seedAlpaca(t *testing.T, ld *loader.Loader, n int) {
	t.Helper()
	rows := make([]model.Row, n)
	for i := range rows {
		rows[i] = model.Row{
			"instruction": fmt.Sprintf("Summarize the plot of book number %d in two sentences.", i),
			"input":       "",
			"output":      fmt.Sprintf("Book %d follows a detective through a long case. The ending ties every thread together.", i),
		}
	}
	table, err := model.NewTable([]string{"instruction", "input", "output"}, rows)
	require.NoError(t, err)

	_, err = ld.Save(table, "alpaca.json")
	require.NoError(t, err)
}

func TestRunGeneratesVariant(t *testing.T) {
	r, ld := newRunner(t)
	seedAlpaca(t, ld, 10)

	spec := NewRunSpec("alpaca", 0.5).WithSeed(42)
	result := r.Run(context.Background(), spec)

	require.NoError(t, result.Err)
	require.True(t, result.Success)
	assert.Equal(t, 10, result.TotalRows)
	assert.Equal(t, 5, result.CorruptedRows)
	assert.FileExists(t, result.OutputPath)

	variant, err := ld.Load("alpaca_balanced_050")
	require.NoError(t, err)
	assert.Equal(t, 10, variant.RowCount())
}

func TestRunIsReproducible(t *testing.T) {
	r, ld := newRunner(t)
	seedAlpaca(t, ld, 8)

	first := r.Run(context.Background(), NewRunSpec("alpaca", 0.5).WithSeed(7).WithOutFile("a.json"))
	require.True(t, first.Success)
	second := r.Run(context.Background(), NewRunSpec("alpaca", 0.5).WithSeed(7).WithOutFile("b.json"))
	require.True(t, second.Success)

	a, err := ld.Load("a")
	require.NoError(t, err)
	b, err := ld.Load("b")
	require.NoError(t, err)

	aBytes, err := model.MarshalRecords(a)
	require.NoError(t, err)
	bBytes, err := model.MarshalRecords(b)
	require.NoError(t, err)
	assert.Equal(t, aBytes, bBytes)
}

func TestRunUnknownDatasetFails(t *testing.T) {
	r, _ := newRunner(t)

	result := r.Run(context.Background(), NewRunSpec("imagenet", 0.1))
	assert.False(t, result.Success)
	assert.Error(t, result.Err)
}

func TestRunMissingDataFileFails(t *testing.T) {
	r, _ := newRunner(t)

	result := r.Run(context.Background(), NewRunSpec("alpaca", 0.1))
	assert.False(t, result.Success)
	assert.Error(t, result.Err)
}

func TestRunAllContinuesPastFailures(t *testing.T) {
	r, ld := newRunner(t)
	seedAlpaca(t, ld, 6)

	specs := []RunSpec{
		NewRunSpec("alpaca", 0.5).WithSeed(1).WithOutFile("good.json"),
		NewRunSpec("gsm8k", 0.5), // no gsm8k.json in the data dir
	}

	results, summary := r.RunAll(context.Background(), specs)
	require.Len(t, results, 2)

	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, 2, summary.TotalRuns)
	assert.Equal(t, 1, summary.SuccessfulRuns)
	assert.Equal(t, 50.0, summary.SuccessRate())
}

func TestAnalyzeVariantAgainstOriginal(t *testing.T) {
	r, ld := newRunner(t)
	seedAlpaca(t, ld, 6)

	run := r.Run(context.Background(), NewRunSpec("alpaca", 1.0).WithSeed(3).WithOutFile("noisy.json"))
	require.True(t, run.Success)

	report, err := r.Analyze("alpaca", "noisy.json")
	require.NoError(t, err)

	assert.Equal(t, 6, report.TotalRows)
	assert.Equal(t, 6, report.ActualChanges)
	assert.Empty(t, report.LabelWarnings)
}
