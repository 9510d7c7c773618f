// pkg/runner/job.go
package runner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunSpec describes one corruption run to perform
type RunSpec struct {
	ID        string    // Unique run identifier
	Dataset   string    // Dataset name (resolved against the policy registry)
	Ratio     float64   // Fraction of rows to corrupt
	Strategy  string    // Strategy profile name
	LabelFlip bool      // Corrupt labels instead of text
	Seed      int64     // RNG seed; 0 selects the fixed default
	OutFile   string    // Output filename; empty derives one from the parameters
	CreatedAt time.Time // Spec creation timestamp
}

// NewRunSpec creates a run spec with defaults
func NewRunSpec(dataset string, ratio float64) RunSpec {
	return RunSpec{
		ID:        uuid.New().String(),
		Dataset:   dataset,
		Ratio:     ratio,
		Strategy:  "balanced",
		CreatedAt: time.Now(),
	}
}

// WithStrategy sets the strategy profile and returns the modified spec
func (s RunSpec) WithStrategy(strategy string) RunSpec {
	s.Strategy = strategy
	return s
}

// WithLabelFlip enables label-flip mode and returns the modified spec
func (s RunSpec) WithLabelFlip() RunSpec {
	s.LabelFlip = true
	return s
}

// WithSeed sets the RNG seed and returns the modified spec
func (s RunSpec) WithSeed(seed int64) RunSpec {
	s.Seed = seed
	return s
}

// WithOutFile sets the output filename and returns the modified spec
func (s RunSpec) WithOutFile(name string) RunSpec {
	s.OutFile = name
	return s
}

// OutputName resolves the output filename, deriving one from the run
// parameters when none was set explicitly.
func (s RunSpec) OutputName() string {
	if s.OutFile != "" {
		return s.OutFile
	}
	mode := s.Strategy
	if s.LabelFlip {
		mode = "label_flip"
	}
	return fmt.Sprintf("%s_%s_%03d.json", s.Dataset, mode, int(s.Ratio*100))
}

// RunResult represents the outcome of one corruption run
type RunResult struct {
	SpecID        string
	Dataset       string
	Success       bool
	TotalRows     int
	CorruptedRows int
	Operations    int
	FallbackCount int
	NotFlippable  int
	OutputPath    string
	Warnings      []string
	Err           error
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

// NewRunResult initializes a result for a spec
func NewRunResult(spec RunSpec) *RunResult {
	return &RunResult{
		SpecID:    spec.ID,
		Dataset:   spec.Dataset,
		StartTime: time.Now(),
		Warnings:  make([]string, 0),
	}
}

// Complete marks the run as complete and calculates duration
func (r *RunResult) Complete(success bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = success
}

// Fail records the error and completes the result
func (r *RunResult) Fail(err error) {
	r.Err = err
	r.Complete(false)
}

// AddWarning adds a warning to the result
func (r *RunResult) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

// Summary aggregates the results of a batch of runs
type Summary struct {
	TotalRuns      int
	SuccessfulRuns int
	FailedRuns     []string // spec IDs
	TotalRows      int
	CorruptedRows  int
	TotalFallbacks int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// NewSummary initializes a batch summary
func NewSummary() *Summary {
	return &Summary{
		StartTime:  time.Now(),
		FailedRuns: make([]string, 0),
	}
}

// AddResult incorporates one run result into the summary
func (s *Summary) AddResult(result *RunResult) {
	s.TotalRuns++
	if result.Success {
		s.SuccessfulRuns++
		s.TotalRows += result.TotalRows
		s.CorruptedRows += result.CorruptedRows
		s.TotalFallbacks += result.FallbackCount
	} else {
		s.FailedRuns = append(s.FailedRuns, result.SpecID)
	}
}

// Complete marks the batch as complete and calculates duration
func (s *Summary) Complete() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// SuccessRate returns the percentage of runs that succeeded
func (s *Summary) SuccessRate() float64 {
	if s.TotalRuns == 0 {
		return 0
	}
	return float64(s.SuccessfulRuns) / float64(s.TotalRuns) * 100
}
