// cmd/noisegen/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/datainf-eval/noisegen/pkg/analyzer"
	"github.com/datainf-eval/noisegen/pkg/catalog"
	"github.com/datainf-eval/noisegen/pkg/config"
	"github.com/datainf-eval/noisegen/pkg/corrupt"
	"github.com/datainf-eval/noisegen/pkg/loader"
	"github.com/datainf-eval/noisegen/pkg/policy"
	"github.com/datainf-eval/noisegen/pkg/runner"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	var (
		dataset  = flag.String("dataset", "", "dataset to corrupt: "+strings.Join(policy.Names(), ", "))
		ratio    = flag.Float64("ratio", -1, "fraction of rows to corrupt (overrides NOISEGEN_CORRUPTION_RATE)")
		strategy = flag.String("strategy", "", "strategy profile: "+strings.Join(corrupt.ProfileNames(), ", "))
		flip     = flag.Bool("flip", false, "flip labels instead of corrupting text")
		seed     = flag.Int64("seed", 0, "RNG seed; 0 selects the fixed default")
		dataDir  = flag.String("data-dir", "", "dataset directory (overrides NOISEGEN_DATA_DIR)")
		out      = flag.String("out", "", "output filename; derived from parameters when empty")
		analyze  = flag.String("analyze", "", "variant file to analyze against the original instead of generating")
		listData = flag.Bool("list", false, "list stored dataset files and exit")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	if *ratio >= 0 {
		cfg.CorruptionRate = *ratio
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ld, err := loader.New(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("Failed to create loader", zap.Error(err))
	}

	if *listData {
		listFiles(ld)
		return
	}

	if *dataset == "" {
		fmt.Fprintln(os.Stderr, "a -dataset is required; known datasets:", strings.Join(policy.Names(), ", "))
		os.Exit(2)
	}

	var cat *catalog.Catalog
	if cfg.Catalog != nil {
		cat, err = catalog.Open(ctx, cfg.Catalog, logger)
		if err != nil {
			logger.Fatal("Failed to open run catalog", zap.Error(err))
		}
		defer cat.Close()
		if err := cat.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to verify catalog schema", zap.Error(err))
		}
	}

	run, err := runner.New(ld, cat, logger)
	if err != nil {
		logger.Fatal("Failed to create runner", zap.Error(err))
	}

	if *analyze != "" {
		report, err := run.Analyze(*dataset, *analyze)
		if err != nil {
			logger.Fatal("Analysis failed", zap.Error(err))
		}
		printReport(report)
		return
	}

	spec := runner.NewRunSpec(*dataset, cfg.CorruptionRate).
		WithStrategy(cfg.Strategy).
		WithSeed(cfg.Seed)
	if *flip {
		spec = spec.WithLabelFlip()
	}
	if *out != "" {
		spec = spec.WithOutFile(*out)
	}

	result := run.Run(ctx, spec)
	if !result.Success {
		logger.Fatal("Run failed", zap.Error(result.Err))
	}

	fmt.Printf("wrote %s (%d/%d rows corrupted, %d fallbacks)\n",
		result.OutputPath, result.CorruptedRows, result.TotalRows, result.FallbackCount)
	for _, w := range result.Warnings {
		fmt.Println("warning:", w)
	}
}

// buildLogger constructs the zap logger from the configured level and format.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

func listFiles(ld *loader.Loader) {
	infos, err := ld.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to list data directory:", err)
		os.Exit(1)
	}
	if len(infos) == 0 {
		fmt.Println("no dataset files in", ld.DataDir())
		return
	}
	for _, info := range infos {
		fmt.Printf("%-40s %10d bytes\n", info.Name, info.Bytes)
	}
}

func printReport(report *analyzer.Report) {
	fmt.Printf("dataset:            %s\n", report.Dataset)
	fmt.Printf("total rows:         %d\n", report.TotalRows)
	fmt.Printf("changed rows:       %d\n", report.ActualChanges)
	fmt.Printf("mean length delta:  %+.1f\n", report.MeanLengthDelta)
	for col, n := range report.TextColumnChanges {
		fmt.Printf("text changes in %s: %d\n", col, n)
	}
	for class, n := range report.Classifications {
		fmt.Printf("classified %s: %d\n", class, n)
	}
	if len(report.LabelWarnings) > 0 {
		fmt.Printf("label changes:      %d (labels differ from the original)\n", len(report.LabelWarnings))
	}
}
