package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pthm-cable/knapsack/config"
	"github.com/pthm-cable/knapsack/ga"
	"github.com/pthm-cable/knapsack/rng"
	"github.com/pthm-cable/knapsack/telemetry"
)

// options holds the parsed command line.
type options struct {
	configPath string
	seed       int64
	logStats   bool
	outputDir  string
}

func main() {
	var opts options

	// CLI flags
	flag.StringVar(&opts.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.Int64Var(&opts.seed, "seed", 0, "RNG seed (0 = use config, then time-based)")
	flag.BoolVar(&opts.logStats, "log-stats", false, "Output per-generation stats via slog")
	flag.StringVar(&opts.outputDir, "output-dir", "", "Output directory for CSV logs, config snapshot and result")

	flag.Parse()

	// Logs go to stderr; stdout carries only the result line
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	os.Exit(run(opts, os.Stdout, logger))
}

// run executes one solver run and returns the process exit code. Output files
// are closed on every path.
func run(opts options, stdout io.Writer, logger *slog.Logger) int {
	if err := config.Init(opts.configPath); err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	rngSeed := opts.seed
	if rngSeed == 0 {
		rngSeed = cfg.Run.Seed
	}
	src := rng.New(rngSeed)

	output, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		logger.Error("failed to create output directory", "error", err)
		return 1
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config snapshot", "error", err)
		return 1
	}

	eval := cfg.Evaluator()
	engine, err := ga.NewEngine(cfg.Derived.Params, eval, src)
	if err != nil {
		logger.Error("invalid run parameters", "error", err)
		return 1
	}

	collector := telemetry.NewCollector(eval, telemetry.CollectorOptions{
		Cycles:         cfg.Run.Cycles,
		LogStats:       opts.logStats,
		LogEvery:       cfg.Telemetry.LogEvery,
		HallOfFameSize: cfg.Telemetry.HallOfFameSize,
		Output:         output,
		Logger:         logger,
	})
	engine.Observe(collector.Observe)

	if opts.logStats {
		logger.Info("starting run",
			"seed", src.Seed(),
			"cycles", cfg.Run.Cycles,
			"population_size", cfg.Run.PopulationSize,
			"weight_cap", cfg.Knapsack.WeightCap,
		)
	}

	result := engine.Run()

	fmt.Fprintln(stdout, result)

	if opts.logStats {
		logger.Info("run complete",
			"genome", result.Genome.String(),
			"fitness", result.Fitness,
			"weight", result.Weight,
			"items", result.Items,
		)
	}

	failed := false
	if err := collector.Err(); err != nil {
		logger.Error("failed to write generation stats", "error", err)
		failed = true
	}
	if err := output.WriteHallOfFame(collector.HallOfFame()); err != nil {
		logger.Error("failed to write hall of fame", "error", err)
		failed = true
	}
	summary := telemetry.RunSummary{
		Seed:   src.Seed(),
		Params: engine.Params(),
		Result: result,
	}
	if err := output.WriteResult(summary); err != nil {
		logger.Error("failed to write result", "error", err)
		failed = true
	}
	if failed {
		return 1
	}
	return 0
}
