// Package main runs the knapsack GA across many seeds and measures how often
// it reaches the exhaustive optimum.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/knapsack/config"
	"github.com/pthm-cable/knapsack/fitness"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	runs := flag.Int("runs", 20, "Number of seeds to run")
	firstSeed := flag.Int64("first-seed", 42, "Seed of the first run; run i uses first-seed + i*1000")
	cycles := flag.Int("cycles", 0, "Override cycles (0 = use config)")
	population := flag.Int("population", 0, "Override population size (0 = use config)")
	outputDir := flag.String("output", "", "Output directory for results (empty = print only)")
	flag.Parse()

	if *runs <= 0 {
		log.Fatal("--runs must be positive")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	params := cfg.Derived.Params
	if *cycles > 0 {
		params.Cycles = *cycles
	}
	if *population > 0 {
		params.PopulationSize = *population
	}
	if err := params.Validate(); err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	eval := cfg.Evaluator()
	optimumGenome, optimum := fitness.Optimum(eval)

	var runsFile *os.File
	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			log.Fatalf("failed to create output directory: %v", err)
		}
		f, err := os.Create(filepath.Join(*outputDir, "runs.csv"))
		if err != nil {
			log.Fatalf("failed to create runs file: %v", err)
		}
		defer f.Close()
		runsFile = f
	}

	fmt.Printf("Sweeping %d seeds, population=%d, cycles=%d, optimum=%v - %d\n",
		*runs, params.PopulationSize, params.Cycles, optimumGenome, optimum)

	records := make([]RunRecord, 0, *runs)
	startTime := time.Now()

	for i := 0; i < *runs; i++ {
		seed := *firstSeed + int64(i)*1000

		result, elapsed, err := runOnce(params, eval, seed)
		if err != nil {
			log.Fatalf("run %d: %v", i, err)
		}
		rec := newRecord(i, seed, result, optimum, elapsed)
		records = append(records, rec)

		if runsFile != nil {
			rows := []RunRecord{rec}
			if i == 0 {
				err = gocsv.Marshal(rows, runsFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(rows, runsFile)
			}
			if err != nil {
				log.Fatalf("failed to write run %d: %v", i, err)
			}
		}

		total := time.Since(startTime)
		avgPerRun := total / time.Duration(i+1)
		remaining := time.Duration(*runs-i-1) * avgPerRun
		fmt.Printf("Run %d/%d: seed=%d %v gap=%d | elapsed: %s, ETA: %s\n",
			i+1, *runs, seed, result, rec.Gap, formatDuration(total), formatDuration(remaining))
	}

	summary := summarize(records, optimumGenome, optimum)

	fmt.Printf("\nSweep complete after %d runs in %s\n", summary.Runs, formatDuration(time.Since(startTime)))
	fmt.Printf("Fitness: mean=%.1f std=%.1f min=%d max=%d\n",
		summary.FitnessMean, summary.FitnessStd, summary.FitnessMin, summary.FitnessMax)
	fmt.Printf("Optimum hit rate: %.1f%%\n", summary.HitRate*100)

	if *outputDir != "" {
		summaryPath := filepath.Join(*outputDir, "summary.json")
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			log.Printf("failed to marshal summary: %v", err)
		} else if err := os.WriteFile(summaryPath, data, 0644); err != nil {
			log.Printf("failed to write summary: %v", err)
		} else {
			fmt.Printf("Summary saved to: %s\n", summaryPath)
		}
	}
}
