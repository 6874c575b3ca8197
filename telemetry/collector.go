package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/knapsack/fitness"
	"github.com/pthm-cable/knapsack/ga"
)

// CollectorOptions configures a Collector.
type CollectorOptions struct {
	Cycles         int            // Final generation index, always logged
	LogStats       bool           // Emit generation stats via slog
	LogEvery       int            // Generations between log lines (0 = final only)
	HallOfFameSize int            // 0 disables the hall of fame
	Output         *OutputManager // nil disables CSV output
	Logger         *slog.Logger   // nil uses slog.Default()
}

// Collector observes every ranked generation, producing GenerationStats and
// feeding the hall of fame. Its Observe method is a ga.Observer.
type Collector struct {
	eval *fitness.Evaluator
	opts CollectorOptions
	hof  *HallOfFame

	generations int
	last        GenerationStats
	err         error
}

// NewCollector creates a new stats collector for populations scored by eval.
func NewCollector(eval *fitness.Evaluator, opts CollectorOptions) *Collector {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Collector{
		eval: eval,
		opts: opts,
		hof:  NewHallOfFame(opts.HallOfFameSize),
	}
}

// Observe records one ranked generation.
func (c *Collector) Observe(gen int, pop *ga.Population) {
	stats := Compute(gen, pop, c.eval)
	c.last = stats
	c.generations++

	c.hof.ConsiderPopulation(gen, pop, c.eval.Weight)

	if c.shouldLog(gen) {
		stats.LogStats(c.opts.Logger)
	}

	// Keep the first write error; later generations are still collected.
	if err := c.opts.Output.WriteGeneration(stats); err != nil && c.err == nil {
		c.err = err
	}
}

func (c *Collector) shouldLog(gen int) bool {
	if !c.opts.LogStats {
		return false
	}
	if gen == c.opts.Cycles {
		return true
	}
	return c.opts.LogEvery > 0 && gen%c.opts.LogEvery == 0
}

// Last returns the stats of the most recent generation.
func (c *Collector) Last() GenerationStats {
	return c.last
}

// Generations returns how many generations were observed.
func (c *Collector) Generations() int {
	return c.generations
}

// HallOfFame returns the run's hall of fame.
func (c *Collector) HallOfFame() *HallOfFame {
	return c.hof
}

// Err returns the first output error, if any.
func (c *Collector) Err() error {
	return c.err
}
